package services

import (
	"database/sql"
	"errors"
	"fmt"

	"playground_pos_backend/internal/models"
	"playground_pos_backend/internal/repositories"
)

var (
	ErrOrderItemNotFound = errors.New("order item not found")
	ErrInventoryNotFound = errors.New("inventory item not found")
	ErrInsufficientStock = errors.New("insufficient stock for item")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
)

// AddOrderItemRequest adds an item to an active visit's cafe order.
type AddOrderItemRequest struct {
	ItemID int64 `json:"item_id" binding:"required"`
	Qty    int   `json:"qty" binding:"required,gt=0"`
}

// UpdateOrderItemRequest overwrites the quantity of an existing line.
type UpdateOrderItemRequest struct {
	Qty int `json:"qty" binding:"required,gt=0"`
}

type OrderService interface {
	GetOrder(sequence string) (*models.OpenOrder, error)
	AddItem(sequence string, req AddOrderItemRequest) (*models.OpenOrder, error)
	UpdateItemQty(sequence string, itemID int64, req UpdateOrderItemRequest) (*models.OpenOrder, error)
	RemoveItem(sequence string, itemID int64) (*models.OpenOrder, error)
	GetOpenOrders() ([]models.OpenOrder, error)
}

type orderService struct {
	orderRepo     repositories.OrderRepository
	inventoryRepo repositories.InventoryRepository
	visitRepo     repositories.VisitRepository
	db            *sql.DB
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	inventoryRepo repositories.InventoryRepository,
	visitRepo repositories.VisitRepository,
	db *sql.DB,
) OrderService {
	return &orderService{
		orderRepo:     orderRepo,
		inventoryRepo: inventoryRepo,
		visitRepo:     visitRepo,
		db:            db,
	}
}

// GetOrder returns the open order of an active visit.
func (s *orderService) GetOrder(sequence string) (*models.OpenOrder, error) {
	customer, err := s.visitRepo.GetActiveCustomerBySequence(sequence)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrVisitNotFound
		}
		return nil, fmt.Errorf("failed to fetch active visit %s: %w", sequence, err)
	}
	return s.buildOrder(sequence, customer.ChildName)
}

// AddItem reserves stock and adds a line, accumulating quantity when the
// item is already on the order. Stock is taken at order time so the cafe
// cannot oversell while visits are still open.
func (s *orderService) AddItem(sequence string, req AddOrderItemRequest) (*models.OpenOrder, error) {
	if req.Qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	customer, err := s.visitRepo.GetActiveCustomerBySequence(sequence)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrVisitNotFound
		}
		return nil, fmt.Errorf("failed to fetch active visit %s: %w", sequence, err)
	}

	item, err := s.inventoryRepo.GetInventoryItemByID(req.ItemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, fmt.Errorf("failed to fetch inventory item %d: %w", req.ItemID, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.inventoryRepo.DecrementStock(tx, item.ID, req.Qty); err != nil {
		if errors.Is(err, repositories.ErrInsufficientStock) {
			return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, item.Name)
		}
		return nil, fmt.Errorf("failed to reserve stock for %s: %w", item.Name, err)
	}

	line := &models.OrderItem{
		DailySequence:   sequence,
		InventoryItemID: item.ID,
		Name:            item.Name,
		Price:           item.Price,
		Qty:             req.Qty,
	}
	if err := s.orderRepo.UpsertOrderItem(tx, line); err != nil {
		return nil, fmt.Errorf("failed to add order line for %s: %w", sequence, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order line: %w", err)
	}
	return s.buildOrder(sequence, customer.ChildName)
}

// UpdateItemQty overwrites a line's quantity, reserving or returning the
// stock difference.
func (s *orderService) UpdateItemQty(sequence string, itemID int64, req UpdateOrderItemRequest) (*models.OpenOrder, error) {
	if req.Qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	customer, err := s.visitRepo.GetActiveCustomerBySequence(sequence)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrVisitNotFound
		}
		return nil, fmt.Errorf("failed to fetch active visit %s: %w", sequence, err)
	}

	line, err := s.orderRepo.GetOrderItem(sequence, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderItemNotFound
		}
		return nil, fmt.Errorf("failed to fetch order line for %s: %w", sequence, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	diff := req.Qty - line.Qty
	switch {
	case diff > 0:
		if err := s.inventoryRepo.DecrementStock(tx, itemID, diff); err != nil {
			if errors.Is(err, repositories.ErrInsufficientStock) {
				return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, line.Name)
			}
			return nil, fmt.Errorf("failed to reserve stock for %s: %w", line.Name, err)
		}
	case diff < 0:
		if err := s.inventoryRepo.IncrementStock(tx, itemID, -diff); err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to return stock for %s: %w", line.Name, err)
		}
	}

	if err := s.orderRepo.UpdateOrderItemQty(tx, sequence, itemID, req.Qty); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderItemNotFound
		}
		return nil, fmt.Errorf("failed to update order line for %s: %w", sequence, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order line update: %w", err)
	}
	return s.buildOrder(sequence, customer.ChildName)
}

// RemoveItem deletes a line and returns its stock.
func (s *orderService) RemoveItem(sequence string, itemID int64) (*models.OpenOrder, error) {
	customer, err := s.visitRepo.GetActiveCustomerBySequence(sequence)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrVisitNotFound
		}
		return nil, fmt.Errorf("failed to fetch active visit %s: %w", sequence, err)
	}

	line, err := s.orderRepo.GetOrderItem(sequence, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderItemNotFound
		}
		return nil, fmt.Errorf("failed to fetch order line for %s: %w", sequence, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.inventoryRepo.IncrementStock(tx, itemID, line.Qty); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to return stock for %s: %w", line.Name, err)
	}
	if err := s.orderRepo.DeleteOrderItem(tx, sequence, itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderItemNotFound
		}
		return nil, fmt.Errorf("failed to delete order line for %s: %w", sequence, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order line removal: %w", err)
	}
	return s.buildOrder(sequence, customer.ChildName)
}

// GetOpenOrders lists every active visit that currently has order lines.
func (s *orderService) GetOpenOrders() ([]models.OpenOrder, error) {
	sequences, err := s.orderRepo.GetOpenOrderSequences()
	if err != nil {
		return nil, fmt.Errorf("failed to list open orders: %w", err)
	}

	orders := make([]models.OpenOrder, 0, len(sequences))
	for _, sequence := range sequences {
		name := ""
		if customer, err := s.visitRepo.GetActiveCustomerBySequence(sequence); err == nil {
			name = customer.ChildName
		}
		order, err := s.buildOrder(sequence, name)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

func (s *orderService) buildOrder(sequence, childName string) (*models.OpenOrder, error) {
	items, err := s.orderRepo.GetOrderItems(sequence)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order for %s: %w", sequence, err)
	}
	order := &models.OpenOrder{DailySequence: sequence, ChildName: childName, Items: items}
	for _, item := range items {
		order.Total += item.LineTotal()
	}
	return order, nil
}
