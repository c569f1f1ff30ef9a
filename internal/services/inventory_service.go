package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"playground_pos_backend/internal/models"
	"playground_pos_backend/internal/repositories"
	"playground_pos_backend/pkg/utils"
)

var (
	ErrAssetNotFound    = errors.New("asset not found")
	ErrInvalidCategory  = errors.New("invalid inventory category")
	ErrInvalidItemPrice = errors.New("price cannot be negative")
	ErrInvalidItemStock = errors.New("stock cannot be negative")
)

// InventoryItemRequest creates or replaces a stock item.
type InventoryItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	ItemType *string `json:"type"`
	Price    int64   `json:"price"`
	Stock    int     `json:"stock"`
	Category string  `json:"category" binding:"required"`
}

// AssetRequest creates or replaces a fixed asset.
type AssetRequest struct {
	Name         string `json:"name" binding:"required"`
	AssetType    string `json:"type" binding:"required"`
	PurchaseDate string `json:"purchase_date" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required,gt=0"`
	Value        int64  `json:"value"`
	Condition    string `json:"condition" binding:"required"`
	Location     string `json:"location" binding:"required"`
}

type InventoryService interface {
	CreateItem(req InventoryItemRequest) (*models.InventoryItem, error)
	GetItemByID(id int64) (*models.InventoryItem, error)
	GetItems(category string, limit, offset int) ([]models.InventoryItem, int, error)
	UpdateItem(id int64, req InventoryItemRequest) (*models.InventoryItem, error)
	DeleteItem(id int64) error

	CreateAsset(req AssetRequest) (*models.Asset, error)
	GetAssets(limit, offset int) ([]models.Asset, int, error)
	UpdateAsset(id int64, req AssetRequest) (*models.Asset, error)
	DeleteAsset(id int64) error
}

type inventoryService struct {
	inventoryRepo repositories.InventoryRepository
	assetRepo     repositories.AssetRepository
	db            *sql.DB
}

// NewInventoryService creates a new instance of InventoryService.
func NewInventoryService(
	inventoryRepo repositories.InventoryRepository,
	assetRepo repositories.AssetRepository,
	db *sql.DB,
) InventoryService {
	return &inventoryService{inventoryRepo: inventoryRepo, assetRepo: assetRepo, db: db}
}

func validCategory(category string) bool {
	switch category {
	case models.CategoryFood, models.CategoryDrink, models.CategoryGoods:
		return true
	}
	return false
}

func (s *inventoryService) validateItem(req InventoryItemRequest) error {
	if utils.IsEmpty(req.Name) {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !validCategory(req.Category) {
		return fmt.Errorf("%w: %s", ErrInvalidCategory, req.Category)
	}
	if req.Price < 0 {
		return ErrInvalidItemPrice
	}
	if req.Stock < 0 {
		return ErrInvalidItemStock
	}
	return nil
}

func (s *inventoryService) CreateItem(req InventoryItemRequest) (*models.InventoryItem, error) {
	if err := s.validateItem(req); err != nil {
		return nil, err
	}
	item := &models.InventoryItem{
		Name:     req.Name,
		ItemType: req.ItemType,
		Price:    req.Price,
		Stock:    req.Stock,
		Category: req.Category,
	}
	id, err := s.inventoryRepo.CreateInventoryItem(s.db, item)
	if err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}
	item.ID = id
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	return item, nil
}

func (s *inventoryService) GetItemByID(id int64) (*models.InventoryItem, error) {
	item, err := s.inventoryRepo.GetInventoryItemByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, fmt.Errorf("failed to fetch inventory item %d: %w", id, err)
	}
	return item, nil
}

func (s *inventoryService) GetItems(category string, limit, offset int) ([]models.InventoryItem, int, error) {
	if category != "" && !validCategory(category) {
		return nil, 0, fmt.Errorf("%w: %s", ErrInvalidCategory, category)
	}
	items, total, err := s.inventoryRepo.GetInventoryItems(category, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list inventory items: %w", err)
	}
	return items, total, nil
}

func (s *inventoryService) UpdateItem(id int64, req InventoryItemRequest) (*models.InventoryItem, error) {
	if err := s.validateItem(req); err != nil {
		return nil, err
	}
	item, err := s.GetItemByID(id)
	if err != nil {
		return nil, err
	}
	item.Name = req.Name
	item.ItemType = req.ItemType
	item.Price = req.Price
	item.Stock = req.Stock
	item.Category = req.Category

	if err := s.inventoryRepo.UpdateInventoryItem(s.db, item); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, fmt.Errorf("failed to update inventory item %d: %w", id, err)
	}
	return item, nil
}

func (s *inventoryService) DeleteItem(id int64) error {
	if err := s.inventoryRepo.DeleteInventoryItem(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInventoryNotFound
		}
		return fmt.Errorf("failed to delete inventory item %d: %w", id, err)
	}
	return nil
}

func (s *inventoryService) CreateAsset(req AssetRequest) (*models.Asset, error) {
	if _, err := time.Parse("2006-01-02", req.PurchaseDate); err != nil {
		return nil, fmt.Errorf("%w: purchase date must be YYYY-MM-DD", ErrValidation)
	}
	asset := &models.Asset{
		Name:         req.Name,
		AssetType:    req.AssetType,
		PurchaseDate: req.PurchaseDate,
		Quantity:     req.Quantity,
		Value:        req.Value,
		Condition:    req.Condition,
		Location:     req.Location,
	}
	id, err := s.assetRepo.CreateAsset(s.db, asset)
	if err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}
	asset.ID = id
	asset.CreatedAt = time.Now()
	return asset, nil
}

func (s *inventoryService) GetAssets(limit, offset int) ([]models.Asset, int, error) {
	assets, total, err := s.assetRepo.GetAssets(limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assets: %w", err)
	}
	return assets, total, nil
}

func (s *inventoryService) UpdateAsset(id int64, req AssetRequest) (*models.Asset, error) {
	if _, err := time.Parse("2006-01-02", req.PurchaseDate); err != nil {
		return nil, fmt.Errorf("%w: purchase date must be YYYY-MM-DD", ErrValidation)
	}
	asset, err := s.assetRepo.GetAssetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to fetch asset %d: %w", id, err)
	}
	asset.Name = req.Name
	asset.AssetType = req.AssetType
	asset.PurchaseDate = req.PurchaseDate
	asset.Quantity = req.Quantity
	asset.Value = req.Value
	asset.Condition = req.Condition
	asset.Location = req.Location

	if err := s.assetRepo.UpdateAsset(s.db, asset); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to update asset %d: %w", id, err)
	}
	return asset, nil
}

func (s *inventoryService) DeleteAsset(id int64) error {
	if err := s.assetRepo.DeleteAsset(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAssetNotFound
		}
		return fmt.Errorf("failed to delete asset %d: %w", id, err)
	}
	return nil
}
