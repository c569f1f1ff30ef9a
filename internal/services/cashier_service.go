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
	ErrInsufficientCash     = errors.New("cash received is less than the total")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrMissingBankName      = errors.New("bank or provider name is required for this payment method")
)

// FinalizeRequest closes a visit at the register.
type FinalizeRequest struct {
	PaymentMethod string  `json:"payment_method" binding:"required"`
	BankName      *string `json:"bank_name"`
	CashReceived  *int64  `json:"cash_received"`
}

// Receipt is the finalized transaction plus the change due, returned to the
// register for printing.
type Receipt struct {
	Transaction *models.Transaction `json:"transaction"`
	ChangeGiven int64               `json:"change_given"`
}

type CashierService interface {
	Quote(sequence string) (*ActiveVisit, error)
	Finalize(sequence, cashierName string, req FinalizeRequest) (*Receipt, error)
}

type cashierService struct {
	visitRepo       repositories.VisitRepository
	orderRepo       repositories.OrderRepository
	transactionRepo repositories.TransactionRepository
	settingsRepo    repositories.SettingsRepository
	db              *sql.DB
	now             func() time.Time
}

// NewCashierService creates a new instance of CashierService.
func NewCashierService(
	visitRepo repositories.VisitRepository,
	orderRepo repositories.OrderRepository,
	transactionRepo repositories.TransactionRepository,
	settingsRepo repositories.SettingsRepository,
	db *sql.DB,
) CashierService {
	return &cashierService{
		visitRepo:       visitRepo,
		orderRepo:       orderRepo,
		transactionRepo: transactionRepo,
		settingsRepo:    settingsRepo,
		db:              db,
		now:             time.Now,
	}
}

func validPaymentMethod(method string) bool {
	switch method {
	case models.PaymentCash, models.PaymentDebit, models.PaymentKartu, models.PaymentQRIS:
		return true
	}
	return false
}

// Quote prices a visit without closing it. The register shows this while
// the customer decides how to pay; the final amount is recomputed at
// finalize so the clock keeps running.
func (s *cashierService) Quote(sequence string) (*ActiveVisit, error) {
	customer, err := s.visitRepo.GetActiveCustomerBySequence(sequence)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrVisitNotFound
		}
		return nil, fmt.Errorf("failed to fetch active visit %s: %w", sequence, err)
	}

	settings, err := s.settingsRepo.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	items, err := s.orderRepo.GetOrderItems(sequence)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order for visit %s: %w", sequence, err)
	}
	var orderCost int64
	for _, item := range items {
		orderCost += item.LineTotal()
	}

	return &ActiveVisit{
		ActiveCustomer: *customer,
		Bill: CalculateBill(
			customer.CheckedInAt, s.now(), settings.TicketPrice,
			customer.IsMember, customer.DiscountPercent, orderCost,
		),
	}, nil
}

// Finalize bills a visit and closes it in one transaction: the frozen
// transaction record and its items are written, the open order lines are
// consumed and the visitor leaves the active list. A cash payment below the
// total is rejected before anything is written.
func (s *cashierService) Finalize(sequence, cashierName string, req FinalizeRequest) (*Receipt, error) {
	if !validPaymentMethod(req.PaymentMethod) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPaymentMethod, req.PaymentMethod)
	}
	if req.PaymentMethod != models.PaymentCash && (req.BankName == nil || utils.IsEmpty(*req.BankName)) {
		return nil, ErrMissingBankName
	}

	customer, err := s.visitRepo.GetActiveCustomerBySequence(sequence)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrVisitNotFound
		}
		return nil, fmt.Errorf("failed to fetch active visit %s: %w", sequence, err)
	}

	settings, err := s.settingsRepo.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	orderItems, err := s.orderRepo.GetOrderItems(sequence)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order for visit %s: %w", sequence, err)
	}
	var orderCost int64
	for _, item := range orderItems {
		orderCost += item.LineTotal()
	}

	now := s.now()
	bill := CalculateBill(
		customer.CheckedInAt, now, settings.TicketPrice,
		customer.IsMember, customer.DiscountPercent, orderCost,
	)

	var cashReceived, changeGiven *int64
	var change int64
	if req.PaymentMethod == models.PaymentCash {
		if req.CashReceived == nil {
			return nil, fmt.Errorf("%w: cash received is required", ErrValidation)
		}
		if *req.CashReceived < bill.TotalAmount {
			return nil, ErrInsufficientCash
		}
		change = CalculateChange(*req.CashReceived, bill.TotalAmount)
		cashReceived = req.CashReceived
		changeGiven = &change
	}

	transaction := &models.Transaction{
		TicketNumber:    sequence,
		Date:            now,
		CustomerName:    customer.ChildName,
		IsMember:        customer.IsMember,
		DiscountPercent: bill.DiscountPercent,
		Duration:        bill.Duration,
		BillableHours:   bill.BillableHours,
		PlayCost:        bill.PlayCost,
		OrderCost:       bill.OrderCost,
		DiscountAmount:  bill.DiscountAmount,
		TotalAmount:     bill.TotalAmount,
		PaymentMethod:   req.PaymentMethod,
		BankName:        req.BankName,
		CashReceived:    cashReceived,
		ChangeGiven:     changeGiven,
		CashierName:     cashierName,
	}

	frozenItems := make([]models.TransactionItem, 0, len(orderItems))
	for _, item := range orderItems {
		frozenItems = append(frozenItems, models.TransactionItem{
			Name:  item.Name,
			Price: item.Price,
			Qty:   item.Qty,
		})
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	transactionID, err := s.transactionRepo.CreateTransaction(tx, transaction)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction record: %w", err)
	}
	transaction.ID = transactionID

	if err := s.transactionRepo.CreateTransactionItems(tx, transactionID, frozenItems); err != nil {
		return nil, fmt.Errorf("failed to freeze order items: %w", err)
	}
	transaction.Items = frozenItems

	if err := s.orderRepo.DeleteOrder(tx, sequence); err != nil {
		return nil, fmt.Errorf("failed to close order for visit %s: %w", sequence, err)
	}
	if err := s.visitRepo.DeleteActiveCustomer(tx, sequence); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Checked out by another register while we were pricing.
			return nil, ErrVisitNotFound
		}
		return nil, fmt.Errorf("failed to remove active visit %s: %w", sequence, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit checkout: %w", err)
	}

	utils.TransactionsFinalizedTotal.Inc()
	utils.RevenueTotal.Add(float64(bill.TotalAmount))

	return &Receipt{Transaction: transaction, ChangeGiven: change}, nil
}
