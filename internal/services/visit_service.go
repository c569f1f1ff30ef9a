package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"playground_pos_backend/internal/models"
	"playground_pos_backend/internal/repositories"
	"playground_pos_backend/pkg/utils"
)

var (
	ErrVisitNotFound     = errors.New("active visit not found")
	ErrAlreadyCheckedIn  = errors.New("member is already checked in")
	ErrDuplicateSequence = errors.New("ticket number already in use")
)

const sequenceDateLayout = "2006-01-02"

// CheckInRequest opens a visit. A scanned member barcode is optional; a
// walk-in checks in with just a name.
type CheckInRequest struct {
	ChildName string  `json:"child_name" binding:"required"`
	Phone     string  `json:"phone"`
	Barcode   *string `json:"barcode"`
}

// ActiveVisit is an active customer plus the running bill preview.
type ActiveVisit struct {
	models.ActiveCustomer
	Bill Bill `json:"bill"`
}

type VisitService interface {
	PeekTicketNumber() (string, error)
	CheckIn(req CheckInRequest) (*models.ActiveCustomer, error)
	CancelVisit(sequence string) error
	GetActiveVisits() ([]ActiveVisit, error)
	GetVisit(sequence string) (*ActiveVisit, error)
}

type visitService struct {
	visitRepo     repositories.VisitRepository
	memberRepo    repositories.MemberRepository
	orderRepo     repositories.OrderRepository
	inventoryRepo repositories.InventoryRepository
	settingsRepo  repositories.SettingsRepository
	db            *sql.DB
	now           func() time.Time
}

// NewVisitService creates a new instance of VisitService.
func NewVisitService(
	visitRepo repositories.VisitRepository,
	memberRepo repositories.MemberRepository,
	orderRepo repositories.OrderRepository,
	inventoryRepo repositories.InventoryRepository,
	settingsRepo repositories.SettingsRepository,
	db *sql.DB,
) VisitService {
	return &visitService{
		visitRepo:     visitRepo,
		memberRepo:    memberRepo,
		orderRepo:     orderRepo,
		inventoryRepo: inventoryRepo,
		settingsRepo:  settingsRepo,
		db:            db,
		now:           time.Now,
	}
}

// PeekTicketNumber previews the next ticket number for the front-desk
// display. Advisory only; the committed number is assigned inside the
// check-in transaction and may differ under concurrent check-ins.
func (s *visitService) PeekTicketNumber() (string, error) {
	state, err := s.visitRepo.PeekSequence()
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return "", fmt.Errorf("failed to peek ticket sequence: %w", err)
	}
	next := 1
	if state != nil && state.Date == s.now().Format(sequenceDateLayout) {
		next = state.NextNumber
	}
	return FormatTicketNumber(next), nil
}

// CheckIn opens a visit, assigning the day's next ticket number atomically.
// A valid member card attaches the membership and its discount; an unknown or
// expired card checks the visitor in as a regular guest.
func (s *visitService) CheckIn(req CheckInRequest) (*models.ActiveCustomer, error) {
	if utils.IsEmpty(req.ChildName) {
		return nil, fmt.Errorf("%w: child name is required", ErrValidation)
	}

	now := s.now()
	customer := &models.ActiveCustomer{
		ChildName:   strings.TrimSpace(req.ChildName),
		Phone:       strings.TrimSpace(req.Phone),
		CheckedInAt: now,
	}

	if req.Barcode != nil && !utils.IsEmpty(*req.Barcode) {
		if err := s.applyMemberCard(customer, strings.TrimSpace(*req.Barcode), now); err != nil {
			return nil, err
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	number, err := s.visitRepo.CommitSequence(tx, now.Format(sequenceDateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to assign ticket number: %w", err)
	}
	customer.DailySequence = FormatTicketNumber(number)

	id, err := s.visitRepo.CreateActiveCustomer(tx, customer)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrDuplicateSequence
		}
		return nil, fmt.Errorf("failed to create active visit: %w", err)
	}
	customer.ID = id

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit check-in: %w", err)
	}

	utils.CheckInsTotal.Inc()
	return customer, nil
}

// applyMemberCard resolves a scanned barcode onto the visit. A card that does
// not match any member, or matches an expired membership, is not an error:
// the visitor is admitted as a regular guest. A known card already on the
// floor rejects the check-in.
func (s *visitService) applyMemberCard(customer *models.ActiveCustomer, barcode string, now time.Time) error {
	member, err := s.memberRepo.GetMemberByBarcode(barcode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to resolve member barcode: %w", err)
	}

	if _, err := s.visitRepo.GetActiveCustomerByBarcode(barcode); err == nil {
		return ErrAlreadyCheckedIn
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check active visits for barcode: %w", err)
	}

	if member.Expired(now) {
		return nil
	}

	settings, err := s.settingsRepo.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	customer.Barcode = &member.Barcode
	customer.IsMember = true
	customer.DiscountPercent = settings.MemberDiscount
	customer.ChildName = member.ChildName
	customer.Phone = member.Phone
	return nil
}

// CancelVisit removes an active visit without billing. Any cafe order lines
// are released and their stock returned.
func (s *visitService) CancelVisit(sequence string) error {
	if _, err := s.visitRepo.GetActiveCustomerBySequence(sequence); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrVisitNotFound
		}
		return fmt.Errorf("failed to fetch active visit %s: %w", sequence, err)
	}

	items, err := s.orderRepo.GetOrderItems(sequence)
	if err != nil {
		return fmt.Errorf("failed to fetch order for visit %s: %w", sequence, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	for _, item := range items {
		if err := s.inventoryRepo.IncrementStock(tx, item.InventoryItemID, item.Qty); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				// Item was deleted from inventory while on the order.
				continue
			}
			return fmt.Errorf("failed to return stock for item %d: %w", item.InventoryItemID, err)
		}
	}
	if err := s.orderRepo.DeleteOrder(tx, sequence); err != nil {
		return fmt.Errorf("failed to delete order for visit %s: %w", sequence, err)
	}
	if err := s.visitRepo.DeleteActiveCustomer(tx, sequence); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrVisitNotFound
		}
		return fmt.Errorf("failed to delete active visit %s: %w", sequence, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit visit cancellation: %w", err)
	}
	return nil
}

// GetActiveVisits lists everyone on the floor with a live bill preview.
func (s *visitService) GetActiveVisits() ([]ActiveVisit, error) {
	customers, err := s.visitRepo.GetActiveCustomers()
	if err != nil {
		return nil, fmt.Errorf("failed to list active visits: %w", err)
	}
	settings, err := s.settingsRepo.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	now := s.now()
	visits := make([]ActiveVisit, 0, len(customers))
	for _, customer := range customers {
		orderCost, err := s.orderCost(customer.DailySequence)
		if err != nil {
			return nil, err
		}
		visits = append(visits, ActiveVisit{
			ActiveCustomer: customer,
			Bill: CalculateBill(
				customer.CheckedInAt, now, settings.TicketPrice,
				customer.IsMember, customer.DiscountPercent, orderCost,
			),
		})
	}
	return visits, nil
}

func (s *visitService) GetVisit(sequence string) (*ActiveVisit, error) {
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
	orderCost, err := s.orderCost(sequence)
	if err != nil {
		return nil, err
	}
	return &ActiveVisit{
		ActiveCustomer: *customer,
		Bill: CalculateBill(
			customer.CheckedInAt, s.now(), settings.TicketPrice,
			customer.IsMember, customer.DiscountPercent, orderCost,
		),
	}, nil
}

func (s *visitService) orderCost(sequence string) (int64, error) {
	items, err := s.orderRepo.GetOrderItems(sequence)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch order for visit %s: %w", sequence, err)
	}
	var total int64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total, nil
}
