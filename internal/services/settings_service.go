package services

import (
	"database/sql"
	"errors"
	"fmt"

	"playground_pos_backend/internal/models"
	"playground_pos_backend/internal/repositories"
	"playground_pos_backend/pkg/utils"
)

var ErrInvalidDiscount = errors.New("member discount must be between 0 and 100")

// UpdateSettingsRequest replaces the business configuration.
type UpdateSettingsRequest struct {
	TicketPrice    int64  `json:"ticket_price" binding:"required"`
	MemberDiscount int    `json:"member_discount"`
	OpeningHours   string `json:"opening_hours" binding:"required"`
}

type SettingsService interface {
	GetSettings() (*models.Settings, error)
	UpdateSettings(req UpdateSettingsRequest) (*models.Settings, error)
	ResetAllData() error
}

type settingsService struct {
	settingsRepo repositories.SettingsRepository
	db           *sql.DB
}

// NewSettingsService creates a new instance of SettingsService.
func NewSettingsService(settingsRepo repositories.SettingsRepository, db *sql.DB) SettingsService {
	return &settingsService{settingsRepo: settingsRepo, db: db}
}

func (s *settingsService) GetSettings() (*models.Settings, error) {
	settings, err := s.settingsRepo.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) UpdateSettings(req UpdateSettingsRequest) (*models.Settings, error) {
	if req.TicketPrice <= 0 {
		return nil, fmt.Errorf("%w: ticket price must be positive", ErrValidation)
	}
	if req.MemberDiscount < 0 || req.MemberDiscount > 100 {
		return nil, ErrInvalidDiscount
	}
	if utils.IsEmpty(req.OpeningHours) {
		return nil, fmt.Errorf("%w: opening hours are required", ErrValidation)
	}

	settings := &models.Settings{
		TicketPrice:    req.TicketPrice,
		MemberDiscount: req.MemberDiscount,
		OpeningHours:   req.OpeningHours,
	}
	if err := s.settingsRepo.PutSettings(s.db, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}

// ResetAllData wipes every operational table in one transaction. Staff
// accounts and the saved settings survive.
func (s *settingsService) ResetAllData() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.settingsRepo.ResetOperationalData(tx); err != nil {
		return fmt.Errorf("failed to reset operational data: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit data reset: %w", err)
	}
	return nil
}
