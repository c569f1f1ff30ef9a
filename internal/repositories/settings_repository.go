package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"playground_pos_backend/internal/models"
)

// SettingsRepository stores the single business-configuration row and runs
// the factory reset.
type SettingsRepository interface {
	GetSettings() (*models.Settings, error)
	PutSettings(executor SQLExecutor, settings *models.Settings) error
	ResetOperationalData(executor SQLExecutor) error
}

type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new instance of SettingsRepository.
func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// GetSettings returns the stored configuration, falling back to the defaults
// when nothing has been saved yet.
func (r *settingsRepository) GetSettings() (*models.Settings, error) {
	settings := &models.Settings{}
	query := `SELECT ticket_price, member_discount, opening_hours, updated_at FROM settings WHERE id = 1`
	err := r.db.QueryRow(query).Scan(
		&settings.TicketPrice, &settings.MemberDiscount, &settings.OpeningHours, &settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			defaults := models.DefaultSettings()
			return &defaults, nil
		}
		return nil, fmt.Errorf("%w: getting settings: %v", ErrDatabaseError, err)
	}
	return settings, nil
}

func (r *settingsRepository) PutSettings(executor SQLExecutor, settings *models.Settings) error {
	query := `INSERT INTO settings (id, ticket_price, member_discount, opening_hours, updated_at)
	          VALUES (1, $1, $2, $3, NOW())
	          ON CONFLICT (id) DO UPDATE SET
	              ticket_price = EXCLUDED.ticket_price,
	              member_discount = EXCLUDED.member_discount,
	              opening_hours = EXCLUDED.opening_hours,
	              updated_at = NOW()
	          RETURNING updated_at`
	err := executor.QueryRow(query, settings.TicketPrice, settings.MemberDiscount, settings.OpeningHours).
		Scan(&settings.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: saving settings: %v", ErrDatabaseError, err)
	}
	return nil
}

// ResetOperationalData clears every operational table. Employee accounts and
// the saved settings survive so the venue can keep operating after the wipe.
func (r *settingsRepository) ResetOperationalData(executor SQLExecutor) error {
	statements := []string{
		`DELETE FROM customer_order_items`,
		`DELETE FROM active_customers`,
		`DELETE FROM transactions`,
		`DELETE FROM attendance`,
		`DELETE FROM activity_logs`,
		`DELETE FROM members`,
		`DELETE FROM member_sequence`,
		`DELETE FROM daily_sequence`,
		`DELETE FROM inventory_items`,
		`DELETE FROM assets`,
	}
	for _, stmt := range statements {
		if _, err := executor.Exec(stmt); err != nil {
			return fmt.Errorf("%w: resetting operational data (%s): %v", ErrDatabaseError, stmt, err)
		}
	}
	return nil
}
