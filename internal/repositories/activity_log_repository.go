package repositories

import (
	"database/sql"
	"fmt"

	"playground_pos_backend/internal/models"
)

// ActivityLogRepository records the rolling staff activity feed.
type ActivityLogRepository interface {
	InsertLog(executor SQLExecutor, log *models.ActivityLog) error
	GetLogs(limit, offset int) ([]models.ActivityLog, int, error)
	DeleteAllLogs(executor SQLExecutor) error
}

type activityLogRepository struct {
	db *sql.DB
}

// NewActivityLogRepository creates a new instance of ActivityLogRepository.
func NewActivityLogRepository(db *sql.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

// InsertLog appends one entry and trims the feed to its cap so the table
// never grows unbounded.
func (r *activityLogRepository) InsertLog(executor SQLExecutor, log *models.ActivityLog) error {
	err := executor.QueryRow(
		`INSERT INTO activity_logs (logged_at, actor, activity) VALUES (NOW(), $1, $2)
		 RETURNING id, logged_at`,
		log.Actor, log.Activity,
	).Scan(&log.ID, &log.LoggedAt)
	if err != nil {
		return fmt.Errorf("%w: inserting activity log: %v", ErrDatabaseError, err)
	}

	_, err = executor.Exec(
		`DELETE FROM activity_logs WHERE id NOT IN
		 (SELECT id FROM activity_logs ORDER BY id DESC LIMIT $1)`,
		models.MaxActivityLogs,
	)
	if err != nil {
		return fmt.Errorf("%w: trimming activity logs: %v", ErrDatabaseError, err)
	}
	return nil
}

// GetLogs returns entries newest first.
func (r *activityLogRepository) GetLogs(limit, offset int) ([]models.ActivityLog, int, error) {
	logs := []models.ActivityLog{}
	total := 0

	query := `SELECT id, logged_at, actor, activity, COUNT(*) OVER() AS total_count
	          FROM activity_logs ORDER BY id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1 OFFSET $2"
		args = append(args, limit, offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying activity logs: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		log := models.ActivityLog{}
		if err := rows.Scan(&log.ID, &log.LoggedAt, &log.Actor, &log.Activity, &total); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning activity log: %v", ErrDatabaseError, err)
		}
		logs = append(logs, log)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating activity log rows: %v", ErrDatabaseError, err)
	}
	return logs, total, nil
}

func (r *activityLogRepository) DeleteAllLogs(executor SQLExecutor) error {
	if _, err := executor.Exec(`DELETE FROM activity_logs`); err != nil {
		return fmt.Errorf("%w: deleting all activity logs: %v", ErrDatabaseError, err)
	}
	return nil
}
