package services

import (
	"database/sql"
	"fmt"

	"playground_pos_backend/internal/models"
	"playground_pos_backend/internal/repositories"
	"playground_pos_backend/pkg/utils"
)

// ActivityService records and serves the staff activity feed. Recording is
// best effort: a failed write is logged and swallowed so it never fails the
// operation being recorded.
type ActivityService interface {
	Record(actor, activity string)
	GetLogs(limit, offset int) ([]models.ActivityLog, int, error)
}

type activityService struct {
	activityRepo repositories.ActivityLogRepository
	db           *sql.DB
}

// NewActivityService creates a new instance of ActivityService.
func NewActivityService(activityRepo repositories.ActivityLogRepository, db *sql.DB) ActivityService {
	return &activityService{activityRepo: activityRepo, db: db}
}

func (s *activityService) Record(actor, activity string) {
	entry := &models.ActivityLog{Actor: actor, Activity: activity}
	if err := s.activityRepo.InsertLog(s.db, entry); err != nil {
		utils.LogWarn(fmt.Sprintf("activity log write failed: %v", err))
	}
}

func (s *activityService) GetLogs(limit, offset int) ([]models.ActivityLog, int, error) {
	if limit < 1 {
		limit = 100
	}
	logs, total, err := s.activityRepo.GetLogs(limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activity logs: %w", err)
	}
	return logs, total, nil
}
