package services

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/worklog/internal/activity"
	"github.com/dmitrijs2005/worklog/internal/logging"
	"github.com/dmitrijs2005/worklog/internal/server/models"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/activities"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/repomanager"
)

// Activity texts shown in the feed.
const (
	activityLoggedIn    = "Logged in"
	activityLoggedOut   = "Logged out"
	activityAddedTask   = "Added task with ID: "
	activityToggledTask = "Updated status of task with ID: "
	activityAddedLog    = "Added log for "
	activityExported    = "Logs successfully exported"
)

// ActivityService serves the per-user activity feed.
type ActivityService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewActivityService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *ActivityService {
	return &ActivityService{
		db:          db,
		repomanager: m,
		log:         log.With("module", "activities"),
	}
}

// List returns the user's events newest first, at most limit of them when
// limit > 0. A missing user or a failed read yields an empty feed.
func (s *ActivityService) List(ctx context.Context, userID string, limit int) []*models.ActivityEvent {
	if userID == "" {
		return []*models.ActivityEvent{}
	}
	events, err := s.repomanager.Activities(s.db).ListByUser(ctx, userID, limit)
	if err != nil {
		s.log.Error(ctx, "error fetching activities", "user_id", userID, "error", err)
		return []*models.ActivityEvent{}
	}
	return events
}

// recordActivity appends one event through repo, which may be bound to a
// transaction.
func recordActivity(ctx context.Context, repo activities.Repository, userID string, kind activity.Kind, text string) error {
	return repo.Create(ctx, &models.ActivityEvent{
		ID:       uuid.NewString(),
		UserID:   userID,
		Activity: text,
		Type:     kind,
	})
}
