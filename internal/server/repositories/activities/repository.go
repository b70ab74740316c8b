// Package activities stores the append-only activity feed.
package activities

import (
	"context"

	"github.com/dmitrijs2005/worklog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, event *models.ActivityEvent) error
	// ListByUser returns the user's events, newest first. A limit <= 0
	// returns every event.
	ListByUser(ctx context.Context, userID string, limit int) ([]*models.ActivityEvent, error)
}
