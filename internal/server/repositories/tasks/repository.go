// Package tasks stores per-user tasks and answers the counter queries.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/worklog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Task, error)
	// Toggle flips the status of one of the user's tasks and returns the
	// updated row, or common.ErrorNotFound when the user owns no such task.
	Toggle(ctx context.Context, userID, taskID string) (*models.Task, error)
	CountAll(ctx context.Context, userID string) (int64, error)
	CountCompleted(ctx context.Context, userID string) (int64, error)
}
