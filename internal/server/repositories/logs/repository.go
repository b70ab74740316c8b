// Package logs persists work-log comments as an append-only row set. A day's
// record is rebuilt on read from the rows sharing (user_id, log_date).
package logs

import (
	"context"

	"github.com/dmitrijs2005/worklog/internal/server/models"
)

type Repository interface {
	// Append stores one comment and returns its sequence id. Concurrent
	// appends for the same day never overwrite each other.
	Append(ctx context.Context, userID, date, comment string) (int64, error)
	// ListByDate returns the user's comments for one day in insertion order.
	ListByDate(ctx context.Context, userID, date string) ([]models.LogComment, error)
	// ListByUser returns all of the user's comments in insertion order.
	ListByUser(ctx context.Context, userID string) ([]models.LogComment, error)
}
