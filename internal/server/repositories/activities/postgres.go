package activities

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/worklog/internal/activity"
	"github.com/dmitrijs2005/worklog/internal/dbx"
	"github.com/dmitrijs2005/worklog/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, event *models.ActivityEvent) error {
	query := `
		INSERT INTO activities (id, user_id, activity, type)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, event.ID, event.UserID, event.Activity, event.Type.String()).
		Scan(&event.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListByUser returns the user's events newest first. Events written in one
// transaction share created_at, so seq breaks ties in insertion order.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*models.ActivityEvent, error) {
	query := `
		SELECT id, user_id, activity, type, created_at FROM activities
		WHERE user_id = $1
		ORDER BY created_at DESC, seq DESC
	`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select activities: %w", err)
	}
	defer rows.Close()

	result := make([]*models.ActivityEvent, 0)
	for rows.Next() {
		var (
			item models.ActivityEvent
			tag  string
		)
		if err := rows.Scan(&item.ID, &item.UserID, &item.Activity, &tag, &item.CreatedAt); err != nil {
			return nil, err
		}
		item.Type = activity.Parse(tag)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
