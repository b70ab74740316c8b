package logs

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/dmitrijs2005/worklog/internal/dbx"
	"github.com/dmitrijs2005/worklog/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, userID, date, comment string) (int64, error) {
	query := `
		INSERT INTO log_comments (user_id, log_date, comment)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	var id int64
	if err := r.db.QueryRowContext(ctx, query, userID, date, comment).Scan(&id); err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: %s", common.ErrorNoUserID, userID)
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) ListByDate(ctx context.Context, userID, date string) ([]models.LogComment, error) {
	query := `
		SELECT id, user_id, log_date, comment, created_at FROM log_comments
		WHERE user_id = $1 AND log_date = $2
		ORDER BY id
	`
	return r.list(ctx, query, userID, date)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.LogComment, error) {
	query := `
		SELECT id, user_id, log_date, comment, created_at FROM log_comments
		WHERE user_id = $1
		ORDER BY id
	`
	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]models.LogComment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select log comments: %w", err)
	}
	defer rows.Close()

	result := make([]models.LogComment, 0)
	for rows.Next() {
		var item models.LogComment
		if err := rows.Scan(&item.ID, &item.UserID, &item.Date, &item.Comment, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
