package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/worklog/internal/activity"
	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/dmitrijs2005/worklog/internal/dbx"
	"github.com/dmitrijs2005/worklog/internal/logging"
	"github.com/dmitrijs2005/worklog/internal/server/models"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/repomanager"
)

type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *TaskService {
	return &TaskService{
		db:          db,
		repomanager: m,
		log:         log.With("module", "tasks"),
	}
}

// Create stores a pending task and records an add-task activity in the same
// transaction. Title and description are both required.
func (s *TaskService) Create(ctx context.Context, userID, title, description string) (*models.Task, error) {
	if userID == "" {
		return nil, common.ErrorNoUserID
	}
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return nil, common.NewValidationError("task title and description are required")
	}

	task := &models.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: description,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Tasks(tx).Create(ctx, task); err != nil {
			return err
		}
		return recordActivity(ctx, s.repomanager.Activities(tx), userID, activity.AddTask, activityAddedTask+task.ID)
	})
	if errors.Is(err, common.ErrorNoUserID) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: error creating task: %v", common.ErrorRemote, err)
	}
	return task, nil
}

// List returns the user's tasks, newest first.
func (s *TaskService) List(ctx context.Context, userID string) ([]*models.Task, error) {
	if userID == "" {
		return nil, common.ErrorNoUserID
	}
	tasks, err := s.repomanager.Tasks(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	return tasks, nil
}

// Toggle flips a task between pending and completed and records a
// list-status activity.
func (s *TaskService) Toggle(ctx context.Context, userID, taskID string) (*models.Task, error) {
	if userID == "" {
		return nil, common.ErrorNoUserID
	}
	if _, err := uuid.Parse(taskID); err != nil {
		return nil, common.ErrorNotFound
	}

	var task *models.Task
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		task, err = s.repomanager.Tasks(tx).Toggle(ctx, userID, taskID)
		if err != nil {
			return err
		}
		return recordActivity(ctx, s.repomanager.Activities(tx), userID, activity.ListStatus, activityToggledTask+taskID)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Count returns the user's task counters. The two aggregate queries run
// concurrently. Any failure is logged and reported as all zeros.
func (s *TaskService) Count(ctx context.Context, userID string) models.TaskCounts {
	if userID == "" {
		return models.TaskCounts{}
	}

	repo := s.repomanager.Tasks(s.db)
	var total, completed int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = repo.CountAll(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		completed, err = repo.CountCompleted(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error(ctx, "error counting tasks", "user_id", userID, "error", err)
		return models.TaskCounts{}
	}

	return models.TaskCounts{
		Total:     total,
		Pending:   total - completed,
		Completed: completed,
	}
}
