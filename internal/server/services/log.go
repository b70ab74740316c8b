package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/worklog/internal/activity"
	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/dmitrijs2005/worklog/internal/dbx"
	"github.com/dmitrijs2005/worklog/internal/logging"
	"github.com/dmitrijs2005/worklog/internal/server/models"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/worklog/internal/server/worklog"
)

type LogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	now         func() time.Time
}

func NewLogService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *LogService {
	return &LogService{
		db:          db,
		repomanager: m,
		log:         log.With("module", "logs"),
		now:         time.Now,
	}
}

// Append adds comment to the user's record for date and returns the updated
// record. An empty date means today (UTC).
//
// Every append is its own row, so concurrent appends to the same day all
// survive and keep insertion order. The comment, the add-log activity and the
// read-back share one transaction.
func (s *LogService) Append(ctx context.Context, userID, date, comment string) (*models.LogRecord, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, common.NewValidationError("comment cannot be empty")
	}
	if userID == "" {
		return nil, common.ErrorNoUserID
	}

	date = strings.TrimSpace(date)
	if date == "" {
		date = worklog.FormatDateKey(s.now().UTC())
	} else if _, err := worklog.ParseDateKey(date); err != nil {
		return nil, common.NewValidationError(fmt.Sprintf("date %q must be DD-MM-YYYY", date))
	}

	var record *models.LogRecord
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Logs(tx)
		if _, err := repo.Append(ctx, userID, date, comment); err != nil {
			return err
		}
		if err := recordActivity(ctx, s.repomanager.Activities(tx), userID, activity.AddLog, activityAddedLog+date); err != nil {
			return err
		}
		rows, err := repo.ListByDate(ctx, userID, date)
		if err != nil {
			return err
		}
		record = &models.LogRecord{Date: date, Comments: make([]string, 0, len(rows))}
		for _, row := range rows {
			record.Comments = append(record.Comments, row.Comment)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorNoUserID) {
			return nil, err
		}
		s.log.Error(ctx, "error appending log", "user_id", userID, "date", date, "error", err)
		return nil, fmt.Errorf("%w: error appending log: %v", common.ErrorRemote, err)
	}

	s.log.Debug(ctx, "log appended", "user_id", userID, "date", date, "comments", len(record.Comments))
	return record, nil
}

// ListGrouped returns the user's records grouped by month, newest first.
// A missing user or a failed read yields an empty result.
func (s *LogService) ListGrouped(ctx context.Context, userID string) worklog.Grouped {
	if userID == "" {
		return worklog.Grouped{}
	}
	grouped, err := s.grouped(ctx, userID)
	if err != nil {
		s.log.Warn(ctx, "error fetching logs", "user_id", userID, "error", err)
		return worklog.Grouped{}
	}
	return grouped
}

func (s *LogService) grouped(ctx context.Context, userID string) (worklog.Grouped, error) {
	rows, err := s.repomanager.Logs(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return worklog.GroupByMonth(ctx, s.log, worklog.BuildRecords(rows)), nil
}
