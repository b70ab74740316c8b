package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/worklog/internal/activity"
	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/dmitrijs2005/worklog/internal/logging"
	"github.com/dmitrijs2005/worklog/internal/server/models"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/worklog/internal/server/worklog"
)

// Renderer turns grouped logs into a document.
type Renderer interface {
	Render(owner string, generated time.Time, groups worklog.Grouped) ([]byte, error)
}

// ObjectStore keeps rendered documents and links to them.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type ExportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logs        *LogService
	renderer    Renderer
	store       ObjectStore
	contentType string
	linkTTL     time.Duration
	log         logging.Logger
	now         func() time.Time
}

func NewExportService(db *sql.DB, m repomanager.RepositoryManager, logs *LogService, renderer Renderer,
	store ObjectStore, contentType string, linkTTL time.Duration, log logging.Logger) *ExportService {
	return &ExportService{
		db:          db,
		repomanager: m,
		logs:        logs,
		renderer:    renderer,
		store:       store,
		contentType: contentType,
		linkTTL:     linkTTL,
		log:         log.With("module", "export"),
		now:         time.Now,
	}
}

// storageKey places exports under exports/<user>/<yyyy>/<mm>/<uuid>.pdf.
func storageKey(userID string, at time.Time) string {
	at = at.UTC()
	return fmt.Sprintf("exports/%s/%04d/%02d/%s.pdf", userID, at.Year(), int(at.Month()), uuid.New())
}

// Export renders all of the user's logs, uploads the document and returns a
// presigned download link. A user with no logs gets a validation error.
func (s *ExportService) Export(ctx context.Context, userID string) (*models.LogExport, error) {
	if userID == "" {
		return nil, common.ErrorNoUserID
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	groups, err := s.logs.grouped(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading logs: %w", err)
	}
	if groups.Count() == 0 {
		return nil, common.NewValidationError("there are no logs to export")
	}

	now := s.now()
	owner := user.Email
	if user.Name != "" {
		owner = user.Name + " <" + user.Email + ">"
	}
	doc, err := s.renderer.Render(owner, now, groups)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	key := storageKey(userID, now)
	if err := s.store.Put(ctx, key, doc, s.contentType); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorRemote, err)
	}
	url, err := s.store.PresignGet(ctx, key, s.linkTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorRemote, err)
	}

	if err := recordActivity(ctx, s.repomanager.Activities(s.db), userID, activity.ExportLogs, activityExported); err != nil {
		s.log.Warn(ctx, "error recording export activity", "user_id", userID, "error", err)
	}

	s.log.Info(ctx, "logs exported", "user_id", userID, "key", key, "bytes", len(doc))
	return &models.LogExport{
		Key:       key,
		URL:       url,
		ExpiresAt: now.Add(s.linkTTL),
		Size:      len(doc),
	}, nil
}
