package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/worklog/internal/dbx"
	"github.com/dmitrijs2005/worklog/internal/server/models"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/activities"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/logs"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

// --- users ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error

	created *models.User
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.created = u
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = "new-user"
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

// --- refresh tokens ---

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	delErr    error
	deleted   []string
	createErr error
	created   []string
	createdAt []time.Time

	sweepN   int64
	sweepErr error
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, expiresAt time.Time) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, token)
	f.createdAt = append(f.createdAt, expiresAt)
	return nil
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, token)
	return nil
}

func (f *fakeRefreshRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return f.sweepN, f.sweepErr
}

// --- tasks ---

type fakeTasksRepo struct {
	mu sync.Mutex

	createErr error
	created   []*models.Task

	listOut []*models.Task
	listErr error

	toggleOut *models.Task
	toggleErr error

	total, completed       int64
	totalErr, completedErr error
	countCalls             int
}

func (f *fakeTasksRepo) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, task)
	return task, nil
}

func (f *fakeTasksRepo) ListByUser(ctx context.Context, userID string) ([]*models.Task, error) {
	return f.listOut, f.listErr
}

func (f *fakeTasksRepo) Toggle(ctx context.Context, userID, taskID string) (*models.Task, error) {
	if f.toggleErr != nil {
		return nil, f.toggleErr
	}
	return f.toggleOut, nil
}

func (f *fakeTasksRepo) CountAll(ctx context.Context, userID string) (int64, error) {
	f.mu.Lock()
	f.countCalls++
	f.mu.Unlock()
	return f.total, f.totalErr
}

func (f *fakeTasksRepo) CountCompleted(ctx context.Context, userID string) (int64, error) {
	f.mu.Lock()
	f.countCalls++
	f.mu.Unlock()
	return f.completed, f.completedErr
}

// --- logs ---

// fakeLogsRepo keeps rows in memory the way the append-only table does.
type fakeLogsRepo struct {
	mu      sync.Mutex
	rows    []models.LogComment
	nextID  int64
	failAdd error
	failGet error
}

func (f *fakeLogsRepo) Append(ctx context.Context, userID, date, comment string) (int64, error) {
	if f.failAdd != nil {
		return 0, f.failAdd
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.rows = append(f.rows, models.LogComment{ID: f.nextID, UserID: userID, Date: date, Comment: comment})
	return f.nextID, nil
}

func (f *fakeLogsRepo) ListByDate(ctx context.Context, userID, date string) ([]models.LogComment, error) {
	if f.failGet != nil {
		return nil, f.failGet
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.LogComment, 0)
	for _, r := range f.rows {
		if r.UserID == userID && r.Date == date {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeLogsRepo) ListByUser(ctx context.Context, userID string) ([]models.LogComment, error) {
	if f.failGet != nil {
		return nil, f.failGet
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.LogComment, 0)
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

// --- activities ---

type fakeActivitiesRepo struct {
	mu        sync.Mutex
	createErr error
	events    []*models.ActivityEvent

	listOut []*models.ActivityEvent
	listErr error
}

func (f *fakeActivitiesRepo) Create(ctx context.Context, ev *models.ActivityEvent) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeActivitiesRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*models.ActivityEvent, error) {
	return f.listOut, f.listErr
}

// --- manager ---

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
	t *fakeTasksRepo
	l *fakeLogsRepo
	a *fakeActivitiesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u: &fakeUsersRepo{},
		r: &fakeRefreshRepo{},
		t: &fakeTasksRepo{},
		l: &fakeLogsRepo{},
		a: &fakeActivitiesRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error       { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository { return m.r }
func (m *fakeRepoManager) Tasks(db dbx.DBTX) tasks.Repository                 { return m.t }
func (m *fakeRepoManager) Logs(db dbx.DBTX) logs.Repository                   { return m.l }
func (m *fakeRepoManager) Activities(db dbx.DBTX) activities.Repository       { return m.a }
