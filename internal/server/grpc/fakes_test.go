package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/worklog/internal/activity"
	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/dmitrijs2005/worklog/internal/logging"
	"github.com/dmitrijs2005/worklog/internal/server/models"
	"github.com/dmitrijs2005/worklog/internal/server/services"
	"github.com/dmitrijs2005/worklog/internal/server/worklog"
)

type fakeUsers struct {
	registered *models.User
	regErr     error
	tokens     *services.TokenPair
	loginErr   error
	refreshErr error
	logoutErr  error
	profile    *models.User
	profileErr error

	gotEmail, gotPassword, gotRefresh, gotProfileID string
}

func (f *fakeUsers) Register(_ context.Context, email, password, _, _ string) (*models.User, error) {
	f.gotEmail, f.gotPassword = email, password
	return f.registered, f.regErr
}

func (f *fakeUsers) Login(_ context.Context, email, password string) (*services.TokenPair, error) {
	f.gotEmail, f.gotPassword = email, password
	return f.tokens, f.loginErr
}

func (f *fakeUsers) Logout(_ context.Context, refreshToken string) error {
	f.gotRefresh = refreshToken
	return f.logoutErr
}

func (f *fakeUsers) RefreshToken(_ context.Context, refreshToken string) (*services.TokenPair, error) {
	f.gotRefresh = refreshToken
	return f.tokens, f.refreshErr
}

func (f *fakeUsers) Profile(_ context.Context, userID string) (*models.User, error) {
	f.gotProfileID = userID
	if userID == "" {
		return nil, common.ErrorNoUserID
	}
	return f.profile, f.profileErr
}

type fakeTasks struct {
	tasks     []*models.Task
	createErr error
	toggleErr error
	counts    models.TaskCounts
	gotUser   string
}

func (f *fakeTasks) Create(_ context.Context, userID, title, description string) (*models.Task, error) {
	f.gotUser = userID
	if f.createErr != nil {
		return nil, f.createErr
	}
	t := &models.Task{ID: "t-1", UserID: userID, Title: title, Description: description, CreatedAt: time.Now()}
	f.tasks = append([]*models.Task{t}, f.tasks...)
	return t, nil
}

func (f *fakeTasks) List(_ context.Context, userID string) ([]*models.Task, error) {
	f.gotUser = userID
	return f.tasks, nil
}

func (f *fakeTasks) Toggle(_ context.Context, userID, taskID string) (*models.Task, error) {
	f.gotUser = userID
	if f.toggleErr != nil {
		return nil, f.toggleErr
	}
	for _, t := range f.tasks {
		if t.ID == taskID {
			t.Status = !t.Status
			return t, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeTasks) Count(_ context.Context, userID string) models.TaskCounts {
	f.gotUser = userID
	return f.counts
}

type fakeLogs struct {
	records []models.LogRecord
	err     error
}

func (f *fakeLogs) Append(_ context.Context, userID, date, comment string) (*models.LogRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.records {
		if f.records[i].Date == date {
			f.records[i].Comments = append(f.records[i].Comments, comment)
			rec := f.records[i]
			return &rec, nil
		}
	}
	f.records = append(f.records, models.LogRecord{Date: date, Comments: []string{comment}})
	rec := f.records[len(f.records)-1]
	return &rec, nil
}

func (f *fakeLogs) ListGrouped(ctx context.Context, userID string) worklog.Grouped {
	return worklog.GroupByMonth(ctx, logging.Nop{}, f.records)
}

type fakeExports struct {
	out *models.LogExport
	err error
}

func (f *fakeExports) Export(context.Context, string) (*models.LogExport, error) {
	return f.out, f.err
}

type fakeActivities struct {
	events   []*models.ActivityEvent
	gotLimit int
}

func (f *fakeActivities) List(_ context.Context, userID string, limit int) []*models.ActivityEvent {
	f.gotLimit = limit
	if userID == "" {
		return []*models.ActivityEvent{}
	}
	return f.events
}

type fakeVerifier map[string]string

func (f fakeVerifier) UserID(token string) (string, error) {
	if token == "expired" {
		return "", common.ErrTokenExpired
	}
	id, ok := f[token]
	if !ok {
		return "", common.ErrInvalidToken
	}
	return id, nil
}

type fixture struct {
	users      *fakeUsers
	tasks      *fakeTasks
	logs       *fakeLogs
	exports    *fakeExports
	activities *fakeActivities
	server     *GRPCServer
}

func newFixture(opts Options) *fixture {
	f := &fixture{
		users:      &fakeUsers{},
		tasks:      &fakeTasks{},
		logs:       &fakeLogs{},
		exports:    &fakeExports{},
		activities: &fakeActivities{events: []*models.ActivityEvent{{ID: "a1", Activity: "Logged in", Type: activity.Login}}},
	}
	srv, err := NewGRPCServer(opts, logging.Nop{}, Services{
		Users:      f.users,
		Tasks:      f.tasks,
		Logs:       f.logs,
		Exports:    f.exports,
		Activities: f.activities,
	}, fakeVerifier{"good": "user-1"})
	if err != nil {
		panic(err)
	}
	f.server = srv
	return f
}
