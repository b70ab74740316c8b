package grpc

import (
	"context"

	"github.com/dmitrijs2005/worklog/internal/api"
	"github.com/dmitrijs2005/worklog/internal/server/models"
	"github.com/dmitrijs2005/worklog/internal/server/services"
	"github.com/dmitrijs2005/worklog/internal/server/worklog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var _ api.WorklogServer = (*GRPCServer)(nil)

// fail logs unexpected failures and converts err to a status.
func (s *GRPCServer) fail(ctx context.Context, op string, err error) error {
	st := mapError(err)
	if status.Code(st) == codes.Internal {
		s.logger.Error(ctx, op+" failed", "error", err)
	}
	return st
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {
	s.logger.Info(ctx, "Registration request")

	user, err := s.svc.Users.Register(ctx, req.Email, req.Password, req.Name, req.Phone)
	if err != nil {
		return nil, s.fail(ctx, "register", err)
	}

	s.logger.Info(ctx, "Registered", "user_id", user.ID)
	return &api.RegisterResponse{UserID: user.ID}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.TokenResponse, error) {
	tokens, err := s.svc.Users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.fail(ctx, "login", err)
	}
	return toTokenResponse(tokens), nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.TokenResponse, error) {
	tokens, err := s.svc.Users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.fail(ctx, "refresh token", err)
	}
	return toTokenResponse(tokens), nil
}

func (s *GRPCServer) Logout(ctx context.Context, req *api.LogoutRequest) (*api.LogoutResponse, error) {
	if err := s.svc.Users.Logout(ctx, req.RefreshToken); err != nil {
		return nil, s.fail(ctx, "logout", err)
	}
	return &api.LogoutResponse{}, nil
}

func (s *GRPCServer) Profile(ctx context.Context, req *api.ProfileRequest) (*api.ProfileResponse, error) {
	user, err := s.svc.Users.Profile(ctx, UserIDFromContext(ctx))
	if err != nil {
		return nil, s.fail(ctx, "profile", err)
	}
	return &api.ProfileResponse{User: toAPIUser(user)}, nil
}

func (s *GRPCServer) CreateTask(ctx context.Context, req *api.CreateTaskRequest) (*api.TaskResponse, error) {
	task, err := s.svc.Tasks.Create(ctx, UserIDFromContext(ctx), req.Title, req.Description)
	if err != nil {
		return nil, s.fail(ctx, "create task", err)
	}
	return &api.TaskResponse{Task: toAPITask(task)}, nil
}

func (s *GRPCServer) ListTasks(ctx context.Context, req *api.ListTasksRequest) (*api.ListTasksResponse, error) {
	tasks, err := s.svc.Tasks.List(ctx, UserIDFromContext(ctx))
	if err != nil {
		return nil, s.fail(ctx, "list tasks", err)
	}
	out := make([]api.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toAPITask(t))
	}
	return &api.ListTasksResponse{Tasks: out}, nil
}

func (s *GRPCServer) ToggleTask(ctx context.Context, req *api.ToggleTaskRequest) (*api.TaskResponse, error) {
	task, err := s.svc.Tasks.Toggle(ctx, UserIDFromContext(ctx), req.TaskID)
	if err != nil {
		return nil, s.fail(ctx, "toggle task", err)
	}
	return &api.TaskResponse{Task: toAPITask(task)}, nil
}

func (s *GRPCServer) CountTasks(ctx context.Context, req *api.CountTasksRequest) (*api.CountTasksResponse, error) {
	c := s.svc.Tasks.Count(ctx, UserIDFromContext(ctx))
	return &api.CountTasksResponse{Total: c.Total, Pending: c.Pending, Completed: c.Completed}, nil
}

func (s *GRPCServer) AppendLog(ctx context.Context, req *api.AppendLogRequest) (*api.AppendLogResponse, error) {
	rec, err := s.svc.Logs.Append(ctx, UserIDFromContext(ctx), req.Date, req.Comment)
	if err != nil {
		return nil, s.fail(ctx, "append log", err)
	}
	return &api.AppendLogResponse{Record: toAPIRecord(*rec)}, nil
}

func (s *GRPCServer) ListLogs(ctx context.Context, req *api.ListLogsRequest) (*api.ListLogsResponse, error) {
	return &api.ListLogsResponse{Months: toAPIMonths(s.svc.Logs.ListGrouped(ctx, UserIDFromContext(ctx)))}, nil
}

func (s *GRPCServer) ExportLogs(ctx context.Context, req *api.ExportLogsRequest) (*api.ExportLogsResponse, error) {
	exp, err := s.svc.Exports.Export(ctx, UserIDFromContext(ctx))
	if err != nil {
		return nil, s.fail(ctx, "export logs", err)
	}
	return &api.ExportLogsResponse{Key: exp.Key, URL: exp.URL, ExpiresAt: exp.ExpiresAt, Size: exp.Size}, nil
}

func (s *GRPCServer) ListActivities(ctx context.Context, req *api.ListActivitiesRequest) (*api.ListActivitiesResponse, error) {
	events := s.svc.Activities.List(ctx, UserIDFromContext(ctx), req.Limit)
	out := make([]api.Activity, 0, len(events))
	for _, e := range events {
		out = append(out, api.Activity{
			ID:        e.ID,
			Activity:  e.Activity,
			Type:      e.Type,
			Category:  e.Type.Category(),
			CreatedAt: e.CreatedAt,
		})
	}
	return &api.ListActivitiesResponse{Activities: out}, nil
}

func toTokenResponse(p *services.TokenPair) *api.TokenResponse {
	return &api.TokenResponse{
		AccessToken:     p.AccessToken,
		AccessExpiresAt: p.AccessExpiresAt,
		RefreshToken:    p.RefreshToken,
	}
}

func toAPIUser(u *models.User) api.User {
	return api.User{ID: u.ID, Email: u.Email, Name: u.Name, Phone: u.Phone, CreatedAt: u.CreatedAt}
}

func toAPITask(t *models.Task) api.Task {
	return api.Task{ID: t.ID, Title: t.Title, Description: t.Description, Status: t.Status, CreatedAt: t.CreatedAt}
}

func toAPIRecord(r models.LogRecord) api.LogRecord {
	comments := r.Comments
	if comments == nil {
		comments = []string{}
	}
	return api.LogRecord{Date: r.Date, Comments: comments}
}

func toAPIMonths(g worklog.Grouped) []api.MonthGroup {
	out := make([]api.MonthGroup, 0, len(g))
	for _, m := range g {
		recs := make([]api.LogRecord, 0, len(m.Records))
		for _, r := range m.Records {
			recs = append(recs, toAPIRecord(r))
		}
		out = append(out, api.MonthGroup{Month: m.Month, Records: recs})
	}
	return out
}
