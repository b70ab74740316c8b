package client

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/worklog/internal/api"
	"github.com/dmitrijs2005/worklog/internal/client/session"
	"github.com/dmitrijs2005/worklog/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	conn      *grpc.ClientConn
	api       *api.WorklogClient
	session   *session.Session
	timeout   time.Duration
	refreshMu sync.Mutex
	now       func() time.Time
}

// New dials addr. Extra dial options are appended after the defaults.
func New(addr string, sess *session.Session, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{session: sess, timeout: timeout, now: time.Now}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(addr, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.api = api.NewWorklogClient(conn)
	return c, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (c *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if api.PublicMethods[method] {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	st := c.session.Current()
	if !st.SignedIn() {
		return ErrNotSignedIn
	}

	if !st.AccessExpiresAt.IsZero() && !c.now().Before(st.AccessExpiresAt) {
		if refreshed, err := c.refresh(ctx, st.AccessToken); err == nil {
			st = refreshed
		}
	}

	err := invoker(withAccessToken(ctx, st.AccessToken), method, req, reply, cc, opts...)
	if status.Code(err) != codes.Unauthenticated || status.Convert(err).Message() != common.ErrTokenExpired.Error() {
		return err
	}

	refreshed, rerr := c.refresh(ctx, st.AccessToken)
	if rerr != nil {
		return rerr
	}
	return invoker(withAccessToken(ctx, refreshed.AccessToken), method, req, reply, cc, opts...)
}

// refresh rotates the token pair unless another call already replaced
// stale.
func (c *GRPCClient) refresh(ctx context.Context, stale string) (session.State, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	st := c.session.Current()
	if st.AccessToken != stale {
		return st, nil
	}
	if st.RefreshToken == "" {
		return st, ErrNotSignedIn
	}

	resp, err := c.api.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: st.RefreshToken})
	if err != nil {
		if status.Code(err) == codes.Unauthenticated {
			_ = c.session.Clear(ctx)
		}
		return st, err
	}

	st.AccessToken = resp.AccessToken
	st.AccessExpiresAt = resp.AccessExpiresAt
	st.RefreshToken = resp.RefreshToken
	if err := c.session.Set(ctx, st); err != nil {
		return st, err
	}
	return st, nil
}

func (c *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

func (c *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (c *GRPCClient) Register(ctx context.Context, email, password, name, phone string) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.Register(ctx, &api.RegisterRequest{Email: email, Password: password, Name: name, Phone: phone})
	if err != nil {
		return "", mapError(err)
	}
	return resp.UserID, nil
}

// Login authenticates and stores the token pair in the session.
func (c *GRPCClient) Login(ctx context.Context, email, password string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.Login(ctx, &api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return mapError(err)
	}
	return c.session.Set(ctx, session.State{
		Email:           strings.ToLower(strings.TrimSpace(email)),
		AccessToken:     resp.AccessToken,
		AccessExpiresAt: resp.AccessExpiresAt,
		RefreshToken:    resp.RefreshToken,
	})
}

// Logout revokes the refresh token on the server and always clears the
// local session.
func (c *GRPCClient) Logout(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	st := c.session.Current()
	var rpcErr error
	if st.RefreshToken != "" {
		if _, err := c.api.Logout(ctx, &api.LogoutRequest{RefreshToken: st.RefreshToken}); err != nil {
			rpcErr = mapError(err)
		}
	}
	if err := c.session.Clear(ctx); err != nil {
		return err
	}
	return rpcErr
}

func (c *GRPCClient) Profile(ctx context.Context) (*api.User, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.Profile(ctx, &api.ProfileRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.User, nil
}

func (c *GRPCClient) CreateTask(ctx context.Context, title, description string) (*api.Task, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.CreateTask(ctx, &api.CreateTaskRequest{Title: title, Description: description})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Task, nil
}

func (c *GRPCClient) ListTasks(ctx context.Context) ([]api.Task, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.ListTasks(ctx, &api.ListTasksRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Tasks, nil
}

func (c *GRPCClient) ToggleTask(ctx context.Context, taskID string) (*api.Task, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.ToggleTask(ctx, &api.ToggleTaskRequest{TaskID: taskID})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Task, nil
}

func (c *GRPCClient) CountTasks(ctx context.Context) (*api.CountTasksResponse, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.CountTasks(ctx, &api.CountTasksRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *GRPCClient) AppendLog(ctx context.Context, date, comment string) (*api.LogRecord, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.AppendLog(ctx, &api.AppendLogRequest{Date: date, Comment: comment})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Record, nil
}

func (c *GRPCClient) ListLogs(ctx context.Context) ([]api.MonthGroup, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.ListLogs(ctx, &api.ListLogsRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Months, nil
}

func (c *GRPCClient) ExportLogs(ctx context.Context) (*api.ExportLogsResponse, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.ExportLogs(ctx, &api.ExportLogsRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *GRPCClient) ListActivities(ctx context.Context, limit int) ([]api.Activity, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.ListActivities(ctx, &api.ListActivitiesRequest{Limit: limit})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Activities, nil
}
