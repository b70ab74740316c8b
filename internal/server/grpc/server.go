// Package grpc exposes the worklog services over gRPC. Messages are JSON
// encoded; see package api for the wire contract.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/worklog/internal/api"
	"github.com/dmitrijs2005/worklog/internal/logging"
	"github.com/dmitrijs2005/worklog/internal/server/models"
	"github.com/dmitrijs2005/worklog/internal/server/services"
	"github.com/dmitrijs2005/worklog/internal/server/worklog"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
)

type UserService interface {
	Register(ctx context.Context, email, password, name, phone string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
}

type TaskService interface {
	Create(ctx context.Context, userID, title, description string) (*models.Task, error)
	List(ctx context.Context, userID string) ([]*models.Task, error)
	Toggle(ctx context.Context, userID, taskID string) (*models.Task, error)
	Count(ctx context.Context, userID string) models.TaskCounts
}

type LogService interface {
	Append(ctx context.Context, userID, date, comment string) (*models.LogRecord, error)
	ListGrouped(ctx context.Context, userID string) worklog.Grouped
}

type ExportService interface {
	Export(ctx context.Context, userID string) (*models.LogExport, error)
}

type ActivityService interface {
	List(ctx context.Context, userID string, limit int) []*models.ActivityEvent
}

// TokenVerifier resolves an access token to a user id.
type TokenVerifier interface {
	UserID(token string) (string, error)
}

// Services groups the business layer the handlers delegate to.
type Services struct {
	Users      UserService
	Tasks      TaskService
	Logs       LogService
	Exports    ExportService
	Activities ActivityService
}

// Options tune the transport. A nil Metrics gets a private registry.
type Options struct {
	Address       string
	Metrics       *Metrics
	AuthRateLimit rate.Limit
	AuthRateBurst int
}

type GRPCServer struct {
	address  string
	svc      Services
	verifier TokenVerifier
	metrics  *Metrics
	limiter  *authLimiter
	logger   logging.Logger
}

func NewGRPCServer(opts Options, l logging.Logger, svc Services, verifier TokenVerifier) (*GRPCServer, error) {
	m := opts.Metrics
	if m == nil {
		m = NewMetrics(prometheus.NewRegistry())
	}
	limit := opts.AuthRateLimit
	if limit <= 0 {
		limit = rate.Inf
	}
	return &GRPCServer{
		address:  opts.Address,
		svc:      svc,
		verifier: verifier,
		metrics:  m,
		limiter:  newAuthLimiter(limit, opts.AuthRateBurst, api.FullMethod(api.MethodRegister), api.FullMethod(api.MethodLogin)),
		logger:   l.With("module", "grpc_server"),
	}, nil
}

// newServer builds a grpc.Server with the interceptor chain and the
// service registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.ForceServerCodec(api.Codec{}),
		grpc.ChainUnaryInterceptor(
			s.metrics.unaryInterceptor,
			s.limiter.unaryInterceptor,
			s.accessTokenInterceptor,
			s.validationInterceptor,
		),
	)
	api.RegisterWorklogServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
