// Package server wires configuration, storage, services and transports
// into a runnable worklog server and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/worklog/internal/logging"
	"github.com/dmitrijs2005/worklog/internal/server/config"
	"github.com/dmitrijs2005/worklog/internal/server/export"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/worklog/internal/server/scheduler"
	"github.com/dmitrijs2005/worklog/internal/server/services"
	"github.com/dmitrijs2005/worklog/internal/server/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"

	gs "github.com/dmitrijs2005/worklog/internal/server/grpc"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	users     *services.UserService
	grpc      *gs.GRPCServer
	metrics   *gs.Metrics
	scheduler *scheduler.Scheduler
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	store, err := storage.NewS3Store(ctx, storage.S3Config{
		Region:       c.S3Region,
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
		Bucket:       c.S3Bucket,
		BaseEndpoint: c.S3BaseEndpoint,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("object storage init error: %w", err)
	}

	us := services.NewUserService(db, rm, c, logger)
	logs := services.NewLogService(db, rm, logger)
	svc := gs.Services{
		Users:      us,
		Tasks:      services.NewTaskService(db, rm, logger),
		Logs:       logs,
		Exports:    services.NewExportService(db, rm, logs, export.NewPDFRenderer(), store, export.ContentType, c.ExportURLValidityDuration, logger),
		Activities: services.NewActivityService(db, rm, logger),
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := gs.NewMetrics(reg)

	srv, err := gs.NewGRPCServer(gs.Options{
		Address:       c.EndpointAddrGRPC,
		Metrics:       metrics,
		AuthRateLimit: rate.Limit(c.AuthRateLimit),
		AuthRateBurst: c.AuthRateBurst,
	}, logger, svc, us.Issuer())
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:    c,
		logger:    logger,
		db:        db,
		users:     us,
		grpc:      srv,
		metrics:   metrics,
		scheduler: scheduler.New(logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.grpc.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startMetricsServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if app.config.MetricsAddr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", app.metrics.Handler())
	srv := &http.Server{Addr: app.config.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting metrics server", "address", app.config.MetricsAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startScheduler(ctx context.Context) error {
	if _, err := app.scheduler.ScheduleTokenSweep(app.config.TokenSweepSchedule, app.users); err != nil {
		return fmt.Errorf("schedule token sweep: %w", err)
	}
	app.scheduler.Start()
	app.logger.Info(ctx, "Scheduler started", "token_sweep", app.config.TokenSweepSchedule)
	return nil
}

// Run blocks until the parent context is cancelled, a signal arrives, or
// one of the listeners fails.
func (app *App) Run(parent context.Context) error {
	ctx, cancelFunc := context.WithCancel(parent)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	if err := app.startScheduler(ctx); err != nil {
		return err
	}
	defer app.scheduler.Stop()

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startMetricsServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "Closing database")
	return app.db.Close()
}
