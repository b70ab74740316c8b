// Package scheduler runs the server's periodic maintenance jobs on cron.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dmitrijs2005/worklog/internal/logging"
)

// jobTimeout bounds a single run of any job.
const jobTimeout = 30 * time.Second

// TokenSweeper removes expired refresh tokens.
type TokenSweeper interface {
	SweepExpiredTokens(ctx context.Context) (int64, error)
}

// Scheduler wraps a UTC cron instance.
type Scheduler struct {
	cron *cron.Cron
	log  logging.Logger
}

func New(log logging.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
		log:  log.With("module", "scheduler"),
	}
}

// ScheduleTokenSweep runs sw on spec (standard five-field cron or
// descriptors such as "@every 10m").
func (s *Scheduler) ScheduleTokenSweep(spec string, sw TokenSweeper) (cron.EntryID, error) {
	return s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		n, err := sw.SweepExpiredTokens(ctx)
		if err != nil {
			s.log.Error(ctx, "refresh token sweep failed", "error", err)
			return
		}
		if n > 0 {
			s.log.Info(ctx, "expired refresh tokens removed", "count", n)
		}
	})
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
