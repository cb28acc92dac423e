// Package scheduler drives periodic next-day pre-transaction generation.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/parkline/internal/clock"
	obsmetrics "github.com/smallbiznis/parkline/internal/observability/metrics"
	pretransactiondomain "github.com/smallbiznis/parkline/internal/pretransaction/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const jobNextDayPreTransactions = "next_day_pretransactions"

var ErrInvalidConfig = errors.New("scheduler requires log, clock and pretransaction service")

type Params struct {
	fx.In

	Log               *zap.Logger
	Clock             clock.Clock
	PreTransactionSvc pretransactiondomain.Service
	Config            Config `optional:"true"`
}

type Scheduler struct {
	log               *zap.Logger
	cfg               Config
	clock             clock.Clock
	preTransactionSvc pretransactiondomain.Service
}

func New(p Params) (*Scheduler, error) {
	if p.Log == nil || p.Clock == nil || p.PreTransactionSvc == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		log:               p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		cfg:               p.Config.withDefaults(),
		clock:             p.Clock,
		preTransactionSvc: p.PreTransactionSvc,
	}, nil
}

// RunOnce executes one generation pass anchored on the current instant.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	return s.runJob(ctx, jobNextDayPreTransactions, s.cfg.JobTimeout, func(ctx context.Context) error {
		resp, err := s.preTransactionSvc.Generate(ctx, pretransactiondomain.GenerateRequest{
			Reference: s.clock.Now(),
		})
		if err != nil {
			return err
		}
		obsmetrics.Scheduler().AddGenerated(len(resp.Records))
		return nil
	})
}

// RunForever runs generation on the configured interval until ctx is done.
func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("scheduler run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) runJob(parent context.Context, name string, timeout time.Duration, fn func(ctx context.Context) error) error {
	start := s.clock.Now()
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	log := s.log.With(zap.String("job", name))
	schedMetrics := obsmetrics.Scheduler()
	schedMetrics.IncJobRun(name)

	err := fn(ctx)
	schedMetrics.ObserveJobDuration(name, s.clock.Now().Sub(start))
	if err != nil {
		schedMetrics.IncJobError(name)
		log.Warn("job failed", zap.Error(err))
		return err
	}

	log.Info("job completed", zap.Duration("took", s.clock.Now().Sub(start)))
	return nil
}
