package refresh

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/store/client"
)

const dateLayout = "2006-01-02"

type RunnerConfig struct {
	Interval     time.Duration
	LookbackDays int
	// Now supplies the current business day for targets without a date.
	Now func() time.Time
}

func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Interval:     5 * time.Minute,
		LookbackDays: 7,
		Now:          time.Now,
	}
}

func (c RunnerConfig) date(t Target) string {
	if t.Date != "" {
		return t.Date
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return now().Format(dateLayout)
}

func (c RunnerConfig) request(t Target) client.Request {
	return client.Request{Store: t.Store, Date: c.date(t), LookbackDays: c.LookbackDays}
}

// Runner polls one store until its context is cancelled.
type Runner struct {
	target  Target
	fetcher client.Fetcher
	sink    Sink
	config  RunnerConfig
	done    chan struct{}
}

func NewRunner(target Target, fetcher client.Fetcher, sink Sink, config RunnerConfig) *Runner {
	if config.Interval <= 0 {
		config.Interval = DefaultRunnerConfig().Interval
	}
	return &Runner{
		target:  target,
		fetcher: fetcher,
		sink:    sink,
		config:  config,
		done:    make(chan struct{}),
	}
}

func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Run fetches immediately, then once per Interval.
func (r *Runner) Run(ctx context.Context) {
	logger := zerolog.Ctx(ctx).With().Str("store", r.target.Store).Logger()
	ctx = logger.WithContext(ctx)
	defer close(r.done)

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	logger.Info().Dur("interval", r.config.Interval).Msg("refresh started")
	for {
		r.tick(ctx)

		select {
		case <-ctx.Done():
			logger.Info().Msg("refresh stopped")
			return
		case <-ticker.C:
		}
	}
}

func (r *Runner) tick(ctx context.Context) {
	logger := zerolog.Ctx(ctx)
	req := r.config.request(r.target)

	snap, err := fetchOnce(ctx, r.fetcher, r.sink, req)
	if err != nil {
		if ctx.Err() == nil {
			logger.Error().Err(err).Str("date", req.Date).Msg("refresh failed")
		}
		return
	}
	if snap.State == domain.StateFailed {
		logger.Warn().Str("date", req.Date).Str("reason", snap.Reason).Msg("analysis failed after refresh")
		return
	}
	logger.Debug().Str("date", req.Date).Uint64("sequence", snap.Sequence).Msg("refresh published")
}
