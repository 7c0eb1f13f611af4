// Package engine holds the current analysis snapshot and moves it through the
// idle, loading, succeeded and failed states as envelopes, failure signals and
// configuration changes arrive.
package engine

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/services/analysis"
)

// weightTolerance is how far the grade weights may drift from 1 before a
// warning is logged.
const weightTolerance = 1e-6

// Listener is called with every snapshot the engine publishes, in order.
// Listeners run after the engine's state lock is released, so they may call
// Current and Config. They must not call OnChange or any writer (Accept,
// Fail, UpdateConfig, Reprocess), which would wait on the delivery in
// progress.
type Listener func(ctx context.Context, s domain.Snapshot)

// Recorder receives every published snapshot together with the time it took
// to produce.
type Recorder interface {
	ObserveAnalysis(s domain.Snapshot, took time.Duration)
}

type Engine interface {
	Accept(ctx context.Context, env *domain.RawResponseEnvelope) domain.Snapshot
	Fail(ctx context.Context, reason string) domain.Snapshot
	UpdateConfig(ctx context.Context, cfg domain.AnalysisConfig) domain.Snapshot
	Reprocess(ctx context.Context) (domain.Snapshot, error)
	Config() domain.AnalysisConfig
	Current() domain.Snapshot
	OnChange(l Listener)
}

// DefaultEngine serializes writers with a mutex and publishes immutable
// snapshots through an atomic pointer, so readers never block.
type DefaultEngine struct {
	recorder Recorder
	logger   *zerolog.Logger

	mu        sync.Mutex
	cfg       domain.AnalysisConfig
	envelope  *domain.RawResponseEnvelope
	sequence  uint64
	listeners []Listener
	pending   []domain.Snapshot

	// notifyMu is taken before mu is released so listeners see snapshots
	// in publication order.
	notifyMu sync.Mutex

	current atomic.Pointer[domain.Snapshot]
	config  atomic.Pointer[domain.AnalysisConfig]
}

type Option func(*DefaultEngine)

func WithRecorder(r Recorder) Option {
	return func(e *DefaultEngine) {
		e.recorder = r
	}
}

// WithLogger sets the logger used for warnings raised while constructing the
// engine. Later operations log through the context they receive.
func WithLogger(l zerolog.Logger) Option {
	return func(e *DefaultEngine) {
		e.logger = &l
	}
}

func NewEngine(cfg domain.AnalysisConfig, opts ...Option) *DefaultEngine {
	e := &DefaultEngine{}
	for _, opt := range opts {
		opt(e)
	}
	e.current.Store(&domain.Snapshot{State: domain.StateIdle})
	e.setConfig(cfg)

	ctx := context.Background()
	if e.logger != nil {
		ctx = e.logger.WithContext(ctx)
	}
	e.checkWeights(ctx)
	return e
}

// Current returns the latest snapshot. It is safe to call from any goroutine.
func (e *DefaultEngine) Current() domain.Snapshot {
	return *e.current.Load()
}

// Config returns a copy of the active configuration without taking the
// state lock.
func (e *DefaultEngine) Config() domain.AnalysisConfig {
	return e.config.Load().Clone()
}

// setConfig must be called with mu held, or before the engine is shared.
func (e *DefaultEngine) setConfig(cfg domain.AnalysisConfig) {
	e.cfg = cfg.Clone()
	view := e.cfg.Clone()
	e.config.Store(&view)
}

func (e *DefaultEngine) OnChange(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, l)
}

// Accept replaces the held envelope and analyzes it. A nil envelope fails.
func (e *DefaultEngine) Accept(ctx context.Context, env *domain.RawResponseEnvelope) domain.Snapshot {
	e.mu.Lock()
	defer e.notify(ctx)

	e.envelope = env
	return e.process(ctx)
}

// Fail records a collaborator failure. The failed snapshot carries the reason
// and no data. The held envelope is dropped so a later Reprocess cannot
// resurrect stale results.
func (e *DefaultEngine) Fail(ctx context.Context, reason string) domain.Snapshot {
	e.mu.Lock()
	defer e.notify(ctx)

	e.envelope = nil
	zerolog.Ctx(ctx).Warn().Str("reason", reason).Msg("analysis failed upstream")
	return e.publish(ctx, domain.Snapshot{State: domain.StateFailed, Reason: reason}, 0)
}

// UpdateConfig replaces the configuration and reprocesses the held envelope.
// Without an envelope only the configuration changes and the current
// snapshot is returned unchanged.
func (e *DefaultEngine) UpdateConfig(ctx context.Context, cfg domain.AnalysisConfig) domain.Snapshot {
	e.mu.Lock()
	defer e.notify(ctx)

	e.setConfig(cfg)
	e.checkWeights(ctx)
	if e.envelope == nil {
		return *e.current.Load()
	}
	return e.process(ctx)
}

// Reprocess analyzes the held envelope again with the current configuration.
func (e *DefaultEngine) Reprocess(ctx context.Context) (domain.Snapshot, error) {
	e.mu.Lock()
	defer e.notify(ctx)

	if e.envelope == nil {
		return *e.current.Load(), domain.ErrNoEnvelope
	}
	return e.process(ctx), nil
}

// process must be called with mu held.
func (e *DefaultEngine) process(ctx context.Context) domain.Snapshot {
	logger := zerolog.Ctx(ctx).With().
		Str("store", e.envelopeStore()).
		Str("date", e.envelopeDate()).
		Logger()

	e.publish(ctx, domain.Snapshot{State: domain.StateLoading}, 0)

	start := time.Now()
	res, err := analysis.Analyze(e.envelope, e.cfg.Clone())
	took := time.Since(start)

	if err != nil {
		logger.Error().Err(err).Msg("envelope analysis failed")
		return e.publish(ctx, domain.Snapshot{State: domain.StateFailed, Reason: err.Error()}, took)
	}

	for _, st := range analysis.DomainErrors(res) {
		logger.Warn().
			Str("domain", st.Domain.String()).
			Str("reason", st.Reason).
			Msg("domain could not be processed")
	}
	logger.Info().
		Int("alerts", len(res.Alerts)).
		Dur("took", took).
		Msg("envelope analyzed")

	return e.publish(ctx, domain.Snapshot{State: domain.StateSucceeded, Result: res}, took)
}

// publish must be called with mu held.
func (e *DefaultEngine) publish(ctx context.Context, s domain.Snapshot, took time.Duration) domain.Snapshot {
	e.sequence++
	s.Sequence = e.sequence
	e.current.Store(&s)

	zerolog.Ctx(ctx).Debug().
		Uint64("sequence", s.Sequence).
		Str("state", s.State.String()).
		Msg("snapshot published")

	if e.recorder != nil && s.State != domain.StateLoading {
		e.recorder.ObserveAnalysis(s, took)
	}
	e.pending = append(e.pending, s)
	return s
}

// notify releases mu and delivers the snapshots published while it was held.
func (e *DefaultEngine) notify(ctx context.Context) {
	pending, listeners := e.pending, e.listeners
	e.pending = nil

	e.notifyMu.Lock()
	defer e.notifyMu.Unlock()
	e.mu.Unlock()

	for _, s := range pending {
		for _, l := range listeners {
			l(ctx, s)
		}
	}
}

func (e *DefaultEngine) checkWeights(ctx context.Context) {
	if sum := e.cfg.Weights.Sum(); math.Abs(sum-1) > weightTolerance {
		zerolog.Ctx(ctx).Warn().
			Float64("sum", sum).
			Msg("grade weights do not sum to 1, composite grades may be misleading")
	}
}

func (e *DefaultEngine) envelopeStore() string {
	if e.envelope == nil {
		return ""
	}
	return e.envelope.Filtering.Store
}

func (e *DefaultEngine) envelopeDate() string {
	if e.envelope == nil {
		return ""
	}
	return e.envelope.Filtering.Date
}
