// Package refresh keeps the engine fed by polling the upstream metrics API
// for each tracked store.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/store/client"
)

var ErrNotRunning = errors.New("refresh not running")

// Sink is the part of the engine a runner feeds.
type Sink interface {
	Accept(ctx context.Context, env *domain.RawResponseEnvelope) domain.Snapshot
	Fail(ctx context.Context, reason string) domain.Snapshot
}

// Target names the store to poll. An empty Date follows the current
// business day.
type Target struct {
	Store string
	Date  string
}

type Controller interface {
	Start(ctx context.Context, target Target) error
	Cancel(ctx context.Context, store string) error
	// Refresh fetches once and hands the result to the engine.
	Refresh(ctx context.Context, target Target) (domain.Snapshot, error)
}

type runnerDescriptor struct {
	cancelFunc context.CancelFunc
	runner     *Runner
}

type DefaultController struct {
	fetcher client.Fetcher
	sink    Sink
	config  RunnerConfig

	mu      sync.Mutex
	runners map[string]runnerDescriptor
}

func NewController(fetcher client.Fetcher, sink Sink, config RunnerConfig) *DefaultController {
	return &DefaultController{
		fetcher: fetcher,
		sink:    sink,
		config:  config,
		runners: make(map[string]runnerDescriptor),
	}
}

// Start begins polling target.Store. A store that is already polled is
// restarted with the new target.
func (ctrl *DefaultController) Start(ctx context.Context, target Target) error {
	if err := (client.Request{Store: target.Store, Date: ctrl.config.date(target)}).Validate(); err != nil {
		return err
	}

	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	_ = ctrl.cancelLocked(target.Store)

	// Runners outlive the request that started them.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	runner := NewRunner(target, ctrl.fetcher, ctrl.sink, ctrl.config)
	ctrl.runners[target.Store] = runnerDescriptor{
		cancelFunc: cancel,
		runner:     runner,
	}

	go runner.Run(runCtx)
	return nil
}

func (ctrl *DefaultController) Cancel(_ context.Context, store string) error {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	return ctrl.cancelLocked(store)
}

// cancelLocked stops the store's runner and waits for it. ctrl.mu must be held.
func (ctrl *DefaultController) cancelLocked(store string) error {
	desc, ok := ctrl.runners[store]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotRunning, store)
	}
	desc.cancelFunc()
	<-desc.runner.Done()

	delete(ctrl.runners, store)
	return nil
}

// Running lists the polled stores.
func (ctrl *DefaultController) Running() []string {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	stores := make([]string, 0, len(ctrl.runners))
	for store := range ctrl.runners {
		stores = append(stores, store)
	}
	return stores
}

// Stop cancels every runner and waits for them to exit.
func (ctrl *DefaultController) Stop(_ context.Context) {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	for store := range ctrl.runners {
		_ = ctrl.cancelLocked(store)
	}
}

// Refresh returns the fetch error when the upstream fails. The engine still
// receives a failure signal so the published snapshot reflects it.
func (ctrl *DefaultController) Refresh(ctx context.Context, target Target) (domain.Snapshot, error) {
	return fetchOnce(ctx, ctrl.fetcher, ctrl.sink, ctrl.config.request(target))
}

func fetchOnce(ctx context.Context, fetcher client.Fetcher, sink Sink, req client.Request) (domain.Snapshot, error) {
	if err := req.Validate(); err != nil {
		return domain.Snapshot{}, err
	}

	env, err := fetcher.Fetch(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return domain.Snapshot{}, err
		}
		return sink.Fail(ctx, err.Error()), err
	}
	return sink.Accept(ctx, env), nil
}
