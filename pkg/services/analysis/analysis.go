// Package analysis runs the three domain processors over one envelope and
// fuses their output into a single AnalysisResult.
package analysis

import (
	"errors"
	"fmt"
	"sync"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/services/analysis/alerts"
	"github.com/de-tools/ops-atlas/pkg/services/analysis/hourly"
	"github.com/de-tools/ops-atlas/pkg/services/analysis/operations"
	"github.com/de-tools/ops-atlas/pkg/services/analysis/platform"
	"github.com/de-tools/ops-atlas/pkg/services/analysis/trend"
)

// ErrAllDomainsFailed is returned when no domain of an envelope could be
// processed.
var ErrAllDomainsFailed = errors.New("no domain of the envelope could be processed")

type platformRun struct {
	out platform.Output
	err error
}

type operationsRun struct {
	out    operations.Output
	weekly *domain.WeeklyAnalysis
	err    error
}

type hourlyRun struct {
	out hourly.Output
	err error
}

// Analyze is a pure function of the envelope and the configuration. The
// processors run concurrently and are joined before alerts are aggregated, so
// the result does not depend on scheduling. A domain that is missing or
// malformed fails on its own; the call only fails when the envelope is nil or
// every domain failed.
func Analyze(env *domain.RawResponseEnvelope, cfg domain.AnalysisConfig) (*domain.AnalysisResult, error) {
	if env == nil {
		return nil, domain.ErrNoEnvelope
	}

	var (
		wg sync.WaitGroup
		pr platformRun
		or operationsRun
		hr hourlyRun
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		pr.out, pr.err = platform.Process(env.PlatformRatings, cfg)
	}()
	go func() {
		defer wg.Done()
		or.out, or.err = operations.Process(env.StoreOperations, env.StoreOperationsWeekly, cfg)
		if or.err == nil {
			or.weekly = trend.Analyze(env.StoreOperations, env.StoreOperationsWeekly)
		}
	}()
	go func() {
		defer wg.Done()
		hr.out, hr.err = hourly.Process(env.HourlySales, cfg)
	}()
	wg.Wait()

	if pr.err != nil && or.err != nil && hr.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAllDomainsFailed, errors.Join(pr.err, or.err, hr.err))
	}

	// Generation order is platform, store operations, hourly. It decides
	// which duplicate wins and the order of equal-priority alerts.
	var candidates []domain.AlertCandidate
	candidates = append(candidates, pr.out.Candidates...)
	candidates = append(candidates, or.out.Candidates...)
	candidates = append(candidates, hr.out.Candidates...)

	key := alerts.ResultKey{Store: env.Filtering.Store, Date: env.Filtering.Date}
	all := alerts.Aggregate(candidates, key, cfg.Alerts)

	res := &domain.AnalysisResult{
		Filtering: env.Filtering,
		Alerts:    all,
	}

	res.PlatformRatings.Status = status(domain.DomainPlatformRatings, pr.err)
	if pr.err == nil {
		m := pr.out.Metrics
		res.PlatformRatings.Metrics = &m
		res.PlatformRatings.Alerts = alertsFor(all, domain.DomainPlatformRatings)
	}

	res.StoreOperations.Status = status(domain.DomainStoreOperations, or.err)
	if or.err == nil {
		m := or.out.Metrics
		res.StoreOperations.Metrics = &m
		res.StoreOperations.Weekly = or.weekly
		res.StoreOperations.Alerts = alertsFor(all, domain.DomainStoreOperations)
	}

	res.HourlySales.Status = status(domain.DomainHourlySales, hr.err)
	if hr.err == nil {
		m := hr.out.Metrics
		res.HourlySales.Metrics = &m
		res.HourlySales.Alerts = alertsFor(all, domain.DomainHourlySales)
	}

	res.Summary = summarize(res)
	return res, nil
}

// DomainErrors returns the reasons of every failed domain of res, in domain
// order.
func DomainErrors(res *domain.AnalysisResult) []domain.DomainStatus {
	if res == nil {
		return nil
	}
	var failed []domain.DomainStatus
	for _, s := range []domain.DomainStatus{
		res.PlatformRatings.Status,
		res.StoreOperations.Status,
		res.HourlySales.Status,
	} {
		if !s.Succeeded() {
			failed = append(failed, s)
		}
	}
	return failed
}

func status(d domain.AnalysisDomain, err error) domain.DomainStatus {
	if err != nil {
		return domain.DomainStatus{Domain: d, State: domain.StateFailed, Reason: err.Error()}
	}
	return domain.DomainStatus{Domain: d, State: domain.StateSucceeded}
}

func alertsFor(all []domain.Alert, d domain.AnalysisDomain) []domain.Alert {
	out := []domain.Alert{}
	for _, a := range all {
		if a.Domain == d {
			out = append(out, a)
		}
	}
	return out
}
