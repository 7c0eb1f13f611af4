package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

func TestObserveAnalysis(t *testing.T) {
	r := NewRegistry()

	r.ObserveAnalysis(domain.Snapshot{
		Sequence: 4,
		State:    domain.StateSucceeded,
		Result: &domain.AnalysisResult{
			PlatformRatings: domain.PlatformRatingsResult{Status: domain.DomainStatus{
				Domain: domain.DomainPlatformRatings, State: domain.StateFailed, Reason: "missing",
			}},
			StoreOperations: domain.StoreOperationsResult{Status: domain.DomainStatus{
				Domain: domain.DomainStoreOperations, State: domain.StateSucceeded,
			}},
			HourlySales: domain.HourlySalesResult{Status: domain.DomainStatus{
				Domain: domain.DomainHourlySales, State: domain.StateSucceeded,
			}},
			Alerts: []domain.Alert{
				{Severity: domain.SeverityCritical},
				{Severity: domain.SeverityCritical},
				{Severity: domain.SeverityWarning},
			},
		},
	}, 3*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.Analyses.WithLabelValues("succeeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.DomainFailures.WithLabelValues("platform_ratings")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.ActiveAlerts.WithLabelValues("critical")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.ActiveAlerts.WithLabelValues("warning")))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.SnapshotSequence))

	r.ObserveAnalysis(domain.Snapshot{Sequence: 5, State: domain.StateFailed, Reason: "boom"}, 0)
	assert.Equal(t, 0.0, testutil.ToFloat64(r.ActiveAlerts.WithLabelValues("critical")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Analyses.WithLabelValues("failed")))
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.RecordCacheHit()
	r.RecordUpstream("ok", 20*time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "opsatlas_envelope_cache_hits_total 1"))
	assert.Contains(t, body, `opsatlas_upstream_requests_total{outcome="ok"} 1`)
}

func TestRegistriesAreIndependent(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()
	a.RecordCacheMiss()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.CacheMisses))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.CacheMisses))
}
