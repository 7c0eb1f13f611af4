package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/ops-atlas/pkg/metrics"
	"github.com/de-tools/ops-atlas/pkg/models/api"
	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/models/domain/domaintest"
	"github.com/de-tools/ops-atlas/pkg/services/engine"
)

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	reg := metrics.NewRegistry()
	eng := engine.NewEngine(domain.DefaultAnalysisConfig(), engine.WithRecorder(reg))

	config := Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Engine:  eng,
			Metrics: reg.Handler(),
			Logger:  logger,
		},
	}
	router := ConfigureRouter(config)
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	body, err := json.Marshal(domaintest.Envelope())
	require.NoError(t, err)
	resp, err := http.Post(testServer.URL+"/api/v1/envelopes", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		check          func(t *testing.T, body []byte)
	}{
		{
			name:           "GetAnalysis",
			path:           "/api/v1/analysis",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				snap, err := unmarshalResponse[api.Snapshot]()(body)
				require.NoError(t, err)
				assert.Equal(t, "succeeded", snap.(api.Snapshot).State)
				assert.Equal(t, uint64(2), snap.(api.Snapshot).Sequence)
			},
		},
		{
			name:           "GetConfig",
			path:           "/api/v1/config",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				cfg, err := unmarshalResponse[api.AnalysisConfig]()(body)
				require.NoError(t, err)
				assert.Equal(t, 10, cfg.(api.AnalysisConfig).Alerts.MaxAlerts)
			},
		},
		{
			name:           "GetExecutiveExport",
			path:           "/api/v1/analysis/exports/executive",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), `"overall_grade": "A"`)
			},
		},
		{
			name:           "Metrics",
			path:           "/metrics",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), `opsatlas_analyses_total{state="succeeded"} 1`)
				assert.Contains(t, string(body), "opsatlas_snapshot_sequence 2")
			},
		},
		{
			name:           "UnknownRoute",
			path:           "/api/v1/workspaces",
			expectedStatus: http.StatusNotFound,
			check:          func(t *testing.T, body []byte) {},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Get(testServer.URL + tc.path)
			require.NoError(t, err, "Failed to make request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Unexpected status code")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			tc.check(t, body)
		})
	}
}

func TestWebAPI_RefreshWithoutUpstream(t *testing.T) {
	router := ConfigureRouter(Config{Dependencies: Dependencies{
		Engine: engine.NewEngine(domain.DefaultAnalysisConfig()),
		Logger: zerolog.Nop(),
	}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/stores/01234-00001/dates/2025-03-14/refresh", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/metrics").Code)
}

func serve(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var response T
		err := json.Unmarshal(data, &response)
		return response, err
	}
}
