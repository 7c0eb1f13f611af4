package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/ops-atlas/pkg/models/domain/domaintest"
)

type outcomes struct {
	mu   sync.Mutex
	seen []string
}

func (o *outcomes) RecordUpstream(outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seen = append(o.seen, outcome)
}

func testOptions(rec Recorder) Options {
	return Options{
		Timeout:      time.Second,
		MaxRetries:   2,
		RetryBackoff: time.Millisecond,
		Recorder:     rec,
	}
}

func TestFetch_Success(t *testing.T) {
	env := domaintest.Envelope()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/stores/01234-00001/metrics", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "2025-03-14", r.URL.Query().Get("date"))
		assert.Equal(t, "2025-03-07", r.URL.Query().Get("lookback_start"))
		assert.Equal(t, "2025-03-13", r.URL.Query().Get("lookback_end"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(env)
	}))
	defer server.Close()

	rec := &outcomes{}
	c := NewMetricsClient(server.URL, "secret", testOptions(rec))
	got, err := c.Fetch(context.Background(), Request{Store: "01234-00001", Date: "2025-03-14", LookbackDays: 7})
	require.NoError(t, err)
	assert.Equal(t, env.Filtering, got.Filtering)
	assert.Len(t, got.HourlySales, 24)
	assert.Equal(t, []string{"ok"}, rec.seen)
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(domaintest.Envelope())
	}))
	defer server.Close()

	rec := &outcomes{}
	c := NewMetricsClient(server.URL, "", testOptions(rec))
	_, err := c.Fetch(context.Background(), Request{Store: "01234-00001", Date: "2025-03-14"})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, []string{"server_error", "server_error", "ok"}, rec.seen)
}

func TestFetch_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewMetricsClient(server.URL, "", testOptions(nil))
	_, err := c.Fetch(context.Background(), Request{Store: "01234-00001", Date: "2025-03-14"})
	require.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, http.StatusServiceUnavailable, StatusCode(err))
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetch_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "no such store", http.StatusNotFound)
	}))
	defer server.Close()

	c := NewMetricsClient(server.URL, "", testOptions(nil))
	_, err := c.Fetch(context.Background(), Request{Store: "01234-00001", Date: "2025-03-14"})
	require.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetch_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer server.Close()

	c := NewMetricsClient(server.URL, "", testOptions(nil))
	_, err := c.Fetch(context.Background(), Request{Store: "01234-00001", Date: "2025-03-14"})
	require.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "failed to decode envelope")
}

func TestFetch_InvalidRequest(t *testing.T) {
	c := NewMetricsClient("http://127.0.0.1:1", "", testOptions(nil))

	tests := []struct {
		name string
		req  Request
	}{
		{"short store", Request{Store: "1234-00001", Date: "2025-03-14"}},
		{"letters in store", Request{Store: "0123a-00001", Date: "2025-03-14"}},
		{"bad date", Request{Store: "01234-00001", Date: "14/03/2025"}},
		{"impossible date", Request{Store: "01234-00001", Date: "2025-02-30"}},
		{"negative lookback", Request{Store: "01234-00001", Date: "2025-03-14", LookbackDays: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Fetch(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidRequest)
			assert.NotErrorIs(t, err, ErrUpstream)
		})
	}
}

func TestRequest_Lookback(t *testing.T) {
	from, to := Request{Date: "2025-03-01", LookbackDays: 7}.Lookback()
	assert.Equal(t, "2025-02-22", from)
	assert.Equal(t, "2025-02-28", to)

	from, to = Request{Date: "2025-03-01"}.Lookback()
	assert.Equal(t, "2025-03-01", from)
	assert.Equal(t, "2025-03-01", to)
}
