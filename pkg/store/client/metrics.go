// Package client fetches raw metrics envelopes from the upstream store
// metrics API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

const dateLayout = "2006-01-02"

var storePattern = regexp.MustCompile(`^\d{5}-\d{5}$`)

var (
	// ErrInvalidRequest is returned before any network call when the store or
	// date is malformed.
	ErrInvalidRequest = errors.New("invalid fetch request")
	// ErrUpstream wraps every failure of the upstream API itself.
	ErrUpstream = errors.New("upstream metrics API failure")
)

// Request identifies the snapshot to fetch.
type Request struct {
	Store        string
	Date         string
	LookbackDays int
}

// Validate checks the store id and business date formats.
func (r Request) Validate() error {
	if !storePattern.MatchString(r.Store) {
		return fmt.Errorf("%w: store %q does not match NNNNN-NNNNN", ErrInvalidRequest, r.Store)
	}
	if _, err := time.Parse(dateLayout, r.Date); err != nil {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidRequest, r.Date)
	}
	if r.LookbackDays < 0 {
		return fmt.Errorf("%w: lookback days must not be negative", ErrInvalidRequest)
	}
	return nil
}

// Lookback returns the inclusive window of LookbackDays days ending the day
// before Date.
func (r Request) Lookback() (start, end string) {
	d, err := time.Parse(dateLayout, r.Date)
	if err != nil || r.LookbackDays == 0 {
		return r.Date, r.Date
	}
	return d.AddDate(0, 0, -r.LookbackDays).Format(dateLayout), d.AddDate(0, 0, -1).Format(dateLayout)
}

type Fetcher interface {
	Fetch(ctx context.Context, req Request) (*domain.RawResponseEnvelope, error)
}

// Recorder receives one call per upstream attempt.
type Recorder interface {
	RecordUpstream(outcome string, took time.Duration)
}

type Options struct {
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	// RateLimit is requests per second; 0 disables limiting.
	RateLimit float64
	Burst     int
	Recorder  Recorder
}

func DefaultOptions() Options {
	return Options{
		Timeout:      15 * time.Second,
		MaxRetries:   3,
		RetryBackoff: 500 * time.Millisecond,
		RateLimit:    5,
		Burst:        1,
	}
}

type MetricsClient struct {
	host  string
	token string
	opts  Options

	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

func NewMetricsClient(host, token string, opts Options) *MetricsClient {
	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	burst := opts.Burst
	if burst < 1 {
		burst = 1
	}

	return &MetricsClient{
		host:    host,
		token:   token,
		opts:    opts,
		http:    &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(limit, burst),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "upstream-metrics",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			// Client errors say nothing about upstream health.
			IsSuccessful: func(err error) bool {
				var se *statusError
				return err == nil || (errors.As(err, &se) && !se.retryable())
			},
		}),
	}
}

// Fetch validates the request, then calls the upstream with retries on
// transport errors and 5xx responses.
func (c *MetricsClient) Fetch(ctx context.Context, req Request) (*domain.RawResponseEnvelope, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	logger := zerolog.Ctx(ctx).With().Str("store", req.Store).Str("date", req.Date).Logger()

	var lastErr error
	for attempt := 0; attempt <= c.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			logger.Debug().Int("attempt", attempt).Err(lastErr).Msg("retrying upstream fetch")
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %w", ErrUpstream, ctx.Err())
			case <-time.After(c.opts.RetryBackoff):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
		}

		res, err := c.breaker.Execute(func() (interface{}, error) {
			return c.do(ctx, req)
		})
		if err == nil {
			env := res.(*domain.RawResponseEnvelope)
			logger.Info().Int("attempts", attempt+1).Msg("fetched envelope")
			return env, nil
		}

		lastErr = err
		if !retryable(err) {
			break
		}
	}

	logger.Warn().Err(lastErr).Msg("upstream fetch failed")
	return nil, fmt.Errorf("%w: %w", ErrUpstream, lastErr)
}

func (c *MetricsClient) do(ctx context.Context, req Request) (*domain.RawResponseEnvelope, error) {
	logger := zerolog.Ctx(ctx)
	start := time.Now()

	from, to := req.Lookback()
	q := url.Values{}
	q.Set("date", req.Date)
	q.Set("lookback_start", from)
	q.Set("lookback_end", to)
	endpoint := fmt.Sprintf("%s/api/v1/stores/%s/metrics?%s", c.host, url.PathEscape(req.Store), q.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.record("transport_error", start)
		return nil, err
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close response body")
		}
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.record("transport_error", start)
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		se := &statusError{code: resp.StatusCode, body: truncate(string(body), 200)}
		if se.retryable() {
			c.record("server_error", start)
		} else {
			c.record("client_error", start)
		}
		return nil, se
	}

	var env domain.RawResponseEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.record("decode_error", start)
		return nil, &decodeError{err: err}
	}
	c.record("ok", start)
	return &env, nil
}

func (c *MetricsClient) record(outcome string, start time.Time) {
	if c.opts.Recorder != nil {
		c.opts.Recorder.RecordUpstream(outcome, time.Since(start))
	}
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.code, e.body)
}

func (e *statusError) retryable() bool {
	return e.code >= 500 || e.code == http.StatusTooManyRequests
}

type decodeError struct {
	err error
}

func (e *decodeError) Error() string { return "failed to decode envelope: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.retryable()
	}
	var de *decodeError
	if errors.As(err, &de) {
		return false
	}
	// Open breaker: retrying immediately cannot succeed.
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// StatusCode reports the upstream HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *statusError
	if errors.As(err, &se) {
		return se.code
	}
	return 0
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
