package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/models/domain/domaintest"
	"github.com/de-tools/ops-atlas/pkg/store/client"
)

const ttl = 15 * time.Minute

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, req client.Request) (*domain.RawResponseEnvelope, error) {
	args := m.Called(ctx, req)
	if env := args.Get(0); env != nil {
		return env.(*domain.RawResponseEnvelope), args.Error(1)
	}
	return nil, args.Error(1)
}

type counter struct {
	hits, misses, errors int
}

func (c *counter) RecordCacheHit()   { c.hits++ }
func (c *counter) RecordCacheMiss()  { c.misses++ }
func (c *counter) RecordCacheError() { c.errors++ }

var req = client.Request{Store: "01234-00001", Date: "2025-03-14"}

func encoded(t *testing.T, env *domain.RawResponseEnvelope) []byte {
	t.Helper()
	data, err := json.Marshal(env)
	require.NoError(t, err)
	return data
}

func TestEnvelopeCache_Get(t *testing.T) {
	db, rmock := redismock.NewClientMock()
	c := NewEnvelopeCache(db, ttl)
	ctx := context.Background()
	env := domaintest.Envelope()

	t.Run("hit", func(t *testing.T) {
		rmock.ExpectGet(Key(req.Store, req.Date)).SetVal(string(encoded(t, env)))

		got, ok, err := c.Get(ctx, req.Store, req.Date)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, env.Filtering, got.Filtering)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("miss", func(t *testing.T) {
		rmock.ExpectGet(Key(req.Store, req.Date)).RedisNil()

		got, ok, err := c.Get(ctx, req.Store, req.Date)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, got)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("corrupt value", func(t *testing.T) {
		rmock.ExpectGet(Key(req.Store, req.Date)).SetVal("{broken")

		_, _, err := c.Get(ctx, req.Store, req.Date)
		assert.ErrorContains(t, err, "decode cached envelope")
	})
}

func TestCachedFetcher_HitSkipsUpstream(t *testing.T) {
	db, rmock := redismock.NewClientMock()
	env := domaintest.Envelope()
	rmock.ExpectGet(Key(req.Store, req.Date)).SetVal(string(encoded(t, env)))

	upstream := new(MockFetcher)
	rec := &counter{}
	f := NewCachedFetcher(upstream, NewEnvelopeCache(db, ttl), rec)

	got, err := f.Fetch(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, env.Filtering, got.Filtering)
	assert.Equal(t, 1, rec.hits)
	upstream.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestCachedFetcher_MissFetchesAndStores(t *testing.T) {
	db, rmock := redismock.NewClientMock()
	env := domaintest.Envelope()
	rmock.ExpectGet(Key(req.Store, req.Date)).RedisNil()
	rmock.ExpectSet(Key(req.Store, req.Date), encoded(t, env), ttl).SetVal("OK")

	upstream := new(MockFetcher)
	upstream.On("Fetch", mock.Anything, req).Return(env, nil).Once()
	rec := &counter{}
	f := NewCachedFetcher(upstream, NewEnvelopeCache(db, ttl), rec)

	got, err := f.Fetch(context.Background(), req)
	require.NoError(t, err)
	assert.Same(t, env, got)
	assert.Equal(t, 1, rec.misses)
	assert.Zero(t, rec.errors)
	upstream.AssertExpectations(t)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestCachedFetcher_CacheFailureFallsThrough(t *testing.T) {
	db, rmock := redismock.NewClientMock()
	env := domaintest.Envelope()
	rmock.ExpectGet(Key(req.Store, req.Date)).SetErr(errors.New("connection refused"))
	rmock.ExpectSet(Key(req.Store, req.Date), encoded(t, env), ttl).SetErr(errors.New("connection refused"))

	upstream := new(MockFetcher)
	upstream.On("Fetch", mock.Anything, req).Return(env, nil).Once()
	rec := &counter{}
	f := NewCachedFetcher(upstream, NewEnvelopeCache(db, ttl), rec)

	got, err := f.Fetch(context.Background(), req)
	require.NoError(t, err)
	assert.Same(t, env, got)
	assert.Equal(t, 2, rec.errors)
	upstream.AssertExpectations(t)
}

func TestCachedFetcher_UpstreamErrorIsNotCached(t *testing.T) {
	db, rmock := redismock.NewClientMock()
	rmock.ExpectGet(Key(req.Store, req.Date)).RedisNil()

	upstream := new(MockFetcher)
	upstream.On("Fetch", mock.Anything, req).Return(nil, client.ErrUpstream).Once()
	f := NewCachedFetcher(upstream, NewEnvelopeCache(db, ttl), nil)

	_, err := f.Fetch(context.Background(), req)
	assert.ErrorIs(t, err, client.ErrUpstream)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestCachedFetcher_InvalidRequest(t *testing.T) {
	db, _ := redismock.NewClientMock()
	f := NewCachedFetcher(new(MockFetcher), NewEnvelopeCache(db, ttl), nil)

	_, err := f.Fetch(context.Background(), client.Request{Store: "bad", Date: "2025-03-14"})
	assert.ErrorIs(t, err, client.ErrInvalidRequest)
}
