package redis

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/Resilience-Insights/internal/config"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/turtacn/Resilience-Insights/pkg/errors"
)

type cachedReport struct {
	ReportID string  `json:"reportId"`
	Total    int     `json:"total"`
	Average  float64 `json:"average"`
}

type CacheTestSuite struct {
	suite.Suite
	mock  redismock.ClientMock
	cache Cache
}

func (s *CacheTestSuite) SetupTest() {
	db, mock := redismock.NewClientMock()
	s.mock = mock
	client := newClient(db, config.RedisConfig{}, logging.NewNopLogger())
	s.cache = NewCache(client, logging.NewNopLogger(), WithPrefix("test:"), WithTTLJitter(0))
}

func (s *CacheTestSuite) TearDownTest() {
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
}

func (s *CacheTestSuite) TestGet_Hit() {
	want := cachedReport{ReportID: "r-1", Total: 6, Average: 21.5}
	raw, _ := json.Marshal(want)
	s.mock.ExpectGet("test:analysis:full").SetVal(string(raw))

	var got cachedReport
	err := s.cache.Get(context.Background(), "analysis:full", &got)

	s.NoError(err)
	s.Equal(want, got)
}

func (s *CacheTestSuite) TestGet_Miss() {
	s.mock.ExpectGet("test:k").RedisNil()

	var got cachedReport
	err := s.cache.Get(context.Background(), "k", &got)

	s.Equal(ErrCacheMiss, err)
	s.True(pkgerrors.IsNotFound(err))
}

func (s *CacheTestSuite) TestGet_NullMarkerIsMiss() {
	s.mock.ExpectGet("test:k").SetVal(nullMarker)

	var got cachedReport
	s.Equal(ErrCacheMiss, s.cache.Get(context.Background(), "k", &got))
}

func (s *CacheTestSuite) TestGet_CorruptPayload() {
	s.mock.ExpectGet("test:k").SetVal("{not json")

	var got cachedReport
	err := s.cache.Get(context.Background(), "k", &got)

	s.True(pkgerrors.IsCode(err, pkgerrors.ErrCodeSerialization))
}

func (s *CacheTestSuite) TestGet_BackendError() {
	s.mock.ExpectGet("test:k").SetErr(assert.AnError)

	var got cachedReport
	err := s.cache.Get(context.Background(), "k", &got)

	s.True(pkgerrors.IsCode(err, pkgerrors.ErrCodeCacheError))
	s.False(pkgerrors.IsNotFound(err))
}

func (s *CacheTestSuite) TestSet_UsesGivenTTL() {
	v := cachedReport{ReportID: "r-2", Total: 1}
	raw, _ := json.Marshal(v)
	s.mock.ExpectSet("test:k", string(raw), time.Minute).SetVal("OK")

	s.NoError(s.cache.Set(context.Background(), "k", v, time.Minute))
}

func (s *CacheTestSuite) TestSet_DefaultTTL() {
	v := cachedReport{ReportID: "r-3"}
	raw, _ := json.Marshal(v)
	s.mock.ExpectSet("test:k", string(raw), 15*time.Minute).SetVal("OK")

	s.NoError(s.cache.Set(context.Background(), "k", v, 0))
}

func (s *CacheTestSuite) TestDelete() {
	s.mock.ExpectDel("test:k1", "test:k2").SetVal(2)

	s.NoError(s.cache.Delete(context.Background(), "k1", "k2"))
	s.NoError(s.cache.Delete(context.Background()))
}

func (s *CacheTestSuite) TestDeleteByPrefix_WalksCursor() {
	s.mock.ExpectScan(0, "test:analysis:*", scanBatchSize).SetVal([]string{"test:analysis:a", "test:analysis:b"}, 7)
	s.mock.ExpectDel("test:analysis:a", "test:analysis:b").SetVal(2)
	s.mock.ExpectScan(7, "test:analysis:*", scanBatchSize).SetVal([]string{"test:analysis:c"}, 0)
	s.mock.ExpectDel("test:analysis:c").SetVal(1)

	n, err := s.cache.DeleteByPrefix(context.Background(), "analysis:")

	s.NoError(err)
	s.Equal(int64(3), n)
}

func (s *CacheTestSuite) TestGetOrSet_HitSkipsLoader() {
	want := cachedReport{ReportID: "hit"}
	raw, _ := json.Marshal(want)
	s.mock.ExpectGet("test:k").SetVal(string(raw))

	var got cachedReport
	err := s.cache.GetOrSet(context.Background(), "k", &got, time.Minute, func(context.Context) (interface{}, error) {
		s.Fail("loader must not run on a hit")
		return nil, nil
	})

	s.NoError(err)
	s.Equal(want, got)
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func newMiniCache(t *testing.T) (*miniredis.Miniredis, Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewClient(config.RedisConfig{Addr: mr.Addr()}, logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewCache(client, logging.NewNopLogger(), WithPrefix("t:"), WithNullCacheTTL(time.Second))
}

func TestGetOrSet_LoadsOnceThenServesCache(t *testing.T) {
	mr, cache := newMiniCache(t)
	ctx := context.Background()
	var calls int32
	loader := func(context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return cachedReport{ReportID: "loaded", Total: 3}, nil
	}

	var first, second cachedReport
	require.NoError(t, cache.GetOrSet(ctx, "k", &first, time.Minute, loader))
	require.NoError(t, cache.GetOrSet(ctx, "k", &second, time.Minute, loader))

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "loaded", second.ReportID)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists("t:k"))

	ttl := mr.TTL("t:k")
	assert.GreaterOrEqual(t, ttl, 54*time.Second)
	assert.LessOrEqual(t, ttl, 66*time.Second)
}

func TestGetOrSet_NilResultCachesNullMarker(t *testing.T) {
	mr, cache := newMiniCache(t)

	var dest cachedReport
	err := cache.GetOrSet(context.Background(), "absent", &dest, time.Minute, func(context.Context) (interface{}, error) {
		return nil, nil
	})

	assert.Equal(t, ErrCacheMiss, err)
	got, _ := mr.Get("t:absent")
	assert.Equal(t, nullMarker, got)

	mr.FastForward(2 * time.Second)
	assert.False(t, mr.Exists("t:absent"))
}

func TestGetOrSet_LoaderErrorPropagates(t *testing.T) {
	_, cache := newMiniCache(t)
	boom := pkgerrors.New(pkgerrors.ErrCodeContentStoreFailed, "store down")

	var dest cachedReport
	err := cache.GetOrSet(context.Background(), "k", &dest, time.Minute, func(context.Context) (interface{}, error) {
		return nil, boom
	})

	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeContentStoreFailed))
}

func TestCache_ClosedClient(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewClient(config.RedisConfig{Addr: mr.Addr()}, logging.NewNopLogger())
	require.NoError(t, err)
	cache := NewCache(client, logging.NewNopLogger())
	require.NoError(t, client.Close())

	var dest cachedReport
	assert.Equal(t, ErrClientClosed, cache.Get(context.Background(), "k", &dest))
	assert.Equal(t, ErrClientClosed, cache.Set(context.Background(), "k", dest, 0))
}

//Personal.AI order the ending
