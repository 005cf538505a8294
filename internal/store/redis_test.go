package store

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/market-analysis-agent/server/internal/analysis/model"
	errx "github.com/market-analysis-agent/server/internal/core/error"
)

func newTestRedisRepository(t *testing.T, ttl time.Duration) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRepository(client, ttl), mr
}

func TestRedisSaveAndGet(t *testing.T) {
	repo, _ := newTestRedisRepository(t, 0)
	ctx := context.Background()

	completed := time.Now().UTC().Truncate(time.Second)
	record := &model.AnalysisRecord{
		Status:      model.RecordCompleted,
		StartedAt:   completed.Add(-time.Minute),
		CompletedAt: &completed,
		Request:     model.AnalysisRequest{ProductName: "Widget", AnalysisType: "comprehensive"},
		Result: &model.RunResult{
			Status: model.StatusSuccess,
		},
	}
	require.NoError(t, repo.Save(ctx, "req-1", record))

	got, err := repo.Get(ctx, "req-1")
	require.NoError(t, err)
	assert.Equal(t, model.RecordCompleted, got.Status)
	assert.Equal(t, "Widget", got.Request.ProductName)
	require.NotNil(t, got.Result)
	assert.Equal(t, model.StatusSuccess, got.Result.Status)
}

func TestRedisGetUnknownID(t *testing.T) {
	repo, _ := newTestRedisRepository(t, 0)

	_, err := repo.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, errx.StatusOf(err))
}

func TestRedisKeyScheme(t *testing.T) {
	repo, mr := newTestRedisRepository(t, 0)

	require.NoError(t, repo.Save(context.Background(), "req-1", &model.AnalysisRecord{Status: model.RecordProcessing}))
	assert.True(t, mr.Exists("analysis:req-1:result"))
}

func TestRedisTTL(t *testing.T) {
	repo, mr := newTestRedisRepository(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "req-1", &model.AnalysisRecord{Status: model.RecordProcessing}))
	assert.Equal(t, time.Minute, mr.TTL("analysis:req-1:result"))

	mr.FastForward(2 * time.Minute)

	_, err := repo.Get(ctx, "req-1")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, errx.StatusOf(err))
}

func TestRedisCorruptPayload(t *testing.T) {
	repo, mr := newTestRedisRepository(t, 0)

	require.NoError(t, mr.Set("analysis:req-1:result", "not json"))

	_, err := repo.Get(context.Background(), "req-1")
	assert.Error(t, err)
}
