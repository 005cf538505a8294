package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/market-analysis-agent/server/internal/analysis/model"
	errx "github.com/market-analysis-agent/server/internal/core/error"
	logx "github.com/market-analysis-agent/server/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type RedisRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewRedisRepository stores records in Redis as JSON strings. A ttl of zero
// keeps records until the key is overwritten or Redis evicts it.
func NewRedisRepository(rdb redis.Cmdable, ttl time.Duration) *RedisRepository {
	return &RedisRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisRepository) resultKey(requestID string) string {
	return fmt.Sprintf("analysis:%s:result", requestID)
}

func (r *RedisRepository) Save(ctx context.Context, requestID string, record *model.AnalysisRecord) error {
	b, err := json.Marshal(record)
	if err != nil {
		logx.Error().Err(err).Str("requestID", requestID).Msg("failed to marshal analysis record")
		return fmt.Errorf("marshal analysis record: %w", err)
	}
	key := r.resultKey(requestID)

	if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to write analysis record to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisRepository) Get(ctx context.Context, requestID string) (*model.AnalysisRecord, error) {
	key := r.resultKey(requestID)

	raw, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errx.WrapRedis(err)
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to read analysis record from redis")
		return nil, errx.WrapRedis(err)
	}

	var record model.AnalysisRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		logx.Error().Err(err).Str("requestID", requestID).Msg("failed to unmarshal analysis record")
		return nil, fmt.Errorf("unmarshal analysis record: %w", err)
	}
	return &record, nil
}

var _ ResultRepository = (*RedisRepository)(nil)
var _ ResultRepository = (*MemoryRepository)(nil)
