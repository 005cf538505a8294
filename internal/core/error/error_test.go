package errx

import (
	"errors"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapRedisNil(t *testing.T) {
	err := WrapRedis(redis.Nil)
	require.Error(t, err)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, RedisNotFoundMessage, appErr.Message)
	assert.ErrorIs(t, err, redis.Nil)
}

func TestWrapRedisOther(t *testing.T) {
	err := WrapRedis(errors.New("connection refused"))
	assert.Equal(t, http.StatusBadGateway, StatusOf(err))
}

func TestWrapRedisNilError(t *testing.T) {
	assert.NoError(t, WrapRedis(nil))
	assert.NoError(t, WrapGemini(nil))
}

func TestWrapGemini(t *testing.T) {
	err := WrapGemini(errors.New("quota exceeded"))
	assert.Equal(t, http.StatusBadGateway, StatusOf(err))
	assert.Contains(t, err.Error(), GeminiErrorMessage)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestStatusOfDefaultsTo500(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("plain")))
}
