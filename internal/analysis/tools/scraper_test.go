package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/market-analysis-agent/server/internal/analysis/model"
)

func TestFetchRequiresProductName(t *testing.T) {
	fetcher := NewGeminiListingFetcher("some-key", "", model.ScraperConfig{MaxResults: 3})

	result, err := fetcher.Fetch(context.Background(), "", 3)
	require.NoError(t, err)
	assert.Equal(t, model.StatusError, result.Status)
	assert.Equal(t, "Product name is required", result.Error)
	assert.Empty(t, result.Products)
	assert.Zero(t, result.Count)
}

func TestFetchRequiresAPIKey(t *testing.T) {
	fetcher := NewGeminiListingFetcher("", "", model.ScraperConfig{MaxResults: 3})

	result, err := fetcher.Fetch(context.Background(), "iPhone 17 Pro Max", 3)
	require.NoError(t, err)
	assert.Equal(t, model.StatusError, result.Status)
	assert.Contains(t, result.Error, "API key not configured")
	assert.Empty(t, result.Products)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcde", truncate("abcdefgh", 5))
}
