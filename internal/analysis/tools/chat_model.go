package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	einomodel "github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"

	"github.com/market-analysis-agent/server/internal/analysis/model"
	logx "github.com/market-analysis-agent/server/pkg/logger"
)

// NewReviewChatModel creates the Gemini chat model used for review
// fabrication. Returns nil when no API key is configured; the sentiment
// analyzer then falls back to its review templates.
func NewReviewChatModel(ctx context.Context, apiKey, baseURL string, cfg model.ReviewModelConfig) (einomodel.BaseChatModel, error) {
	if apiKey == "" {
		logx.Warn().Msg("Google API key not configured; review fabrication will use templates")
		return nil, nil
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		clientCfg.HTTPOptions.BaseURL = baseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Model,
		Temperature: &cfg.Temperature,
		MaxTokens:   &cfg.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating review model")
		return nil, fmt.Errorf("error creating review model: %w", err)
	}

	return chatModel, nil
}
