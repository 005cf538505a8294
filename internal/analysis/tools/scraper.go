package tools

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/market-analysis-agent/server/internal/analysis/graph/prompts"
	"github.com/market-analysis-agent/server/internal/analysis/model"
	"github.com/market-analysis-agent/server/internal/analysis/parsers"
	logx "github.com/market-analysis-agent/server/pkg/logger"
)

const rawTextLimit = 500

// GeminiListingFetcher searches for product listings through the Gemini API
// with google_search and url_context tools enabled, then best-effort parses
// the text response as a JSON product array.
type GeminiListingFetcher struct {
	apiKey  string
	baseURL string
	cfg     model.ScraperConfig
}

func NewGeminiListingFetcher(apiKey, baseURL string, cfg model.ScraperConfig) *GeminiListingFetcher {
	return &GeminiListingFetcher{apiKey: apiKey, baseURL: baseURL, cfg: cfg}
}

func (f *GeminiListingFetcher) Fetch(ctx context.Context, productName string, maxResults int) (*model.ScrapeResult, error) {
	if productName == "" {
		return errorScrape("Product name is required"), nil
	}
	if f.apiKey == "" {
		logx.Error().Msg("Google API key not configured and required for URL discovery")
		return errorScrape("Google API key not configured. Cannot search for or analyze URLs without Gemini API access."), nil
	}
	if maxResults <= 0 {
		maxResults = f.cfg.MaxResults
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  f.apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if f.baseURL != "" {
		clientCfg.HTTPOptions.BaseURL = f.baseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return errorScrape(fmt.Sprintf("Failed to search for %s: %v", productName, err)), nil
	}

	prompt, err := prompts.RenderScraperPrompt(ctx, productName, maxResults, nil)
	if err != nil {
		return errorScrape(fmt.Sprintf("Failed to search for %s: %v", productName, err)), nil
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(f.cfg.Temperature),
		TopP:        genai.Ptr(f.cfg.TopP),
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
			{URLContext: &genai.URLContext{}},
		},
	}

	logx.Info().
		Str("product", productName).
		Str("model", f.cfg.Model).
		Int("tool_count", len(config.Tools)).
		Msg("Searching for product")

	resp, err := client.Models.GenerateContent(ctx, f.cfg.Model, genai.Text(prompt), config)
	if err != nil {
		logx.Error().Err(err).Str("product", productName).Msg("Gemini search call failed")
		return errorScrape(fmt.Sprintf("Failed to search for %s: %v", productName, err)), nil
	}

	text := resp.Text()
	logGroundingSources(resp, productName)

	products, err := parsers.ParseProducts(text)
	if err != nil {
		logx.Error().Err(err).Msg("JSON parsing error")
		return &model.ScrapeResult{
			Status: model.StatusSuccess,
			Products: []model.Product{{
				Title:       productName,
				Description: "Product information found but parsing failed: " + truncate(text, rawTextLimit),
				Error:       "JSON parsing failed",
				SourceURL:   "Search result",
			}},
			Count: 1,
		}, nil
	}

	for i := range products {
		if products[i].SourceURL == "" {
			products[i].SourceURL = "Search result for " + productName
		}
	}
	if len(products) > maxResults {
		products = products[:maxResults]
	}

	logx.Info().Int("count", len(products)).Str("product", productName).Msg("Successfully found products")

	return &model.ScrapeResult{
		Status:   model.StatusSuccess,
		Products: products,
		Count:    len(products),
	}, nil
}

// logGroundingSources logs up to three grounding source URIs when present.
func logGroundingSources(resp *genai.GenerateContentResponse, productName string) {
	if resp == nil || len(resp.Candidates) == 0 {
		return
	}
	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil || len(meta.GroundingChunks) == 0 {
		return
	}
	logx.Info().Int("sources", len(meta.GroundingChunks)).Str("product", productName).Msg("Grounded search sources")
	for i, chunk := range meta.GroundingChunks {
		if i >= 3 {
			break
		}
		if chunk != nil && chunk.Web != nil && chunk.Web.URI != "" {
			logx.Debug().Str("uri", chunk.Web.URI).Msg("Grounding source")
		}
	}
}

func errorScrape(message string) *model.ScrapeResult {
	return &model.ScrapeResult{
		Status:   model.StatusError,
		Error:    message,
		Products: []model.Product{},
		Count:    0,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
