package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/scraper_prompt.txt
var scraperPrompt string

// DefaultExtractFields lists what the listing fetch asks the model to pull
// from each product page.
var DefaultExtractFields = []string{
	"title", "price", "description", "features", "availability", "images",
}

// RenderScraperPrompt renders the listing search prompt and triggers prompt callbacks.
func RenderScraperPrompt(ctx context.Context, productName string, maxResults int, extractFields []string) (string, error) {
	fields := extractFields
	if len(fields) == 0 {
		fields = DefaultExtractFields
	}
	var b strings.Builder
	for _, f := range fields {
		b.WriteString("- " + f + "\n")
	}

	// Render via Eino prompt component (Go template) to both format and emit callbacks
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.UserMessage(scraperPrompt),
	)
	vars := map[string]any{
		"ProductName": productName,
		"MaxResults":  maxResults,
		"Fields":      strings.TrimRight(b.String(), "\n"),
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("scraper prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("scraper prompt render: empty result")
	}
	return msgs[0].Content, nil
}
