package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/review_prompt.txt
var reviewPrompt string

// RenderReviewPrompt renders the review fabrication prompt and triggers prompt callbacks.
func RenderReviewPrompt(ctx context.Context, productName string, reviewCount int) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.UserMessage(reviewPrompt),
	)
	vars := map[string]any{
		"ProductName": productName,
		"ReviewCount": reviewCount,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("review prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("review prompt render: empty result")
	}
	return msgs[0].Content, nil
}
