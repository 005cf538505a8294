package parsers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/market-analysis-agent/server/internal/analysis/model"
)

// basic safety limits to avoid pathological inputs
const (
	maxContentLen = 256 * 1024 // 256KB
	fenceOpen     = "```json"
	fenceClose    = "```"
)

// ExtractJSON pulls the JSON payload out of an LLM text response.
// A fenced ```json block wins; otherwise the first balanced array or object
// is returned; otherwise the trimmed content itself.
func ExtractJSON(content string) (string, error) {
	if len(content) > maxContentLen {
		return "", fmt.Errorf("content too large: %d bytes", len(content))
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return "", fmt.Errorf("empty content")
	}

	if idx := strings.Index(content, fenceOpen); idx >= 0 {
		rest := content[idx+len(fenceOpen):]
		if end := strings.Index(rest, fenceClose); end >= 0 {
			return strings.TrimSpace(rest[:end]), nil
		}
	}

	if block := firstBalancedBlock(content); block != "" {
		return block, nil
	}

	return content, nil
}

// firstBalancedBlock scans for the first '[' or '{' and returns the balanced
// region it opens, tracking string literals and escapes. Empty when none.
func firstBalancedBlock(s string) string {
	start := strings.IndexAny(s, "[{")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// ParseProducts decodes the listing fetch response. A single JSON object is
// coerced to a one-element slice, matching what the model sometimes returns.
func ParseProducts(content string) ([]model.Product, error) {
	payload, err := ExtractJSON(content)
	if err != nil {
		return nil, err
	}

	var products []model.Product
	if err := json.Unmarshal([]byte(payload), &products); err == nil {
		return products, nil
	}

	var single model.Product
	if err := json.Unmarshal([]byte(payload), &single); err != nil {
		return nil, fmt.Errorf("unmarshal products: %w", err)
	}
	return []model.Product{single}, nil
}

// ParseReviews decodes a fabricated review array.
func ParseReviews(content string) ([]model.Review, error) {
	payload, err := ExtractJSON(content)
	if err != nil {
		return nil, err
	}

	var reviews []model.Review
	if err := json.Unmarshal([]byte(payload), &reviews); err != nil {
		return nil, fmt.Errorf("unmarshal reviews: %w", err)
	}
	return reviews, nil
}
