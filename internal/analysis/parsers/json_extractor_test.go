package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONFencedBlock(t *testing.T) {
	content := "Here are the products:\n```json\n[{\"title\": \"Widget\"}]\n```\nHope that helps!"

	payload, err := ExtractJSON(content)
	require.NoError(t, err)
	assert.Equal(t, `[{"title": "Widget"}]`, payload)
}

func TestExtractJSONFencedBlockWinsOverEarlierBracket(t *testing.T) {
	content := "Options [a, b] listed below.\n```json\n{\"title\": \"Widget\"}\n```"

	payload, err := ExtractJSON(content)
	require.NoError(t, err)
	assert.Equal(t, `{"title": "Widget"}`, payload)
}

func TestExtractJSONBalancedArray(t *testing.T) {
	content := `The model said: [{"title": "Widget", "price": "$9.99"}] and some trailing prose`

	payload, err := ExtractJSON(content)
	require.NoError(t, err)
	assert.Equal(t, `[{"title": "Widget", "price": "$9.99"}]`, payload)
}

func TestExtractJSONBracketsInsideStrings(t *testing.T) {
	content := `{"title": "Widget [refurbished]", "note": "escaped \" quote"} trailing`

	payload, err := ExtractJSON(content)
	require.NoError(t, err)
	assert.Equal(t, `{"title": "Widget [refurbished]", "note": "escaped \" quote"}`, payload)
}

func TestExtractJSONNoJSONReturnsTrimmedContent(t *testing.T) {
	payload, err := ExtractJSON("  just plain text  ")
	require.NoError(t, err)
	assert.Equal(t, "just plain text", payload)
}

func TestExtractJSONEmptyContent(t *testing.T) {
	_, err := ExtractJSON("   ")
	assert.Error(t, err)
}

func TestExtractJSONRejectsOversizedContent(t *testing.T) {
	_, err := ExtractJSON(strings.Repeat("a", maxContentLen+1))
	assert.Error(t, err)
}

func TestParseProductsArray(t *testing.T) {
	products, err := ParseProducts(`[{"title": "Widget", "price": "$9.99"}, {"title": "Gadget"}]`)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Widget", products[0].Title)
	assert.Equal(t, "$9.99", products[0].Price)
}

func TestParseProductsSingleObjectCoerced(t *testing.T) {
	products, err := ParseProducts(`{"title": "Widget"}`)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Widget", products[0].Title)
}

func TestParseProductsInvalid(t *testing.T) {
	_, err := ParseProducts("not json at all")
	assert.Error(t, err)
}

func TestParseReviews(t *testing.T) {
	content := "```json\n[{\"rating\": 5, \"title\": \"Great\", \"pros\": [\"fast\"], \"cons\": []}]\n```"

	reviews, err := ParseReviews(content)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating)
	assert.Equal(t, []string{"fast"}, reviews[0].Pros)
}

func TestParseReviewsObjectNotCoerced(t *testing.T) {
	_, err := ParseReviews(`{"rating": 5}`)
	assert.Error(t, err)
}
