package model

import "github.com/cloudwego/eino/schema"

// Pricing is USD per one million text tokens.
type Pricing struct {
	InputPerM  float64
	OutputPerM float64
}

// Gemini standard tier, text tokens only.
var geminiPricing = map[string]Pricing{
	"gemini-2.5-flash":      {InputPerM: 0.30, OutputPerM: 2.50},
	"gemini-2.5-flash-lite": {InputPerM: 0.10, OutputPerM: 0.40},
}

// CostEnabled reports whether LLM cost should be computed and logged.
func CostEnabled() bool {
	return true
}

// ResolvePricing looks up pricing for a model name. Unknown models price at
// zero, which keeps cost logging harmless rather than wrong.
func ResolvePricing(name string) Pricing {
	return geminiPricing[name]
}

// ComputeCost converts token usage into USD input, output, and total cost.
func ComputeCost(usage *schema.TokenUsage, p Pricing) (inputCost, outputCost, total float64) {
	if usage == nil {
		return 0, 0, 0
	}
	inputCost = float64(usage.PromptTokens) / 1e6 * p.InputPerM
	outputCost = float64(usage.CompletionTokens) / 1e6 * p.OutputPerM
	return inputCost, outputCost, inputCost + outputCost
}
