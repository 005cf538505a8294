package model

// ================ Config ================
type ScraperConfig struct {
	Model       string  `envconfig:"SCRAPER_MODEL" default:"gemini-2.5-flash"`
	MaxResults  int     `envconfig:"SCRAPER_MAX_RESULTS" default:"3"`
	Temperature float32 `envconfig:"SCRAPER_TEMPERATURE" default:"0.1"`
	TopP        float32 `envconfig:"SCRAPER_TOP_P" default:"0.95"`
}

type ReviewModelConfig struct {
	Model       string  `envconfig:"REVIEW_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"REVIEW_MAX_TOKENS" default:"4000"`
	Temperature float32 `envconfig:"REVIEW_TEMPERATURE" default:"0.8"`
	ReviewCount int     `envconfig:"REVIEW_COUNT" default:"20"`
}

type MarketConfig struct {
	TimePeriodDays int `envconfig:"MARKET_PERIOD_DAYS" default:"90"`
}

type ResultStoreConfig struct {
	// TTL applies to the Redis backend only; "0" keeps records forever,
	// matching the in-memory behavior.
	TTL string `envconfig:"RESULT_TTL" default:"0"`
}
