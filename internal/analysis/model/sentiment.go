package model

// Review is one customer review, fabricated by the LLM or a template.
type Review struct {
	Rating           int      `json:"rating"`
	Title            string   `json:"title"`
	Text             string   `json:"text"`
	Pros             []string `json:"pros,omitempty"`
	Cons             []string `json:"cons,omitempty"`
	VerifiedPurchase bool     `json:"verified_purchase"`
	HelpfulCount     int      `json:"helpful_count"`
}

// SentimentDistribution buckets ratings: positive >=4, neutral =3, negative <=2.
type SentimentDistribution struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// SentimentMetrics aggregates a review set.
type SentimentMetrics struct {
	AverageRating         float64               `json:"average_rating"`
	TotalReviews          int                   `json:"total_reviews"`
	SentimentDistribution SentimentDistribution `json:"sentiment_distribution"`
	// SentimentScore = (positive - negative) / total * 100, in [-100, 100].
	SentimentScore       float64        `json:"sentiment_score"`
	TopPositiveAspects   map[string]int `json:"top_positive_aspects"`
	TopNegativeAspects   map[string]int `json:"top_negative_aspects"`
	RecommendationRate   float64        `json:"recommendation_rate"`
	VerifiedPurchaseRate float64        `json:"verified_purchase_rate"`
}

// SentimentResult is the sentiment tool output.
type SentimentResult struct {
	Status        string            `json:"status"`
	Product       string            `json:"product,omitempty"`
	Analysis      *SentimentMetrics `json:"analysis,omitempty"`
	ReviewCount   int               `json:"review_count,omitempty"`
	ReviewsSample []Review          `json:"reviews_sample,omitempty"`
	Error         string            `json:"error,omitempty"`

	// CostUSD carries the fabrication call's LLM cost to the workflow state.
	CostUSD float64 `json:"-"`
}
