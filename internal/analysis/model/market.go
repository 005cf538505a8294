package model

// PriceSeries holds weekly price data points.
type PriceSeries struct {
	Dates  []string  `json:"dates"`
	Prices []float64 `json:"prices"`
}

type PriceTrends struct {
	CurrentPrice       string      `json:"current_price"`
	PriceChangePercent float64     `json:"price_change_percent"`
	PriceTrend         string      `json:"price_trend"`
	HistoricalPrices   PriceSeries `json:"historical_prices"`
	PriceVolatility    string      `json:"price_volatility"`
	MinPrice           string      `json:"min_price"`
	MaxPrice           string      `json:"max_price"`
	AveragePrice       string      `json:"average_price"`
}

type SeasonalPatterns struct {
	PeakSeason string `json:"peak_season"`
	LowSeason  string `json:"low_season"`
}

type DemandForecast struct {
	Next30Days  string `json:"next_30_days"`
	NextQuarter string `json:"next_quarter"`
	Confidence  int    `json:"confidence"`
}

type DemandAnalysis struct {
	CurrentDemandScore int              `json:"current_demand_score"`
	DemandTrend        string           `json:"demand_trend"`
	SearchVolumeChange string           `json:"search_volume_change"`
	SeasonalPatterns   SeasonalPatterns `json:"seasonal_patterns"`
	DemandForecast     DemandForecast   `json:"demand_forecast"`
	MarketSaturation   int              `json:"market_saturation"`
	GrowthPotential    string           `json:"growth_potential"`
}

type Competitor struct {
	Name        string   `json:"name"`
	MarketShare int      `json:"market_share"`
	PricePoint  string   `json:"price_point"`
	Rating      float64  `json:"rating"`
	KeyFeatures []string `json:"key_features"`
}

type CompetitorLandscape struct {
	TotalCompetitors      int          `json:"total_competitors"`
	MainCompetitors       []Competitor `json:"main_competitors"`
	MarketPosition        string       `json:"market_position"`
	CompetitiveAdvantages []string     `json:"competitive_advantages"`
	MarketShareEstimate   int          `json:"market_share_estimate"`
	CompetitivePressure   string       `json:"competitive_pressure"`
}

type MarketInsights struct {
	KeyTrends       []string `json:"key_trends"`
	Opportunities   []string `json:"opportunities"`
	Risks           []string `json:"risks"`
	Recommendations []string `json:"recommendations"`
	MarketMaturity  string   `json:"market_maturity"`
	InnovationIndex int      `json:"innovation_index"`
}

// MarketResult is the market trend tool output.
type MarketResult struct {
	Status              string               `json:"status"`
	Product             string               `json:"product,omitempty"`
	Category            string               `json:"category,omitempty"`
	AnalysisPeriod      string               `json:"analysis_period,omitempty"`
	PriceTrends         *PriceTrends         `json:"price_trends,omitempty"`
	DemandAnalysis      *DemandAnalysis      `json:"demand_analysis,omitempty"`
	CompetitorLandscape *CompetitorLandscape `json:"competitor_landscape,omitempty"`
	MarketInsights      *MarketInsights      `json:"market_insights,omitempty"`
	GeneratedAt         string               `json:"generated_at,omitempty"`
	Error               string               `json:"error,omitempty"`
}
