package model

// CombinedAnalysis is the report generator input, assembled from the three
// preceding tool outputs. Any section may be nil.
type CombinedAnalysis struct {
	ProductAnalysis   *ScrapeResult    `json:"product_analysis,omitempty"`
	SentimentAnalysis *SentimentResult `json:"sentiment_analysis,omitempty"`
	MarketTrends      *MarketResult    `json:"market_trends,omitempty"`
}

type ReportMetadata struct {
	ReportID           string   `json:"report_id"`
	Product            string   `json:"product"`
	GenerationDate     string   `json:"generation_date"`
	AnalysisComponents []string `json:"analysis_components"`
	ReportVersion      string   `json:"report_version"`
}

// DetailedAnalysis passes the tool outputs through under report headings.
type DetailedAnalysis struct {
	ProductInformation *ScrapeResult    `json:"product_information,omitempty"`
	CustomerSentiment  *SentimentResult `json:"customer_sentiment,omitempty"`
	MarketAnalysis     *MarketResult    `json:"market_analysis,omitempty"`
}

type RiskAssessment struct {
	Level   string   `json:"level"`
	Factors []string `json:"factors"`
}

// ChartPayload is a data-only chart descriptor for the API consumer to render.
type ChartPayload struct {
	Type   string    `json:"type"`
	Title  string    `json:"title"`
	XAxis  string    `json:"x_axis,omitempty"`
	YAxis  string    `json:"y_axis,omitempty"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type Report struct {
	Metadata         ReportMetadata          `json:"metadata"`
	ExecutiveSummary string                  `json:"executive_summary"`
	DetailedAnalysis DetailedAnalysis        `json:"detailed_analysis"`
	KeyFindings      []string                `json:"key_findings"`
	Recommendations  []string                `json:"recommendations"`
	RiskAssessment   RiskAssessment          `json:"risk_assessment"`
	Visualizations   map[string]ChartPayload `json:"visualizations,omitempty"`
	Conclusion       string                  `json:"conclusion"`
}

// ReportResult is the report generator output.
type ReportResult struct {
	Status      string  `json:"status"`
	Report      *Report `json:"report"`
	Format      string  `json:"format,omitempty"`
	GeneratedAt string  `json:"generated_at,omitempty"`
	Error       string  `json:"error,omitempty"`
}
