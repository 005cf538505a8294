package model

// Product is one listing extracted from the Gemini search response.
// Price and Rating stay strings because the model returns free text
// ("$999.99", "4.5 out of 5").
type Product struct {
	Title        string   `json:"title"`
	Price        string   `json:"price,omitempty"`
	Description  string   `json:"description,omitempty"`
	Features     []string `json:"features,omitempty"`
	Availability string   `json:"availability,omitempty"`
	Rating       string   `json:"rating,omitempty"`
	Images       []string `json:"images,omitempty"`
	SourceURL    string   `json:"source_url"`
	Error        string   `json:"error,omitempty"`
}

// ScrapeResult is the listing fetch tool output.
type ScrapeResult struct {
	Status   string    `json:"status"`
	Products []Product `json:"products"`
	Count    int       `json:"count"`
	Error    string    `json:"error,omitempty"`
}
