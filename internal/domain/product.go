package domain

// ProductData represents normalized product information produced by the
// scraping collaborator. It is the immutable input to the analysis pipeline.
type ProductData struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       *float64       `json:"price,omitempty"`
	Currency    string         `json:"currency"` // defaults to "USD"
	Specs       map[string]any `json:"specs"`
	RawText     string         `json:"rawText"`
}

// AnalyzeRequest is the input for a product analysis.
// Exactly one of URL or Text must be set.
type AnalyzeRequest struct {
	URL  string `json:"url,omitempty"`
	Text string `json:"text,omitempty"`
}
