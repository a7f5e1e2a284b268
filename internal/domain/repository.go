package domain

import "context"

// ProductSource produces normalized ProductData from a URL or raw text.
// Implemented by the scraper collaborator; the pipeline never does I/O itself.
type ProductSource interface {
	FromURL(ctx context.Context, url string) (*ProductData, error)
	FromText(text string) (*ProductData, error)
}

// AnalysisCache memoizes completed analyses keyed by a content hash of the
// normalized input. The pipeline is referentially transparent, so cached
// results are indistinguishable from fresh ones.
type AnalysisCache interface {
	Get(ctx context.Context, key string) (*ProductAnalysis, error)
	Set(ctx context.Context, key string, analysis *ProductAnalysis) error
}
