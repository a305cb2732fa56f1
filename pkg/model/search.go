package model

// SearchPerformanceRow is one row from a search-performance export batch.
type SearchPerformanceRow struct {
	Query       string  `json:"query"`
	Clicks      int     `json:"clicks"`
	Impressions int     `json:"impressions"`
	CTR         float64 `json:"ctr"` // percent, 0-100
	Position    float64 `json:"position"`
}

// PagePerformanceRow is one row from the page-level export of a batch.
type PagePerformanceRow struct {
	Page        string  `json:"page"`
	Clicks      int     `json:"clicks"`
	Impressions int     `json:"impressions"`
	CTR         float64 `json:"ctr"`
	Position    float64 `json:"position"`
}

// PerformanceBatch holds the rows of a single dated export.
type PerformanceBatch struct {
	Queries []SearchPerformanceRow
	Pages   []PagePerformanceRow
}

// AggregatedQuery is the recency-weighted merge of one query across all
// dated batches. Clicks and impressions are rounded weighted averages.
type AggregatedQuery struct {
	Query       string  `json:"query"`
	Clicks      int     `json:"clicks"`
	Impressions int     `json:"impressions"`
	CTR         float64 `json:"ctr"`
	Position    float64 `json:"position"`
	DataPoints  int     `json:"dataPoints"`
	NewestDate  string  `json:"newestDate"`
}

// AggregatedPage is the page-level counterpart of AggregatedQuery.
type AggregatedPage struct {
	Page        string  `json:"page"`
	Clicks      int     `json:"clicks"`
	Impressions int     `json:"impressions"`
	CTR         float64 `json:"ctr"`
	Position    float64 `json:"position"`
	DataPoints  int     `json:"dataPoints"`
	NewestDate  string  `json:"newestDate"`
}

// Opportunity is a gap keyword: visible but not captured.
type Opportunity struct {
	AggregatedQuery
	Score float64 `json:"opportunityScore"`
}
