package model

import "time"

const (
	maxInsights        = 10
	maxFallbackUsage   = 10
	maxSuggestedTopics = 50
)

// CachedTrends is the same-day trend cache held in the brain.
type CachedTrends struct {
	Date string        `json:"date"` // YYYY-MM-DD
	Data []TrendRecord `json:"data"`
}

// FallbackUsage records that a historical trend snapshot was used in
// place of a too-small same-day fetch.
type FallbackUsage struct {
	Date       string    `json:"date"`
	TrendCount int       `json:"trendCount"`
	Timestamp  time.Time `json:"timestamp"`
}

// ProductCategory is the remembered state of one product-category research.
type ProductCategory struct {
	LastUpdated *time.Time     `json:"lastUpdated,omitempty"`
	Trends      []ProductTrend `json:"trends,omitempty"`
	Insights    string         `json:"insights,omitempty"`
	Ideas       []Idea         `json:"articleIdeas,omitempty"`
}

type ProductTrend struct {
	Name          string   `json:"name"`
	PriceRange    string   `json:"priceRange,omitempty"`
	PopularStores []string `json:"popularStores,omitempty"`
}

// Insight is one research session's seasonal/data takeaways.
type Insight struct {
	Date     time.Time        `json:"date"`
	Seasonal SeasonalInsights `json:"seasonal"`
	Data     DataInsights     `json:"dataInsights"`
}

// ResearchEntry logs one research invocation.
type ResearchEntry struct {
	Date        time.Time `json:"date"`
	Focus       string    `json:"focus"`
	TopicsFound int       `json:"topicsFound"`
}

// AgentBrain is the long-lived research memory. Single mutable record,
// read-modify-write through the repository; no concurrent writers.
type AgentBrain struct {
	LastResearch      *time.Time                 `json:"lastResearch,omitempty"`
	CachedTrends      *CachedTrends              `json:"cachedTrends,omitempty"`
	FallbackUsage     []FallbackUsage            `json:"historicalTrends,omitempty"`
	ProductCategories map[string]ProductCategory `json:"productCategories,omitempty"`
	SuggestedTopics   []Idea                     `json:"suggestedTopics,omitempty"`
	TrendingTopics    []TrendingInsight          `json:"trendingTopics,omitempty"`
	SEOGaps           []GapSuggestion            `json:"seoGaps,omitempty"`
	Insights          []Insight                  `json:"insights,omitempty"`
	ResearchHistory   []ResearchEntry            `json:"researchHistory,omitempty"`
}

// NewAgentBrain returns the fresh brain used on first run.
func NewAgentBrain() *AgentBrain {
	return &AgentBrain{
		ProductCategories: map[string]ProductCategory{},
	}
}

// RecordFallback appends a fallback usage and trims to the cap.
func (b *AgentBrain) RecordFallback(usage FallbackUsage) {
	b.FallbackUsage = append(b.FallbackUsage, usage)
	if len(b.FallbackUsage) > maxFallbackUsage {
		b.FallbackUsage = b.FallbackUsage[len(b.FallbackUsage)-maxFallbackUsage:]
	}
}

// RecordInsight appends an insight and trims to the cap.
func (b *AgentBrain) RecordInsight(insight Insight) {
	b.Insights = append(b.Insights, insight)
	if len(b.Insights) > maxInsights {
		b.Insights = b.Insights[len(b.Insights)-maxInsights:]
	}
}

// PrependSuggestions puts fresh suggestions ahead of the old ones and
// trims to the cap.
func (b *AgentBrain) PrependSuggestions(topics []Idea) {
	merged := make([]Idea, 0, len(topics)+len(b.SuggestedTopics))
	merged = append(merged, topics...)
	merged = append(merged, b.SuggestedTopics...)
	if len(merged) > maxSuggestedTopics {
		merged = merged[:maxSuggestedTopics]
	}
	b.SuggestedTopics = merged
}
