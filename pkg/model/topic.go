package model

import "time"

// TopicInfo is a single-shot topic selection handed to article drafting.
// The base fields are always set; the detail pointers are populated only
// for the category that produced them.
type TopicInfo struct {
	Category Category `json:"category"`
	Topic    string   `json:"topic"`
	Query    string   `json:"query,omitempty"`

	Slug       string   `json:"slug,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
	DataSource string   `json:"dataSource,omitempty"`
	Rationale  string   `json:"rationale,omitempty"`

	Gap      *GapDetails      `json:"gap,omitempty"`
	Store    *StoreDetails    `json:"store,omitempty"`
	Trend    *TrendDetails    `json:"trend,omitempty"`
	Seasonal *SeasonalDetails `json:"seasonal,omitempty"`
}

// GapDetails carries the search-performance numbers behind a seo-gap pick.
type GapDetails struct {
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	Position    float64 `json:"position"`
	Score       float64 `json:"opportunityScore"`
}

type StoreDetails struct {
	Store string `json:"store"`
}

type TrendDetails struct {
	Traffic string `json:"traffic,omitempty"`
	Source  string `json:"source,omitempty"`
}

type SeasonalDetails struct {
	Month time.Month `json:"month"`
}

// GeneratedTopic is the append-only record of every idea that became an
// article attempt. It is the dedup universe for all future rounds.
type GeneratedTopic struct {
	Title       string    `json:"title,omitempty" firestore:"title,omitempty"`
	Topic       string    `json:"topic,omitempty" firestore:"topic,omitempty"`
	Category    Category  `json:"category,omitempty" firestore:"category,omitempty"`
	Query       string    `json:"query,omitempty" firestore:"query,omitempty"`
	Keywords    []string  `json:"keywords,omitempty" firestore:"keywords,omitempty"`
	Store       string    `json:"store,omitempty" firestore:"store,omitempty"`
	DataSource  string    `json:"dataSource,omitempty" firestore:"dataSource,omitempty"`
	PostID      string    `json:"postId,omitempty" firestore:"postId,omitempty"`
	GeneratedAt time.Time `json:"generatedAt" firestore:"generatedAt"`
}

// FromIdea converts an accepted idea into a topic selection.
func FromIdea(idea Idea) TopicInfo {
	category := idea.Category
	if category == "" {
		category = CategorySEOGap
	}
	return TopicInfo{
		Category:   category,
		Topic:      idea.Title,
		Query:      idea.PrimaryKeyword,
		Keywords:   idea.Keywords,
		DataSource: idea.DataSource,
		Rationale:  idea.Rationale,
	}
}
