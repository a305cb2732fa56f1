package model

import (
	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrInvalidCategory = goerr.New("invalid category")
)

// Category identifies which pipeline stage produced or should handle a topic.
type Category string

const (
	CategoryTrending         Category = "trending"
	CategorySEOGap           Category = "seo-gap"
	CategoryStoreGuide       Category = "store-guide"
	CategoryBusiness         Category = "business"
	CategoryProblemSolving   Category = "problem-solving"
	CategoryLifeSituation    Category = "life-situation"
	CategoryFeatureHighlight Category = "feature-highlight"
	CategorySeasonal         Category = "seasonal"
	CategoryAICreative       Category = "ai-creative"
)

// Validate checks if the category is one of the rotation categories
func (c Category) Validate() error {
	switch c {
	case CategoryTrending, CategorySEOGap, CategoryStoreGuide, CategoryBusiness,
		CategoryProblemSolving, CategoryLifeSituation, CategoryFeatureHighlight,
		CategorySeasonal, CategoryAICreative:
		return nil
	default:
		return goerr.Wrap(ErrInvalidCategory, "unknown category", goerr.V("category", c))
	}
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Idea is a structured article proposal from the idea-generation model.
// It is unvalidated until the deduplicator accepts it.
type Idea struct {
	Title          string   `json:"title" firestore:"title"`
	PrimaryKeyword string   `json:"primaryKeyword" firestore:"primaryKeyword"`
	Keywords       []string `json:"keywords,omitempty" firestore:"keywords,omitempty"`
	Category       Category `json:"category" firestore:"category"`
	Priority       Priority `json:"priority,omitempty" firestore:"priority,omitempty"`
	DataSource     string   `json:"dataSource,omitempty" firestore:"dataSource,omitempty"`
	Rationale      string   `json:"rationale,omitempty" firestore:"rationale,omitempty"`
}

type RejectReason string

const (
	RejectSimilarTitle   RejectReason = "similar title"
	RejectSimilarKeyword RejectReason = "similar keyword"
	RejectSimilarTopic   RejectReason = "similar topic"
)

// RejectedIdea records why a proposed idea was filtered out, so following
// research rounds can tell the model what to avoid.
type RejectedIdea struct {
	Title          string       `json:"title"`
	Reason         RejectReason `json:"reason"`
	MatchedAgainst string       `json:"matchedAgainst"`
}
