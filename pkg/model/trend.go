package model

import (
	"strings"
	"time"
)

type TrendOrigin string

const (
	TrendOriginFeed     TrendOrigin = "feed"
	TrendOriginScrape   TrendOrigin = "scrape"
	TrendOriginCache    TrendOrigin = "cache"
	TrendOriginFallback TrendOrigin = "fallback-default"
)

// TrendRecord is one trending search normalized from whatever upstream
// source produced it. Identity is the lower-cased title.
type TrendRecord struct {
	Title          string      `json:"title"`
	Traffic        string      `json:"traffic"`
	Source         TrendOrigin `json:"source"`
	RelatedQueries []string    `json:"relatedQueries,omitempty"`
}

// Key returns the dedup identity of the record
func (t TrendRecord) Key() string {
	return strings.ToLower(t.Title)
}

// TrendSnapshot is the persisted result of one day's trend fetch.
type TrendSnapshot struct {
	Date      string        `json:"date"` // YYYY-MM-DD
	FetchedAt time.Time     `json:"fetchedAt"`
	Trends    []TrendRecord `json:"trends"`
}

// Count returns the number of records in the snapshot, nil-safe.
func (s *TrendSnapshot) Count() int {
	if s == nil {
		return 0
	}
	return len(s.Trends)
}
