// Package seo turns raw search-performance exports into ranked content
// opportunities: recency-weighted aggregation, gap scoring and keyword
// theme extraction.
package seo

import (
	"context"

	"github.com/minekvitteringer/skribent/pkg/adapter"
	"github.com/minekvitteringer/skribent/pkg/config"
	"github.com/minekvitteringer/skribent/pkg/model"
)

// UseCase provides search-performance analysis operations
type UseCase struct {
	console adapter.SearchConsole
	cfg     config.ResearchConfig
	stores  []string
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithStores sets the store names used for theme extraction
func WithStores(stores []string) Option {
	return func(uc *UseCase) {
		uc.stores = stores
	}
}

// New creates a new seo UseCase instance
func New(console adapter.SearchConsole, cfg config.ResearchConfig, opts ...Option) *UseCase {
	uc := &UseCase{
		console: console,
		cfg:     cfg,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Signals loads the exports and summarizes them for prompting: top gap
// opportunities, the best-performing queries, and keyword themes.
func (uc *UseCase) Signals(ctx context.Context) (*model.SearchSignals, error) {
	queries, _, err := uc.Load(ctx)
	if err != nil {
		return nil, err
	}

	gaps := uc.Gaps(queries)
	if len(gaps) > 20 {
		gaps = gaps[:20]
	}

	signals := &model.SearchSignals{
		Opportunities: gaps,
		TopPerformers: TopPerformers(queries, 2, 10),
		Themes:        uc.Themes(queries),
		TotalQueries:  len(queries),
	}
	for _, q := range queries {
		signals.TotalClicks += q.Clicks
		signals.TotalImpressions += q.Impressions
	}

	return signals, nil
}
