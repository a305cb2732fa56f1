package seo_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/minekvitteringer/skribent/pkg/config"
	"github.com/minekvitteringer/skribent/pkg/model"
	"github.com/minekvitteringer/skribent/pkg/usecase/seo"
)

// mockConsole is a mock implementation of adapter.SearchConsole for testing
type mockConsole struct {
	dated map[string]model.PerformanceBatch
	flat  model.PerformanceBatch
	err   error
}

func (m *mockConsole) LoadBatches(ctx context.Context) (map[string]model.PerformanceBatch, model.PerformanceBatch, error) {
	return m.dated, m.flat, m.err
}

func newUseCase(console *mockConsole) *seo.UseCase {
	cfg := config.Default()
	return seo.New(console, cfg.Research, seo.WithStores(cfg.Catalog.Stores))
}

func TestWeight(t *testing.T) {
	uc := newUseCase(&mockConsole{})

	tests := []struct {
		name     string
		date     string
		newest   string
		expected float64
	}{
		{
			name:     "newest batch gets full weight",
			date:     "2026-08-01",
			newest:   "2026-08-01",
			expected: 1.0,
		},
		{
			name:     "one half-life halves the weight",
			date:     "2026-07-18",
			newest:   "2026-08-01",
			expected: 0.5,
		},
		{
			name:     "two half-lives quarter the weight",
			date:     "2026-07-04",
			newest:   "2026-08-01",
			expected: 0.25,
		},
		{
			name:     "very old data stops at the floor",
			date:     "2025-01-01",
			newest:   "2026-08-01",
			expected: 0.1,
		},
		{
			name:     "unparseable date falls back to the floor",
			date:     "not-a-date",
			newest:   "2026-08-01",
			expected: 0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := uc.Weight(tt.date, tt.newest)
			gt.Number(t, w).GreaterOrEqual(tt.expected - 1e-9).LessOrEqual(tt.expected + 1e-9)
		})
	}
}

func TestWeightMonotonicity(t *testing.T) {
	uc := newUseCase(&mockConsole{})

	newest := "2026-08-01"
	prev := uc.Weight(newest, newest)
	for _, date := range []string{"2026-07-25", "2026-07-10", "2026-06-01", "2026-01-01"} {
		w := uc.Weight(date, newest)
		gt.Number(t, w).LessOrEqual(prev)
		gt.Number(t, w).GreaterOrEqual(0.1)
		prev = w
	}
}

func TestLoadFoldsDuplicateQueries(t *testing.T) {
	// The same query in a fresh batch (weight 1.0) and one half-life back
	// (weight 0.5): the weighted average of 100 and 50 impressions is
	// 150/1.5 = 83.33, rounded to 83.
	console := &mockConsole{
		dated: map[string]model.PerformanceBatch{
			"2026-08-01": {Queries: []model.SearchPerformanceRow{
				{Query: "Mistet kvittering", Clicks: 4, Impressions: 100, CTR: 4, Position: 8},
			}},
			"2026-07-18": {Queries: []model.SearchPerformanceRow{
				{Query: "mistet kvittering", Clicks: 2, Impressions: 50, CTR: 4, Position: 12},
			}},
		},
	}
	uc := newUseCase(console)

	queries, _, err := uc.Load(context.Background())
	gt.NoError(t, err)
	gt.A(t, queries).Length(1)

	q := queries[0]
	gt.V(t, q.Query).Equal("Mistet kvittering")
	gt.V(t, q.Impressions).Equal(83)
	gt.V(t, q.Clicks).Equal(3) // (4*1.0 + 2*0.5) / 1.5 = 3.33 -> 3
	gt.V(t, q.DataPoints).Equal(2)
	gt.V(t, q.NewestDate).Equal("2026-08-01")
	gt.Number(t, q.Position).GreaterOrEqual(8.0).LessOrEqual(12.0)
}

func TestLoadAggregateStaysWithinSourceBounds(t *testing.T) {
	console := &mockConsole{
		dated: map[string]model.PerformanceBatch{
			"2026-08-01": {Queries: []model.SearchPerformanceRow{
				{Query: "elkjøp kvittering", Clicks: 10, Impressions: 200, CTR: 5, Position: 3},
			}},
			"2026-06-01": {Queries: []model.SearchPerformanceRow{
				{Query: "elkjøp kvittering", Clicks: 1, Impressions: 40, CTR: 2.5, Position: 9},
			}},
		},
	}
	uc := newUseCase(console)

	queries, _, err := uc.Load(context.Background())
	gt.NoError(t, err)
	gt.A(t, queries).Length(1)

	q := queries[0]
	gt.Number(t, q.Impressions).GreaterOrEqual(40).LessOrEqual(200)
	gt.Number(t, q.Clicks).GreaterOrEqual(1).LessOrEqual(10)
	gt.Number(t, q.CTR).GreaterOrEqual(2.5).LessOrEqual(5.0)
	gt.Number(t, q.Position).GreaterOrEqual(3.0).LessOrEqual(9.0)
}

func TestLoadFlatFallback(t *testing.T) {
	console := &mockConsole{
		flat: model.PerformanceBatch{
			Queries: []model.SearchPerformanceRow{
				{Query: "kvittering app", Clicks: 5, Impressions: 120, CTR: 4.2, Position: 6},
			},
			Pages: []model.PagePerformanceRow{
				{Page: "https://minekvitteringer.no/", Clicks: 40, Impressions: 900, CTR: 4.4, Position: 2},
			},
		},
	}
	uc := newUseCase(console)

	queries, pages, err := uc.Load(context.Background())
	gt.NoError(t, err)
	gt.A(t, queries).Length(1)
	gt.A(t, pages).Length(1)

	// Flat data passes through unweighted.
	gt.V(t, queries[0].Clicks).Equal(5)
	gt.V(t, queries[0].Impressions).Equal(120)
	gt.V(t, pages[0].Clicks).Equal(40)
}

func TestGapsFilterAndOrder(t *testing.T) {
	rows := []model.AggregatedQuery{
		{Query: "høy ctr", Clicks: 2, Impressions: 500, CTR: 8, Position: 3},      // CTR too high
		{Query: "for få visninger", Clicks: 0, Impressions: 10, CTR: 0, Position: 5}, // impressions too low
		{Query: "for mange klikk", Clicks: 20, Impressions: 400, CTR: 2, Position: 4}, // clicks too high
		{Query: "svak mulighet", Clicks: 1, Impressions: 40, CTR: 1, Position: 20},
		{Query: "sterk mulighet", Clicks: 2, Impressions: 300, CTR: 1, Position: 5},
	}
	uc := newUseCase(&mockConsole{})

	gaps := uc.Gaps(rows)
	gt.A(t, gaps).Length(2)
	gt.V(t, gaps[0].Query).Equal("sterk mulighet")
	gt.V(t, gaps[1].Query).Equal("svak mulighet")
	gt.Number(t, gaps[0].Score).Greater(gaps[1].Score)
}

func TestGapScorePositionClamp(t *testing.T) {
	q := model.AggregatedQuery{Impressions: 100, CTR: 0, Position: 0.4}
	// Positions below 1 clamp to 1: 100 * 1 * 10.
	gt.Number(t, seo.Score(q)).GreaterOrEqual(999.9).LessOrEqual(1000.1)
}

func TestGapsDeterministicForEqualScores(t *testing.T) {
	rows := []model.AggregatedQuery{
		{Query: "alfa", Clicks: 0, Impressions: 100, CTR: 0, Position: 10},
		{Query: "beta", Clicks: 0, Impressions: 100, CTR: 0, Position: 10},
	}
	uc := newUseCase(&mockConsole{})

	for range 20 {
		gaps := uc.Gaps(rows)
		gt.A(t, gaps).Length(2)
		gt.V(t, gaps[0].Query).Equal("alfa")
		gt.V(t, gaps[1].Query).Equal("beta")
	}
}

func TestTopPerformers(t *testing.T) {
	rows := []model.AggregatedQuery{
		{Query: "a", Clicks: 1},
		{Query: "b", Clicks: 12},
		{Query: "c", Clicks: 7},
		{Query: "d", Clicks: 2},
	}

	top := seo.TopPerformers(rows, 2, 10)
	gt.A(t, top).Length(2)
	gt.V(t, top[0].Query).Equal("b")
	gt.V(t, top[1].Query).Equal("c")
}

func TestThemes(t *testing.T) {
	rows := []model.AggregatedQuery{
		{Query: "elkjøp kvittering garanti", Impressions: 120},
		{Query: "mistet kvittering iphone", Impressions: 80},
		{Query: "mva fradrag enkeltpersonforetak", Impressions: 60},
	}
	uc := newUseCase(&mockConsole{})

	themes := uc.Themes(rows)
	gt.A(t, themes.Stores).Length(1)
	gt.V(t, themes.Stores[0].Term).Equal("elkjøp")
	gt.A(t, themes.Warranties).Length(1)
	gt.A(t, themes.Products).Length(1)
	gt.V(t, themes.Products[0].Term).Equal("iphone")
	gt.A(t, themes.Problems).Length(1)
	gt.V(t, themes.Problems[0].Term).Equal("mistet")
	// One hit per bucket per query even when multiple business terms match.
	gt.A(t, themes.Business).Length(1)
}

func TestSignals(t *testing.T) {
	console := &mockConsole{
		dated: map[string]model.PerformanceBatch{
			"2026-08-01": {Queries: []model.SearchPerformanceRow{
				{Query: "kvittering elkjøp", Clicks: 1, Impressions: 200, CTR: 0.5, Position: 12},
				{Query: "minekvitteringer", Clicks: 30, Impressions: 400, CTR: 7.5, Position: 1.2},
			}},
		},
	}
	uc := newUseCase(console)

	signals, err := uc.Signals(context.Background())
	gt.NoError(t, err)
	gt.V(t, signals.TotalQueries).Equal(2)
	gt.V(t, signals.TotalClicks).Equal(31)
	gt.V(t, signals.TotalImpressions).Equal(600)
	gt.A(t, signals.Opportunities).Length(1)
	gt.V(t, signals.Opportunities[0].Query).Equal("kvittering elkjøp")
	gt.A(t, signals.TopPerformers).Length(1)
	gt.V(t, signals.TopPerformers[0].Query).Equal("minekvitteringer")
}
