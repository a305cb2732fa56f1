package seo

import (
	"math"
	"sort"

	"github.com/minekvitteringer/skribent/pkg/model"
)

// Gaps filters the aggregated queries down to opportunity keywords: the
// site is shown but not clicked. All three thresholds must hold at once.
// The result is sorted by descending score; equal scores keep their
// aggregation order so the ranking is deterministic.
func (uc *UseCase) Gaps(queries []model.AggregatedQuery) []model.Opportunity {
	var gaps []model.Opportunity
	for _, q := range queries {
		if q.Impressions < uc.cfg.MinImpressions {
			continue
		}
		if q.CTR > uc.cfg.MaxCTR {
			continue
		}
		if q.Clicks > uc.cfg.MaxClicks {
			continue
		}
		gaps = append(gaps, model.Opportunity{
			AggregatedQuery: q,
			Score:           Score(q),
		})
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].Score > gaps[j].Score
	})

	return gaps
}

// Score values an opportunity by how much unclaimed traffic it holds:
// impressions scaled by the missing CTR, boosted for keywords already
// ranking near the top. Positions below 1 clamp to 1 to keep the boost
// bounded.
func Score(q model.AggregatedQuery) float64 {
	return float64(q.Impressions) * (1 - q.CTR/100) * (10 / math.Max(q.Position, 1))
}

// TopPerformers returns the queries with more than minClicks clicks,
// ordered by clicks descending, capped at limit.
func TopPerformers(queries []model.AggregatedQuery, minClicks, limit int) []model.AggregatedQuery {
	var top []model.AggregatedQuery
	for _, q := range queries {
		if q.Clicks > minClicks {
			top = append(top, q)
		}
	}

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Clicks > top[j].Clicks
	})

	if len(top) > limit {
		top = top[:limit]
	}
	return top
}
