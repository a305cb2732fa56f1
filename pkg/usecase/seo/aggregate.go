package seo

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minekvitteringer/skribent/pkg/model"
	"github.com/minekvitteringer/skribent/pkg/utils/logging"
)

// Weight returns the recency weight of a batch relative to the newest
// batch: exponential decay with the configured half-life, clamped at the
// floor so old data keeps a residual vote. The newest batch always gets
// weight 1.0. Unparseable dates fall back to the floor.
func (uc *UseCase) Weight(date, newest string) float64 {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return uc.cfg.WeightFloor
	}
	n, err := time.Parse("2006-01-02", newest)
	if err != nil {
		return uc.cfg.WeightFloor
	}

	days := n.Sub(d).Hours() / 24
	if days <= 0 {
		return 1.0
	}

	w := math.Pow(0.5, days/uc.cfg.HalfLifeDays)
	return math.Max(w, uc.cfg.WeightFloor)
}

type queryAcc struct {
	query       string
	clicks      float64
	impressions float64
	ctr         float64
	position    float64
	weight      float64
	dataPoints  int
	newestDate  string
}

type pageAcc struct {
	page        string
	clicks      float64
	impressions float64
	ctr         float64
	position    float64
	weight      float64
	dataPoints  int
	newestDate  string
}

// Load reads every export batch and merges rows across batches with
// recency weighting. Rows for the same query (case-insensitive) fold into
// one aggregate whose metrics are weighted averages. When no dated
// batches exist the flat export is used as a single batch with weight 1.
func (uc *UseCase) Load(ctx context.Context) ([]model.AggregatedQuery, []model.AggregatedPage, error) {
	logger := logging.From(ctx)

	dated, flat, err := uc.console.LoadBatches(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to load search performance exports")
	}

	if len(dated) == 0 {
		logger.Info("no dated export batches, using flat export",
			"queries", len(flat.Queries), "pages", len(flat.Pages))
		dated = map[string]model.PerformanceBatch{"": flat}
	}

	// Newest first, so the first occurrence of a query carries its most
	// recent date.
	dates := make([]string, 0, len(dated))
	for d := range dated {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	newest := dates[0]

	queryAccs := map[string]*queryAcc{}
	var queryOrder []string
	pageAccs := map[string]*pageAcc{}
	var pageOrder []string

	for _, date := range dates {
		w := 1.0
		if date != "" {
			w = uc.Weight(date, newest)
		}
		batch := dated[date]

		for _, row := range batch.Queries {
			key := strings.ToLower(strings.TrimSpace(row.Query))
			if key == "" {
				continue
			}
			acc, ok := queryAccs[key]
			if !ok {
				acc = &queryAcc{query: row.Query, newestDate: date}
				queryAccs[key] = acc
				queryOrder = append(queryOrder, key)
			}
			acc.clicks += float64(row.Clicks) * w
			acc.impressions += float64(row.Impressions) * w
			acc.ctr += row.CTR * w
			acc.position += row.Position * w
			acc.weight += w
			acc.dataPoints++
		}

		for _, row := range batch.Pages {
			key := strings.ToLower(strings.TrimSpace(row.Page))
			if key == "" {
				continue
			}
			acc, ok := pageAccs[key]
			if !ok {
				acc = &pageAcc{page: row.Page, newestDate: date}
				pageAccs[key] = acc
				pageOrder = append(pageOrder, key)
			}
			acc.clicks += float64(row.Clicks) * w
			acc.impressions += float64(row.Impressions) * w
			acc.ctr += row.CTR * w
			acc.position += row.Position * w
			acc.weight += w
			acc.dataPoints++
		}
	}

	queries := make([]model.AggregatedQuery, 0, len(queryOrder))
	for _, key := range queryOrder {
		acc := queryAccs[key]
		queries = append(queries, model.AggregatedQuery{
			Query:       acc.query,
			Clicks:      int(math.Round(acc.clicks / acc.weight)),
			Impressions: int(math.Round(acc.impressions / acc.weight)),
			CTR:         acc.ctr / acc.weight,
			Position:    acc.position / acc.weight,
			DataPoints:  acc.dataPoints,
			NewestDate:  acc.newestDate,
		})
	}

	pages := make([]model.AggregatedPage, 0, len(pageOrder))
	for _, key := range pageOrder {
		acc := pageAccs[key]
		pages = append(pages, model.AggregatedPage{
			Page:        acc.page,
			Clicks:      int(math.Round(acc.clicks / acc.weight)),
			Impressions: int(math.Round(acc.impressions / acc.weight)),
			CTR:         acc.ctr / acc.weight,
			Position:    acc.position / acc.weight,
			DataPoints:  acc.dataPoints,
			NewestDate:  acc.newestDate,
		})
	}

	logger.Info("aggregated search performance exports",
		"batches", len(dated), "queries", len(queries), "pages", len(pages))

	return queries, pages, nil
}
