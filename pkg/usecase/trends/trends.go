// Package trends serves the day's trending searches from a cache, a
// live source, persisted history, or a fixed default set, in that order
// of preference. Downstream logic never receives an empty input.
package trends

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minekvitteringer/skribent/pkg/adapter"
	"github.com/minekvitteringer/skribent/pkg/config"
	"github.com/minekvitteringer/skribent/pkg/model"
	"github.com/minekvitteringer/skribent/pkg/repository"
	"github.com/minekvitteringer/skribent/pkg/utils/logging"
)

const (
	// maxTrends caps one day's snapshot.
	maxTrends = 200

	// minRichCache is the same-day cache size below which the research
	// flow prefers a fresh fetch over the cache.
	minRichCache = 50
)

// UseCase provides trend fetching with caching and fallback
type UseCase struct {
	repo   repository.Repository
	source adapter.TrendSource
	cfg    config.ResearchConfig
	now    func() time.Time
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithNow sets the clock, for tests
func WithNow(now func() time.Time) Option {
	return func(uc *UseCase) {
		uc.now = now
	}
}

// New creates a new trends UseCase instance
func New(repo repository.Repository, source adapter.TrendSource, cfg config.ResearchConfig, opts ...Option) *UseCase {
	uc := &UseCase{
		repo:   repo,
		source: source,
		cfg:    cfg,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Fetch returns today's trending searches. Resolution order: the brain's
// same-day cache, a live fetch, a persisted snapshot from the last
// FallbackDays days with at least MinSnapshotSize records, a too-small
// live result, and finally the built-in default set.
func (uc *UseCase) Fetch(ctx context.Context) ([]model.TrendRecord, error) {
	logger := logging.From(ctx)
	today := uc.now().Format("2006-01-02")

	brain, err := uc.repo.LoadBrain(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load brain")
	}

	if cached := brain.CachedTrends; cached != nil && cached.Date == today && len(cached.Data) > 0 {
		logger.Info("using cached trends from today", "count", len(cached.Data))
		return markCached(cached.Data), nil
	}

	records := uc.fetchToday(ctx, today, brain)
	if len(records) >= uc.cfg.MinSnapshotSize {
		return records, nil
	}

	logger.Warn("too few trends today, trying previous days", "count", len(records))
	for i := 1; i <= uc.cfg.FallbackDays; i++ {
		date := uc.now().AddDate(0, 0, -i).Format("2006-01-02")
		snapshot, err := uc.repo.LoadTrendSnapshot(ctx, date)
		if err != nil {
			// A single unreadable day must not sink the whole walk.
			logger.Warn("failed to load trend snapshot", "date", date, "error", err)
			continue
		}
		if snapshot.Count() < uc.cfg.MinSnapshotSize {
			continue
		}

		logger.Info("using historical trends as fallback", "date", date, "count", snapshot.Count())
		brain.RecordFallback(model.FallbackUsage{
			Date:       date,
			TrendCount: snapshot.Count(),
			Timestamp:  uc.now(),
		})
		if err := uc.repo.SaveBrain(ctx, brain); err != nil {
			return nil, goerr.Wrap(err, "failed to save brain")
		}
		return snapshot.Trends, nil
	}

	if len(records) > 0 {
		logger.Info("no usable historical trends, keeping today's small result", "count", len(records))
		return records, nil
	}

	logger.Warn("no trends available anywhere, using default set")
	return defaultTrends(), nil
}

// fetchToday pulls from the live source, dedupes, caps and persists the
// result. A fetch failure is logged and treated as an empty result so the
// fallback path can take over.
func (uc *UseCase) fetchToday(ctx context.Context, today string, brain *model.AgentBrain) []model.TrendRecord {
	logger := logging.From(ctx)

	fetched, err := uc.source.FetchTrends(ctx)
	if err != nil {
		logger.Warn("trend fetch failed", "error", err)
		return nil
	}

	seen := map[string]bool{}
	var records []model.TrendRecord
	for _, r := range fetched {
		if r.Title == "" || seen[r.Key()] {
			continue
		}
		seen[r.Key()] = true
		records = append(records, r)
		if len(records) >= maxTrends {
			break
		}
	}

	if len(records) == 0 {
		return nil
	}

	snapshot := &model.TrendSnapshot{
		Date:      today,
		FetchedAt: uc.now(),
		Trends:    records,
	}
	if err := uc.repo.SaveTrendSnapshot(ctx, snapshot); err != nil {
		logger.Warn("failed to persist trend snapshot", "error", err)
	}

	brain.CachedTrends = &model.CachedTrends{Date: today, Data: records}
	if err := uc.repo.SaveBrain(ctx, brain); err != nil {
		logger.Warn("failed to cache trends in brain", "error", err)
	}

	logger.Info("fetched trends", "count", len(records))
	return records
}

// ClearCache drops the brain's same-day cache so the next Fetch hits the
// live source.
func (uc *UseCase) ClearCache(ctx context.Context) error {
	brain, err := uc.repo.LoadBrain(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to load brain")
	}

	brain.CachedTrends = nil
	if err := uc.repo.SaveBrain(ctx, brain); err != nil {
		return goerr.Wrap(err, "failed to save brain")
	}
	return nil
}

// FetchFresh is the research entry point: when today's cache exists but
// holds few records, it is cleared first so the fetch gets a full feed
// read instead of yesterday's thin result.
func (uc *UseCase) FetchFresh(ctx context.Context) ([]model.TrendRecord, error) {
	today := uc.now().Format("2006-01-02")

	brain, err := uc.repo.LoadBrain(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load brain")
	}

	if cached := brain.CachedTrends; cached != nil && cached.Date == today && len(cached.Data) < minRichCache {
		logging.From(ctx).Info("sparse trend cache, forcing refresh", "count", len(cached.Data))
		if err := uc.ClearCache(ctx); err != nil {
			return nil, err
		}
	}

	return uc.Fetch(ctx)
}

func markCached(records []model.TrendRecord) []model.TrendRecord {
	out := make([]model.TrendRecord, len(records))
	for i, r := range records {
		r.Source = model.TrendOriginCache
		out[i] = r
	}
	return out
}
