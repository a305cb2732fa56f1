// Package topic picks the next article topic for a category: trend-based
// for trending, gap-based for seo-gap, rotating store angles for store
// guides, cycling catalog lists for the evergreen categories, and the
// calendar for seasonal. Every path has a fallback so a pick never fails
// for lack of data.
package topic

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minekvitteringer/skribent/pkg/config"
	"github.com/minekvitteringer/skribent/pkg/model"
	"github.com/minekvitteringer/skribent/pkg/repository"
	"github.com/minekvitteringer/skribent/pkg/utils/logging"
)

// Rotator advances the persisted rotation cursors.
type Rotator interface {
	NextCategory(ctx context.Context) (model.Category, error)
	NextStore(ctx context.Context) (string, error)
	NextTopicIndex(ctx context.Context, category model.Category, maxTopics int) (int, error)
}

// TrendProvider supplies the day's trend records.
type TrendProvider interface {
	Fetch(ctx context.Context) ([]model.TrendRecord, error)
}

// GapSource exposes aggregated search performance and gap scoring.
type GapSource interface {
	Load(ctx context.Context) ([]model.AggregatedQuery, []model.AggregatedPage, error)
	Gaps(queries []model.AggregatedQuery) []model.Opportunity
}

// UseCase provides single-shot topic selection
type UseCase struct {
	repo    repository.Repository
	rotator Rotator
	trends  TrendProvider
	gaps    GapSource
	catalog config.CatalogConfig
	now     func() time.Time
	pick    func(n int) int
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithNow sets the clock, for tests
func WithNow(now func() time.Time) Option {
	return func(uc *UseCase) {
		uc.now = now
	}
}

// WithPick sets the random index function, for tests
func WithPick(pick func(n int) int) Option {
	return func(uc *UseCase) {
		uc.pick = pick
	}
}

// New creates a new topic UseCase instance
func New(
	repo repository.Repository,
	rotator Rotator,
	trends TrendProvider,
	gaps GapSource,
	catalog config.CatalogConfig,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		repo:    repo,
		rotator: rotator,
		trends:  trends,
		gaps:    gaps,
		catalog: catalog,
		now:     time.Now,
		pick:    rand.Intn,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// NextTopic selects one topic for the category, excluding everything in
// the generated-topic history.
func (uc *UseCase) NextTopic(ctx context.Context, category model.Category) (*model.TopicInfo, error) {
	history, err := uc.repo.LoadTopicHistory(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load topic history")
	}

	switch category {
	case model.CategoryTrending:
		return uc.trendingTopic(ctx, history)
	case model.CategorySEOGap:
		return uc.gapTopic(ctx, history)
	case model.CategoryStoreGuide:
		return uc.storeTopic(ctx)
	case model.CategoryBusiness, model.CategoryProblemSolving,
		model.CategoryLifeSituation, model.CategoryFeatureHighlight:
		return uc.listTopic(ctx, category)
	case model.CategorySeasonal:
		return uc.seasonalTopic()
	default:
		return uc.randomTopic(category)
	}
}

// Generic trending titles used when no trend source yields anything.
var trendingFallbacks = []string{
	"Nye forbrukerrettigheter - dette må du vite",
	"Digitalisering av kvitteringer - trenden som fortsetter",
	"Rekordmange nordmenn handler på nett - slik holder du orden",
}

func (uc *UseCase) trendingTopic(ctx context.Context, history []model.GeneratedTopic) (*model.TopicInfo, error) {
	records, err := uc.trends.Fetch(ctx)
	if err != nil {
		logging.From(ctx).Warn("trend fetch failed, using fallback topics", "error", err)
	}

	for _, r := range records {
		used := false
		for _, prev := range history {
			if strings.EqualFold(prev.Title, r.Title) || strings.EqualFold(prev.Topic, r.Title) {
				used = true
				break
			}
		}
		if !used {
			return &model.TopicInfo{
				Category: model.CategoryTrending,
				Topic:    r.Title,
				Trend:    &model.TrendDetails{Traffic: r.Traffic, Source: string(r.Source)},
			}, nil
		}
	}

	return &model.TopicInfo{
		Category: model.CategoryTrending,
		Topic:    trendingFallbacks[uc.pick(len(trendingFallbacks))],
	}, nil
}

func (uc *UseCase) gapTopic(ctx context.Context, history []model.GeneratedTopic) (*model.TopicInfo, error) {
	queries, _, err := uc.gaps.Load(ctx)
	if err != nil {
		logging.From(ctx).Warn("search performance load failed, using fallback gap", "error", err)
		queries = nil
	}

	for _, gap := range uc.gaps.Gaps(queries) {
		if gapUsed(gap.Query, history) {
			continue
		}
		return &model.TopicInfo{
			Category: model.CategorySEOGap,
			Query:    gap.Query,
			Topic:    fmt.Sprintf("Artikkel optimalisert for: %q", gap.Query),
			Gap: &model.GapDetails{
				Impressions: gap.Impressions,
				Clicks:      gap.Clicks,
				Position:    gap.Position,
				Score:       gap.Score,
			},
		}, nil
	}

	return &model.TopicInfo{
		Category: model.CategorySEOGap,
		Query:    "digital kvittering",
		Topic:    "Digitale kvitteringer - alt du trenger å vite",
	}, nil
}

// gapUsed reports whether a gap query was already written about: a prior
// entry has the same query, or a prior title contains the query.
func gapUsed(query string, history []model.GeneratedTopic) bool {
	q := strings.ToLower(query)
	for _, prev := range history {
		if strings.ToLower(prev.Query) == q {
			return true
		}
		if prev.Title != "" && strings.Contains(strings.ToLower(prev.Title), q) {
			return true
		}
	}
	return false
}

func (uc *UseCase) storeTopic(ctx context.Context) (*model.TopicInfo, error) {
	store, err := uc.rotator.NextStore(ctx)
	if err != nil {
		return nil, err
	}

	topic := fmt.Sprintf("Slik finner du kvitteringer fra %s", store)
	if len(uc.catalog.StoreAngles) > 0 {
		angle := uc.catalog.StoreAngles[uc.pick(len(uc.catalog.StoreAngles))]
		if strings.Contains(angle, "%s") {
			topic = fmt.Sprintf(angle, store)
		} else {
			topic = angle
		}
	}

	return &model.TopicInfo{
		Category: model.CategoryStoreGuide,
		Topic:    topic,
		Store:    &model.StoreDetails{Store: store},
	}, nil
}

func (uc *UseCase) listTopic(ctx context.Context, category model.Category) (*model.TopicInfo, error) {
	topics := uc.catalog.Topics[category]
	if len(topics) == 0 {
		return nil, goerr.New("no topics configured for category", goerr.V("category", category))
	}

	index, err := uc.rotator.NextTopicIndex(ctx, category, len(topics))
	if err != nil {
		return nil, err
	}

	return &model.TopicInfo{
		Category: category,
		Topic:    topics[index],
	}, nil
}

func (uc *UseCase) seasonalTopic() (*model.TopicInfo, error) {
	if len(uc.catalog.Seasonal) == 0 {
		return nil, goerr.New("no seasonal topics configured")
	}

	month := uc.now().Month()
	for _, entry := range uc.catalog.Seasonal {
		if entry.Month == month {
			return &model.TopicInfo{
				Category: model.CategorySeasonal,
				Topic:    entry.Topic,
				Seasonal: &model.SeasonalDetails{Month: entry.Month},
			}, nil
		}
	}

	entry := uc.catalog.Seasonal[uc.pick(len(uc.catalog.Seasonal))]
	return &model.TopicInfo{
		Category: model.CategorySeasonal,
		Topic:    entry.Topic,
		Seasonal: &model.SeasonalDetails{Month: entry.Month},
	}, nil
}

// randomTopic serves categories without a dedicated selection path by
// drawing from the category's catalog list when one exists.
func (uc *UseCase) randomTopic(category model.Category) (*model.TopicInfo, error) {
	topics := uc.catalog.Topics[category]
	if len(topics) == 0 {
		return nil, goerr.New("no topic source for category", goerr.V("category", category))
	}

	return &model.TopicInfo{
		Category: category,
		Topic:    topics[uc.pick(len(topics))],
	}, nil
}
