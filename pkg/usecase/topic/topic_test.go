package topic_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/minekvitteringer/skribent/pkg/config"
	"github.com/minekvitteringer/skribent/pkg/model"
	"github.com/minekvitteringer/skribent/pkg/repository"
	"github.com/minekvitteringer/skribent/pkg/usecase/topic"
)

type stubRotator struct {
	store      string
	storeErr   error
	topicIndex int
	indexErr   error
}

func (s *stubRotator) NextCategory(ctx context.Context) (model.Category, error) {
	return model.CategoryTrending, nil
}

func (s *stubRotator) NextStore(ctx context.Context) (string, error) {
	return s.store, s.storeErr
}

func (s *stubRotator) NextTopicIndex(ctx context.Context, category model.Category, maxTopics int) (int, error) {
	if s.indexErr != nil {
		return 0, s.indexErr
	}
	return s.topicIndex % maxTopics, nil
}

type stubTrends struct {
	records []model.TrendRecord
	err     error
}

func (s *stubTrends) Fetch(ctx context.Context) ([]model.TrendRecord, error) {
	return s.records, s.err
}

type stubGaps struct {
	queries []model.AggregatedQuery
	gaps    []model.Opportunity
	loadErr error
}

func (s *stubGaps) Load(ctx context.Context) ([]model.AggregatedQuery, []model.AggregatedPage, error) {
	return s.queries, nil, s.loadErr
}

func (s *stubGaps) Gaps(queries []model.AggregatedQuery) []model.Opportunity {
	return s.gaps
}

func fixedPick(index int) func(int) int {
	return func(n int) int {
		return index % n
	}
}

func testCatalog() config.CatalogConfig {
	return config.Default().Catalog
}

func newUseCase(t *testing.T, rotator topic.Rotator, trends topic.TrendProvider, gaps topic.GapSource, opts ...topic.Option) (*topic.UseCase, repository.Repository) {
	t.Helper()
	repo := gt.R1(repository.NewLocal(t.TempDir())).NoError(t)
	uc := topic.New(repo, rotator, trends, gaps, testCatalog(), opts...)
	return uc, repo
}

func TestNextTopicTrendingSkipsUsedTitles(t *testing.T) {
	ctx := context.Background()
	trends := &stubTrends{records: []model.TrendRecord{
		{Title: "Black Friday elektronikk", Traffic: "50K+", Source: model.TrendOriginFeed},
		{Title: "Garanti på mobil", Traffic: "20K+", Source: model.TrendOriginFeed},
	}}
	uc, repo := newUseCase(t, &stubRotator{}, trends, &stubGaps{})

	gt.NoError(t, repo.AppendTopicHistory(ctx, model.GeneratedTopic{
		Title:       "Black Friday Elektronikk",
		GeneratedAt: time.Now(),
	}))

	info := gt.R1(uc.NextTopic(ctx, model.CategoryTrending)).NoError(t)
	gt.V(t, info.Category).Equal(model.CategoryTrending)
	gt.V(t, info.Topic).Equal("Garanti på mobil")
	gt.V(t, info.Trend).NotNil()
	gt.V(t, info.Trend.Traffic).Equal("20K+")
}

func TestNextTopicTrendingFallsBackWhenExhausted(t *testing.T) {
	ctx := context.Background()
	trends := &stubTrends{records: []model.TrendRecord{
		{Title: "Brukt trend", Traffic: "10K+", Source: model.TrendOriginFeed},
	}}
	uc, repo := newUseCase(t, &stubRotator{}, trends, &stubGaps{}, topic.WithPick(fixedPick(0)))

	gt.NoError(t, repo.AppendTopicHistory(ctx, model.GeneratedTopic{
		Topic:       "brukt trend",
		GeneratedAt: time.Now(),
	}))

	info := gt.R1(uc.NextTopic(ctx, model.CategoryTrending)).NoError(t)
	gt.V(t, info.Topic).Equal("Nye forbrukerrettigheter - dette må du vite")
	gt.V(t, info.Trend == nil).Equal(true)
}

func TestNextTopicTrendingFetchErrorFallsBack(t *testing.T) {
	ctx := context.Background()
	trends := &stubTrends{err: context.DeadlineExceeded}
	uc, _ := newUseCase(t, &stubRotator{}, trends, &stubGaps{}, topic.WithPick(fixedPick(2)))

	info := gt.R1(uc.NextTopic(ctx, model.CategoryTrending)).NoError(t)
	gt.V(t, info.Topic).Equal("Rekordmange nordmenn handler på nett - slik holder du orden")
}

func TestNextTopicGapPicksFirstUnused(t *testing.T) {
	ctx := context.Background()
	gaps := &stubGaps{gaps: []model.Opportunity{
		{AggregatedQuery: model.AggregatedQuery{Query: "garanti elkjøp", Impressions: 400, Clicks: 2, Position: 12}, Score: 330},
		{AggregatedQuery: model.AggregatedQuery{Query: "kvittering vipps", Impressions: 200, Clicks: 1, Position: 8}, Score: 245},
	}}
	uc, repo := newUseCase(t, &stubRotator{}, &stubTrends{}, gaps)

	// First gap is used via an old title that contains the query.
	gt.NoError(t, repo.AppendTopicHistory(ctx, model.GeneratedTopic{
		Title:       "Alt om garanti Elkjøp og retur",
		GeneratedAt: time.Now(),
	}))

	info := gt.R1(uc.NextTopic(ctx, model.CategorySEOGap)).NoError(t)
	gt.V(t, info.Query).Equal("kvittering vipps")
	gt.V(t, info.Topic).Equal(`Artikkel optimalisert for: "kvittering vipps"`)
	gt.V(t, info.Gap).NotNil()
	gt.V(t, info.Gap.Impressions).Equal(200)
	gt.V(t, info.Gap.Score).Equal(245.0)
}

func TestNextTopicGapSkipsByExactQuery(t *testing.T) {
	ctx := context.Background()
	gaps := &stubGaps{gaps: []model.Opportunity{
		{AggregatedQuery: model.AggregatedQuery{Query: "mistet kvittering", Impressions: 100}, Score: 90},
	}}
	uc, repo := newUseCase(t, &stubRotator{}, &stubTrends{}, gaps)

	gt.NoError(t, repo.AppendTopicHistory(ctx, model.GeneratedTopic{
		Query:       "Mistet Kvittering",
		GeneratedAt: time.Now(),
	}))

	info := gt.R1(uc.NextTopic(ctx, model.CategorySEOGap)).NoError(t)
	gt.V(t, info.Query).Equal("digital kvittering")
	gt.V(t, info.Topic).Equal("Digitale kvitteringer - alt du trenger å vite")
	gt.V(t, info.Gap == nil).Equal(true)
}

func TestNextTopicGapFallbackWhenNoGaps(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, &stubRotator{}, &stubTrends{}, &stubGaps{})

	info := gt.R1(uc.NextTopic(ctx, model.CategorySEOGap)).NoError(t)
	gt.V(t, info.Query).Equal("digital kvittering")
}

func TestNextTopicStoreGuide(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, &stubRotator{store: "Power"}, &stubTrends{}, &stubGaps{}, topic.WithPick(fixedPick(0)))

	info := gt.R1(uc.NextTopic(ctx, model.CategoryStoreGuide)).NoError(t)
	gt.V(t, info.Category).Equal(model.CategoryStoreGuide)
	gt.V(t, info.Topic).Equal("Slik finner du kvitteringer fra Power")
	gt.V(t, info.Store).NotNil()
	gt.V(t, info.Store.Store).Equal("Power")
}

func TestNextTopicListCategoryUsesRotationIndex(t *testing.T) {
	ctx := context.Background()
	catalog := testCatalog()
	uc, _ := newUseCase(t, &stubRotator{topicIndex: 1}, &stubTrends{}, &stubGaps{})

	info := gt.R1(uc.NextTopic(ctx, model.CategoryBusiness)).NoError(t)
	gt.V(t, info.Category).Equal(model.CategoryBusiness)
	gt.V(t, info.Topic).Equal(catalog.Topics[model.CategoryBusiness][1])
}

func TestNextTopicSeasonalMatchesCurrentMonth(t *testing.T) {
	ctx := context.Background()
	december := func() time.Time {
		return time.Date(2026, time.December, 5, 12, 0, 0, 0, time.UTC)
	}
	uc, _ := newUseCase(t, &stubRotator{}, &stubTrends{}, &stubGaps{}, topic.WithNow(december))

	info := gt.R1(uc.NextTopic(ctx, model.CategorySeasonal)).NoError(t)
	gt.V(t, info.Seasonal).NotNil()
	gt.V(t, info.Seasonal.Month).Equal(time.December)

	var want string
	for _, entry := range testCatalog().Seasonal {
		if entry.Month == time.December {
			want = entry.Topic
		}
	}
	gt.V(t, info.Topic).Equal(want)
}

func TestNextTopicAICreativeDrawsFromCatalog(t *testing.T) {
	ctx := context.Background()
	catalog := testCatalog()
	catalog.Topics[model.CategoryAICreative] = []string{
		"Fremtidens kvittering: Hva skjer når papiret forsvinner helt?",
		"Kvitteringen som reddet ferien - historier fra virkeligheten",
	}
	repo := gt.R1(repository.NewLocal(t.TempDir())).NoError(t)
	uc := topic.New(repo, &stubRotator{}, &stubTrends{}, &stubGaps{}, catalog, topic.WithPick(fixedPick(1)))

	info := gt.R1(uc.NextTopic(ctx, model.CategoryAICreative)).NoError(t)
	gt.V(t, info.Topic).Equal("Kvitteringen som reddet ferien - historier fra virkeligheten")
}

func TestNextTopicUnknownCategoryWithoutTopicsFails(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, &stubRotator{}, &stubTrends{}, &stubGaps{})

	_, err := uc.NextTopic(ctx, model.CategoryAICreative)
	gt.Error(t, err)
}
