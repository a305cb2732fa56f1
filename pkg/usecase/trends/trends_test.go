package trends_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/minekvitteringer/skribent/pkg/config"
	"github.com/minekvitteringer/skribent/pkg/model"
	"github.com/minekvitteringer/skribent/pkg/repository"
	"github.com/minekvitteringer/skribent/pkg/usecase/trends"
)

// mockSource is a mock implementation of adapter.TrendSource for testing
type mockSource struct {
	records   []model.TrendRecord
	err       error
	callCount int
}

func (m *mockSource) FetchTrends(ctx context.Context) ([]model.TrendRecord, error) {
	m.callCount++
	return m.records, m.err
}

func feedRecords(n int) []model.TrendRecord {
	records := make([]model.TrendRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, model.TrendRecord{
			Title:   fmt.Sprintf("trend %d", i),
			Traffic: "1000+",
			Source:  model.TrendOriginFeed,
		})
	}
	return records
}

func fixedClock(date string) func() time.Time {
	t, _ := time.Parse("2006-01-02", date)
	return func() time.Time { return t }
}

func newUseCase(t *testing.T, source *mockSource) (*trends.UseCase, repository.Repository) {
	repo := gt.R1(repository.NewLocal(t.TempDir())).NoError(t)
	uc := trends.New(repo, source, config.Default().Research, trends.WithNow(fixedClock("2026-08-29")))
	return uc, repo
}

func TestFetchCachesForTheDay(t *testing.T) {
	ctx := context.Background()
	source := &mockSource{records: feedRecords(20)}
	uc, repo := newUseCase(t, source)

	first := gt.R1(uc.Fetch(ctx)).NoError(t)
	gt.A(t, first).Length(20)
	gt.V(t, source.callCount).Equal(1)

	// Second call the same day serves from the brain cache.
	second := gt.R1(uc.Fetch(ctx)).NoError(t)
	gt.A(t, second).Length(20)
	gt.V(t, source.callCount).Equal(1)
	gt.V(t, second[0].Source).Equal(model.TrendOriginCache)

	// The day's snapshot was persisted.
	snapshot := gt.R1(repo.LoadTrendSnapshot(ctx, "2026-08-29")).NoError(t)
	gt.V(t, snapshot.Count()).Equal(20)
}

func TestFetchDedupesAndCaps(t *testing.T) {
	records := feedRecords(250)
	records = append(records, model.TrendRecord{Title: "TREND 0", Traffic: "500+", Source: model.TrendOriginFeed})
	source := &mockSource{records: records}
	uc, _ := newUseCase(t, source)

	got := gt.R1(uc.Fetch(context.Background())).NoError(t)
	gt.A(t, got).Length(200)

	seen := map[string]bool{}
	for _, r := range got {
		gt.False(t, seen[r.Key()])
		seen[r.Key()] = true
	}
}

func TestFetchFallsBackToHistoricalSnapshot(t *testing.T) {
	ctx := context.Background()
	source := &mockSource{records: feedRecords(3)} // below the snapshot minimum
	uc, repo := newUseCase(t, source)

	gt.NoError(t, repo.SaveTrendSnapshot(ctx, &model.TrendSnapshot{
		Date:   "2026-08-26",
		Trends: feedRecords(15),
	}))

	got := gt.R1(uc.Fetch(ctx)).NoError(t)
	gt.A(t, got).Length(15)

	brain := gt.R1(repo.LoadBrain(ctx)).NoError(t)
	gt.A(t, brain.FallbackUsage).Length(1)
	gt.V(t, brain.FallbackUsage[0].Date).Equal("2026-08-26")
	gt.V(t, brain.FallbackUsage[0].TrendCount).Equal(15)
}

// flakySnapshotRepo fails LoadTrendSnapshot for one date, like a
// transient backend error, and delegates everything else.
type flakySnapshotRepo struct {
	repository.Repository
	failDate string
}

func (r *flakySnapshotRepo) LoadTrendSnapshot(ctx context.Context, date string) (*model.TrendSnapshot, error) {
	if date == r.failDate {
		return nil, errors.New("backend unavailable")
	}
	return r.Repository.LoadTrendSnapshot(ctx, date)
}

func TestFetchSkipsUnreadableSnapshotDays(t *testing.T) {
	ctx := context.Background()
	source := &mockSource{records: feedRecords(3)}
	local := gt.R1(repository.NewLocal(t.TempDir())).NoError(t)
	repo := &flakySnapshotRepo{Repository: local, failDate: "2026-08-28"}
	uc := trends.New(repo, source, config.Default().Research, trends.WithNow(fixedClock("2026-08-29")))

	gt.NoError(t, local.SaveTrendSnapshot(ctx, &model.TrendSnapshot{
		Date:   "2026-08-26",
		Trends: feedRecords(15),
	}))

	// The unreadable day in between must not abort the walk.
	got := gt.R1(uc.Fetch(ctx)).NoError(t)
	gt.A(t, got).Length(15)
}

func TestFetchIgnoresSnapshotsBeyondFallbackWindow(t *testing.T) {
	ctx := context.Background()
	source := &mockSource{records: feedRecords(3)}
	uc, repo := newUseCase(t, source)

	// Eight days back is outside the seven-day window.
	gt.NoError(t, repo.SaveTrendSnapshot(ctx, &model.TrendSnapshot{
		Date:   "2026-08-21",
		Trends: feedRecords(15),
	}))

	// Today's small result wins over an out-of-window snapshot.
	got := gt.R1(uc.Fetch(ctx)).NoError(t)
	gt.A(t, got).Length(3)
}

func TestFetchReturnsDefaultsWhenNothingAvailable(t *testing.T) {
	source := &mockSource{err: errors.New("feed unreachable")}
	uc, _ := newUseCase(t, source)

	got := gt.R1(uc.Fetch(context.Background())).NoError(t)
	gt.A(t, got).Longer(0)
	for _, r := range got {
		gt.V(t, r.Source).Equal(model.TrendOriginFallback)
	}
}

func TestFetchKeepsSmallResultWhenNoHistory(t *testing.T) {
	source := &mockSource{records: feedRecords(4)}
	uc, _ := newUseCase(t, source)

	got := gt.R1(uc.Fetch(context.Background())).NoError(t)
	gt.A(t, got).Length(4)
	gt.V(t, got[0].Source).Equal(model.TrendOriginFeed)
}

func TestClearCacheForcesRefetch(t *testing.T) {
	ctx := context.Background()
	source := &mockSource{records: feedRecords(20)}
	uc, _ := newUseCase(t, source)

	gt.R1(uc.Fetch(ctx)).NoError(t)
	gt.NoError(t, uc.ClearCache(ctx))
	gt.R1(uc.Fetch(ctx)).NoError(t)
	gt.V(t, source.callCount).Equal(2)
}

func TestFetchFreshRefreshesSparseCache(t *testing.T) {
	ctx := context.Background()
	source := &mockSource{records: feedRecords(20)} // under 50, so the cache is sparse
	uc, _ := newUseCase(t, source)

	gt.R1(uc.Fetch(ctx)).NoError(t)
	gt.V(t, source.callCount).Equal(1)

	gt.R1(uc.FetchFresh(ctx)).NoError(t)
	gt.V(t, source.callCount).Equal(2)
}

func TestFetchFreshKeepsRichCache(t *testing.T) {
	ctx := context.Background()
	source := &mockSource{records: feedRecords(80)}
	uc, _ := newUseCase(t, source)

	gt.R1(uc.Fetch(ctx)).NoError(t)
	gt.R1(uc.FetchFresh(ctx)).NoError(t)
	gt.V(t, source.callCount).Equal(1)
}
