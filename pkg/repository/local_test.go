package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/minekvitteringer/skribent/pkg/model"
	"github.com/minekvitteringer/skribent/pkg/repository"
)

func TestFirstRunYieldsFreshState(t *testing.T) {
	ctx := context.Background()
	repo := gt.R1(repository.NewLocal(t.TempDir())).NoError(t)

	topics := gt.R1(repo.LoadTopicHistory(ctx)).NoError(t)
	gt.Equal(t, len(topics), 0)

	state := gt.R1(repo.LoadRotationState(ctx)).NoError(t)
	gt.Equal(t, state.CurrentIndex, 0)
	gt.V(t, state.TopicIndexes).NotNil()

	brain := gt.R1(repo.LoadBrain(ctx)).NoError(t)
	gt.V(t, brain.LastResearch).Nil()

	snapshot := gt.R1(repo.LoadTrendSnapshot(ctx, "2025-06-01")).NoError(t)
	gt.V(t, snapshot).Nil()
}

func TestTopicHistoryAppendOnly(t *testing.T) {
	ctx := context.Background()
	repo := gt.R1(repository.NewLocal(t.TempDir())).NoError(t)

	first := model.GeneratedTopic{
		Title:       "Mistet kvittering - hva gjør du nå?",
		Category:    model.CategoryProblemSolving,
		GeneratedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	second := model.GeneratedTopic{
		Title:       "MVA-dokumentasjon for ENK",
		Category:    model.CategoryBusiness,
		Query:       "mva dokumentasjon",
		GeneratedAt: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
	}

	gt.NoError(t, repo.AppendTopicHistory(ctx, first))
	gt.NoError(t, repo.AppendTopicHistory(ctx, second))

	topics := gt.R1(repo.LoadTopicHistory(ctx)).NoError(t)
	gt.Equal(t, len(topics), 2)
	gt.Equal(t, topics[0].Title, first.Title)
	gt.Equal(t, topics[1].Query, second.Query)

	gt.NoError(t, repo.ClearTopicHistory(ctx))
	topics = gt.R1(repo.LoadTopicHistory(ctx)).NoError(t)
	gt.Equal(t, len(topics), 0)
}

func TestRotationStateRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := gt.R1(repository.NewLocal(dir)).NoError(t)

	state := gt.R1(repo.LoadRotationState(ctx)).NoError(t)
	state.CurrentIndex = 3
	state.StoreIndex = 7
	state.TopicIndexes[model.CategoryBusiness] = 2
	state.RecordPick(model.CategoryTrending, time.Now())
	gt.NoError(t, repo.SaveRotationState(ctx, state))

	// A separate repository instance sees the persisted cursors.
	repo2 := gt.R1(repository.NewLocal(dir)).NoError(t)
	loaded := gt.R1(repo2.LoadRotationState(ctx)).NoError(t)
	gt.Equal(t, loaded.CurrentIndex, 3)
	gt.Equal(t, loaded.StoreIndex, 7)
	gt.Equal(t, loaded.TopicIndexes[model.CategoryBusiness], 2)
	gt.Equal(t, loaded.LastCategory, model.CategoryTrending)
}

func TestCorruptStateFileStartsFresh(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	gt.NoError(t, os.WriteFile(filepath.Join(dir, "agent-brain.json"), []byte("{not json"), 0o644))

	repo := gt.R1(repository.NewLocal(dir)).NoError(t)
	brain := gt.R1(repo.LoadBrain(ctx)).NoError(t)
	gt.V(t, brain).NotNil()
	gt.Equal(t, len(brain.SuggestedTopics), 0)
}

func TestTrendSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := gt.R1(repository.NewLocal(t.TempDir())).NoError(t)

	snapshot := &model.TrendSnapshot{
		Date:      "2025-06-01",
		FetchedAt: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
		Trends: []model.TrendRecord{
			{Title: "garanti mobil", Traffic: "20k+", Source: model.TrendOriginFeed},
		},
	}
	gt.NoError(t, repo.SaveTrendSnapshot(ctx, snapshot))

	loaded := gt.R1(repo.LoadTrendSnapshot(ctx, "2025-06-01")).NoError(t)
	gt.V(t, loaded).NotNil()
	gt.Equal(t, loaded.Count(), 1)
	gt.Equal(t, loaded.Trends[0].Key(), "garanti mobil")
}
