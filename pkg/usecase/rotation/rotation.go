// Package rotation cycles through content categories, stores and
// per-category topic lists with persisted modulo cursors, so consecutive
// runs spread articles evenly instead of repeating the same slot.
package rotation

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minekvitteringer/skribent/pkg/config"
	"github.com/minekvitteringer/skribent/pkg/model"
	"github.com/minekvitteringer/skribent/pkg/repository"
)

// UseCase provides rotation cursor operations
type UseCase struct {
	repo    repository.Repository
	catalog config.CatalogConfig
	now     func() time.Time
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithNow sets the clock, for tests
func WithNow(now func() time.Time) Option {
	return func(uc *UseCase) {
		uc.now = now
	}
}

// New creates a new rotation UseCase instance
func New(repo repository.Repository, catalog config.CatalogConfig, opts ...Option) *UseCase {
	uc := &UseCase{
		repo:    repo,
		catalog: catalog,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// NextCategory returns the category at the cursor and advances it. The
// pick is logged to the capped history before saving.
func (uc *UseCase) NextCategory(ctx context.Context) (model.Category, error) {
	if len(uc.catalog.Categories) == 0 {
		return "", goerr.New("no categories configured")
	}

	state, err := uc.repo.LoadRotationState(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to load rotation state")
	}

	category := uc.catalog.Categories[state.CurrentIndex%len(uc.catalog.Categories)]
	state.CurrentIndex = (state.CurrentIndex + 1) % len(uc.catalog.Categories)
	state.RecordPick(category, uc.now())

	if err := uc.repo.SaveRotationState(ctx, state); err != nil {
		return "", goerr.Wrap(err, "failed to save rotation state")
	}
	return category, nil
}

// NextStore returns the store at the store cursor and advances it.
func (uc *UseCase) NextStore(ctx context.Context) (string, error) {
	if len(uc.catalog.Stores) == 0 {
		return "", goerr.New("no stores configured")
	}

	state, err := uc.repo.LoadRotationState(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to load rotation state")
	}

	store := uc.catalog.Stores[state.StoreIndex%len(uc.catalog.Stores)]
	state.StoreIndex = (state.StoreIndex + 1) % len(uc.catalog.Stores)

	if err := uc.repo.SaveRotationState(ctx, state); err != nil {
		return "", goerr.Wrap(err, "failed to save rotation state")
	}
	return store, nil
}

// NextTopicIndex returns the topic-list index for the category and
// advances that category's cursor. maxTopics is the list length; the
// cursor wraps so every topic is visited before any repeats.
func (uc *UseCase) NextTopicIndex(ctx context.Context, category model.Category, maxTopics int) (int, error) {
	if maxTopics <= 0 {
		return 0, goerr.New("topic list is empty", goerr.V("category", category))
	}

	state, err := uc.repo.LoadRotationState(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to load rotation state")
	}
	if state.TopicIndexes == nil {
		state.TopicIndexes = map[model.Category]int{}
	}

	index := state.TopicIndexes[category] % maxTopics
	state.TopicIndexes[category] = (state.TopicIndexes[category] + 1) % maxTopics

	if err := uc.repo.SaveRotationState(ctx, state); err != nil {
		return 0, goerr.Wrap(err, "failed to save rotation state")
	}
	return index, nil
}

// Stats summarizes the pick history for the status command.
type Stats struct {
	TotalGenerated int
	CurrentIndex   int
	StoreIndex     int
	CategoryCounts map[model.Category]int
	LastCategory   model.Category
}

// Stats returns cursor positions and per-category pick counts.
func (uc *UseCase) Stats(ctx context.Context) (*Stats, error) {
	state, err := uc.repo.LoadRotationState(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load rotation state")
	}

	counts := map[model.Category]int{}
	for _, pick := range state.CategoryHistory {
		counts[pick.Category]++
	}

	return &Stats{
		TotalGenerated: len(state.CategoryHistory),
		CurrentIndex:   state.CurrentIndex,
		StoreIndex:     state.StoreIndex,
		CategoryCounts: counts,
		LastCategory:   state.LastCategory,
	}, nil
}

// Reset zeroes all cursors and clears the history.
func (uc *UseCase) Reset(ctx context.Context) error {
	if err := uc.repo.SaveRotationState(ctx, model.NewRotationState()); err != nil {
		return goerr.Wrap(err, "failed to reset rotation state")
	}
	return nil
}
