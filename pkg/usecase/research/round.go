package research

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minekvitteringer/skribent/pkg/model"
	"github.com/minekvitteringer/skribent/pkg/utils/logging"
)

// CollectOptions tunes a multi-round idea collection run.
type CollectOptions struct {
	// Focus narrows the research theme; empty means general analysis.
	Focus string

	// BypassDuplicates skips dedup entirely: no history loaded, every
	// returned idea accepted, request count not inflated.
	BypassDuplicates bool
}

// CollectResult is the outcome of a collection run. Ideas may be shorter
// than the target; a zero-length Ideas after all attempts is the defined
// give-up outcome, never padded with duplicates.
type CollectResult struct {
	Ideas    []model.Idea
	Rejected []model.RejectedIdea
	Attempts int
}

// CollectUniqueIdeas runs research rounds until target unique ideas are
// accumulated or attempts run out. Each round requests more ideas than
// still needed to compensate for the duplicate rate, and tells the model
// everything accepted or rejected so far so it steers away from it.
func (uc *UseCase) CollectUniqueIdeas(ctx context.Context, target int, opts CollectOptions) (*CollectResult, error) {
	if target <= 0 {
		return nil, goerr.New("target count must be positive", goerr.V("target", target))
	}
	logger := logging.From(ctx)

	var previous []model.GeneratedTopic
	if !opts.BypassDuplicates {
		history, err := uc.repo.LoadTopicHistory(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to load topic history")
		}
		previous = history
		logger.Info("loaded topic history", "count", len(previous))
	}

	var accumulated []model.Idea
	var rejected []model.RejectedIdea
	attempts := 0

	for len(accumulated) < target && attempts < uc.cfg.MaxAttempts {
		attempts++
		needed := target - len(accumulated)
		requestCount := uc.requestCount(needed, attempts, opts.BypassDuplicates)

		logger.Info("research round", "attempt", attempts, "needed", needed, "requesting", requestCount)

		avoid := uc.avoidList(previous, accumulated, rejected, opts.BypassDuplicates)
		result, err := uc.Research(ctx, opts.Focus, requestCount, avoid, attempts)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			// A failed or unparseable round counts as zero ideas.
			logger.Warn("research round failed", "attempt", attempts, "error", err)
			continue
		}
		if len(result.ArticleIdeas) == 0 {
			logger.Warn("research returned no ideas this round", "attempt", attempts)
			continue
		}

		if opts.BypassDuplicates {
			accumulated = append(accumulated, result.ArticleIdeas...)
			continue
		}

		universe := make([]model.GeneratedTopic, 0, len(previous)+len(accumulated))
		universe = append(universe, previous...)
		for _, idea := range accumulated {
			universe = append(universe, model.GeneratedTopic{
				Title: idea.Title,
				Topic: idea.Title,
				Query: idea.PrimaryKeyword,
			})
		}

		accepted, roundRejected := FilterUnique(result.ArticleIdeas, universe, uc.cfg.SimilarityThreshold)
		rejected = append(rejected, roundRejected...)
		accumulated = append(accumulated, accepted...)

		logger.Info("round filtered", "accepted", len(accepted), "rejected", len(roundRejected),
			"total", len(accumulated), "target", target)
	}

	if len(accumulated) > target {
		accumulated = accumulated[:target]
	}
	if len(accumulated) == 0 {
		logger.Warn("no unique ideas found after all attempts", "attempts", attempts)
	}

	return &CollectResult{
		Ideas:    accumulated,
		Rejected: rejected,
		Attempts: attempts,
	}, nil
}

// requestCount inflates the per-round ask to cover the expected duplicate
// rate: double on the first round, triple after, with a floor so small
// targets still give the filter something to choose from.
func (uc *UseCase) requestCount(needed, attempt int, bypass bool) int {
	if bypass {
		return needed
	}

	multiplier := 3
	if attempt == 1 {
		multiplier = 2
	}
	count := needed * multiplier
	if count < uc.cfg.MinRequestCount {
		count = uc.cfg.MinRequestCount
	}
	return count
}

// avoidList is everything the model should steer away from: the persisted
// history, ideas accepted earlier in this run, and titles already
// rejected as duplicates.
func (uc *UseCase) avoidList(previous []model.GeneratedTopic, accumulated []model.Idea, rejected []model.RejectedIdea, bypass bool) []model.GeneratedTopic {
	if bypass {
		return nil
	}

	avoid := make([]model.GeneratedTopic, 0, len(previous)+len(accumulated)+len(rejected))
	avoid = append(avoid, previous...)
	for _, idea := range accumulated {
		avoid = append(avoid, model.GeneratedTopic{Title: idea.Title, Topic: idea.Title, Query: idea.PrimaryKeyword})
	}
	for _, r := range rejected {
		avoid = append(avoid, model.GeneratedTopic{Title: r.Title, Topic: r.Title})
	}
	return avoid
}
