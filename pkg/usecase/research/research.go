// Package research runs idea-generation rounds: gather real signals
// (trends, search performance), ask the model for article ideas, filter
// duplicates against everything written before, and retry with
// escalating instructions until the quota is met or attempts run out.
package research

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minekvitteringer/skribent/pkg/adapter"
	"github.com/minekvitteringer/skribent/pkg/config"
	"github.com/minekvitteringer/skribent/pkg/model"
	"github.com/minekvitteringer/skribent/pkg/repository"
	"github.com/minekvitteringer/skribent/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"
)

// TrendFetcher supplies the day's trend records.
type TrendFetcher interface {
	FetchFresh(ctx context.Context) ([]model.TrendRecord, error)
}

// SignalAnalyzer summarizes search-performance data.
type SignalAnalyzer interface {
	Signals(ctx context.Context) (*model.SearchSignals, error)
}

// UseCase provides research round operations
type UseCase struct {
	repo   repository.Repository
	gemini adapter.Gemini
	trends TrendFetcher
	seo    SignalAnalyzer
	cfg    config.ResearchConfig
	stores []string
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

// WithStores sets the store names used in retry instructions
func WithStores(stores []string) Option {
	return func(uc *UseCase) {
		uc.stores = stores
	}
}

// New creates a new research UseCase instance
func New(
	repo repository.Repository,
	gemini adapter.Gemini,
	trends TrendFetcher,
	seo SignalAnalyzer,
	cfg config.ResearchConfig,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		repo:   repo,
		gemini: gemini,
		trends: trends,
		seo:    seo,
		cfg:    cfg,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Research runs one round: fetch trends and search signals in parallel
// (each fail-soft), build the prompt, call the model once, parse with
// repair, and record the outcome in the brain. round starts at 1; rounds
// above 1 add escalation instructions.
func (uc *UseCase) Research(ctx context.Context, focus string, count int, avoid []model.GeneratedTopic, round int) (*model.ResearchResult, error) {
	logger := logging.From(ctx)

	var trendRecords []model.TrendRecord
	var signals *model.SearchSignals

	// Independent read-only fetches. A failure degrades that source to
	// absent instead of aborting the round.
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		records, err := uc.trends.FetchFresh(egCtx)
		if err != nil {
			logger.Warn("trend fetch failed, continuing without trends", "error", err)
			return nil
		}
		trendRecords = records
		return nil
	})
	eg.Go(func() error {
		s, err := uc.seo.Signals(egCtx)
		if err != nil {
			logger.Warn("search performance analysis failed, continuing without it", "error", err)
			return nil
		}
		signals = s
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to gather research signals")
	}

	logger.Info("research signals gathered",
		"trends", len(trendRecords), "searchConsole", signals != nil, "round", round)

	prompt, err := uc.buildResearchPrompt(focus, count, avoid, round, trendRecords, signals)
	if err != nil {
		return nil, err
	}

	resp, err := uc.gemini.GenerateContent(ctx,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return nil, goerr.Wrap(err, "idea generation call failed")
	}

	text, err := adapter.ResponseText(resp)
	if err != nil {
		return nil, err
	}

	result, err := ParseResearchResult(text)
	if err != nil {
		return nil, err
	}
	result.MergeCreativeIdeas()

	if err := uc.recordResearch(ctx, focus, result); err != nil {
		logger.Warn("failed to record research in brain", "error", err)
	}

	return result, nil
}

// recordResearch stores the round's outcome in the brain: what was
// suggested, the trend and gap takeaways, and the session log.
func (uc *UseCase) recordResearch(ctx context.Context, focus string, result *model.ResearchResult) error {
	brain, err := uc.repo.LoadBrain(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to load brain")
	}

	now := uc.now()
	brain.LastResearch = &now
	brain.TrendingTopics = result.TrendingTopics
	brain.SEOGaps = result.SEOGaps
	brain.SuggestedTopics = result.ArticleIdeas
	brain.RecordInsight(model.Insight{
		Date:     now,
		Seasonal: result.SeasonalInsights,
		Data:     result.DataInsights,
	})

	if focus == "" {
		focus = "general"
	}
	brain.ResearchHistory = append(brain.ResearchHistory, model.ResearchEntry{
		Date:        now,
		Focus:       focus,
		TopicsFound: len(result.ArticleIdeas),
	})

	if err := uc.repo.SaveBrain(ctx, brain); err != nil {
		return goerr.Wrap(err, "failed to save brain")
	}
	return nil
}
