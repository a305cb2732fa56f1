// Package writer drafts articles with the generative model and publishes
// them to the CMS, recording each confirmed post in the topic history.
package writer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/minekvitteringer/skribent/pkg/adapter"
	"github.com/minekvitteringer/skribent/pkg/config"
	"github.com/minekvitteringer/skribent/pkg/model"
	"github.com/minekvitteringer/skribent/pkg/repository"
	"github.com/minekvitteringer/skribent/pkg/utils/logging"
	"google.golang.org/genai"
)

type UseCase struct {
	repo   repository.Repository
	gemini adapter.Gemini
	cms    adapter.CMS
	site   config.SiteConfig
	cfg    config.WriterConfig
	now    func() time.Time
}

type Option func(*UseCase)

// WithNow sets the clock, for tests
func WithNow(now func() time.Time) Option {
	return func(uc *UseCase) {
		uc.now = now
	}
}

// New creates a new writer UseCase instance
func New(
	repo repository.Repository,
	gemini adapter.Gemini,
	cms adapter.CMS,
	site config.SiteConfig,
	cfg config.WriterConfig,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		repo:   repo,
		gemini: gemini,
		cms:    cms,
		site:   site,
		cfg:    cfg,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Draft generates one article for the topic. The CMS is not touched.
func (uc *UseCase) Draft(ctx context.Context, info model.TopicInfo) (*model.Article, error) {
	prompt, err := uc.buildArticlePrompt(info)
	if err != nil {
		return nil, err
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	resp, err := uc.gemini.GenerateContent(ctx, contents, &genai.GenerateContentConfig{})
	if err != nil {
		return nil, goerr.Wrap(err, "article generation failed", goerr.V("topic", info.Topic))
	}

	text, err := adapter.ResponseText(resp)
	if err != nil {
		return nil, err
	}

	article, err := ParseArticle(text)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse article", goerr.V("topic", info.Topic))
	}

	logging.From(ctx).Info("article drafted",
		"topic", info.Topic,
		"title", article.Title,
		"category", info.Category,
	)
	return article, nil
}

// RunOptions controls one publishing run.
type RunOptions struct {
	// Publish posts articles live instead of as drafts.
	Publish bool
	// DryRun drafts articles without touching the CMS or the history.
	DryRun bool
}

// RunResult summarizes a publishing run.
type RunResult struct {
	Articles  []model.Article
	Posts     []model.Post
	Succeeded int
	Failed    int
}

// Run drafts and publishes one article per topic. A failed topic is
// logged and counted; the run continues with the next one. The topic
// history records an entry only after the CMS confirms the post, so a
// failed publish leaves the topic available for a later run.
func (uc *UseCase) Run(ctx context.Context, topics []model.TopicInfo, opts RunOptions) (*RunResult, error) {
	logger := logging.From(ctx).With("runID", uuid.NewString())
	result := &RunResult{}

	for i, info := range topics {
		if i > 0 && uc.cfg.PacingDelay > 0 {
			if err := pace(ctx, uc.cfg.PacingDelay); err != nil {
				return result, err
			}
		}

		article, err := uc.Draft(ctx, info)
		if err != nil {
			logger.Error("drafting failed", "topic", info.Topic, "error", err)
			result.Failed++
			continue
		}
		result.Articles = append(result.Articles, *article)

		if opts.DryRun {
			logger.Info("dry run, skipping publish", "title", article.Title)
			result.Succeeded++
			continue
		}

		post, err := uc.cms.CreatePost(ctx, *article, opts.Publish, uc.site.Tag)
		if err != nil {
			logger.Error("publish failed, topic stays available", "title", article.Title, "error", err)
			result.Failed++
			continue
		}
		result.Posts = append(result.Posts, *post)

		if err := uc.recordTopic(ctx, info, article, post); err != nil {
			logger.Warn("failed to record topic history", "title", article.Title, "error", err)
		}
		result.Succeeded++
	}

	logger.Info("publishing run finished",
		"succeeded", result.Succeeded,
		"failed", result.Failed,
		"dryRun", opts.DryRun,
	)
	return result, nil
}

func (uc *UseCase) recordTopic(ctx context.Context, info model.TopicInfo, article *model.Article, post *model.Post) error {
	record := model.GeneratedTopic{
		Title:       article.Title,
		Topic:       info.Topic,
		Category:    info.Category,
		Query:       info.Query,
		Keywords:    info.Keywords,
		DataSource:  info.DataSource,
		PostID:      post.ID,
		GeneratedAt: uc.now(),
	}
	if info.Store != nil {
		record.Store = info.Store.Store
	}
	return uc.repo.AppendTopicHistory(ctx, record)
}

func pace(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return goerr.Wrap(ctx.Err(), "publishing run aborted")
	case <-timer.C:
		return nil
	}
}
