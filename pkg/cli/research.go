package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/m-mizutani/goerr/v2"
	"github.com/minekvitteringer/skribent/pkg/adapter"
	"github.com/minekvitteringer/skribent/pkg/usecase/research"
	"github.com/minekvitteringer/skribent/pkg/usecase/seo"
	"github.com/minekvitteringer/skribent/pkg/usecase/trends"
	"github.com/urfave/cli/v3"
)

func researchCommand() *cli.Command {
	var (
		cfg   config
		focus string
		count int64
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "focus",
			Aliases:     []string{"f"},
			Usage:       "Research focus area",
			Destination: &focus,
		},
		&cli.IntFlag{
			Name:        "count",
			Aliases:     []string{"c"},
			Usage:       "Number of article ideas to request",
			Value:       10,
			Destination: &count,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)
	flags = append(flags, searchFlags(&cfg)...)

	return &cli.Command{
		Name:  "research",
		Usage: "Run one research round and print the ranked ideas",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, conf, err := cfg.setup(ctx)
			if err != nil {
				return err
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			gemini, err := cfg.newGemini(ctx)
			if err != nil {
				return err
			}

			trendsUC := trends.New(repo, cfg.newTrendSource(conf), conf.Research)
			seoUC := seo.New(adapter.NewSearchConsole(cfg.searchDataDir), conf.Research, seo.WithStores(conf.Catalog.Stores))
			uc := research.New(repo, gemini, trendsUC, seoUC, conf.Research, research.WithStores(conf.Catalog.Stores))

			history, err := repo.LoadTopicHistory(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to load topic history")
			}

			s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			s.Suffix = " Researching article ideas..."
			s.Start()
			result, err := uc.Research(ctx, focus, int(count), history, 1)
			s.Stop()
			if err != nil {
				return err
			}

			w := c.Root().Writer
			fmt.Fprintf(w, "Research complete: %d idea(s)\n\n", len(result.ArticleIdeas))
			for i, idea := range result.ArticleIdeas {
				fmt.Fprintf(w, "%2d. [%s/%s] %s\n", i+1, idea.Category, idea.Priority, idea.Title)
				if idea.PrimaryKeyword != "" {
					fmt.Fprintf(w, "    keyword: %s\n", idea.PrimaryKeyword)
				}
				if idea.Rationale != "" {
					fmt.Fprintf(w, "    %s\n", idea.Rationale)
				}
			}
			if len(result.TrendingTopics) > 0 {
				fmt.Fprintf(w, "\nTrending topics:\n")
				for _, tr := range result.TrendingTopics {
					fmt.Fprintf(w, "  - %s (%s)\n", tr.Topic, tr.Relevance)
				}
			}
			if len(result.SEOGaps) > 0 {
				fmt.Fprintf(w, "\nSearch gaps:\n")
				for _, gap := range result.SEOGaps {
					fmt.Fprintf(w, "  - %q -> %s\n", gap.Keyword, gap.SuggestedTitle)
				}
			}
			return nil
		},
	}
}
