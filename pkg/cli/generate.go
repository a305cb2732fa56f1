package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minekvitteringer/skribent/pkg/adapter"
	"github.com/minekvitteringer/skribent/pkg/model"
	"github.com/minekvitteringer/skribent/pkg/usecase/research"
	"github.com/minekvitteringer/skribent/pkg/usecase/seo"
	"github.com/minekvitteringer/skribent/pkg/usecase/trends"
	"github.com/minekvitteringer/skribent/pkg/usecase/writer"
	"github.com/urfave/cli/v3"
)

func generateCommand() *cli.Command {
	var (
		cfg              config
		count            int64
		focus            string
		autoPost         bool
		dryRun           bool
		bypassDuplicates bool
	)

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "count",
			Aliases:     []string{"c"},
			Usage:       "Number of articles to generate",
			Value:       1,
			Destination: &count,
		},
		&cli.StringFlag{
			Name:        "focus",
			Usage:       "Research focus area",
			Destination: &focus,
		},
		&cli.BoolFlag{
			Name:        "autopost",
			Aliases:     []string{"a"},
			Usage:       "Publish immediately instead of draft",
			Destination: &autoPost,
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Generate without posting to the CMS",
			Destination: &dryRun,
		},
		&cli.BoolFlag{
			Name:        "bypass-duplicates",
			Usage:       "Skip duplicate checking against earlier topics",
			Destination: &bypassDuplicates,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)
	flags = append(flags, searchFlags(&cfg)...)
	flags = append(flags, ghostFlags(&cfg)...)

	return &cli.Command{
		Name:  "generate",
		Usage: "Research topics, draft articles and publish them",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if count < 1 {
				return goerr.New("count must be at least 1")
			}

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

			var cms adapter.CMS
			if !dryRun {
				cms, err = cfg.newGhost()
				if err != nil {
					return err
				}
				if err := cms.TestConnection(ctx); err != nil {
					return goerr.Wrap(err, "could not connect to the CMS, check the API credentials")
				}
			}

			trendsUC := trends.New(repo, cfg.newTrendSource(conf), conf.Research)
			seoUC := seo.New(adapter.NewSearchConsole(cfg.searchDataDir), conf.Research, seo.WithStores(conf.Catalog.Stores))
			researchUC := research.New(repo, gemini, trendsUC, seoUC, conf.Research, research.WithStores(conf.Catalog.Stores))

			collected, err := researchUC.CollectUniqueIdeas(ctx, int(count), research.CollectOptions{
				Focus:            focus,
				BypassDuplicates: bypassDuplicates,
			})
			if err != nil {
				return goerr.Wrap(err, "idea collection failed")
			}
			if len(collected.Ideas) == 0 {
				fmt.Fprintf(c.Root().Writer, "No unique ideas found after %d attempt(s), nothing to write\n", collected.Attempts)
				return nil
			}

			topics := make([]model.TopicInfo, 0, len(collected.Ideas))
			for _, idea := range collected.Ideas {
				topics = append(topics, model.FromIdea(idea))
			}

			writerUC := writer.New(repo, gemini, cms, conf.Site, conf.Writer)
			result, err := writerUC.Run(ctx, topics, writer.RunOptions{
				Publish: autoPost,
				DryRun:  dryRun,
			})
			if err != nil {
				return err
			}

			w := c.Root().Writer
			fmt.Fprintf(w, "Ideas collected: %d (rejected %d, attempts %d)\n",
				len(collected.Ideas), len(collected.Rejected), collected.Attempts)
			fmt.Fprintf(w, "Articles succeeded: %d, failed: %d\n", result.Succeeded, result.Failed)
			for _, post := range result.Posts {
				fmt.Fprintf(w, "  [%s] %s\n", post.Status, post.Title)
			}
			if dryRun {
				for _, article := range result.Articles {
					fmt.Fprintf(w, "  [dry-run] %s\n", article.Title)
				}
			}
			return nil
		},
	}
}
