package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/minekvitteringer/skribent/pkg/adapter"
	"github.com/minekvitteringer/skribent/pkg/usecase/research"
	"github.com/minekvitteringer/skribent/pkg/usecase/seo"
	"github.com/minekvitteringer/skribent/pkg/usecase/trends"
	"github.com/urfave/cli/v3"
)

func suggestCommand() *cli.Command {
	var (
		cfg   config
		count int64
	)

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "count",
			Aliases:     []string{"c"},
			Usage:       "Number of suggestions to request",
			Value:       5,
			Destination: &count,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)
	flags = append(flags, searchFlags(&cfg)...)

	return &cli.Command{
		Name:  "suggest",
		Usage: "Generate topic suggestions from the research memory",
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

			s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			s.Suffix = " Generating suggestions..."
			s.Start()
			ideas, err := uc.GenerateSmartTopics(ctx, int(count))
			s.Stop()
			if err != nil {
				return err
			}

			w := c.Root().Writer
			fmt.Fprintf(w, "%d suggestion(s)\n\n", len(ideas))
			for i, idea := range ideas {
				fmt.Fprintf(w, "%2d. [%s] %s\n", i+1, idea.Category, idea.Title)
				if idea.Rationale != "" {
					fmt.Fprintf(w, "    %s\n", idea.Rationale)
				}
			}
			return nil
		},
	}
}
