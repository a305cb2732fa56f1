package cli

import (
	"context"
	"fmt"

	"github.com/minekvitteringer/skribent/pkg/adapter"
	"github.com/minekvitteringer/skribent/pkg/usecase/seo"
	"github.com/urfave/cli/v3"
)

func gapsCommand() *cli.Command {
	var (
		cfg            config
		minImpressions int64
		maxCTR         float64
		limit          int64
	)

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "min-impressions",
			Usage:       "Minimum impressions for a gap",
			Destination: &minImpressions,
		},
		&cli.FloatFlag{
			Name:        "max-ctr",
			Usage:       "Maximum CTR percent for a gap",
			Destination: &maxCTR,
		},
		&cli.IntFlag{
			Name:        "limit",
			Aliases:     []string{"n"},
			Usage:       "Number of gaps to show",
			Value:       20,
			Destination: &limit,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, searchFlags(&cfg)...)

	return &cli.Command{
		Name:  "gaps",
		Usage: "List scored search opportunities",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, conf, err := cfg.setup(ctx)
			if err != nil {
				return err
			}

			researchCfg := conf.Research
			if minImpressions > 0 {
				researchCfg.MinImpressions = int(minImpressions)
			}
			if maxCTR > 0 {
				researchCfg.MaxCTR = maxCTR
			}

			uc := seo.New(adapter.NewSearchConsole(cfg.searchDataDir), researchCfg, seo.WithStores(conf.Catalog.Stores))
			queries, _, err := uc.Load(ctx)
			if err != nil {
				return err
			}

			gaps := uc.Gaps(queries)
			if int64(len(gaps)) > limit {
				gaps = gaps[:limit]
			}

			w := c.Root().Writer
			if len(gaps) == 0 {
				fmt.Fprintf(w, "No gaps found across %d aggregated queries\n", len(queries))
				return nil
			}

			fmt.Fprintf(w, "%-4s %-40s %10s %7s %8s %9s\n", "#", "QUERY", "IMPRESS.", "CLICKS", "POS", "SCORE")
			for i, gap := range gaps {
				fmt.Fprintf(w, "%-4d %-40s %10d %7d %8.1f %9.1f\n",
					i+1, gap.Query, gap.Impressions, gap.Clicks, gap.Position, gap.Score)
			}
			return nil
		},
	}
}
