package cli

import (
	"context"
	"fmt"

	"github.com/minekvitteringer/skribent/pkg/model"
	"github.com/minekvitteringer/skribent/pkg/usecase/trends"
	"github.com/urfave/cli/v3"
)

func trendsCommand() *cli.Command {
	var (
		cfg     config
		refresh bool
	)

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "refresh",
			Aliases:     []string{"r"},
			Usage:       "Discard the same-day cache and refetch",
			Destination: &refresh,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "trends",
		Usage: "Show today's trend records",
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

			uc := trends.New(repo, cfg.newTrendSource(conf), conf.Research)

			var records []model.TrendRecord
			if refresh {
				if err := uc.ClearCache(ctx); err != nil {
					return err
				}
				records, err = uc.FetchFresh(ctx)
			} else {
				records, err = uc.Fetch(ctx)
			}
			if err != nil {
				return err
			}

			w := c.Root().Writer
			fmt.Fprintf(w, "%d trend record(s)\n\n", len(records))
			for i, r := range records {
				fmt.Fprintf(w, "%3d. %s", i+1, r.Title)
				if r.Traffic != "" {
					fmt.Fprintf(w, " (%s)", r.Traffic)
				}
				fmt.Fprintf(w, " [%s]\n", r.Source)
			}
			return nil
		},
	}
}
