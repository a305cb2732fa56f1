package cli

import (
	"context"
	"fmt"

	"github.com/minekvitteringer/skribent/pkg/usecase/rotation"
	"github.com/urfave/cli/v3"
)

func rotationCommand() *cli.Command {
	var (
		cfg   config
		reset bool
	)

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "reset",
			Usage:       "Reset all rotation cursors and counters",
			Destination: &reset,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "rotation",
		Usage: "Show or reset the category rotation state",
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

			uc := rotation.New(repo, conf.Catalog)
			w := c.Root().Writer

			if reset {
				if err := uc.Reset(ctx); err != nil {
					return err
				}
				fmt.Fprintf(w, "Rotation state reset\n")
				return nil
			}

			stats, err := uc.Stats(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(w, "Total generated: %d\n", stats.TotalGenerated)
			fmt.Fprintf(w, "Category cursor: %d", stats.CurrentIndex)
			if len(conf.Catalog.Categories) > 0 {
				next := conf.Catalog.Categories[stats.CurrentIndex%len(conf.Catalog.Categories)]
				fmt.Fprintf(w, " (next: %s)", next)
			}
			fmt.Fprintf(w, "\nStore cursor: %d", stats.StoreIndex)
			if len(conf.Catalog.Stores) > 0 {
				fmt.Fprintf(w, " (next: %s)", conf.Catalog.Stores[stats.StoreIndex%len(conf.Catalog.Stores)])
			}
			fmt.Fprintf(w, "\n")
			if stats.LastCategory != "" {
				fmt.Fprintf(w, "Last category: %s\n", stats.LastCategory)
			}
			if len(stats.CategoryCounts) > 0 {
				fmt.Fprintf(w, "Per category:\n")
				for _, cat := range conf.Catalog.Categories {
					if n := stats.CategoryCounts[cat]; n > 0 {
						fmt.Fprintf(w, "  %-18s %d\n", cat, n)
					}
				}
			}
			return nil
		},
	}
}
