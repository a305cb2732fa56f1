package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minekvitteringer/skribent/pkg/adapter"
	"github.com/minekvitteringer/skribent/pkg/model"
	"github.com/minekvitteringer/skribent/pkg/usecase/rotation"
	"github.com/minekvitteringer/skribent/pkg/usecase/seo"
	"github.com/minekvitteringer/skribent/pkg/usecase/topic"
	"github.com/minekvitteringer/skribent/pkg/usecase/trends"
	"github.com/urfave/cli/v3"
)

func nextCommand() *cli.Command {
	var (
		cfg      config
		category string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "category",
			Usage:       "Pick for a specific category instead of the rotation",
			Destination: &category,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, searchFlags(&cfg)...)

	return &cli.Command{
		Name:  "next",
		Usage: "Show the next topic the rotation would produce",
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

			rotationUC := rotation.New(repo, conf.Catalog)
			trendsUC := trends.New(repo, cfg.newTrendSource(conf), conf.Research)
			seoUC := seo.New(adapter.NewSearchConsole(cfg.searchDataDir), conf.Research, seo.WithStores(conf.Catalog.Stores))
			uc := topic.New(repo, rotationUC, trendsUC, seoUC, conf.Catalog)

			cat := model.Category(category)
			if cat == "" {
				cat, err = rotationUC.NextCategory(ctx)
				if err != nil {
					return err
				}
			}

			info, err := uc.NextTopic(ctx, cat)
			if err != nil {
				return goerr.Wrap(err, "failed to pick next topic", goerr.V("category", cat))
			}

			raw, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return goerr.Wrap(err, "failed to render topic")
			}
			fmt.Fprintf(c.Root().Writer, "%s\n", raw)
			return nil
		},
	}
}
