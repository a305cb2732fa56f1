package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func brainCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "brain",
		Usage: "Summarize the research memory",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, _, err := cfg.setup(ctx)
			if err != nil {
				return err
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			brain, err := repo.LoadBrain(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to load brain")
			}

			w := c.Root().Writer
			if brain.LastResearch != nil {
				fmt.Fprintf(w, "Last research: %s\n", brain.LastResearch.Format("2006-01-02 15:04"))
			} else {
				fmt.Fprintf(w, "Last research: never\n")
			}
			if brain.CachedTrends != nil {
				fmt.Fprintf(w, "Cached trends: %d record(s) from %s\n", len(brain.CachedTrends.Data), brain.CachedTrends.Date)
			} else {
				fmt.Fprintf(w, "Cached trends: none\n")
			}
			fmt.Fprintf(w, "Fallback usage: %d time(s)\n", len(brain.FallbackUsage))
			fmt.Fprintf(w, "Research sessions: %d\n", len(brain.ResearchHistory))
			fmt.Fprintf(w, "Insights: %d\n", len(brain.Insights))
			fmt.Fprintf(w, "Product categories researched: %d\n", len(brain.ProductCategories))

			fmt.Fprintf(w, "Suggested topics: %d\n", len(brain.SuggestedTopics))
			for i, idea := range brain.SuggestedTopics {
				if i >= 5 {
					fmt.Fprintf(w, "  ...\n")
					break
				}
				fmt.Fprintf(w, "  - [%s] %s\n", idea.Category, idea.Title)
			}

			if len(brain.ResearchHistory) > 0 {
				last := brain.ResearchHistory[len(brain.ResearchHistory)-1]
				fmt.Fprintf(w, "Latest session: %s (%s, %d topic(s))\n",
					last.Date.Format("2006-01-02"), last.Focus, last.TopicsFound)
			}
			return nil
		},
	}
}
