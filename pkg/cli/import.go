package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minekvitteringer/skribent/pkg/adapter"
	"github.com/minekvitteringer/skribent/pkg/usecase/topic"
	"github.com/minekvitteringer/skribent/pkg/usecase/writer"
	"github.com/urfave/cli/v3"
)

func importCommand() *cli.Command {
	var (
		cfg      config
		filePath string
		start    int64
		count    int64
		autoPost bool
		dryRun   bool
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "Path to the ideas file",
			Destination: &filePath,
		},
		&cli.IntFlag{
			Name:        "start",
			Usage:       "Index of the first idea to use",
			Destination: &start,
		},
		&cli.IntFlag{
			Name:        "count",
			Aliases:     []string{"c"},
			Usage:       "Number of ideas to generate from (0 = all)",
			Destination: &count,
		},
		&cli.BoolFlag{
			Name:        "autopost",
			Aliases:     []string{"a"},
			Usage:       "Publish immediately instead of draft",
			Destination: &autoPost,
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Parse and draft without posting to the CMS",
			Destination: &dryRun,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)
	flags = append(flags, ghostFlags(&cfg)...)

	return &cli.Command{
		Name:  "import",
		Usage: "Generate articles from a hand-written ideas file",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if filePath == "" {
				return goerr.New("ideas file path is required")
			}

			ctx, conf, err := cfg.setup(ctx)
			if err != nil {
				return err
			}

			ideas, err := topic.ParseIdeasFile(filePath)
			if err != nil {
				return err
			}
			if len(ideas) == 0 {
				return goerr.New("no ideas found in file", goerr.V("path", filePath))
			}

			if start > 0 {
				if start >= int64(len(ideas)) {
					return goerr.New("start index beyond end of file",
						goerr.V("start", start), goerr.V("ideas", len(ideas)))
				}
				ideas = ideas[start:]
			}
			if count > 0 && count < int64(len(ideas)) {
				ideas = ideas[:count]
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

			topics := topic.ToTopics(ideas)
			uc := writer.New(repo, gemini, cms, conf.Site, conf.Writer)
			result, err := uc.Run(ctx, topics, writer.RunOptions{
				Publish: autoPost,
				DryRun:  dryRun,
			})
			if err != nil {
				return err
			}

			w := c.Root().Writer
			fmt.Fprintf(w, "Imported %d idea(s) from %s\n", len(ideas), filePath)
			fmt.Fprintf(w, "Articles succeeded: %d, failed: %d\n", result.Succeeded, result.Failed)
			for _, post := range result.Posts {
				fmt.Fprintf(w, "  [%s] %s\n", post.Status, post.Title)
			}
			return nil
		},
	}
}
