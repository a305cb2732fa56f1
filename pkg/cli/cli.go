package cli

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

type Error struct {
	Code    int
	Message string
}

func Run(ctx context.Context, argv []string) *Error {
	// Missing .env is fine; flags and real env vars still apply.
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:  "skribent",
		Usage: "Blog content automation for minekvitteringer.no",
		Commands: []*cli.Command{
			generateCommand(),
			researchCommand(),
			nextCommand(),
			gapsCommand(),
			trendsCommand(),
			brainCommand(),
			rotationCommand(),
			suggestCommand(),
			importCommand(),
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}
