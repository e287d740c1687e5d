package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hutarka-ai/hutarka/pkg/cli/config"
	"github.com/hutarka-ai/hutarka/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdStats() *cli.Command {
	var repoCfg config.Repository

	return &cli.Command{
		Name:  "stats",
		Usage: "Print usage statistics",
		Flags: repoCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			count, err := repo.CountUsers(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to count users")
			}

			fmt.Printf("total_users: %d\n", count)
			return nil
		},
	}
}
