package cmd

import (
	"github.com/urfave/cli/v2"
)

// CommitCmd returns the commit command.
func CommitCmd() *cli.Command {
	return &cli.Command{
		Name:  "commit",
		Usage: "Commit all modified tracked files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "message",
				Aliases:  []string{"m"},
				Usage:    "Commit message",
				Required: true,
			},
		},
		Action: commitAction,
	}
}

func commitAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		if err := ctx.Adapter.Commit(c.Context, c.String("message")); err != nil {
			return err
		}
		ctx.success("Committed")
		return nil
	})
}
