package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// HeadCmd returns the head command.
func HeadCmd() *cli.Command {
	return &cli.Command{
		Name:   "head",
		Usage:  "Print the full revision HEAD resolves to",
		Action: headAction,
	}
}

func headAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		rev, err := ctx.Adapter.HeadRevision(c.Context)
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.Out, rev)
		return nil
	})
}
