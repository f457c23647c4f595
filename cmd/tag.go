package cmd

import (
	"github.com/urfave/cli/v2"
)

// TagCmd returns the tag command.
func TagCmd() *cli.Command {
	return &cli.Command{
		Name:      "tag",
		Usage:     "Create the signed release tag for a version",
		ArgsUsage: "<version> [revision]",
		Action:    tagAction,
	}
}

func tagAction(c *cli.Context) error {
	if err := requireArgs(c, 1, "<version> [revision]"); err != nil {
		return err
	}
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		version := c.Args().Get(0)
		revision := c.Args().Get(1)
		if revision == "" {
			rev, err := ctx.Adapter.HeadRevision(c.Context)
			if err != nil {
				return err
			}
			revision = rev.String()
		}
		_, err := ctx.Adapter.Tag(c.Context, version, revision)
		return err
	})
}
