package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitrelease-go/internal/git"
)

// PushCmd returns the push command.
func PushCmd() *cli.Command {
	return &cli.Command{
		Name:      "push",
		Usage:     "Push the release tag and the current branch to the public repository",
		ArgsUsage: "<version>",
		Action:    pushAction,
	}
}

func pushAction(c *cli.Context) error {
	if err := requireArgs(c, 1, "<version>"); err != nil {
		return err
	}
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		version := c.Args().Get(0)
		if err := ctx.Adapter.PushHeadAndRelease(c.Context, version); err != nil {
			return err
		}
		ctx.success("Pushed %s to %s", git.TagNameFor(version), ctx.Config.Release.PublicRepository)
		return nil
	})
}
