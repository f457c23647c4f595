package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitrelease-go/internal/git"
)

// CheckCmd returns the check command.
func CheckCmd() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Verify the working tree is clean and, optionally, that a release is not yet tagged",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "version",
				Usage: "Release version whose tag must not exist yet",
			},
		},
		Action: checkAction,
	}
}

func checkAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		if err := ctx.Adapter.EnsureCommitted(c.Context); err != nil {
			return err
		}
		ctx.success("Working tree is clean")

		if version := c.String("version"); version != "" {
			if err := ctx.Adapter.EnsureNoTag(c.Context, version); err != nil {
				return err
			}
			ctx.success("Tag %s is available", git.TagNameFor(version))
		}
		return nil
	})
}
