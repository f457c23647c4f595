package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// ResetCmd returns the reset command.
func ResetCmd() *cli.Command {
	return &cli.Command{
		Name:      "reset",
		Usage:     "Reset index and working tree to a revision, discarding local changes",
		ArgsUsage: "<revision>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Confirm that local changes may be discarded",
			},
		},
		Action: resetAction,
	}
}

func resetAction(c *cli.Context) error {
	if err := requireArgs(c, 1, "<revision>"); err != nil {
		return err
	}
	if !c.Bool("force") {
		return fmt.Errorf("reset discards local changes; pass --force to confirm")
	}
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		revision := c.Args().Get(0)
		if err := ctx.Adapter.ResetHard(c.Context, revision); err != nil {
			return err
		}
		ctx.success("Reset to %s", revision)
		return nil
	})
}
