package cmd

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v2"
)

// ChangelogCmd returns the changelog command.
func ChangelogCmd() *cli.Command {
	return &cli.Command{
		Name:      "changelog",
		Usage:     "Print the log since a previous release",
		ArgsUsage: "<last-version> [head]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout)",
			},
		},
		Action: changelogAction,
	}
}

func changelogAction(c *cli.Context) error {
	if err := requireArgs(c, 1, "<last-version> [head]"); err != nil {
		return err
	}
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		last := c.Args().Get(0)
		head := c.Args().Get(1)

		path := c.String("output")
		if path == "" {
			return ctx.Adapter.ExportChangelog(c.Context, last, head, ctx.Out)
		}

		file, err := os.Create(path)
		if err != nil {
			return goerr.Wrap(err, "failed to create changelog", goerr.V("path", path))
		}
		err = ctx.Adapter.ExportChangelog(c.Context, last, head, file)
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = goerr.Wrap(closeErr, "failed to close changelog", goerr.V("path", path))
		}
		if err != nil {
			_ = os.Remove(path)
			return err
		}
		return nil
	})
}
