package cmd

import (
	"github.com/urfave/cli/v2"
)

// ExportCmd returns the export command.
func ExportCmd() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write a compressed archive of HEAD",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "prefix",
				Aliases:  []string{"p"},
				Usage:    "Directory every archived path is placed under",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Archive file (default: <prefix> plus the configured extension)",
			},
		},
		Action: exportAction,
	}
}

func exportAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		prefix := c.String("prefix")
		path := c.String("output")
		if path == "" {
			path = ctx.Config.ArchiveName(prefix)
		}
		if err := ctx.Adapter.Export(c.Context, prefix, path); err != nil {
			return err
		}
		ctx.success("Exported %s", path)
		return nil
	})
}
