package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitrelease-go/internal/output"
	"github.com/masmgr/gitrelease-go/internal/release"
)

// ReleaseCmd returns the release command.
func ReleaseCmd() *cli.Command {
	return &cli.Command{
		Name:      "release",
		Usage:     "Run the full release sequence: check, tag, export, changelog and push",
		ArgsUsage: "<version>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "previous",
				Usage: "Previous release version; enables the changelog step",
			},
			&cli.StringFlag{
				Name:    "prefix",
				Aliases: []string{"p"},
				Usage:   "Archive root directory; enables the export step",
			},
			&cli.StringFlag{
				Name:  "archive",
				Usage: "Archive file (default: <prefix> plus the configured extension)",
			},
			&cli.StringFlag{
				Name:  "changelog",
				Usage: "Changelog file (default: discarded)",
			},
			&cli.BoolFlag{
				Name:  "no-push",
				Usage: "Stop after tagging and exporting",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Report format (console, json, markdown, ci)",
				Value:   "console",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Report file path (default: stdout)",
			},
		},
		Action: releaseAction,
	}
}

func releaseAction(c *cli.Context) error {
	if err := requireArgs(c, 1, "<version>"); err != nil {
		return err
	}
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		plan := releasePlan(ctx, c)
		report, runErr := release.Run(c.Context, ctx.Adapter, plan, ctx.Logger)

		opts := output.OutputOptions{
			Format:     getOutputFormat(c.String("format")),
			OutputPath: c.String("output"),
			Out:        ctx.Out,
		}
		writer := output.NewReleaseReportWriter(opts.Format)
		if err := writer.Write(report, opts); err != nil {
			return err
		}
		return runErr
	})
}

func releasePlan(ctx *CommandContext, c *cli.Context) release.Plan {
	plan := release.Plan{
		Version:         c.Args().Get(0),
		PreviousVersion: c.String("previous"),
		Prefix:          c.String("prefix"),
		ArchivePath:     c.String("archive"),
		ChangelogPath:   c.String("changelog"),
		Push:            !c.Bool("no-push"),
	}
	if plan.Prefix != "" && plan.ArchivePath == "" {
		plan.ArchivePath = ctx.Config.ArchiveName(plan.Prefix)
	}
	return plan
}
