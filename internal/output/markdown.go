package output

import (
	"fmt"
	"strings"

	"github.com/masmgr/gitrelease-go/internal/release"
)

// MarkdownReleaseWriter writes release reports as Markdown.
type MarkdownReleaseWriter struct{}

// Write outputs the release report as Markdown.
func (w *MarkdownReleaseWriter) Write(report *release.Report, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	fmt.Fprintf(out, "# Release %s\n\n", report.Version)
	fmt.Fprintf(out, "**Run:** `%s`\n\n", report.RunID)
	fmt.Fprintf(out, "**Started:** %s\n\n", report.StartedAt.Format(reportDateTimeLayout))
	if report.Tag != "" {
		fmt.Fprintf(out, "**Tag:** `%s` at `%s`\n\n", report.Tag, report.Revision)
	}
	if report.Archive != "" {
		fmt.Fprintf(out, "**Archive:** `%s`\n\n", report.Archive)
	}
	if report.Changelog != "" {
		fmt.Fprintf(out, "**Changelog:** `%s`\n\n", report.Changelog)
	}

	fmt.Fprintln(out, "## Steps")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "| # | Step | Status | Time | Detail |")
	fmt.Fprintln(out, "|---|------|--------|------|--------|")
	for i, step := range report.Steps {
		fmt.Fprintf(out, "| %d | %s | %s | %s | %s |\n",
			i+1, step.Name, step.Status, formatDuration(step.Duration), escapeMarkdownCell(firstLine(step.Detail)))
	}

	if report.Err != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "## Error")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "```")
		fmt.Fprintln(out, report.Err.Error())
		fmt.Fprintln(out, "```")
	}
	return nil
}

func escapeMarkdownCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
