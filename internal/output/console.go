package output

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/masmgr/gitrelease-go/internal/release"
)

// ConsoleReleaseWriter writes release reports to the console.
type ConsoleReleaseWriter struct{}

// Write outputs the release report as a colored step table.
func (w *ConsoleReleaseWriter) Write(report *release.Report, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	title := color.New(color.FgGreen, color.Bold)
	if !report.Succeeded() {
		title = color.New(color.FgRed, color.Bold)
	}
	title.Fprintf(out, "Release %s\n", report.Version)
	fmt.Fprintf(out, "Run: %s\n", report.RunID)
	if report.Tag != "" {
		fmt.Fprintf(out, "Tag: %s at %s\n", report.Tag, report.Revision.Short())
	}
	if report.Archive != "" {
		fmt.Fprintf(out, "Archive: %s\n", report.Archive)
	}
	if report.Changelog != "" {
		fmt.Fprintf(out, "Changelog: %s\n", report.Changelog)
	}
	fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tStep\tStatus\tTime\tDetail")
	for i, step := range report.Steps {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			i+1,
			step.Name,
			statusColor(step.Status).Sprint(step.Status),
			formatDuration(step.Duration),
			firstLine(step.Detail),
		)
	}
	tw.Flush()

	if report.Err != nil {
		fmt.Fprintln(out)
		color.New(color.FgRed).Fprintf(out, "Error: %v\n", report.Err)
	}
	return nil
}

func statusColor(s release.StepStatus) *color.Color {
	switch s {
	case release.StatusDone:
		return color.New(color.FgGreen)
	case release.StatusFailed:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgYellow)
	}
}

func firstLine(s string) string {
	for i, c := range s {
		if c == '\n' {
			return s[:i]
		}
	}
	return s
}
