package output

import (
	"io"

	"github.com/masmgr/gitrelease-go/internal/release"
)

// Compile-time interface conformance checks.
var (
	_ ReleaseReportWriter = (*ConsoleReleaseWriter)(nil)
	_ ReleaseReportWriter = (*JSONReleaseWriter)(nil)
	_ ReleaseReportWriter = (*MarkdownReleaseWriter)(nil)
	_ ReleaseReportWriter = (*CIReleaseWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatMarkdown OutputFormat = "markdown"
	FormatCI       OutputFormat = "ci"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	OutputPath string
	// Out is used when OutputPath is empty. Nil means stdout.
	Out io.Writer
}

// ReleaseReportWriter writes release run reports.
type ReleaseReportWriter interface {
	Write(report *release.Report, options OutputOptions) error
}

// NewReleaseReportWriter creates a report writer for the specified format.
func NewReleaseReportWriter(format OutputFormat) ReleaseReportWriter {
	switch format {
	case FormatJSON:
		return &JSONReleaseWriter{}
	case FormatMarkdown:
		return &MarkdownReleaseWriter{}
	case FormatCI:
		return &CIReleaseWriter{}
	default:
		return &ConsoleReleaseWriter{}
	}
}
