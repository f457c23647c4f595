package output

import (
	"encoding/json"
	"time"

	"github.com/masmgr/gitrelease-go/internal/release"
)

// JSONReleaseWriter writes release reports as JSON.
type JSONReleaseWriter struct{}

// JSONReleaseReport is the JSON output structure for a release run.
type JSONReleaseReport struct {
	RunID      string     `json:"runId"`
	Version    string     `json:"version"`
	Tag        string     `json:"tag,omitempty"`
	Revision   string     `json:"revision,omitempty"`
	Archive    string     `json:"archive,omitempty"`
	Changelog  string     `json:"changelog,omitempty"`
	Pushed     bool       `json:"pushed"`
	Succeeded  bool       `json:"succeeded"`
	Error      string     `json:"error,omitempty"`
	StartedAt  string     `json:"startedAt"`
	FinishedAt string     `json:"finishedAt"`
	Steps      []JSONStep `json:"steps"`
}

// JSONStep is the JSON output structure for a single step.
type JSONStep struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Detail     string `json:"detail,omitempty"`
	DurationMs int64  `json:"durationMs"`
}

func toJSONReport(report *release.Report) JSONReleaseReport {
	steps := make([]JSONStep, len(report.Steps))
	for i, s := range report.Steps {
		steps[i] = JSONStep{
			Name:       s.Name,
			Status:     string(s.Status),
			Detail:     s.Detail,
			DurationMs: s.Duration.Milliseconds(),
		}
	}
	return JSONReleaseReport{
		RunID:      report.RunID,
		Version:    report.Version,
		Tag:        report.Tag.String(),
		Revision:   report.Revision.String(),
		Archive:    report.Archive,
		Changelog:  report.Changelog,
		Pushed:     report.Pushed,
		Succeeded:  report.Succeeded(),
		Error:      errorText(report.Err),
		StartedAt:  report.StartedAt.Format(time.RFC3339),
		FinishedAt: report.FinishedAt.Format(time.RFC3339),
		Steps:      steps,
	}
}

// Write outputs the release report as JSON.
func (w *JSONReleaseWriter) Write(report *release.Report, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(toJSONReport(report))
}
