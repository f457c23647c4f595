package output

import (
	"encoding/json"

	"github.com/masmgr/gitrelease-go/internal/release"
)

// CIReleaseWriter writes release reports as NDJSON (one JSON object per line) for CI pipelines.
type CIReleaseWriter struct{}

// CISummary is the first line of CI output.
type CISummary struct {
	Type      string `json:"type"`
	RunID     string `json:"runId"`
	Version   string `json:"version"`
	Tag       string `json:"tag,omitempty"`
	Succeeded bool   `json:"succeeded"`
	Done      int    `json:"done"`
	Failed    int    `json:"failed"`
	Skipped   int    `json:"skipped"`
	Error     string `json:"error,omitempty"`
}

// CIStepEntry represents a single step in CI output.
type CIStepEntry struct {
	Type       string `json:"type"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	DurationMs int64  `json:"durationMs"`
}

// Write outputs the release report as NDJSON.
func (w *CIReleaseWriter) Write(report *release.Report, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	encoder := json.NewEncoder(out)
	summary := CISummary{
		Type:      "summary",
		RunID:     report.RunID,
		Version:   report.Version,
		Tag:       report.Tag.String(),
		Succeeded: report.Succeeded(),
		Done:      countSteps(report.Steps, release.StatusDone),
		Failed:    countSteps(report.Steps, release.StatusFailed),
		Skipped:   countSteps(report.Steps, release.StatusSkipped),
		Error:     errorText(report.Err),
	}
	if err := encoder.Encode(summary); err != nil {
		return err
	}

	for _, step := range report.Steps {
		entry := CIStepEntry{
			Type:       "step",
			Name:       step.Name,
			Status:     string(step.Status),
			DurationMs: step.Duration.Milliseconds(),
		}
		if err := encoder.Encode(entry); err != nil {
			return err
		}
	}
	return nil
}
