package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/masmgr/gitrelease-go/internal/git"
	"github.com/masmgr/gitrelease-go/internal/release"
)

const testRevision = "0123456789abcdef0123456789abcdef01234567"

func sampleReport(t *testing.T, failed bool) *release.Report {
	t.Helper()
	rev, err := git.ParseRevision(testRevision)
	if err != nil {
		t.Fatalf("ParseRevision() error = %v", err)
	}
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	report := &release.Report{
		RunID:      "run-1",
		Version:    "2.0",
		Tag:        git.TagNameFor("2.0"),
		Revision:   rev,
		Archive:    "proj-2.0.tar.bz2",
		StartedAt:  start,
		FinishedAt: start.Add(2 * time.Second),
		Steps: []release.StepResult{
			{Name: release.StepEnsureCommitted, Status: release.StatusDone, Duration: 15 * time.Millisecond},
			{Name: release.StepTag, Status: release.StatusDone, Detail: "v2.0"},
			{Name: release.StepChangelog, Status: release.StatusSkipped, Detail: "no previous release"},
		},
	}
	if failed {
		report.Err = errors.New("push to origin failed")
		report.Steps = append(report.Steps, release.StepResult{
			Name:   release.StepPush,
			Status: release.StatusFailed,
			Detail: "push failed | rejected\nremote: hook declined",
		})
	}
	return report
}

func writeReport(t *testing.T, format OutputFormat, report *release.Report) string {
	t.Helper()
	var buf bytes.Buffer
	writer := NewReleaseReportWriter(format)
	if err := writer.Write(report, OutputOptions{Format: format, Out: &buf}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return buf.String()
}

func assertContains(t *testing.T, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Errorf("output does not contain %q:\n%s", want, got)
	}
}
