package release

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/masmgr/gitrelease-go/internal/git"
)

// Step names, in execution order.
const (
	StepEnsureCommitted = "ensure-committed"
	StepEnsureNoTag     = "ensure-no-tag"
	StepHeadRevision    = "head-revision"
	StepTag             = "tag"
	StepExport          = "export"
	StepChangelog       = "changelog"
	StepPush            = "push"
)

// StepStatus is the outcome of one step.
type StepStatus string

const (
	StatusDone    StepStatus = "done"
	StatusFailed  StepStatus = "failed"
	StatusSkipped StepStatus = "skipped"
)

// Plan describes one release.
type Plan struct {
	Version         string
	PreviousVersion string // Empty skips the changelog
	Prefix          string // Archive root directory; empty skips the export
	ArchivePath     string
	ChangelogPath   string // Empty writes the changelog to Plan.ChangelogOut
	ChangelogOut    io.Writer
	Push            bool
}

// StepResult records one executed (or skipped) step.
type StepResult struct {
	Name     string
	Status   StepStatus
	Detail   string
	Duration time.Duration
}

// Report summarizes a release run.
type Report struct {
	RunID      string
	Version    string
	Tag        git.TagName
	Revision   git.Revision
	Archive    string
	Changelog  string
	Pushed     bool
	Steps      []StepResult
	StartedAt  time.Time
	FinishedAt time.Time
	Err        error
}

// Succeeded reports whether every step that ran completed.
func (r *Report) Succeeded() bool {
	return r.Err == nil
}

// Run executes the release sequence against steps, stopping at the first
// failure. The returned report is never nil and lists completed steps even
// when the run fails.
func Run(ctx context.Context, steps git.ReleaseSteps, plan Plan, logger *slog.Logger) (*Report, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	report := &Report{
		RunID:     uuid.NewString(),
		Version:   plan.Version,
		StartedAt: time.Now(),
	}
	logger = logger.With("run_id", report.RunID, "version", plan.Version)

	r := &run{report: report, logger: logger}
	err := r.execute(ctx, steps, plan)
	report.FinishedAt = time.Now()
	report.Err = err
	if err != nil {
		logger.Error("Release failed", "error", err)
		return report, err
	}
	logger.Info("Release complete", "tag", report.Tag, "revision", report.Revision)
	return report, nil
}

type run struct {
	report *Report
	logger *slog.Logger
}

func (r *run) step(name string, fn func() (string, error)) error {
	start := time.Now()
	r.logger.Debug("Starting step", "step", name)
	detail, err := fn()
	res := StepResult{Name: name, Status: StatusDone, Detail: detail, Duration: time.Since(start)}
	if err != nil {
		res.Status = StatusFailed
		res.Detail = err.Error()
	}
	r.report.Steps = append(r.report.Steps, res)
	return err
}

func (r *run) skip(name, why string) {
	r.report.Steps = append(r.report.Steps, StepResult{Name: name, Status: StatusSkipped, Detail: why})
}

func (r *run) execute(ctx context.Context, steps git.ReleaseSteps, plan Plan) error {
	if plan.Version == "" {
		return goerr.New("release version is required")
	}

	if err := r.step(StepEnsureCommitted, func() (string, error) {
		return "", steps.EnsureCommitted(ctx)
	}); err != nil {
		return err
	}

	if err := r.step(StepEnsureNoTag, func() (string, error) {
		return string(git.TagNameFor(plan.Version)) + " is free", steps.EnsureNoTag(ctx, plan.Version)
	}); err != nil {
		return err
	}

	if err := r.step(StepHeadRevision, func() (string, error) {
		rev, err := steps.HeadRevision(ctx)
		r.report.Revision = rev
		return rev.String(), err
	}); err != nil {
		return err
	}

	if err := r.step(StepTag, func() (string, error) {
		tag, err := steps.Tag(ctx, plan.Version, r.report.Revision.String())
		r.report.Tag = tag
		return tag.String(), err
	}); err != nil {
		return err
	}

	if plan.Prefix == "" || plan.ArchivePath == "" {
		r.skip(StepExport, "no archive requested")
	} else if err := r.step(StepExport, func() (string, error) {
		if err := steps.Export(ctx, plan.Prefix, plan.ArchivePath); err != nil {
			return "", err
		}
		r.report.Archive = plan.ArchivePath
		return plan.ArchivePath, nil
	}); err != nil {
		return err
	}

	if plan.PreviousVersion == "" {
		r.skip(StepChangelog, "no previous release")
	} else if err := r.step(StepChangelog, func() (string, error) {
		return r.changelog(ctx, steps, plan)
	}); err != nil {
		return err
	}

	if !plan.Push {
		r.skip(StepPush, "push disabled")
		return nil
	}
	return r.step(StepPush, func() (string, error) {
		if err := steps.PushHeadAndRelease(ctx, plan.Version); err != nil {
			return "", err
		}
		r.report.Pushed = true
		return "", nil
	})
}

// changelog writes to ChangelogPath, removing the file again on failure so a
// failed run leaves no empty changelog behind.
func (r *run) changelog(ctx context.Context, steps git.ReleaseSteps, plan Plan) (string, error) {
	head := r.report.Revision.String()
	if plan.ChangelogPath == "" {
		out := plan.ChangelogOut
		if out == nil {
			out = io.Discard
		}
		return "", steps.ExportChangelog(ctx, plan.PreviousVersion, head, out)
	}

	f, err := os.Create(plan.ChangelogPath)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create changelog", goerr.V("path", plan.ChangelogPath))
	}
	err = steps.ExportChangelog(ctx, plan.PreviousVersion, head, f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = goerr.Wrap(closeErr, "failed to close changelog", goerr.V("path", plan.ChangelogPath))
	}
	if err != nil {
		_ = os.Remove(plan.ChangelogPath)
		return "", err
	}
	r.report.Changelog = plan.ChangelogPath
	return plan.ChangelogPath, nil
}
