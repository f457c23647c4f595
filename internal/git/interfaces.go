package git

import (
	"context"
	"io"
)

// ReleaseSteps is the set of release operations an orchestrator drives.
// This abstraction allows the orchestration to be tested without a repository.
type ReleaseSteps interface {
	EnsureCommitted(ctx context.Context) error
	EnsureNoTag(ctx context.Context, version string) error
	HeadRevision(ctx context.Context) (Revision, error)
	Tag(ctx context.Context, version, revision string) (TagName, error)
	PushHeadAndRelease(ctx context.Context, version string) error
	Export(ctx context.Context, prefix, archiveFile string) error
	ExportChangelog(ctx context.Context, lastReleaseVersion, head string, w io.Writer) error
}

// Compile-time interface conformance check.
var _ ReleaseSteps = (*Adapter)(nil)
