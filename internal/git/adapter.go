package git

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"

	"github.com/masmgr/gitrelease-go/internal/runner"
)

// ReleaseConfig is the read-only configuration shared by every step.
type ReleaseConfig struct {
	// SigningKey selects the signing identity. Empty means the tool's
	// default identity; tags are signed either way.
	SigningKey string
	// PublicRepository is the push destination (URL or path).
	PublicRepository string
}

// CleanOptions tunes what counts as an uncommitted change.
type CleanOptions struct {
	IncludeUntracked bool
	Ignore           []string // Glob patterns of paths that may be dirty
}

// ArchiveOptions describes the export pipeline.
type ArchiveOptions struct {
	Format     string   // git archive --format, e.g. "tar"
	Compressor []string // argv of the compression filter, reading stdin
}

// DefaultArchiveOptions produces a bzip2-compressed tarball.
func DefaultArchiveOptions() ArchiveOptions {
	return ArchiveOptions{Format: "tar", Compressor: []string{"bzip2", "-c"}}
}

// Adapter performs the release steps by driving the git binary through a
// runner. It keeps no state between calls and does no locking: concurrent
// steps against the same handle must be serialized by the caller.
type Adapter struct {
	handle  Handle
	cfg     ReleaseConfig
	runner  runner.Runner
	binary  string
	clean   CleanOptions
	archive ArchiveOptions
	out     io.Writer
	logger  *slog.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithBinary overrides the git executable name.
func WithBinary(name string) Option {
	return func(a *Adapter) {
		if name != "" {
			a.binary = name
		}
	}
}

// WithCleanOptions sets the dirty-tree rules.
func WithCleanOptions(opts CleanOptions) Option {
	return func(a *Adapter) { a.clean = opts }
}

// WithArchiveOptions sets the export pipeline.
func WithArchiveOptions(opts ArchiveOptions) Option {
	return func(a *Adapter) { a.archive = opts }
}

// WithOutput sets where human-readable confirmations are printed.
func WithOutput(w io.Writer) Option {
	return func(a *Adapter) {
		if w != nil {
			a.out = w
		}
	}
}

// WithLogger sets the adapter logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAdapter creates an adapter for handle.
func NewAdapter(handle Handle, cfg ReleaseConfig, r runner.Runner, opts ...Option) *Adapter {
	a := &Adapter{
		handle:  handle,
		cfg:     cfg,
		runner:  r,
		binary:  "git",
		archive: DefaultArchiveOptions(),
		out:     io.Discard,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Handle returns the repository handle the adapter operates on.
func (a *Adapter) Handle() Handle {
	return a.handle
}

func (a *Adapter) git(args ...string) runner.Command {
	return runner.Command{Name: a.binary, Args: args, Dir: a.handle.Dir()}
}

// EnsureCommitted fails with ErrDirtyTree when tracked files (and untracked
// ones, if configured) have uncommitted changes. `status --porcelain` exits
// zero whether or not the tree is clean, so cleanliness is decided by its
// output and a non-zero exit is an invocation failure.
func (a *Adapter) EnsureCommitted(ctx context.Context) error {
	args := []string{"status", "--porcelain"}
	if !a.clean.IncludeUntracked {
		args = append(args, "--untracked-files=no")
	}
	cmd := a.git(args...)
	res, err := a.runner.Capture(ctx, cmd)
	if err != nil {
		return err
	}
	if err := res.Err(); err != nil {
		return err
	}

	dirty := filterIgnored(parsePorcelain(res.Stdout), a.clean.Ignore)
	if len(dirty) == 0 {
		return nil
	}
	return &OperationError{
		Kind:   ErrDirtyTree,
		Detail: `use "git commit -a" to commit them. Changes are:`,
		Output: joinLines(dirty),
	}
}

// TagExists reports whether a tag literally named TagNameFor(version) exists.
func (a *Adapter) TagExists(ctx context.Context, version string) (bool, error) {
	tag := TagNameFor(version)
	res, err := a.runner.Capture(ctx, a.git("tag", "--list", string(tag)))
	if err != nil {
		return false, err
	}
	if err := res.Err(); err != nil {
		return false, err
	}
	return tagListed(res.Stdout, tag), nil
}

// EnsureNoTag fails with ErrTagExists if the release is already tagged.
func (a *Adapter) EnsureNoTag(ctx context.Context, version string) error {
	exists, err := a.TagExists(ctx, version)
	if err != nil {
		return err
	}
	if exists {
		tag := TagNameFor(version)
		return &OperationError{
			Kind:   ErrTagExists,
			Detail: "release " + version + " is already tagged as " + string(tag) + "; to replace it, run: git tag -d " + string(tag),
		}
	}
	return nil
}

// Tag creates a signed, annotated tag for version at revision and returns
// the tag name.
func (a *Adapter) Tag(ctx context.Context, version, revision string) (TagName, error) {
	tag := TagNameFor(version)
	args := []string{"tag", "-s"}
	if a.cfg.SigningKey != "" {
		args = append(args, "-u", a.cfg.SigningKey)
	} else {
		a.logger.Debug("No signing key configured, using default identity")
	}
	args = append(args, "-m", "Release "+version, string(tag), revision)

	cmd := a.git(args...)
	if err := a.runner.Check(ctx, cmd); err != nil {
		return "", fromErr(ErrTagCreation, "cannot create "+string(tag)+" at "+revision, cmd.Argv(), err)
	}

	color.New(color.FgGreen).Fprintf(a.out, "Tagged as %s\n", tag)
	return tag, nil
}

// HeadRevision resolves HEAD to a full revision.
func (a *Adapter) HeadRevision(ctx context.Context) (Revision, error) {
	cmd := a.git("rev-parse", "--verify", "HEAD")
	res, err := a.runner.Capture(ctx, cmd)
	if err != nil {
		return "", fromErr(ErrResolution, "", cmd.Argv(), err)
	}
	if !res.Success() {
		return "", fromResult(ErrResolution, "", res)
	}
	rev, err := ParseRevision(res.Stdout)
	if err != nil {
		return "", fromErr(ErrResolution, "", cmd.Argv(), err)
	}
	return rev, nil
}

// CurrentBranch returns the branch HEAD points at. A detached HEAD is an
// ErrBranchResolution.
func (a *Adapter) CurrentBranch(ctx context.Context) (Branch, error) {
	cmd := a.git("symbolic-ref", "-q", "HEAD")
	res, err := a.runner.Capture(ctx, cmd)
	if err != nil {
		return Branch{}, fromErr(ErrBranchResolution, "", cmd.Argv(), err)
	}
	if !res.Success() {
		detail := ""
		if res.ExitCode == 1 {
			detail = "HEAD is detached"
		}
		return Branch{}, fromResult(ErrBranchResolution, detail, res)
	}
	branch, err := ParseBranch(res.Stdout)
	if err != nil {
		return Branch{}, fromErr(ErrBranchResolution, "", cmd.Argv(), err)
	}
	return branch, nil
}

// PushHeadAndRelease pushes the release tag and the current branch to the
// public repository in one push. Partial pushes are reported as the tool
// reports them; nothing is rolled back.
func (a *Adapter) PushHeadAndRelease(ctx context.Context, version string) error {
	if strings.TrimSpace(a.cfg.PublicRepository) == "" {
		return &OperationError{Kind: ErrPush, Detail: "no public repository configured"}
	}

	branch, err := a.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	a.logger.Info("Current branch", "branch", branch.Ref)

	cmd := a.git("push", a.cfg.PublicRepository, string(TagNameFor(version)), branch.Ref)
	if err := a.runner.Check(ctx, cmd); err != nil {
		return fromErr(ErrPush, "", cmd.Argv(), err)
	}
	return nil
}

// ResetHard resets the index and work tree to revision, discarding local
// changes. Callers are expected to have confirmed intent.
func (a *Adapter) ResetHard(ctx context.Context, revision string) error {
	cmd := a.git("reset", "--hard", revision)
	if err := a.runner.Check(ctx, cmd); err != nil {
		return fromErr(ErrReset, "", cmd.Argv(), err)
	}
	return nil
}

// Export writes a compressed archive of HEAD to archiveFile with every path
// under prefix. On any failure archiveFile is removed.
func (a *Adapter) Export(ctx context.Context, prefix, archiveFile string) error {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return &OperationError{Kind: ErrExport, Detail: "empty archive prefix"}
	}
	if len(a.archive.Compressor) == 0 {
		return &OperationError{Kind: ErrExport, Detail: "no compressor configured"}
	}

	format := a.archive.Format
	if format == "" {
		format = "tar"
	}
	archive := a.git("archive", "--format="+format, "--prefix="+prefix+"/", "HEAD")
	compress := runner.Command{
		Name: a.archive.Compressor[0],
		Args: a.archive.Compressor[1:],
		Dir:  a.handle.Dir(),
	}

	if err := runner.NewPipeline(archive, compress).ToFile(ctx, a.runner, archiveFile); err != nil {
		return fromErr(ErrExport, "cannot write "+archiveFile, archive.Argv(), err)
	}
	a.logger.Info("Exported archive", "path", archiveFile, "prefix", prefix)
	return nil
}

// ExportChangelog writes the log from the last release's tag (exclusive) to
// head (inclusive) into w. A missing previous tag is an error, not an empty
// changelog.
func (a *Adapter) ExportChangelog(ctx context.Context, lastReleaseVersion, head string, w io.Writer) error {
	if head == "" {
		head = "HEAD"
	}
	cmd := a.git("log", TagNameFor(lastReleaseVersion).Ref()+".."+head)
	cmd.Stdout = w
	if err := a.runner.Check(ctx, cmd); err != nil {
		return fromErr(ErrChangelog, "", cmd.Argv(), err)
	}
	return nil
}

// Commit commits all tracked modifications with message.
func (a *Adapter) Commit(ctx context.Context, message string) error {
	cmd := a.git("commit", "-q", "-a", "-m", message)
	if err := a.runner.Check(ctx, cmd); err != nil {
		return fromErr(ErrCommit, "", cmd.Argv(), err)
	}
	return nil
}
