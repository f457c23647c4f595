package git

import (
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/m-mizutani/goerr/v2"
)

// Handle identifies the working directory of a release target. Commands run
// with Dir as their working directory.
type Handle struct {
	dir  string
	root string
}

// NewHandle derives a handle from a project location without touching the
// repository. A file location resolves to its containing directory.
func NewHandle(location string) (Handle, error) {
	abs, err := filepath.Abs(location)
	if err != nil {
		return Handle{}, goerr.Wrap(err, "failed to resolve location", goerr.V("location", location))
	}
	info, err := os.Stat(abs)
	switch {
	case err == nil && info.IsDir():
		return Handle{dir: abs}, nil
	case err == nil || os.IsNotExist(err):
		// A file, or a file yet to be written, such as a feed that the
		// release will generate.
		return Handle{dir: filepath.Dir(abs)}, nil
	default:
		return Handle{}, goerr.Wrap(err, "failed to stat location", goerr.V("location", location))
	}
}

// OpenHandle is NewHandle plus a check that the location lies inside a git
// work tree. The work tree root is recorded for reporting.
func OpenHandle(location string) (Handle, error) {
	h, err := NewHandle(location)
	if err != nil {
		return Handle{}, err
	}

	repo, err := gogit.PlainOpenWithOptions(h.dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Handle{}, goerr.Wrap(err, "not a git repository", goerr.V("dir", h.dir))
	}
	wt, err := repo.Worktree()
	if err != nil {
		return Handle{}, goerr.Wrap(err, "repository has no work tree", goerr.V("dir", h.dir))
	}
	h.root = wt.Filesystem.Root()
	return h, nil
}

// Dir returns the directory commands run in.
func (h Handle) Dir() string {
	return h.dir
}

// Root returns the work tree root, or Dir when the handle was not opened
// through OpenHandle.
func (h Handle) Root() string {
	if h.root == "" {
		return h.dir
	}
	return h.root
}
