package git

import (
	"errors"
	"fmt"
	"strings"

	"github.com/masmgr/gitrelease-go/internal/runner"
)

// Error kinds reported by the release steps. Match them with errors.Is.
// Unexpected non-zero exits outside these steps surface as *runner.ExitError,
// bounded waits that expire as *runner.TimeoutError.
var (
	ErrDirtyTree        = errors.New("uncommitted changes")
	ErrTagExists        = errors.New("release already tagged")
	ErrTagCreation      = errors.New("tag creation failed")
	ErrResolution       = errors.New("cannot resolve HEAD")
	ErrBranchResolution = errors.New("cannot determine current branch")
	ErrPush             = errors.New("push failed")
	ErrReset            = errors.New("reset failed")
	ErrExport           = errors.New("archive export failed")
	ErrChangelog        = errors.New("changelog export failed")
	ErrCommit           = errors.New("commit failed")
)

// OperationError is returned by every release step. It embeds enough context
// (command, exit code, raw output) to be shown to the user untranslated.
type OperationError struct {
	Kind     error
	Detail   string
	Argv     []string
	ExitCode int
	Output   string
	Err      error
}

func (e *OperationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if len(e.Argv) > 0 {
		fmt.Fprintf(&b, " (%s", strings.Join(e.Argv, " "))
		if e.ExitCode != 0 {
			fmt.Fprintf(&b, ", exit code %d", e.ExitCode)
		}
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		b.WriteString("\n")
		b.WriteString(out)
	}
	return b.String()
}

func (e *OperationError) Is(target error) bool {
	return target == e.Kind
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// fromResult builds an error of kind from a finished process.
func fromResult(kind error, detail string, res runner.Result) *OperationError {
	return &OperationError{
		Kind:     kind,
		Detail:   detail,
		Argv:     res.Argv,
		ExitCode: res.ExitCode,
		Output:   res.Output(),
	}
}

// fromErr builds an error of kind around a runner failure, lifting the exit
// code out of an *runner.ExitError when there is one.
func fromErr(kind error, detail string, argv []string, err error) *OperationError {
	opErr := &OperationError{Kind: kind, Detail: detail, Argv: argv, Err: err}
	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) {
		opErr.ExitCode = exitErr.ExitCode
	}
	return opErr
}
