package runner

import (
	"io"
	"strconv"
	"strings"
)

// Command describes a single process invocation. Arguments are passed to the
// process as a vector and never go through a shell.
type Command struct {
	Name string
	Args []string
	Dir  string

	// Stdin feeds the process standard input when set.
	Stdin io.Reader
	// Stdout receives standard output in checked mode. Capture mode ignores it.
	Stdout io.Writer
}

// Argv returns the full argument vector including the program name.
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Name)
	return append(argv, c.Args...)
}

// String renders the argument vector for logs and error messages.
func (c Command) String() string {
	return formatArgv(c.Argv())
}

// Result is the outcome of a finished process.
type Result struct {
	Argv     []string
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the process exited with status zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Output returns stdout followed by stderr, trimmed, for diagnostics.
func (r Result) Output() string {
	parts := make([]string, 0, 2)
	if s := strings.TrimSpace(r.Stdout); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(r.Stderr); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n")
}

// Err returns an *ExitError when the process exited non-zero, nil otherwise.
func (r Result) Err() error {
	if r.Success() {
		return nil
	}
	return &ExitError{Argv: r.Argv, ExitCode: r.ExitCode, Stderr: r.Stderr}
}

func formatArgv(argv []string) string {
	quoted := make([]string, len(argv))
	for i, a := range argv {
		if a == "" || strings.ContainsAny(a, " \t\n\"'\\") {
			quoted[i] = strconv.Quote(a)
		} else {
			quoted[i] = a
		}
	}
	return strings.Join(quoted, " ")
}
