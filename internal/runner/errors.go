package runner

import (
	"fmt"
	"strings"
	"time"
)

// ExitError reports a process that ran to completion with a non-zero status.
type ExitError struct {
	Argv     []string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s failed with exit code %d", formatArgv(e.Argv), e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// TimeoutError reports a process killed because it outlived the runner's
// bounded wait.
type TimeoutError struct {
	Argv    []string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s did not finish within %s", formatArgv(e.Argv), e.Timeout)
}
