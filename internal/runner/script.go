package runner

import (
	"context"
	"errors"
	"io"
	"strings"
)

// Reply is a scripted process outcome.
type Reply struct {
	ExitCode int
	Stdout   string
	Stderr   string
	// Err simulates a spawn failure or timeout instead of an exit status.
	Err error
}

// Call records one invocation seen by a Script.
type Call struct {
	Mode string // "check", "capture" or "pipe"
	Argv []string
	Dir  string
}

// Line returns the call's argument vector joined by spaces.
func (c Call) Line() string {
	return strings.Join(c.Argv, " ")
}

// Script is a test double for Runner. Replies are keyed by the argument
// vector joined with single spaces; unknown commands get Default.
type Script struct {
	Replies map[string]Reply
	Default Reply
	Calls   []Call
}

// NewScript creates an empty Script whose unknown commands succeed silently.
func NewScript() *Script {
	return &Script{Replies: make(map[string]Reply)}
}

// On registers reply for the command line argv.
func (s *Script) On(reply Reply, argv ...string) *Script {
	if s.Replies == nil {
		s.Replies = make(map[string]Reply)
	}
	s.Replies[strings.Join(argv, " ")] = reply
	return s
}

// Lines returns every recorded command line in call order.
func (s *Script) Lines() []string {
	lines := make([]string, len(s.Calls))
	for i, c := range s.Calls {
		lines[i] = c.Line()
	}
	return lines
}

// Called reports whether any recorded command line starts with prefix.
func (s *Script) Called(prefix string) bool {
	for _, c := range s.Calls {
		if strings.HasPrefix(c.Line(), prefix) {
			return true
		}
	}
	return false
}

func (s *Script) lookup(mode string, cmd Command) Reply {
	s.Calls = append(s.Calls, Call{Mode: mode, Argv: cmd.Argv(), Dir: cmd.Dir})
	if reply, ok := s.Replies[strings.Join(cmd.Argv(), " ")]; ok {
		return reply
	}
	return s.Default
}

// Check returns the scripted outcome, writing Stdout to cmd.Stdout when set.
func (s *Script) Check(_ context.Context, cmd Command) error {
	reply := s.lookup("check", cmd)
	if reply.Err != nil {
		return reply.Err
	}
	if cmd.Stdout != nil && reply.Stdout != "" {
		if _, err := io.WriteString(cmd.Stdout, reply.Stdout); err != nil {
			return err
		}
	}
	return Result{Argv: cmd.Argv(), ExitCode: reply.ExitCode, Stderr: reply.Stderr}.Err()
}

// Capture returns the scripted outcome as a Result.
func (s *Script) Capture(_ context.Context, cmd Command) (Result, error) {
	reply := s.lookup("capture", cmd)
	res := Result{Argv: cmd.Argv(), ExitCode: reply.ExitCode, Stdout: reply.Stdout, Stderr: reply.Stderr}
	return res, reply.Err
}

// Pipe writes the last stage's scripted stdout to dst, as a real pipeline
// would, and then reports every failing stage.
func (s *Script) Pipe(_ context.Context, stages []Command, dst io.Writer) error {
	if len(stages) == 0 {
		return errors.New("pipeline has no stages")
	}
	var failures []error
	var last Reply
	for _, st := range stages {
		reply := s.lookup("pipe", st)
		last = reply
		if reply.Err != nil {
			failures = append(failures, reply.Err)
			continue
		}
		res := Result{Argv: st.Argv(), ExitCode: reply.ExitCode, Stderr: reply.Stderr}
		if err := res.Err(); err != nil {
			failures = append(failures, err)
		}
	}
	if last.Stdout != "" {
		if _, err := io.WriteString(dst, last.Stdout); err != nil {
			failures = append(failures, err)
		}
	}
	return errors.Join(failures...)
}
