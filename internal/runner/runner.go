package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Runner executes external commands on behalf of the release steps.
// Implementations block until every process they spawned has exited.
type Runner interface {
	// Check runs cmd to completion. A non-zero exit is returned as *ExitError.
	Check(ctx context.Context, cmd Command) error
	// Capture runs cmd to completion and returns its captured output. A
	// non-zero exit is not an error; callers inspect Result.ExitCode.
	Capture(ctx context.Context, cmd Command) (Result, error)
	// Pipe connects the stages stdout-to-stdin and writes the last stage's
	// output to dst. Every stage's exit status is checked.
	Pipe(ctx context.Context, stages []Command, dst io.Writer) error
}

// Compile-time interface conformance checks.
var (
	_ Runner = (*Exec)(nil)
	_ Runner = (*Script)(nil)
)

// waitDelay bounds how long Wait keeps draining pipes after a process has
// been killed.
const waitDelay = 5 * time.Second

// Exec runs commands as real child processes.
type Exec struct {
	timeout time.Duration
	logger  *slog.Logger
	stdout  io.Writer
	stderr  io.Writer
}

// Option configures an Exec runner.
type Option func(*Exec)

// WithTimeout bounds every invocation. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(e *Exec) { e.timeout = d }
}

// WithLogger sets the logger used to trace invocations.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exec) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithOutput sets where checked commands stream stdout and stderr when the
// command itself names no sink.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(e *Exec) {
		if stdout != nil {
			e.stdout = stdout
		}
		if stderr != nil {
			e.stderr = stderr
		}
	}
}

// NewExec creates a runner backed by os/exec.
func NewExec(opts ...Option) *Exec {
	e := &Exec{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		stdout: io.Discard,
		stderr: io.Discard,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Check runs cmd, streaming stdout to cmd.Stdout (or the runner's default
// sink) and keeping a copy of stderr for the error report.
func (e *Exec) Check(ctx context.Context, cmd Command) error {
	stdout := cmd.Stdout
	if stdout == nil {
		stdout = e.stdout
	}
	var stderr bytes.Buffer
	res, err := e.run(ctx, cmd, stdout, io.MultiWriter(&stderr, e.stderr))
	if err != nil {
		return err
	}
	res.Stderr = stderr.String()
	return res.Err()
}

// Capture runs cmd with stdout and stderr captured in memory.
func (e *Exec) Capture(ctx context.Context, cmd Command) (Result, error) {
	var stdout, stderr bytes.Buffer
	res, err := e.run(ctx, cmd, &stdout, &stderr)
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()
	return res, err
}

func (e *Exec) run(ctx context.Context, cmd Command, stdout, stderr io.Writer) (Result, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	e.logger.Debug("Running command", "argv", cmd.Argv(), "dir", cmd.Dir)

	c := e.command(ctx, cmd)
	c.Stdin = cmd.Stdin
	c.Stdout = stdout
	c.Stderr = stderr

	res := Result{Argv: cmd.Argv()}
	if err := c.Run(); err != nil {
		return res, e.classify(ctx, cmd, err, &res)
	}
	return res, nil
}

// Pipe starts every stage before waiting on any of them so that data flows
// through OS pipes without being buffered in this process.
func (e *Exec) Pipe(ctx context.Context, stages []Command, dst io.Writer) error {
	if len(stages) == 0 {
		return goerr.New("pipeline has no stages")
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	cmds := make([]*exec.Cmd, len(stages))
	stderrs := make([]bytes.Buffer, len(stages))
	for i, st := range stages {
		e.logger.Debug("Running pipeline stage", "stage", i, "argv", st.Argv(), "dir", st.Dir)
		cmds[i] = e.command(ctx, st)
		cmds[i].Stderr = &stderrs[i]
	}
	cmds[0].Stdin = stages[0].Stdin
	cmds[len(cmds)-1].Stdout = dst

	// The parent's copies of the pipe ends are closed once the children hold
	// them, otherwise downstream stages never see EOF.
	var parentEnds []*os.File
	closeParentEnds := func() {
		for _, f := range parentEnds {
			_ = f.Close()
		}
		parentEnds = nil
	}
	defer closeParentEnds()

	for i := 0; i < len(cmds)-1; i++ {
		r, w, err := os.Pipe()
		if err != nil {
			return goerr.Wrap(err, "failed to create pipe", goerr.V("stage", i))
		}
		parentEnds = append(parentEnds, r, w)
		cmds[i].Stdout = w
		cmds[i+1].Stdin = r
	}

	started := 0
	var startErr error
	for i, c := range cmds {
		if err := c.Start(); err != nil {
			startErr = goerr.Wrap(err, "failed to start pipeline stage",
				goerr.V("stage", i), goerr.V("argv", stages[i].Argv()))
			break
		}
		started++
	}
	closeParentEnds()

	if startErr != nil {
		cancel()
		for i := 0; i < started; i++ {
			_ = cmds[i].Wait()
		}
		return startErr
	}

	var failures []error
	for i, c := range cmds {
		res := Result{Argv: stages[i].Argv()}
		err := c.Wait()
		res.Stderr = stderrs[i].String()
		if err != nil {
			if cerr := e.classify(ctx, stages[i], err, &res); cerr != nil {
				failures = append(failures, cerr)
				continue
			}
		}
		if failure := res.Err(); failure != nil {
			failures = append(failures, failure)
		}
	}
	return errors.Join(failures...)
}

func (e *Exec) command(ctx context.Context, cmd Command) *exec.Cmd {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.WaitDelay = waitDelay
	return c
}

func (e *Exec) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.timeout)
}

// classify turns an exec error into a runner error. A plain non-zero exit is
// recorded in res and reported as nil so the caller can decide what it means.
func (e *Exec) classify(ctx context.Context, cmd Command, err error, res *Result) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		e.logger.Warn("Command timed out", "argv", cmd.Argv(), "timeout", e.timeout)
		return &TimeoutError{Argv: cmd.Argv(), Timeout: e.timeout}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return goerr.Wrap(ctxErr, "command canceled", goerr.V("argv", cmd.Argv()))
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		e.logger.Debug("Command exited", "argv", cmd.Argv(), "code", res.ExitCode)
		return nil
	}
	return goerr.Wrap(err, "failed to run command", goerr.V("argv", cmd.Argv()))
}
