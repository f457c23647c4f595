package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitrelease-go/config"
	"github.com/masmgr/gitrelease-go/internal/git"
	"github.com/masmgr/gitrelease-go/internal/runner"
)

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across all release commands.
type CommandContext struct {
	Config  *config.Config
	Logger  *slog.Logger
	Handle  git.Handle
	Adapter *git.Adapter
	Out     io.Writer
}

// NewCommandContext creates a context from CLI flags.
// It loads configuration, builds the logger, opens the repository and wires
// the adapter to an exec runner.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load config")
	}

	out := c.App.Writer
	if out == nil {
		out = os.Stdout
	}
	errOut := c.App.ErrWriter
	if errOut == nil {
		errOut = os.Stderr
	}

	logCfg := config.Logger{Level: cfg.Log.Level, JSON: cfg.Log.JSON, Color: !color.NoColor}
	logger, err := logCfg.Configure(errOut)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure logger")
	}

	handle, err := git.OpenHandle(c.String("repo"))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open repository", goerr.V("repo", c.String("repo")))
	}
	logger.Debug("Opened repository", "dir", handle.Dir(), "root", handle.Root())

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	exec := runner.NewExec(
		runner.WithTimeout(timeout),
		runner.WithLogger(logger),
		runner.WithOutput(out, errOut),
	)

	adapter := git.NewAdapter(handle, git.ReleaseConfig{
		SigningKey:       cfg.Release.SigningKey,
		PublicRepository: cfg.Release.PublicRepository,
	}, exec,
		git.WithBinary(cfg.Git.Binary),
		git.WithCleanOptions(git.CleanOptions{
			IncludeUntracked: cfg.Clean.IncludeUntracked,
			Ignore:           cfg.Clean.Ignore,
		}),
		git.WithArchiveOptions(git.ArchiveOptions{
			Format:     cfg.Archive.Format,
			Compressor: cfg.Archive.Compressor,
		}),
		git.WithOutput(out),
		git.WithLogger(logger),
	)

	return &CommandContext{
		Config:  cfg,
		Logger:  logger,
		Handle:  handle,
		Adapter: adapter,
		Out:     out,
	}, nil
}

// executeWithContext builds the command context and runs fn with it.
func executeWithContext(c *cli.Context, fn func(ctx *CommandContext, c *cli.Context) error) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	return fn(ctx, c)
}

// success prints a green confirmation line.
func (ctx *CommandContext) success(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(ctx.Out, format+"\n", args...)
}
