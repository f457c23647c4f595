package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitrelease-go/config"
	"github.com/masmgr/gitrelease-go/internal/output"
)

// App creates the CLI application.
func App() *cli.App {
	logger := &config.Logger{}
	return &cli.App{
		Name:    "gitrelease",
		Usage:   "Tag, push and export releases of a Git repository",
		Version: "1.0.0",
		Commands: []*cli.Command{
			CheckCmd(),
			HeadCmd(),
			TagCmd(),
			PushCmd(),
			ResetCmd(),
			ExportCmd(),
			ChangelogCmd(),
			CommitCmd(),
			ReleaseCmd(),
		},
		Flags: append(globalFlags(), logger.Flags()...),
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file (.json, .toml or .yaml)",
		},
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Project location inside the repository (file or directory)",
			Value:   ".",
		},
		&cli.StringFlag{
			Name:    "key",
			Usage:   "Signing key identifier (default: tool default identity)",
			EnvVars: []string{"GITRELEASE_SIGNING_KEY"},
		},
		&cli.StringFlag{
			Name:    "public-repo",
			Usage:   "Repository URL or path releases are pushed to",
			EnvVars: []string{"GITRELEASE_PUBLIC_REPO"},
		},
		&cli.StringFlag{
			Name:  "timeout",
			Usage: "Maximum duration of a single git invocation, e.g. 30s (0 disables)",
		},
	}
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) output.OutputFormat {
	switch s {
	case "json":
		return output.FormatJSON
	case "markdown", "md":
		return output.FormatMarkdown
	case "ci", "ndjson":
		return output.FormatCI
	default:
		return output.FormatConsole
	}
}

// loadConfig loads configuration from file or defaults and applies flag
// overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("key") {
		cfg.Release.SigningKey = c.String("key")
	}
	if c.IsSet("public-repo") {
		cfg.Release.PublicRepository = c.String("public-repo")
	}
	if c.IsSet("timeout") {
		cfg.Git.Timeout = c.String("timeout")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-json") {
		cfg.Log.JSON = c.Bool("log-json")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// requireArgs fails unless at least n positional arguments were given.
func requireArgs(c *cli.Context, n int, usage string) error {
	if c.NArg() < n {
		return fmt.Errorf("missing arguments, usage: %s %s", c.Command.Name, usage)
	}
	return nil
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
