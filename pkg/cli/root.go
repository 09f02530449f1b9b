package cli

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/ovhtools/ovhctl/pkg/version"
)

// New assembles the ovhctl command tree.
func New() *cli.Command {
	return &cli.Command{
		Name:                  "ovhctl",
		Usage:                 "Manage OVHcloud resources from the command line",
		Version:               version.Version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the credential file (replaces the default lookup chain)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "output logs in JSON format",
			},
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			connectCmd(),
			checkCmd(),
			cloudCmd(),
			dedicatedCmd(),
			domainCmd(),
		},
	}
}

// setupLogging configures the default slog logger from the global flags and
// the LOG_LEVEL environment variable. Logs go to stderr so command output on
// stdout stays machine-parseable.
func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level := slog.LevelInfo
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		switch strings.ToLower(raw) {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	if cmd.Bool("debug") {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cmd.Bool("log-json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	return ctx, nil
}
