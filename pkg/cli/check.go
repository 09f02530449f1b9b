package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"
)

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Validate the configuration without calling the API",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			slog.Debug("configuration loaded", "config", cfg, "file", cfg.Path())
			if cfg.Ovh.ConsumerKey == "" {
				slog.Warn("no consumer key configured, run 'ovhctl connect' before using authenticated commands")
			}

			fmt.Println("Configuration is healthy!")
			return nil
		},
	}
}
