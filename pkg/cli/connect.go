package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/ovhtools/ovhctl/pkg/config"
	"github.com/ovhtools/ovhctl/pkg/ovh"
)

func connectCmd() *cli.Command {
	return &cli.Command{
		Name:  "connect",
		Usage: "Login to the OVHcloud API",
		Description: `Starts the delegated-authorization handshake: requests a consumer key
scoped by the given access rules and prints the validation URL.

The key is not usable until you visit the URL and confirm the grant in the
browser. Once validated, persist it with:

  ovhctl connect save <consumer-key>

Subsequent invocations sign every request with the persisted key.`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "rule",
				Usage: "access rule granted to the consumer key (format: METHOD:/path/pattern, can be repeated; default: all methods on /*)",
			},
			&cli.StringFlag{
				Name:  "redirection",
				Usage: "URL the browser is sent to after validation",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			client, err := ovh.NewClient(cfg.ClientOptions())
			if err != nil {
				return err
			}

			rules, err := parseAccessRules(cmd.StringSlice("rule"))
			if err != nil {
				return err
			}

			validation, err := client.RequestConsumerKey(ctx, ovh.CredentialRequest{
				AccessRules: rules,
				Redirection: cmd.String("redirection"),
			})
			if err != nil {
				return err
			}

			fmt.Printf("Please login on %q to validate the consumer key.\n", validation.ValidationURL)
			fmt.Printf("Then persist it with 'ovhctl connect save %s'.\n", validation.ConsumerKey)
			return nil
		},
		Commands: []*cli.Command{
			connectSaveCmd(),
		},
	}
}

func connectSaveCmd() *cli.Command {
	return &cli.Command{
		Name:      "save",
		Usage:     "Persist a validated consumer key into the credential file",
		ArgsUsage: "<consumer-key>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one argument: the consumer key")
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			// Prefer the explicit --config path, then the file the
			// configuration was read from; PersistConsumerKey falls back to
			// $HOME/.ovhctl.yaml when neither exists.
			path := cmd.String("config")
			if path == "" {
				path = cfg.Path()
			}

			if err := config.PersistConsumerKey(path, cmd.Args().First()); err != nil {
				return err
			}
			fmt.Println("Consumer key saved.")
			return nil
		},
	}
}

// parseAccessRules turns "METHOD:/path" flags into access rules.
func parseAccessRules(raw []string) ([]ovh.AccessRule, error) {
	if len(raw) == 0 {
		return ovh.DefaultAccessRules(), nil
	}

	rules := make([]ovh.AccessRule, 0, len(raw))
	for _, r := range raw {
		method, path, ok := strings.Cut(r, ":")
		if !ok || method == "" || !strings.HasPrefix(path, "/") {
			return nil, fmt.Errorf("invalid access rule %q, expected METHOD:/path/pattern", r)
		}
		rules = append(rules, ovh.AccessRule{Method: strings.ToUpper(method), Path: path})
	}
	return rules, nil
}
