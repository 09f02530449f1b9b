package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/ovhtools/ovhctl/pkg/ovh/dedicated"
)

func dedicatedCmd() *cli.Command {
	return &cli.Command{
		Name:    "dedicated",
		Aliases: []string{"de"},
		Usage:   "Manage dedicated infrastructure",
		Commands: []*cli.Command{
			{
				Name:    "server",
				Aliases: []string{"s"},
				Usage:   "Manage bare-metal servers",
				Commands: []*cli.Command{
					{
						Name:    "list",
						Aliases: []string{"l"},
						Usage:   "List servers",
						Flags:   []cli.Flag{formatFlag, outputFlag},
						Action: func(ctx context.Context, cmd *cli.Command) error {
							client, err := newSignedClient(cmd)
							if err != nil {
								return err
							}
							servers, err := dedicated.ListServers(ctx, client)
							if err != nil {
								return err
							}
							return writeResult(cmd, servers)
						},
					},
				},
			},
		},
	}
}
