package cli

import (
	"context"
	"fmt"
	"net/netip"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/ovhtools/ovhctl/pkg/dnssync"
	"github.com/ovhtools/ovhctl/pkg/ovh/domain"
)

func domainCmd() *cli.Command {
	return &cli.Command{
		Name:    "domain",
		Aliases: []string{"do"},
		Usage:   "Manage domains",
		Commands: []*cli.Command{
			zoneCmd(),
			recordCmd(),
		},
	}
}

func zoneCmd() *cli.Command {
	return &cli.Command{
		Name:    "zone",
		Aliases: []string{"z"},
		Usage:   "Manage DNS zones",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"l"},
				Usage:   "List zones",
				Flags:   []cli.Flag{formatFlag, outputFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					client, err := newSignedClient(cmd)
					if err != nil {
						return err
					}
					zones, err := domain.ListZones(ctx, client)
					if err != nil {
						return err
					}
					return writeResult(cmd, zones)
				},
			},
		},
	}
}

func recordCmd() *cli.Command {
	return &cli.Command{
		Name:    "record",
		Aliases: []string{"r"},
		Usage:   "Manage DNS records",
		Commands: []*cli.Command{
			{
				Name:      "list",
				Aliases:   []string{"l"},
				Usage:     "List records of a zone",
				ArgsUsage: "<zone>",
				Flags:     []cli.Flag{formatFlag, outputFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return fmt.Errorf("expected exactly one argument: the zone")
					}
					client, err := newSignedClient(cmd)
					if err != nil {
						return err
					}
					records, err := domain.ListRecords(ctx, client, cmd.Args().First())
					if err != nil {
						return err
					}
					return writeResult(cmd, records)
				},
			},
			{
				Name:      "sync",
				Aliases:   []string{"s"},
				Usage:     "Synchronize the records of a zone with the public-cloud instances",
				ArgsUsage: "<zone>",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "not-in-cidr",
						Aliases: []string{"n"},
						Usage:   "CIDR whose addresses are excluded from the sync (can be repeated)",
					},
					formatFlag,
					outputFlag,
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return fmt.Errorf("expected exactly one argument: the zone")
					}
					exclude, err := parsePrefixes(cmd.StringSlice("not-in-cidr"))
					if err != nil {
						return err
					}
					client, err := newSignedClient(cmd)
					if err != nil {
						return err
					}
					records, err := dnssync.Sync(ctx, client, cmd.Args().First(), exclude)
					if err != nil {
						return err
					}
					return writeResult(cmd, records)
				},
			},
			{
				Name:      "delete",
				Aliases:   []string{"d"},
				Usage:     "Delete a record",
				ArgsUsage: "<zone> <record-id>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 2 {
						return fmt.Errorf("expected two arguments: the zone and the record id")
					}
					id, err := strconv.ParseInt(cmd.Args().Get(1), 10, 64)
					if err != nil {
						return fmt.Errorf("invalid record id %q: %w", cmd.Args().Get(1), err)
					}
					client, err := newSignedClient(cmd)
					if err != nil {
						return err
					}
					return domain.DeleteRecord(ctx, client, cmd.Args().First(), id)
				},
			},
			{
				Name:      "refresh",
				Aliases:   []string{"r"},
				Usage:     "Refresh a zone so pending record changes go live",
				ArgsUsage: "<zone>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return fmt.Errorf("expected exactly one argument: the zone")
					}
					client, err := newSignedClient(cmd)
					if err != nil {
						return err
					}
					return domain.RefreshZone(ctx, client, cmd.Args().First())
				},
			},
		},
	}
}

// parsePrefixes parses --not-in-cidr values.
func parsePrefixes(raw []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(raw))
	for _, r := range raw {
		prefix, err := netip.ParsePrefix(r)
		if err != nil {
			return nil, fmt.Errorf("invalid CIDR %q: %w", r, err)
		}
		prefixes = append(prefixes, prefix)
	}
	return prefixes, nil
}
