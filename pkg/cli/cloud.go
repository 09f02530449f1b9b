package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/ovhtools/ovhctl/pkg/ovh/cloud"
)

func cloudCmd() *cli.Command {
	return &cli.Command{
		Name:    "cloud",
		Aliases: []string{"c"},
		Usage:   "Manage public-cloud resources",
		Commands: []*cli.Command{
			tenantCmd(),
			instanceCmd(),
			loadbalancerCmd(),
		},
	}
}

func tenantCmd() *cli.Command {
	return &cli.Command{
		Name:    "tenant",
		Aliases: []string{"t"},
		Usage:   "Manage public-cloud tenants",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"l"},
				Usage:   "List tenants",
				Flags:   []cli.Flag{formatFlag, outputFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					client, err := newSignedClient(cmd)
					if err != nil {
						return err
					}
					tenants, err := cloud.ListTenants(ctx, client)
					if err != nil {
						return err
					}
					return writeResult(cmd, tenants)
				},
			},
		},
	}
}

func instanceCmd() *cli.Command {
	return &cli.Command{
		Name:    "instance",
		Aliases: []string{"i"},
		Usage:   "Manage public-cloud instances",
		Commands: []*cli.Command{
			{
				Name:      "list",
				Aliases:   []string{"l"},
				Usage:     "List instances of a tenant",
				ArgsUsage: "<tenant>",
				Flags:     []cli.Flag{formatFlag, outputFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return fmt.Errorf("expected exactly one argument: the tenant id")
					}
					client, err := newSignedClient(cmd)
					if err != nil {
						return err
					}
					instances, err := cloud.ListInstances(ctx, client, cmd.Args().First())
					if err != nil {
						return err
					}
					return writeResult(cmd, instances)
				},
			},
		},
	}
}

func loadbalancerCmd() *cli.Command {
	tenantFlag := &cli.StringFlag{
		Name:     "tenant",
		Aliases:  []string{"T"},
		Required: true,
		Usage:    "tenant owning the load balancers",
	}

	return &cli.Command{
		Name:    "loadbalancer",
		Aliases: []string{"l"},
		Usage:   "Manage public-cloud load balancers",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"l"},
				Usage:   "List load balancers of a tenant",
				Flags:   []cli.Flag{tenantFlag, formatFlag, outputFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					client, err := newSignedClient(cmd)
					if err != nil {
						return err
					}
					lbs, err := cloud.ListLoadBalancers(ctx, client, cmd.String("tenant"))
					if err != nil {
						return err
					}
					return writeResult(cmd, lbs)
				},
			},
			{
				Name:      "create",
				Aliases:   []string{"c"},
				Usage:     "Create a load balancer in a region",
				ArgsUsage: "<region>",
				Flags:     []cli.Flag{tenantFlag, formatFlag, outputFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return fmt.Errorf("expected exactly one argument: the region")
					}
					client, err := newSignedClient(cmd)
					if err != nil {
						return err
					}
					lb, err := cloud.CreateLoadBalancer(ctx, client, cmd.String("tenant"), cmd.Args().First())
					if err != nil {
						return err
					}
					return writeResult(cmd, cloud.LoadBalancers{*lb})
				},
			},
			{
				Name:      "delete",
				Aliases:   []string{"d"},
				Usage:     "Delete a load balancer",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{tenantFlag, formatFlag, outputFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return fmt.Errorf("expected exactly one argument: the load balancer id")
					}
					client, err := newSignedClient(cmd)
					if err != nil {
						return err
					}
					tenant := cmd.String("tenant")
					if err := cloud.DeleteLoadBalancer(ctx, client, tenant, cmd.Args().First()); err != nil {
						return err
					}
					lbs, err := cloud.ListLoadBalancers(ctx, client, tenant)
					if err != nil {
						return err
					}
					return writeResult(cmd, lbs)
				},
			},
		},
	}
}
