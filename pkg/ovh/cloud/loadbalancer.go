package cloud

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ovhtools/ovhctl/pkg/ovh"
	"github.com/ovhtools/ovhctl/pkg/serializer"
)

// Address carries the public addresses of a load balancer.
type Address struct {
	IPv4 string `json:"ipv4" yaml:"ipv4"`
	IPv6 string `json:"ipv6,omitempty" yaml:"ipv6,omitempty"`
}

// ConfigurationState tracks which load-balancer configuration revision is
// live versus the latest drafted one.
type ConfigurationState struct {
	Applied int64 `json:"applied" yaml:"applied"`
	Latest  int64 `json:"latest" yaml:"latest"`
}

// LoadBalancer is a public-cloud load balancer.
type LoadBalancer struct {
	ID            string             `json:"id,omitempty" yaml:"id,omitempty"`
	Name          string             `json:"name,omitempty" yaml:"name,omitempty"`
	Description   string             `json:"description,omitempty" yaml:"description,omitempty"`
	Region        string             `json:"region" yaml:"region"`
	Status        string             `json:"status" yaml:"status"`
	Address       Address            `json:"address" yaml:"address"`
	Configuration ConfigurationState `json:"configuration" yaml:"configuration"`
}

// LoadBalancers renders as a table via the serializer.
type LoadBalancers []LoadBalancer

// Header implements serializer.Tabular.
func (LoadBalancers) Header(wide bool) []string {
	if wide {
		return []string{"Identifier", "Name", "Description", "Region", "Status", "IPv4", "IPv6", "Applied", "Latest"}
	}
	return []string{"Identifier", "Name", "Description", "Region", "Status", "IPv4"}
}

// Rows implements serializer.Tabular.
func (l LoadBalancers) Rows(wide bool) [][]string {
	rows := make([][]string, 0, len(l))
	for _, lb := range l {
		row := []string{
			serializer.OrNone(lb.ID),
			serializer.OrNone(lb.Name),
			serializer.OrNone(lb.Description),
			lb.Region,
			lb.Status,
			lb.Address.IPv4,
		}
		if wide {
			row = append(row,
				serializer.OrNone(lb.Address.IPv6),
				strconv.FormatInt(lb.Configuration.Applied, 10),
				strconv.FormatInt(lb.Configuration.Latest, 10),
			)
		}
		rows = append(rows, row)
	}
	return rows
}

// loadBalancerCreation is the creation payload; the API picks everything else.
type loadBalancerCreation struct {
	Region string `json:"region"`
}

// ListLoadBalancers returns the load balancers of one tenant, one detail call
// per identifier.
func ListLoadBalancers(ctx context.Context, c ovh.Caller, tenant string) (LoadBalancers, error) {
	var ids []string
	if err := c.Get(ctx, fmt.Sprintf("cloud/project/%s/loadbalancer", tenant), &ids); err != nil {
		return nil, fmt.Errorf("could not list load balancers on tenant %q: %w", tenant, err)
	}

	lbs, err := ovh.FetchDetails[string, LoadBalancer](ctx, c, ids, func(id string) string {
		return fmt.Sprintf("cloud/project/%s/loadbalancer/%s", tenant, id)
	})
	if err != nil {
		return nil, fmt.Errorf("could not retrieve load balancer details on tenant %q: %w", tenant, err)
	}
	return lbs, nil
}

// CreateLoadBalancer creates a load balancer in the given region.
func CreateLoadBalancer(ctx context.Context, c ovh.Caller, tenant, region string) (*LoadBalancer, error) {
	var lb LoadBalancer
	if err := c.Post(ctx, fmt.Sprintf("cloud/project/%s/loadbalancer", tenant), &loadBalancerCreation{Region: region}, &lb); err != nil {
		return nil, fmt.Errorf("could not create load balancer in region %q: %w", region, err)
	}
	return &lb, nil
}

// DeleteLoadBalancer deletes one load balancer.
func DeleteLoadBalancer(ctx context.Context, c ovh.Caller, tenant, id string) error {
	if err := c.Delete(ctx, fmt.Sprintf("cloud/project/%s/loadbalancer/%s", tenant, id)); err != nil {
		return fmt.Errorf("could not delete load balancer %q: %w", id, err)
	}
	return nil
}
