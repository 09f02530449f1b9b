// Package cloud wraps the public-cloud endpoints of the OVHcloud API:
// tenants (projects), instances and load balancers.
package cloud

import (
	"context"
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"github.com/ovhtools/ovhctl/pkg/ovh"
)

// Tenant is a public-cloud project.
type Tenant struct {
	ProjectID   string `json:"project_id" yaml:"project_id"`
	Description string `json:"description" yaml:"description"`
	PlanCode    string `json:"planCode" yaml:"planCode"`
	Unleash     bool   `json:"unleash" yaml:"unleash"`
	Status      string `json:"status" yaml:"status"`
	Access      string `json:"access" yaml:"access"`
}

// Tenants renders as a table via the serializer.
type Tenants []Tenant

// Header implements serializer.Tabular.
func (Tenants) Header(wide bool) []string {
	return []string{"Tenant", "Status", "Description", "Plan code", "Unleash", "Access"}
}

// Rows implements serializer.Tabular.
func (t Tenants) Rows(wide bool) [][]string {
	rows := make([][]string, 0, len(t))
	for _, tenant := range t {
		rows = append(rows, []string{
			tenant.ProjectID,
			tenant.Status,
			tenant.Description,
			tenant.PlanCode,
			strconv.FormatBool(tenant.Unleash),
			tenant.Access,
		})
	}
	return rows
}

// IPAddress is one address attached to an instance. Type is "public" or
// "private".
type IPAddress struct {
	IP        netip.Addr `json:"ip" yaml:"ip"`
	Type      string     `json:"type" yaml:"type"`
	Version   int        `json:"version" yaml:"version"`
	NetworkID string     `json:"networkId" yaml:"networkId"`
	GatewayIP string     `json:"gatewayIp,omitempty" yaml:"gatewayIp,omitempty"`
}

// Instance is a public-cloud compute instance.
type Instance struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	IPAddresses []IPAddress `json:"ipAddresses" yaml:"ipAddresses"`
	FlavorID    string      `json:"flavorId" yaml:"flavorId"`
	ImageID     string      `json:"imageId" yaml:"imageId"`
	Region      string      `json:"region" yaml:"region"`
	Status      string      `json:"status" yaml:"status"`
	PlanCode    string      `json:"planCode" yaml:"planCode"`
}

// Instances renders as a table via the serializer.
type Instances []Instance

// Header implements serializer.Tabular.
func (Instances) Header(wide bool) []string {
	if wide {
		return []string{"Identifier", "Name", "Region", "Status", "Flavor", "Image", "Plan code"}
	}
	return []string{"Identifier", "Name", "Region", "Status", "Plan code"}
}

// Rows implements serializer.Tabular.
func (i Instances) Rows(wide bool) [][]string {
	rows := make([][]string, 0, len(i))
	for _, instance := range i {
		if wide {
			rows = append(rows, []string{
				instance.ID,
				instance.Name,
				instance.Region,
				instance.Status,
				instance.FlavorID,
				instance.ImageID,
				instance.PlanCode,
			})
			continue
		}
		rows = append(rows, []string{
			instance.ID,
			instance.Name,
			instance.Region,
			instance.Status,
			// The consumption suffix carries no information in a listing.
			strings.TrimSuffix(instance.PlanCode, ".consumption"),
		})
	}
	return rows
}

// ListTenants returns every public-cloud project visible to the credentials,
// one detail call per project id.
func ListTenants(ctx context.Context, c ovh.Caller) (Tenants, error) {
	var ids []string
	if err := c.Get(ctx, "cloud/project", &ids); err != nil {
		return nil, fmt.Errorf("could not retrieve tenants: %w", err)
	}

	tenants, err := ovh.FetchDetails[string, Tenant](ctx, c, ids, func(id string) string {
		return fmt.Sprintf("cloud/project/%s", id)
	})
	if err != nil {
		return nil, fmt.Errorf("could not retrieve tenant details: %w", err)
	}
	return tenants, nil
}

// ListInstances returns the instances of one tenant.
func ListInstances(ctx context.Context, c ovh.Caller, tenant string) (Instances, error) {
	var instances Instances
	if err := c.Get(ctx, fmt.Sprintf("cloud/project/%s/instance", tenant), &instances); err != nil {
		return nil, fmt.Errorf("could not retrieve instances for tenant %q: %w", tenant, err)
	}
	return instances, nil
}
