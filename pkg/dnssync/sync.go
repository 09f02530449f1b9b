// Package dnssync reconciles the DNS records of a zone with the public
// addresses of the account's cloud instances.
//
// Planning is pure: Plan computes the records to create and delete from
// already-fetched state. Sync orchestrates the full run: gather instances
// across every tenant, plan against the zone's records, apply the changes
// and refresh the zone.
package dnssync

import (
	"context"
	"fmt"
	"log/slog"
	"net/netip"
	"strings"

	"github.com/ovhtools/ovhctl/pkg/ovh"
	"github.com/ovhtools/ovhctl/pkg/ovh/cloud"
	"github.com/ovhtools/ovhctl/pkg/ovh/domain"
)

// Changes is the outcome of a planning pass.
type Changes struct {
	Create []domain.RecordFields
	Delete []domain.Record
}

// Empty reports whether the plan contains no work.
func (c Changes) Empty() bool {
	return len(c.Create) == 0 && len(c.Delete) == 0
}

// Plan computes the record changes bringing zone in line with the instances.
//
// Each public instance address maps to one A or AAAA record whose subdomain
// is the instance name with the ".zone" suffix trimmed. Records matching a
// non-public address, or an address inside one of the excluded prefixes, are
// deleted. A record matching by target but differing otherwise is replaced.
func Plan(zone string, instances []cloud.Instance, records []domain.Record, exclude []netip.Prefix) Changes {
	var changes Changes

	for _, instance := range instances {
		for _, address := range instance.IPAddresses {
			existing := findByTarget(records, address.IP)

			if address.Type != "public" {
				if existing != nil {
					changes.Delete = append(changes.Delete, *existing)
				}
				continue
			}

			if excluded(exclude, address.IP) {
				if existing != nil {
					changes.Delete = append(changes.Delete, *existing)
				}
				continue
			}

			fieldType := "A"
			if address.IP.Is6() {
				fieldType = "AAAA"
			}

			desired := domain.Record{
				RecordFields: domain.RecordFields{
					FieldType: fieldType,
					SubDomain: strings.TrimSuffix(instance.Name, "."+zone),
					Target:    address.IP.String(),
				},
				Zone: zone,
			}

			switch {
			case existing == nil:
				changes.Create = append(changes.Create, desired.RecordFields)
			case !existing.Equal(desired):
				changes.Delete = append(changes.Delete, *existing)
				changes.Create = append(changes.Create, desired.RecordFields)
			}
		}
	}

	return changes
}

// Apply deletes then creates the planned records and refreshes the zone.
func Apply(ctx context.Context, c ovh.Caller, zone string, changes Changes) error {
	for _, record := range changes.Delete {
		if err := domain.DeleteRecord(ctx, c, zone, record.ID); err != nil {
			return err
		}
	}
	for _, fields := range changes.Create {
		if _, err := domain.CreateRecord(ctx, c, zone, fields); err != nil {
			return err
		}
	}
	if changes.Empty() {
		return nil
	}
	return domain.RefreshZone(ctx, c, zone)
}

// Sync runs the full reconciliation of one zone and returns the zone's
// records after the run.
func Sync(ctx context.Context, c ovh.Caller, zone string, exclude []netip.Prefix) (domain.Records, error) {
	slog.Info("retrieving public cloud instances")
	tenants, err := cloud.ListTenants(ctx, c)
	if err != nil {
		return nil, err
	}

	var instances []cloud.Instance
	for _, tenant := range tenants {
		list, err := cloud.ListInstances(ctx, c, tenant.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("could not retrieve instances of tenant %q: %w", tenant.ProjectID, err)
		}
		instances = append(instances, list...)
	}

	slog.Info("retrieving dns records", "zone", zone)
	records, err := domain.ListRecords(ctx, c, zone)
	if err != nil {
		return nil, err
	}

	changes := Plan(zone, instances, records, exclude)
	slog.Info("applying record changes", "zone", zone, "create", len(changes.Create), "delete", len(changes.Delete))
	if err := Apply(ctx, c, zone, changes); err != nil {
		return nil, err
	}

	return domain.ListRecords(ctx, c, zone)
}

// findByTarget returns the record whose target is the given address.
func findByTarget(records []domain.Record, ip netip.Addr) *domain.Record {
	target := ip.String()
	for i := range records {
		if records[i].Target == target {
			return &records[i]
		}
	}
	return nil
}

// excluded reports whether ip falls inside one of the prefixes.
func excluded(prefixes []netip.Prefix, ip netip.Addr) bool {
	for _, prefix := range prefixes {
		if prefix.Contains(ip) {
			return true
		}
	}
	return false
}
