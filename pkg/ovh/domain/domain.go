// Package domain wraps the DNS zone and record endpoints of the OVHcloud API.
package domain

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ovhtools/ovhctl/pkg/ovh"
)

// Zone is a DNS zone hosted at OVHcloud.
type Zone struct {
	Name            string   `json:"name" yaml:"name"`
	DNSSECSupported bool     `json:"dnssecSupported" yaml:"dnssecSupported"`
	HasDNSAnycast   bool     `json:"hasDnsAnycast" yaml:"hasDnsAnycast"`
	NameServers     []string `json:"nameServers" yaml:"nameServers"`
}

// Zones renders as a table via the serializer.
type Zones []Zone

// Header implements serializer.Tabular.
func (Zones) Header(wide bool) []string {
	return []string{"Name", "DNS Sec", "DNS AnyCast", "Servers"}
}

// Rows implements serializer.Tabular.
func (z Zones) Rows(wide bool) [][]string {
	rows := make([][]string, 0, len(z))
	for _, zone := range z {
		rows = append(rows, []string{
			zone.Name,
			strconv.FormatBool(zone.DNSSECSupported),
			strconv.FormatBool(zone.HasDNSAnycast),
			strings.Join(zone.NameServers, ", "),
		})
	}
	return rows
}

// RecordFields are the mutable fields of a DNS record; they form the creation
// payload (the zone travels in the URL, never in the body).
type RecordFields struct {
	FieldType string `json:"fieldType" yaml:"fieldType"`
	SubDomain string `json:"subDomain" yaml:"subDomain"`
	TTL       int64  `json:"ttl,omitempty" yaml:"ttl,omitempty"`
	Target    string `json:"target" yaml:"target"`
}

// Record is a DNS record as returned by the API.
type Record struct {
	RecordFields `yaml:",inline"`

	ID   int64  `json:"id" yaml:"id"`
	Zone string `json:"zone" yaml:"zone"`
}

// Equal reports whether two records describe the same entry. The identifier
// and the TTL are deliberately ignored: the synchronizer replaces a record
// only when its type, name, zone or target changed.
func (r Record) Equal(other Record) bool {
	return r.FieldType == other.FieldType &&
		r.SubDomain == other.SubDomain &&
		r.Zone == other.Zone &&
		r.Target == other.Target
}

// Records renders as a table via the serializer.
type Records []Record

// Header implements serializer.Tabular.
func (Records) Header(wide bool) []string {
	return []string{"Identifier", "Zone", "Type", "Sub domain", "TTL", "Target"}
}

// Rows implements serializer.Tabular.
func (r Records) Rows(wide bool) [][]string {
	rows := make([][]string, 0, len(r))
	for _, record := range r {
		rows = append(rows, []string{
			strconv.FormatInt(record.ID, 10),
			record.Zone,
			record.FieldType,
			record.SubDomain,
			strconv.FormatInt(record.TTL, 10),
			record.Target,
		})
	}
	return rows
}

// ListZones returns every DNS zone visible to the credentials, one detail
// call per zone name.
func ListZones(ctx context.Context, c ovh.Caller) (Zones, error) {
	var ids []string
	if err := c.Get(ctx, "domain/zone", &ids); err != nil {
		return nil, fmt.Errorf("could not retrieve zones: %w", err)
	}

	zones, err := ovh.FetchDetails[string, Zone](ctx, c, ids, func(id string) string {
		return fmt.Sprintf("domain/zone/%s", id)
	})
	if err != nil {
		return nil, fmt.Errorf("could not retrieve zone details: %w", err)
	}
	return zones, nil
}

// ListRecords returns every record of a zone, one detail call per record id.
func ListRecords(ctx context.Context, c ovh.Caller, zone string) (Records, error) {
	var ids []int64
	if err := c.Get(ctx, fmt.Sprintf("domain/zone/%s/record", zone), &ids); err != nil {
		return nil, fmt.Errorf("could not retrieve records in zone %q: %w", zone, err)
	}

	records, err := ovh.FetchDetails[int64, Record](ctx, c, ids, func(id int64) string {
		return fmt.Sprintf("domain/zone/%s/record/%d", zone, id)
	})
	if err != nil {
		return nil, fmt.Errorf("could not retrieve record details in zone %q: %w", zone, err)
	}
	return records, nil
}

// CreateRecord creates a record in a zone. The change is not live until the
// zone is refreshed.
func CreateRecord(ctx context.Context, c ovh.Caller, zone string, fields RecordFields) (*Record, error) {
	var record Record
	if err := c.Post(ctx, fmt.Sprintf("domain/zone/%s/record", zone), &fields, &record); err != nil {
		return nil, fmt.Errorf("could not create record %s %s in zone %q: %w", fields.FieldType, fields.SubDomain, zone, err)
	}
	return &record, nil
}

// DeleteRecord deletes a record. The change is not live until the zone is
// refreshed.
func DeleteRecord(ctx context.Context, c ovh.Caller, zone string, id int64) error {
	if err := c.Delete(ctx, fmt.Sprintf("domain/zone/%s/record/%d", zone, id)); err != nil {
		return fmt.Errorf("could not delete record %d in zone %q: %w", id, zone, err)
	}
	return nil
}

// RefreshZone regenerates the zone file so pending record changes go live.
func RefreshZone(ctx context.Context, c ovh.Caller, zone string) error {
	if err := c.Post(ctx, fmt.Sprintf("domain/zone/%s/refresh", zone), nil, nil); err != nil {
		return fmt.Errorf("could not refresh zone %q: %w", zone, err)
	}
	return nil
}
