// Package dedicated wraps the dedicated-server (bare metal) endpoints of the
// OVHcloud API.
package dedicated

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ovhtools/ovhctl/pkg/ovh"
)

// Server is a dedicated bare-metal server.
type Server struct {
	ServerID   int64  `json:"serverId" yaml:"serverId"`
	Name       string `json:"name" yaml:"name"`
	IP         string `json:"ip" yaml:"ip"`
	State      string `json:"state" yaml:"state"`
	Reverse    string `json:"reverse" yaml:"reverse"`
	Monitoring bool   `json:"monitoring" yaml:"monitoring"`
	OS         string `json:"os" yaml:"os"`
	Datacenter string `json:"datacenter" yaml:"datacenter"`
	Rack       string `json:"rack" yaml:"rack"`
	LinkSpeed  int64  `json:"linkSpeed" yaml:"linkSpeed"`
}

// Servers renders as a table via the serializer.
type Servers []Server

// Header implements serializer.Tabular.
func (Servers) Header(wide bool) []string {
	if wide {
		return []string{"Identifier", "Name", "Ip", "State", "Reverse", "Monitoring", "OS", "Data center", "Rack", "Link speed"}
	}
	return []string{"Identifier", "Name", "Ip", "State", "Reverse"}
}

// Rows implements serializer.Tabular.
func (s Servers) Rows(wide bool) [][]string {
	rows := make([][]string, 0, len(s))
	for _, server := range s {
		row := []string{
			strconv.FormatInt(server.ServerID, 10),
			server.Name,
			server.IP,
			server.State,
			server.Reverse,
		}
		if wide {
			row = append(row,
				strconv.FormatBool(server.Monitoring),
				server.OS,
				server.Datacenter,
				server.Rack,
				strconv.FormatInt(server.LinkSpeed, 10),
			)
		}
		rows = append(rows, row)
	}
	return rows
}

// ListServers returns every dedicated server visible to the credentials, one
// detail call per server name.
func ListServers(ctx context.Context, c ovh.Caller) (Servers, error) {
	var ids []string
	if err := c.Get(ctx, "dedicated/server", &ids); err != nil {
		return nil, fmt.Errorf("could not retrieve the list of servers: %w", err)
	}

	servers, err := ovh.FetchDetails[string, Server](ctx, c, ids, func(id string) string {
		return fmt.Sprintf("dedicated/server/%s", id)
	})
	if err != nil {
		return nil, fmt.Errorf("could not retrieve server details: %w", err)
	}
	return servers, nil
}
