package ovh

import (
	"slices"
	"strings"

	ctlerrors "github.com/ovhtools/ovhctl/pkg/errors"
)

// Endpoint aliases accepted in the configuration, mapped to their base URL.
// The aliases match the ones used by the official OVHcloud clients.
var endpoints = map[string]string{
	"ovh-eu":        "https://eu.api.ovh.com/1.0",
	"ovh-ca":        "https://ca.api.ovh.com/1.0",
	"ovh-us":        "https://api.us.ovhcloud.com/1.0",
	"kimsufi-eu":    "https://eu.api.kimsufi.com/1.0",
	"kimsufi-ca":    "https://ca.api.kimsufi.com/1.0",
	"soyoustart-eu": "https://eu.api.soyoustart.com/1.0",
	"soyoustart-ca": "https://ca.api.soyoustart.com/1.0",
}

// DefaultEndpoint is used when the configuration does not name one.
const DefaultEndpoint = "ovh-eu"

// ResolveEndpoint turns an endpoint alias or URL into the API base URL,
// without a trailing slash. An empty value resolves to DefaultEndpoint.
func ResolveEndpoint(endpoint string) (string, error) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return strings.TrimRight(endpoint, "/"), nil
	}
	base, ok := endpoints[endpoint]
	if !ok {
		return "", ctlerrors.New(ctlerrors.CodeConfiguration, "unknown endpoint %q, expected one of %s or a full URL", endpoint, strings.Join(EndpointAliases(), ", "))
	}
	return base, nil
}

// EndpointAliases returns the known endpoint aliases, sorted.
func EndpointAliases() []string {
	aliases := make([]string, 0, len(endpoints))
	for alias := range endpoints {
		aliases = append(aliases, alias)
	}
	slices.Sort(aliases)
	return aliases
}
