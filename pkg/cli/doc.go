// Package cli implements the command-line interface of ovhctl.
//
// # Commands
//
// connect - delegated-authorization handshake:
//
//	ovhctl connect [--rule METHOD:/path]... [--redirection URL]
//	ovhctl connect save <consumer-key>
//
// Requests a consumer key scoped by the given access rules and prints the
// validation URL. After the out-of-band browser validation, `connect save`
// persists the key into the credential file.
//
// check - validate the configuration without any network call:
//
//	ovhctl check
//
// cloud - public-cloud resources:
//
//	ovhctl cloud tenant list
//	ovhctl cloud instance list <tenant>
//	ovhctl cloud loadbalancer list --tenant T
//	ovhctl cloud loadbalancer create --tenant T <region>
//	ovhctl cloud loadbalancer delete --tenant T <id>
//
// dedicated - bare-metal servers:
//
//	ovhctl dedicated server list
//
// domain - DNS zones and records:
//
//	ovhctl domain zone list
//	ovhctl domain record list <zone>
//	ovhctl domain record sync <zone> [--not-in-cidr CIDR]...
//	ovhctl domain record delete <zone> <record-id>
//	ovhctl domain record refresh <zone>
//
// # Global flags
//
//	--config, -c   Path to the credential file
//	--debug        Enable debug logging
//	--log-json     Output logs in JSON format
//
// Listing commands accept --format (table, wide, json, yaml) and --output
// (file path, default stdout).
//
// # Exit codes
//
//	0  Success
//	1  Any failure (configuration, handshake or API error)
package cli
