// Package version exposes build-time version information.
//
// The version is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/ovhtools/ovhctl/pkg/version.Version=1.0.0'"
package version

import "fmt"

// Version is the ovhctl release version, overridden at build time.
var Version = "dev"

// UserAgent returns the User-Agent value sent with every API request.
func UserAgent() string {
	return fmt.Sprintf("ovhctl/%s", Version)
}
