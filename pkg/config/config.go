// Package config loads and persists the ovhctl credential file.
//
// Configuration is layered: /etc/ovhctl/config.yaml, then $HOME/.ovhctl.yaml,
// then ./config.yaml, each overriding the previous one, with OVHCTL_*
// environment variables on top (e.g. OVHCTL_OVH_APPLICATION_KEY). An explicit
// --config path replaces the whole chain.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	ctlerrors "github.com/ovhtools/ovhctl/pkg/errors"
	"github.com/ovhtools/ovhctl/pkg/ovh"
)

// DefaultFileMode restricts the credential file to its owner; it holds the
// application secret.
const DefaultFileMode = 0o600

// Credentials holds the OVHcloud API credentials and target endpoint.
type Credentials struct {
	Endpoint          string `yaml:"endpoint" mapstructure:"endpoint"`
	ApplicationKey    string `yaml:"application-key" mapstructure:"application-key"`
	ApplicationSecret string `yaml:"application-secret" mapstructure:"application-secret"`
	ConsumerKey       string `yaml:"consumer-key,omitempty" mapstructure:"consumer-key"`
}

// Config is the root of the credential file.
type Config struct {
	Ovh Credentials `yaml:"ovh" mapstructure:"ovh"`

	// path is the file the configuration was loaded from, empty when the
	// values came from the environment only.
	path string
}

var configKeys = []string{
	"ovh.endpoint",
	"ovh.application-key",
	"ovh.application-secret",
	"ovh.consumer-key",
}

// Load reads the configuration. When path is non-empty only that file is
// read; otherwise the default chain is merged. A missing file is not an
// error by itself: validation decides whether the result is usable.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("ovh.endpoint", ovh.DefaultEndpoint)
	v.SetEnvPrefix("OVHCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, ctlerrors.Wrap(ctlerrors.CodeConfiguration, err, "could not bind environment variable for %q", key)
		}
	}

	used := ""
	for _, candidate := range candidatePaths(path) {
		if _, err := os.Stat(candidate); err != nil {
			if path != "" {
				return nil, ctlerrors.Wrap(ctlerrors.CodeConfiguration, err, "could not read the configuration file %q", path)
			}
			continue
		}
		v.SetConfigFile(candidate)
		if err := v.MergeInConfig(); err != nil {
			return nil, ctlerrors.Wrap(ctlerrors.CodeConfiguration, err, "could not parse the configuration file %q", candidate)
		}
		used = candidate
	}

	cfg := &Config{path: used}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, ctlerrors.Wrap(ctlerrors.CodeConfiguration, err, "could not decode the configuration")
	}
	return cfg, nil
}

// candidatePaths returns the configuration files to merge, lowest precedence
// first. An explicit path short-circuits the chain.
func candidatePaths(path string) []string {
	if path != "" {
		return []string{path}
	}
	candidates := []string{"/etc/ovhctl/config.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".ovhctl.yaml"))
	}
	return append(candidates, "config.yaml")
}

// Path returns the configuration file with the highest precedence that was
// actually read, or the empty string when everything came from defaults and
// the environment.
func (c *Config) Path() string {
	return c.path
}

// Validate checks the fields required before any network call. The consumer
// key is intentionally not required: the connect handshake runs without one.
func (c *Config) Validate() error {
	if c.Ovh.ApplicationKey == "" {
		return ctlerrors.New(ctlerrors.CodeConfiguration, "ovh.application-key is not set")
	}
	if c.Ovh.ApplicationSecret == "" {
		return ctlerrors.New(ctlerrors.CodeConfiguration, "ovh.application-secret is not set")
	}
	if _, err := ovh.ResolveEndpoint(c.Ovh.Endpoint); err != nil {
		return err
	}
	return nil
}

// ValidateSigned checks the fields required for signed calls: Validate plus a
// consumer key.
func (c *Config) ValidateSigned() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Ovh.ConsumerKey == "" {
		return ctlerrors.New(ctlerrors.CodeConfiguration, "ovh.consumer-key is not set, run 'ovhctl connect' first")
	}
	return nil
}

// ClientOptions converts the credentials into OVHcloud client options.
func (c *Config) ClientOptions() ovh.Options {
	return ovh.Options{
		Endpoint:          c.Ovh.Endpoint,
		ApplicationKey:    c.Ovh.ApplicationKey,
		ApplicationSecret: c.Ovh.ApplicationSecret,
		ConsumerKey:       c.Ovh.ConsumerKey,
	}
}

// PersistConsumerKey writes consumerKey into the credential file at path,
// preserving every other field. When path is empty it falls back to
// $HOME/.ovhctl.yaml, creating the file when needed.
func PersistConsumerKey(path, consumerKey string) error {
	if consumerKey == "" {
		return ctlerrors.New(ctlerrors.CodeConfiguration, "refusing to persist an empty consumer key")
	}

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ctlerrors.Wrap(ctlerrors.CodeConfiguration, err, "could not determine the home directory")
		}
		path = filepath.Join(home, ".ovhctl.yaml")
	}

	// Keep unknown fields intact by editing the raw document instead of
	// round-tripping through Config.
	document := map[string]any{}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &document); err != nil {
			return ctlerrors.Wrap(ctlerrors.CodeConfiguration, err, "could not parse the configuration file %q", path)
		}
	case os.IsNotExist(err):
		// A fresh file is fine, the consumer key may arrive before the rest.
	default:
		return ctlerrors.Wrap(ctlerrors.CodeConfiguration, err, "could not read the configuration file %q", path)
	}

	section, ok := document["ovh"].(map[string]any)
	if !ok {
		section = map[string]any{}
		document["ovh"] = section
	}
	section["consumer-key"] = consumerKey

	out, err := yaml.Marshal(document)
	if err != nil {
		return ctlerrors.Wrap(ctlerrors.CodeConfiguration, err, "could not serialize the configuration")
	}
	if err := os.WriteFile(path, out, DefaultFileMode); err != nil {
		return ctlerrors.Wrap(ctlerrors.CodeConfiguration, err, "could not write the configuration file %q", path)
	}
	return nil
}

// String implements fmt.Stringer without leaking secrets.
func (c *Config) String() string {
	masked := func(s string) string {
		if s == "" {
			return "<unset>"
		}
		return "<set>"
	}
	return fmt.Sprintf("config{endpoint: %s, application-key: %s, application-secret: %s, consumer-key: %s}",
		c.Ovh.Endpoint, masked(c.Ovh.ApplicationKey), masked(c.Ovh.ApplicationSecret), masked(c.Ovh.ConsumerKey))
}
