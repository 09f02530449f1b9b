package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), DefaultFileMode))
	return path
}

func TestLoadExplicitFile(t *testing.T) {
	path := writeConfigFile(t, `
ovh:
  endpoint: ovh-ca
  application-key: ak
  application-secret: as
  consumer-key: ck
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ovh-ca", cfg.Ovh.Endpoint)
	assert.Equal(t, "ak", cfg.Ovh.ApplicationKey)
	assert.Equal(t, "as", cfg.Ovh.ApplicationSecret)
	assert.Equal(t, "ck", cfg.Ovh.ConsumerKey)
	assert.Equal(t, path, cfg.Path())
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONFIGURATION_ERROR")
}

func TestLoadDefaultsEndpoint(t *testing.T) {
	path := writeConfigFile(t, `
ovh:
  application-key: ak
  application-secret: as
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ovh-eu", cfg.Ovh.Endpoint)
}

func TestLoadHomeFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".ovhctl.yaml"), []byte(`
ovh:
  application-key: from-home
`), DefaultFileMode))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-home", cfg.Ovh.ApplicationKey)
	assert.Equal(t, filepath.Join(home, ".ovhctl.yaml"), cfg.Path())
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
ovh:
  application-key: from-file
  application-secret: as
`)
	t.Setenv("OVHCTL_OVH_APPLICATION_KEY", "from-env")
	t.Setenv("OVHCTL_OVH_CONSUMER_KEY", "ck-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Ovh.ApplicationKey)
	assert.Equal(t, "ck-env", cfg.Ovh.ConsumerKey)
	assert.Equal(t, "as", cfg.Ovh.ApplicationSecret)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		description string
		credentials Credentials
		wantErr     string
	}{
		{
			description: "complete",
			credentials: Credentials{Endpoint: "ovh-eu", ApplicationKey: "ak", ApplicationSecret: "as"},
		},
		{
			description: "missing application key",
			credentials: Credentials{Endpoint: "ovh-eu", ApplicationSecret: "as"},
			wantErr:     "ovh.application-key",
		},
		{
			description: "missing application secret",
			credentials: Credentials{Endpoint: "ovh-eu", ApplicationKey: "ak"},
			wantErr:     "ovh.application-secret",
		},
		{
			description: "unknown endpoint",
			credentials: Credentials{Endpoint: "ovh-moon", ApplicationKey: "ak", ApplicationSecret: "as"},
			wantErr:     "ovh-moon",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			err := (&Config{Ovh: tc.credentials}).Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidateSignedRequiresConsumerKey(t *testing.T) {
	cfg := &Config{Ovh: Credentials{Endpoint: "ovh-eu", ApplicationKey: "ak", ApplicationSecret: "as"}}

	err := cfg.ValidateSigned()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ovhctl connect")

	cfg.Ovh.ConsumerKey = "ck"
	assert.NoError(t, cfg.ValidateSigned())
}

func TestPersistConsumerKey(t *testing.T) {
	path := writeConfigFile(t, `
ovh:
  endpoint: ovh-ca
  application-key: ak
  application-secret: as
custom-section:
  keep: me
`)

	require.NoError(t, PersistConsumerKey(path, "ck-fresh"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(DefaultFileMode), info.Mode().Perm())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var document map[string]any
	require.NoError(t, yaml.Unmarshal(raw, &document))

	ovhSection, ok := document["ovh"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ck-fresh", ovhSection["consumer-key"])
	assert.Equal(t, "ak", ovhSection["application-key"])
	assert.Equal(t, "as", ovhSection["application-secret"])
	assert.Equal(t, "ovh-ca", ovhSection["endpoint"])

	custom, ok := document["custom-section"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "me", custom["keep"])
}

func TestPersistConsumerKeyCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.yaml")

	require.NoError(t, PersistConsumerKey(path, "ck"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ck", cfg.Ovh.ConsumerKey)
}

func TestPersistConsumerKeyRefusesEmptyKey(t *testing.T) {
	err := PersistConsumerKey(filepath.Join(t.TempDir(), "x.yaml"), "")
	require.Error(t, err)
}

func TestStringMasksSecrets(t *testing.T) {
	cfg := &Config{Ovh: Credentials{
		Endpoint:          "ovh-eu",
		ApplicationKey:    "super-secret-ak",
		ApplicationSecret: "super-secret-as",
		ConsumerKey:       "super-secret-ck",
	}}

	repr := cfg.String()
	assert.NotContains(t, repr, "super-secret")
	assert.Contains(t, repr, "ovh-eu")
}
