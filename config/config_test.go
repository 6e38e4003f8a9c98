package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadValid(t *testing.T) {
	path := writeConfig(t, `
mqtt:
  broker_url: "localhost"
  broker_port: 1883
  keepalive_seconds: 30
broker_listen:
  host: "0.0.0.0"
  port: 8080
domains:
  - "ffda"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.MQTT.BrokerURL)
	assert.Equal(t, 8080, cfg.BrokerListen.Port)
	assert.True(t, IsDomainConfigured(cfg, "ffda"))
}

func TestLoadMissingDomainsFails(t *testing.T) {
	path := writeConfig(t, `
mqtt:
  broker_url: "localhost"
  broker_port: 1883
broker_listen:
  host: "0.0.0.0"
  port: 8080
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingPortFails(t *testing.T) {
	path := writeConfig(t, `
mqtt:
  broker_url: "localhost"
domains: ["ffda"]
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadEnvOverridesPassword(t *testing.T) {
	path := writeConfig(t, `
mqtt:
  broker_url: "localhost"
  broker_port: 1883
  password: "from-file"
broker_listen:
  host: "0.0.0.0"
  port: 8080
domains: ["ffda"]
`)
	t.Setenv("MQTT_PASSWORD", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.MQTT.Password)
}

func IsDomainConfigured(cfg *Config, domain string) bool {
	_, ok := cfg.DomainSet()[domain]
	return ok
}
