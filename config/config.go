// Package config loads broker configuration from a YAML file, layered with
// environment variable overrides for secrets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MQTT holds connection settings for the upstream MQTT broker.
type MQTT struct {
	BrokerURL        string `yaml:"broker_url"`
	BrokerPort       int    `yaml:"broker_port"`
	Username         string `yaml:"username"`
	Password         string `yaml:"password"`
	KeepaliveSeconds int    `yaml:"keepalive_seconds"`
	TLS              bool   `yaml:"tls"`
}

// Listen holds the HTTP server's bind address.
type Listen struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Config is the broker's full runtime configuration.
type Config struct {
	MQTT         MQTT     `yaml:"mqtt"`
	BrokerListen Listen   `yaml:"broker_listen"`
	Domains      []string `yaml:"domains"`
	// Verbose logs every inbound MQTT message before dispatch.
	Verbose bool `yaml:"verbose"`
}

// Load reads the YAML file at path, then applies environment overrides.
// MQTT_PASSWORD, if set, always wins over the file's mqtt.password so
// credentials don't need to live on disk.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if pw := os.Getenv("MQTT_PASSWORD"); pw != "" {
		cfg.MQTT.Password = pw
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Domains) == 0 {
		return fmt.Errorf("config: at least one domain must be configured")
	}
	if c.BrokerListen.Port <= 0 {
		return fmt.Errorf("config: broker_listen.port must be set")
	}
	if c.MQTT.BrokerURL == "" {
		return fmt.Errorf("config: mqtt.broker_url must be set")
	}
	return nil
}

// DomainSet returns the configured domains as a lookup set.
func (c *Config) DomainSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Domains))
	for _, d := range c.Domains {
		set[d] = struct{}{}
	}
	return set
}
