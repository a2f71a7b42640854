package config

import "time"

// CurrentVersion is the config file schema version.
const CurrentVersion = 1

// Config represents the entire user configuration file.
type Config struct {
	Version  int            `yaml:"version"`
	Model    string         `yaml:"model,omitempty"`     // Gemini model identifier
	LogLevel string         `yaml:"log_level,omitempty"` // debug, info, warn, error; empty disables logging
	Server   *ServerConfig  `yaml:"server,omitempty"`
	Discover *DiscoverPrefs `yaml:"discover,omitempty"`
	// The API key is NEVER stored in the config file. It is read from the
	// environment (or a .env file) on every start.
}

// ServerConfig holds the defaults for `vibetagger serve`.
type ServerConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Advertise    bool   `yaml:"advertise"`               // Announce the server over mDNS
	InstanceName string `yaml:"instance_name,omitempty"` // mDNS instance name, defaults to the hostname
}

// DiscoverPrefs holds the defaults for `vibetagger discover`.
type DiscoverPrefs struct {
	Timeout int `yaml:"timeout"` // Browse timeout in seconds
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Server: &ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Discover: &DiscoverPrefs{
			Timeout: 5,
		},
	}
}

// DiscoverTimeout returns the browse timeout as a duration.
func (c *Config) DiscoverTimeout() time.Duration {
	if c.Discover == nil || c.Discover.Timeout <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.Discover.Timeout) * time.Second
}

// applyDefaults fills sections missing from a loaded file.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Server == nil {
		c.Server = def.Server
	}
	if c.Server.Host == "" {
		c.Server.Host = def.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	if c.Discover == nil {
		c.Discover = def.Discover
	}
}
