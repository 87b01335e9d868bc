// Package config handles configuration for the CLI client.
package config

import "time"

// Config holds runtime settings for the stgmsg CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the relay HTTP endpoint. When empty
//     the client discovers servers on the LAN via mDNS and asks the user to
//     pick one.
//   - BrowseTimeout: how long a single mDNS browse collects responses.
//   - SharedSecret: pre-shared secret both chat parties feed into message
//     key derivation. The server never sees it.
type Config struct {
	ServerEndpointAddr string
	BrowseTimeout      time.Duration
	SharedSecret       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = ""
	c.BrowseTimeout = 3 * time.Second
	c.SharedSecret = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
