// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the stgmsg relay server.
//
// Fields:
//   - EndpointAddr: bind address for the public HTTP endpoint.
//   - ServerName: instance name used for the mDNS advertisement.
//   - AdvertisePort: port published in the mDNS record (usually the port of
//     EndpointAddr).
//   - DatabaseDSN: PostgreSQL DSN (pgx); empty selects the in-memory store.
//   - RedisAddr: session table backend; empty selects the in-memory table.
//   - SecretKey: HMAC secret for signing session JWTs (HS256). Do not use
//     test defaults in prod.
//   - SessionValidityDuration: session token lifetime.
//   - MaxBodyBytes: upper bound on a single message ciphertext.
//   - InboxCapacity: max stored messages per user (0 = unbounded).
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint:
//     object storage settings for profile images.
type Config struct {
	EndpointAddr            string
	ServerName              string
	AdvertisePort           int
	DatabaseDSN             string
	RedisAddr               string
	SecretKey               string
	SessionValidityDuration time.Duration
	MaxBodyBytes            int
	InboxCapacity           int
	S3RootUser              string
	S3RootPassword          string
	S3Bucket                string
	S3Region                string
	S3BaseEndpoint          string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":6161"
	c.ServerName = "stgserver"
	c.AdvertisePort = 6161
	c.DatabaseDSN = ""
	c.RedisAddr = ""
	c.SecretKey = "secretKey"
	c.SessionValidityDuration = 60 * time.Minute
	c.MaxBodyBytes = 4096
	c.InboxCapacity = 1000
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "avatars"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
