package config

import "time"

const (
	GatewayCognito = "cognito"
	GatewayDemo    = "demo"
)

// Config holds runtime settings for the cooksocial CLI.
//
// Units: RequestTimeout bounds each identity provider call.
type Config struct {
	Gateway         string
	Region          string
	ClientID        string
	ClientSecret    string
	CognitoEndpoint string
	TokenCacheDSN   string
	RequestTimeout  time.Duration
	LogLevel        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Gateway = GatewayDemo
	c.Region = "us-east-1"
	c.TokenCacheDSN = "cooksocial.db"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "warn"
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
