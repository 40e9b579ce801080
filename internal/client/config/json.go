package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/cooksocial/internal/flagx"
	"github.com/dmitrijs2005/cooksocial/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	Gateway         string         `json:"gateway"`
	Region          string         `json:"region"`
	ClientID        string         `json:"client_id"`
	ClientSecret    string         `json:"client_secret"`
	CognitoEndpoint string         `json:"cognito_endpoint"`
	TokenCacheDSN   string         `json:"token_cache_dsn"`
	RequestTimeout  timex.Duration `json:"request_timeout"`
	LogLevel        string         `json:"log_level"`
}

// parseJson overlays Config with the non-empty values of the JSON file named
// by -c or -config. Without either flag nothing happens. Read and decode
// errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath(os.Args[1:], "")
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.Gateway, jc.Gateway)
	overlay(&cfg.Region, jc.Region)
	overlay(&cfg.ClientID, jc.ClientID)
	overlay(&cfg.ClientSecret, jc.ClientSecret)
	overlay(&cfg.CognitoEndpoint, jc.CognitoEndpoint)
	overlay(&cfg.TokenCacheDSN, jc.TokenCacheDSN)
	overlay(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
