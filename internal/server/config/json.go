package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/cooksocial/internal/flagx"
)

// ConfigEnv names the JSON config file when no -c/-config flag is given.
const ConfigEnv = "COOKSOCIAL_CONFIG"

// JsonConfig is the on-disk form of Config.
type JsonConfig struct {
	ProfileStore        string `json:"profile_store"`
	TableName           string `json:"table_name"`
	DatabaseDSN         string `json:"database_dsn"`
	Region              string `json:"region"`
	DynamoDBEndpoint    string `json:"dynamodb_endpoint"`
	UserPoolID          string `json:"user_pool_id"`
	UserPoolName        string `json:"user_pool_name"`
	PostConfirmationARN string `json:"post_confirmation_arn"`
	LogLevel            string `json:"log_level"`
}

// parseJson overlays the non-empty values of the JSON config file. The path
// comes from -c/-config, falling back to $COOKSOCIAL_CONFIG. Read and decode
// errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath(os.Args[1:], ConfigEnv)
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

	overlay(&cfg.ProfileStore, jc.ProfileStore)
	overlay(&cfg.TableName, jc.TableName)
	overlay(&cfg.DatabaseDSN, jc.DatabaseDSN)
	overlay(&cfg.Region, jc.Region)
	overlay(&cfg.DynamoDBEndpoint, jc.DynamoDBEndpoint)
	overlay(&cfg.UserPoolID, jc.UserPoolID)
	overlay(&cfg.UserPoolName, jc.UserPoolName)
	overlay(&cfg.PostConfirmationARN, jc.PostConfirmationARN)
	overlay(&cfg.LogLevel, jc.LogLevel)
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
