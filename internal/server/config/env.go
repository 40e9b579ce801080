package config

import (
	"os"
	"strings"
)

// Environment variables. STORAGE_USERPROFILES_NAME and AWS_REGION are what
// the Lambda runtime and its deployment template provide.
const (
	EnvProfileStore        = "PROFILE_STORE"
	EnvTableName           = "STORAGE_USERPROFILES_NAME"
	EnvDatabaseDSN         = "DATABASE_DSN"
	EnvRegion              = "AWS_REGION"
	EnvDynamoDBEndpoint    = "DYNAMODB_ENDPOINT"
	EnvUserPoolID          = "USER_POOL_ID"
	EnvUserPoolName        = "USER_POOL_NAME"
	EnvPostConfirmationARN = "POST_CONFIRMATION_ARN"
	EnvLogLevel            = "LOG_LEVEL"
)

func parseEnv(cfg *Config) {
	cfg.ProfileStore = fallback(os.Getenv(EnvProfileStore), cfg.ProfileStore)
	cfg.TableName = fallback(os.Getenv(EnvTableName), cfg.TableName)
	cfg.DatabaseDSN = fallback(os.Getenv(EnvDatabaseDSN), cfg.DatabaseDSN)
	cfg.Region = fallback(os.Getenv(EnvRegion), cfg.Region)
	cfg.DynamoDBEndpoint = fallback(os.Getenv(EnvDynamoDBEndpoint), cfg.DynamoDBEndpoint)
	cfg.UserPoolID = fallback(os.Getenv(EnvUserPoolID), cfg.UserPoolID)
	cfg.UserPoolName = fallback(os.Getenv(EnvUserPoolName), cfg.UserPoolName)
	cfg.PostConfirmationARN = fallback(os.Getenv(EnvPostConfirmationARN), cfg.PostConfirmationARN)
	cfg.LogLevel = fallback(os.Getenv(EnvLogLevel), cfg.LogLevel)
}

func fallback(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
