// Package config loads runtime configuration for the cooksocial CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-g string   identity gateway: cognito or demo
//	-r string   AWS region of the user pool
//	-i string   user pool app client id
//	-s string   app client secret, if the client has one
//	-e string   Cognito endpoint override (local emulator)
//	-d string   token cache DSN (SQLite file path, ":memory:" to disable)
//	-t int      per-request timeout (seconds)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// The JSON loader uses timex.Duration for request_timeout, so values can be
// either strings like "3s" or integer nanoseconds. Absent keys keep their
// previous value:
//
//	{
//	  "gateway": "cognito",
//	  "region": "eu-west-1",
//	  "client_id": "4l1b2c3d4e5f6g7h8i9j0k",
//	  "client_secret": "",
//	  "cognito_endpoint": "",
//	  "token_cache_dsn": "cooksocial.db",
//	  "request_timeout": "10s",
//	  "log_level": "warn"
//	}
package config
