package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"cmd"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func writeJSON(t *testing.T, v any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, StoreDynamoDB, c.ProfileStore)
	assert.Equal(t, "UserProfiles-dev", c.TableName)
	assert.Equal(t, "us-east-1", c.Region)
	assert.Equal(t, "info", c.LogLevel)
	assert.Empty(t, c.DynamoDBEndpoint)
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeJSON(t, map[string]string{
		"table_name":   "from-json",
		"region":       "eu-west-1",
		"log_level":    "debug",
		"user_pool_id": "json-pool",
	})
	t.Setenv(ConfigEnv, path)
	t.Setenv(EnvTableName, "UserProfiles-prod")
	t.Setenv(EnvUserPoolID, "env-pool")
	t.Setenv(EnvRegion, "")
	setArgs(t, "-p", "flag-pool")

	c := LoadConfig()

	assert.Equal(t, "UserProfiles-prod", c.TableName)
	assert.Equal(t, "eu-west-1", c.Region)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "flag-pool", c.UserPoolID)
	assert.Equal(t, StoreDynamoDB, c.ProfileStore)
}

func TestParseEnv_BlankValuesIgnored(t *testing.T) {
	t.Setenv(EnvTableName, "   ")
	t.Setenv(EnvProfileStore, " postgres ")

	c := &Config{TableName: "UserProfiles-dev"}
	parseEnv(c)

	assert.Equal(t, "UserProfiles-dev", c.TableName)
	assert.Equal(t, StorePostgres, c.ProfileStore)
}

func TestParseJson(t *testing.T) {
	t.Run("flag path wins over env", func(t *testing.T) {
		t.Setenv(ConfigEnv, filepath.Join(t.TempDir(), "missing.json"))
		setArgs(t, "-config", writeJSON(t, map[string]string{"profile_store": "postgres"}))

		c := &Config{}
		parseJson(c)
		assert.Equal(t, StorePostgres, c.ProfileStore)
	})

	t.Run("no path leaves config alone", func(t *testing.T) {
		t.Setenv(ConfigEnv, "")
		setArgs(t)

		c := &Config{TableName: "keep"}
		parseJson(c)
		assert.Equal(t, "keep", c.TableName)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{nope`), 0o600))
		setArgs(t, "-c", bad)

		require.Panics(t, func() { parseJson(&Config{}) })
	})
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"-s", "postgres", "-t", "tbl", "-d", "dsn", "-g", "eu-central-1", "-e", "http://localhost:8000",
				"-p", "pool", "-n", "name", "-a", "arn:aws:lambda:x", "-l", "warn"},
			expected: &Config{
				ProfileStore:        "postgres",
				TableName:           "tbl",
				DatabaseDSN:         "dsn",
				Region:              "eu-central-1",
				DynamoDBEndpoint:    "http://localhost:8000",
				UserPoolID:          "pool",
				UserPoolName:        "name",
				PostConfirmationARN: "arn:aws:lambda:x",
				LogLevel:            "warn",
			},
		},
		{
			name:     "subcommand ignored",
			args:     []string{"ensure", "-p", "pool"},
			expected: &Config{UserPoolID: "pool"},
		},
		{name: "flag without value", args: []string{"-p"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
