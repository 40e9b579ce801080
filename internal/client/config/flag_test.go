package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-g", "cognito", "-r", "eu-west-1", "-i", "client", "-s", "secret",
				"-e", "http://localhost:9229", "-d", ":memory:", "-t", "5", "-l", "debug"},
			expected: &Config{
				Gateway:         "cognito",
				Region:          "eu-west-1",
				ClientID:        "client",
				ClientSecret:    "secret",
				CognitoEndpoint: "http://localhost:9229",
				TokenCacheDSN:   ":memory:",
				RequestTimeout:  5 * time.Second,
				LogLevel:        "debug",
			},
		},
		{
			name:     "config flag ignored",
			args:     []string{"cmd", "-c", "cfg.json", "-g", "demo"},
			expected: &Config{Gateway: "demo"},
		},
		{name: "incorrect timeout", args: []string{"cmd", "-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
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
