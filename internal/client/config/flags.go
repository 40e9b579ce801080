package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/cooksocial/internal/flagx"
)

var knownFlags = []string{"-g", "-r", "-i", "-s", "-e", "-d", "-t", "-l"}

// parseFlags populates Config fields from the short flags listed in the
// package documentation. Other arguments are filtered out with
// flagx.FilterArgs so they do not trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Gateway, "g", cfg.Gateway, "identity gateway (cognito|demo)")
	fs.StringVar(&cfg.Region, "r", cfg.Region, "AWS region")
	fs.StringVar(&cfg.ClientID, "i", cfg.ClientID, "user pool app client id")
	fs.StringVar(&cfg.ClientSecret, "s", cfg.ClientSecret, "app client secret")
	fs.StringVar(&cfg.CognitoEndpoint, "e", cfg.CognitoEndpoint, "Cognito endpoint override")
	fs.StringVar(&cfg.TokenCacheDSN, "d", cfg.TokenCacheDSN, "token cache DSN")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
