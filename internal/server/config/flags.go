package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/cooksocial/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-s string   profile store (dynamodb|postgres)
//	-t string   DynamoDB table name
//	-d string   PostgreSQL DSN
//	-g string   AWS region
//	-e string   DynamoDB endpoint override
//	-p string   user pool id
//	-n string   user pool name
//	-a string   PostConfirmation Lambda ARN
//	-l string   log level
//
// os.Args is filtered with flagx.FilterArgs first, so subcommands and
// unrelated flags pass through untouched.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-t", "-d", "-g", "-e", "-p", "-n", "-a", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ProfileStore, "s", config.ProfileStore, "profile store")
	fs.StringVar(&config.TableName, "t", config.TableName, "DynamoDB table name")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.Region, "g", config.Region, "AWS region")
	fs.StringVar(&config.DynamoDBEndpoint, "e", config.DynamoDBEndpoint, "DynamoDB endpoint")
	fs.StringVar(&config.UserPoolID, "p", config.UserPoolID, "user pool id")
	fs.StringVar(&config.UserPoolName, "n", config.UserPoolName, "user pool name")
	fs.StringVar(&config.PostConfirmationARN, "a", config.PostConfirmationARN, "PostConfirmation Lambda ARN")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
