package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/dmitrijs2005/cooksocial/internal/logging"
	"github.com/dmitrijs2005/cooksocial/internal/server/config"
	"github.com/dmitrijs2005/cooksocial/internal/server/profiles"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)

	repo, closeFn, err := profiles.NewRepository(ctx, cfg, logger)
	if err != nil {
		// confirmations must not fail because the store is down
		logger.Error(ctx, "profile store unavailable", "store", cfg.ProfileStore, "error", err)
		repo, closeFn = profiles.NewUnavailableRepository(err), func() error { return nil }
	}
	defer func() { _ = closeFn() }()

	lambda.Start(profiles.NewHandler(repo, logger).Handle)
}
