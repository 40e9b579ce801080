package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/cooksocial/internal/buildinfo"
	"github.com/dmitrijs2005/cooksocial/internal/logging"
	"github.com/dmitrijs2005/cooksocial/internal/server/config"
	"github.com/dmitrijs2005/cooksocial/internal/server/userpool"
)

const usage = `usage: provision <command> [flags]

commands:
  create   create a user pool (-n name, -a PostConfirmation ARN)
  ensure   add missing attributes to a pool (-p pool id)`

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	p, err := userpool.New(ctx, cfg.Region, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	switch os.Args[1] {
	case "create":
		id, err := p.Create(ctx, cfg.UserPoolName, cfg.PostConfirmationARN)
		if err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Println(id)

	case "ensure":
		if cfg.UserPoolID == "" {
			log.Fatalf("user pool id is required (-p or USER_POOL_ID)")
		}
		report, err := p.Ensure(ctx, cfg.UserPoolID)
		if err != nil {
			log.Fatalf("%v", err)
		}
		for _, name := range report.Added {
			fmt.Printf("added %s\n", name)
		}
		for _, d := range report.Diverging {
			fmt.Printf("diverges %s\n", d)
		}
		if !report.InSync() {
			os.Exit(1)
		}

	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
}
