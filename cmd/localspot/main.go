package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hafidzirham/localspot-cli/internal/cli"
	"github.com/hafidzirham/localspot-cli/internal/config"
	"github.com/hafidzirham/localspot-cli/internal/logging"
)

func main() {
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
