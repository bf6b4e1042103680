package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/preston-bernstein/nba-schedule-service/internal/config"
	"github.com/preston-bernstein/nba-schedule-service/internal/logging"
	"github.com/preston-bernstein/nba-schedule-service/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	_ = godotenv.Load()

	cfg, err := config.LoadRelay()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid relay configuration: %v\n", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "nba-schedule-relay",
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewRelay(ctx, cfg, logger)
	srv.Run(ctx, stop)
}
