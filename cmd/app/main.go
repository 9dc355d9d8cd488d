package main

import (
	"context"
	"os/signal"
	"syscall"

	"condotel/config"
	"condotel/di"
	"condotel/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := di.InitializeScheduler()
	go scheduler.Run(ctx)

	http := di.InitializeService()
	http.Serve()
}
