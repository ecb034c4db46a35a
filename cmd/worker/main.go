package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Apurer/go-gin-shop-server/internal/app/api"
	"github.com/Apurer/go-gin-shop-server/internal/app/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := api.LoadConfig(".env")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := worker.Run(ctx, cfg); err != nil {
		log.Fatalf("shop worker exited: %v", err)
	}
}
