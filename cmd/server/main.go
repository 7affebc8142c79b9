package main

import (
	"context"
	"flag"
	"net/http"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/gradehub/internal/app"
	"github.com/shrimpsizemoose/gradehub/internal/handlers"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}

	if err := service.LoadAll(context.Background()); err != nil {
		logger.Error.Printf("Initial load incomplete: %v", err)
	}

	logger.Info.Printf("Starting gradehub server on %s", service.Config.Server.Port)
	logger.Debug.Printf("Backend API at %s", service.Client.BaseURL())
	if err := http.ListenAndServe(service.Config.Server.Port, handlers.Routes(service)); err != nil {
		logger.Error.Fatalf("Gradehub server failed: %v", err)
	}
}
