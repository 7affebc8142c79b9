package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/gradehub/internal/app"
	"github.com/shrimpsizemoose/gradehub/internal/cli"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: gradectl [-config path] <command> [args...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.New(service, os.Stdout).Run(ctx, flag.Args()); err != nil {
		stop()
		logger.Error.Fatalf("Error: %v", err)
	}
}
