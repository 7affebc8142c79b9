package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/gradehub/internal/app"
	"github.com/shrimpsizemoose/gradehub/internal/export"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	var out = flag.String("out", "", "XLSX output path, overrides export.xlsx_path")
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}

	xlsxPath := service.Config.Export.XLSXPath
	if *out != "" {
		xlsxPath = *out
	}

	var publisher export.Publisher
	if url := service.Config.Export.RedisURL; url != "" {
		p, err := export.NewSummaryPublisher(url, service.Config.Export.SummaryKey)
		if err != nil {
			logger.Error.Fatalf("Failed to initialize summary publisher: %v", err)
		}
		defer p.Close()
		logger.Info.Printf("Publishing summary to %s", p.Key())
		publisher = p
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info.Printf("Exporting from %s", service.Client.BaseURL())
	if err := export.NewExporter(service.Dashboard, xlsxPath, publisher).Run(ctx); err != nil {
		logger.Error.Fatalf("Export failed: %v", err)
	}
	logger.Info.Println("Export finished")
}
