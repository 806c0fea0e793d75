package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Flowearn/Flow-data/api"
	"github.com/Flowearn/Flow-data/internal/assistant"
	"github.com/Flowearn/Flow-data/internal/binance"
	"github.com/Flowearn/Flow-data/internal/config"
	"github.com/Flowearn/Flow-data/internal/fallback"
	"github.com/Flowearn/Flow-data/internal/panel"
)

func main() {
	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nReceived shutdown signal, stopping services...")
		cancel() // Cancel the context to stop all panels
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Market data client for the quote venue's spot and futures endpoints
	client := binance.NewClient(
		binance.WithBaseURL(cfg.BaseURL),
		binance.WithFuturesBaseURL(cfg.FuturesBaseURL),
		binance.WithTimeout(cfg.HTTPTimeout),
	)

	// 2. Fallback synthesizer so panels degrade instead of going blank
	synth := fallback.NewSynthesizer(nil)

	// 3. The dashboard's panel set, polling independently
	panels := panel.BuildDefault(client, synth, cfg.DefaultSymbol, cfg.DefaultInterval, logger)
	panels.Start(ctx)
	defer panels.Stop()

	// 4. Scripted chat assistant reading live panel state
	chat := assistant.New(panels)

	// Create API handler and start server
	apiHandler := api.NewAPIHandler(panels, chat, logger)

	fmt.Printf("Dashboard service starting on port %d\n", cfg.Port)
	fmt.Printf("Endpoints:\n")
	fmt.Printf("  GET /api/v1/panels\n")
	fmt.Printf("  GET /api/v1/panels/:name\n")
	fmt.Printf("  PUT /api/v1/symbol\n")
	fmt.Printf("  PUT /api/v1/interval\n")
	fmt.Printf("  POST /api/v1/assistant\n")
	fmt.Printf("  GET /ws\n")
	fmt.Printf("  GET /health\n")
	fmt.Printf("Press Ctrl+C to gracefully shutdown\n")

	log.Fatal(apiHandler.StartServer(cfg.Port))
}
