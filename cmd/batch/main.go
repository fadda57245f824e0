package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/KirkDiggler/upgrade-sim/internal/config"
	"github.com/KirkDiggler/upgrade-sim/internal/services"
	"github.com/KirkDiggler/upgrade-sim/internal/services/batch"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider := services.NewProvider(&services.ProviderConfig{
		Config: cfg,
		Output: os.Stdout,
	})

	runner, err := batch.NewRunner(&batch.Config{
		SessionService: provider.SessionService,
		Sessions:       cfg.Batch.Sessions,
		Ticks:          cfg.Batch.Ticks,
		Seed:           cfg.Sim.Seed,
		Verbose:        cfg.Sim.Verbose,
	})
	if err != nil {
		log.Fatalf("Failed to create runner: %v", err)
	}

	log.Printf("Running %d sessions for %d ticks", cfg.Batch.Sessions, cfg.Batch.Ticks)
	summaries, err := runner.Run(ctx)
	if err != nil {
		log.Fatalf("Batch failed: %v", err)
	}

	for _, s := range summaries {
		fmt.Println(s)
		for _, chosen := range s.Chosen {
			fmt.Printf("  chose %s\n", chosen)
		}
	}
}
