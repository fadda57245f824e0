package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/KirkDiggler/upgrade-sim/internal/config"
	"github.com/KirkDiggler/upgrade-sim/internal/handlers/console"
	"github.com/KirkDiggler/upgrade-sim/internal/services"
	sessionService "github.com/KirkDiggler/upgrade-sim/internal/services/session"
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
	if cfg.Trees.File != "" {
		log.Printf("Loading skill trees from %s", cfg.Trees.File)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider := services.NewProvider(&services.ProviderConfig{
		Config: cfg,
		Output: os.Stdout,
	})

	sess, err := provider.SessionService.CreateSession(ctx, &sessionService.CreateSessionInput{
		Name:          "sim",
		CharacterName: "Hero",
		Seed:          cfg.Sim.Seed,
	})
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	svc := services.ForSession(sess)
	handler := console.NewHandler(&console.HandlerConfig{
		Session:         sess,
		UpgradeService:  svc.Upgrades,
		TrainingService: svc.Training,
		Input:           os.Stdin,
		Output:          os.Stdout,
		Verbose:         cfg.Sim.Verbose,
	})

	if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
		log.Printf("Session ended with error: %v", err)
	}

	if err := provider.SessionService.EndSession(context.Background(), sess.ID); err != nil {
		log.Printf("Error ending session: %v", err)
	}
}
