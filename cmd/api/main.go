// Package main is the entry point for the travel guide API server. It loads
// configuration, prepares the database schema and seeds, and serves the
// catalog, auth and upload endpoints until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/travelguide/internal/config"
	"github.com/yasinhessnawi1/travelguide/internal/server"
	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

// Build metadata, set through linker flags.
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

// init loads environment variables from a .env file if present.
func init() {
	// Not finding a .env file is fine: configuration may come from the environment.
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found or couldn't be loaded")
	}
}

func main() {
	var (
		configPath  string
		showVersion bool
		migrateOnly bool
	)

	flag.StringVar(&configPath, "config", "./configs/config.yaml", "Path to configuration file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&migrateOnly, "migrate-only", false, "Apply migrations and seeds, then exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("Travel Guide API Server\nVersion: %s\nCommit: %s\nBuild Date: %s\n", version, commit, buildDate)
		os.Exit(0)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if version != "dev" {
		cfg.App.Version = version
	}

	utils.InitLogger(cfg)
	utils.SetExposeDevInfo(!cfg.App.IsProduction())
	utils.InitValidator()

	log.Info().
		Str("version", cfg.App.Version).
		Str("environment", cfg.App.Environment).
		Msg("Starting Travel Guide API Server")

	ctx := context.Background()

	srv, err := server.NewServer(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	if migrateOnly {
		log.Info().Msg("Migrations and seeds applied")
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to close server")
		}
		return
	}

	if err := srv.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
