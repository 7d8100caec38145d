package main

import (
	"log"

	"github.com/joho/godotenv"

	"goqval/internal"
	"goqval/internal/config"
	"goqval/ui"
)

func main() {
	// Load .env if present; environment variables win over file values.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()
	app := ui.NewApp(cfg.Summary, logger)

	if err := app.Serve(cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
