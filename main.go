package main

import (
	"log"

	"github.com/joho/godotenv"
	"efarchive/cmd"
	"efarchive/internal/config"
	"efarchive/internal/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Logger settings come from the environment too, but credentials may
	// legitimately be absent for some subcommands; fall back to defaults so
	// the command layer can report the config error properly.
	if cfg, err := config.Load(); err == nil {
		if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	} else {
		if err := logger.Setup(logger.DefaultConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	}

	cmd.Execute()
}
