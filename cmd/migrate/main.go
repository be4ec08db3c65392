package main

import (
	"context"
	"log"
	"os"
	"time"

	"datasight/internal"
	"datasight/internal/config"
	"datasight/internal/container"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// An explicit URL argument wins over DATABASE_URL
	if len(os.Args) > 1 {
		appConfig.Database.URL = os.Args[1]
	}
	if !appConfig.Database.Enabled() {
		log.Fatal("Usage: migrate [database_url] (or set DATABASE_URL)")
	}

	logger := internal.NewLoggerWithConfig(internal.LogConfig{
		Level:  internal.ParseLogLevel(appConfig.Log.Level),
		Format: "console",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := container.OpenDatabase(ctx, appConfig.Database, logger)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	defer db.Close()

	log.Println("Migration complete")
}
