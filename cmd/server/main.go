package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/azanlabs/supplysync/internal/api"
	"github.com/azanlabs/supplysync/internal/config"
	"github.com/azanlabs/supplysync/internal/repository/postgres"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Connected to database",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
	)

	// Create repositories
	repos := postgres.NewRepositories(db, logger)

	// Create router and start server
	router := api.NewRouter(cfg, repos, logger)

	addr := ":" + cfg.Port
	logger.Info("Starting server",
		zap.String("addr", addr),
		zap.String("environment", cfg.Environment),
	)

	if err := router.Run(addr); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
