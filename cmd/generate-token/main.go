package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/azanlabs/supplysync/internal/config"
	"github.com/azanlabs/supplysync/internal/repository/postgres"
	"github.com/azanlabs/supplysync/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/generate-token/main.go <shop-domain>")
		fmt.Println("Example: go run cmd/generate-token/main.go \"my-shop.myshopify.com\"")
		os.Exit(1)
	}

	shopDomain := os.Args[1]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// Create repositories
	repos := postgres.NewRepositories(db, logger)

	// Rotate the stock-push token
	tokenService := service.NewTokenService(repos, logger)
	token, err := tokenService.Rotate(context.Background(), shopDomain)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to rotate token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Token rotated successfully!\n\n")
	fmt.Printf("Shop Domain: %s\n", shopDomain)
	fmt.Printf("Token: %s\n", token)
	fmt.Printf("\n⚠️  IMPORTANT: Save this token securely! You won't be able to see it again.\n")
	fmt.Printf("\nUse this token in the x-api-key header on stock push requests:\n")
	fmt.Printf("x-api-key: %s\n", token)
}
