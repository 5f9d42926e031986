package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Supplier    SupplierConfig
	Storefront  StorefrontConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// SupplierConfig carries the wholesale API base URLs. Per-tenant credentials
// (App-ID, Secret-Key, sandbox flag) live in the tenant configuration table.
type SupplierConfig struct {
	ProductionBaseURL string
	SandboxBaseURL    string
}

// BaseURL returns the base URL for the given sandbox flag.
func (c SupplierConfig) BaseURL(sandbox bool) string {
	if sandbox {
		return c.SandboxBaseURL
	}
	return c.ProductionBaseURL
}

type StorefrontConfig struct {
	APIVersion string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "supplysync"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Supplier: SupplierConfig{
			ProductionBaseURL: getEnvOrViper("SUPPLIER_BASE_URL", "https://api.azanwholesale.com"),
			SandboxBaseURL:    getEnvOrViper("SUPPLIER_SANDBOX_BASE_URL", "https://beta.azanwholesale.com"),
		},
		Storefront: StorefrontConfig{
			APIVersion: getEnvOrViper("SHOPIFY_API_VERSION", "2024-01"),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
