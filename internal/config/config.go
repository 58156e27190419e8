// Package config loads application configuration from environment variables
// and an optional .env file.
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Scanner  ScannerConfig
	Receipt  ReceiptConfig
}

// AppConfig holds server-level settings.
type AppConfig struct {
	Name     string
	Env      string
	Port     string
	LogLevel string
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// DSN renders the pgx connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// ScannerConfig holds barcode scanner input settings.
type ScannerConfig struct {
	// QuietInterval is the debounce window for end-of-scan detection.
	QuietInterval time.Duration
}

// ReceiptConfig holds receipt printing settings.
type ReceiptConfig struct {
	// SpoolDir is where rendered receipts are written for the print
	// dispatcher. Empty disables printing.
	SpoolDir string
}

// Load reads configuration, preferring environment variables over .env.
func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("no .env file, using environment variables: %v", err)
	}

	viper.SetDefault("APP_NAME", "droppos")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "droppos")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("SCANNER_QUIET_MS", 150)
	viper.SetDefault("RECEIPT_SPOOL_DIR", "")

	return &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Env:      viper.GetString("APP_ENV"),
			Port:     viper.GetString("APP_PORT"),
			LogLevel: viper.GetString("LOG_LEVEL"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
		},
		Scanner: ScannerConfig{
			QuietInterval: time.Duration(viper.GetInt("SCANNER_QUIET_MS")) * time.Millisecond,
		},
		Receipt: ReceiptConfig{
			SpoolDir: viper.GetString("RECEIPT_SPOOL_DIR"),
		},
	}
}
