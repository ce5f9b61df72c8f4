// Package config reads process settings from the environment.
package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Ricky06202/tshirt-stryd/internal/infra/blob"
	"github.com/Ricky06202/tshirt-stryd/internal/infra/database"

	"github.com/joho/godotenv"
)

const (
	BlobDriverFS = "fs"
	BlobDriverS3 = "s3"
)

type Config struct {
	Port     string
	Database database.Config

	BlobDriver string
	BlobDir    string
	S3         blob.S3Config

	RedisHost       string
	CatalogCacheTTL time.Duration
	RabbitMQURL     string
	EventsExchange  string

	TurnstileSecret  string
	TurnstileSiteKey string

	WhatsAppPhone string
	PaymentPhone  string
}

// Load reads a .env file outside production, then the environment.
func Load() (*Config, error) {
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Load(".env"); err != nil {
			log.Printf("Warning: .env file not loaded, using system environment variables: %v", err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port: strings.TrimPrefix(get("PORT", "8080"), ":"),
		Database: database.Config{
			Driver:     strings.ToLower(get("DB_DRIVER", database.DriverSQLite)),
			DSN:        get("DATABASE_URL", ""),
			LogQueries: get("DB_LOG_QUERIES", "") == "true",
		},
		BlobDriver: strings.ToLower(get("BLOB_DRIVER", BlobDriverFS)),
		BlobDir:    get("BLOB_DIR", "data/images"),
		S3: blob.S3Config{
			Endpoint:        get("S3_ENDPOINT", ""),
			Region:          get("S3_REGION", "auto"),
			Bucket:          get("S3_BUCKET", ""),
			AccessKeyID:     get("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: get("S3_SECRET_ACCESS_KEY", ""),
			Timeout:         10 * time.Second,
		},
		RedisHost:        get("REDIS_HOST", ""),
		CatalogCacheTTL:  5 * time.Minute,
		RabbitMQURL:      get("RABBITMQ_URL", ""),
		EventsExchange:   get("EVENTS_EXCHANGE", "pedidos.exchange"),
		TurnstileSecret:  get("TURNSTILE_SECRET", ""),
		TurnstileSiteKey: get("TURNSTILE_SITE_KEY", ""),
		WhatsAppPhone:    get("WHATSAPP_PHONE", ""),
		PaymentPhone:     get("PAYMENT_PHONE", ""),
	}

	if raw := get("CATALOG_CACHE_TTL", ""); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid CATALOG_CACHE_TTL: %w", err)
		}
		cfg.CatalogCacheTTL = ttl
	}

	switch cfg.Database.Driver {
	case database.DriverSQLite:
		if cfg.Database.DSN == "" {
			cfg.Database.DSN = "file:tshirts.db?_pragma=foreign_keys(1)"
		}
	case database.DriverMySQL:
		if cfg.Database.DSN == "" {
			cfg.Database.DSN = database.MySQLDSN(
				get("MYSQL_USER", ""),
				get("MYSQL_PASSWORD", ""),
				get("MYSQL_HOST", "localhost"),
				get("MYSQL_PORT", "3306"),
				get("MYSQL_DATABASE", ""),
			)
		}
	case database.DriverPostgres:
		if cfg.Database.DSN == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for driver %q", cfg.Database.Driver)
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}

	switch cfg.BlobDriver {
	case BlobDriverFS:
	case BlobDriverS3:
		if cfg.S3.Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required for BLOB_DRIVER=s3")
		}
	default:
		return nil, fmt.Errorf("unsupported BLOB_DRIVER %q", cfg.BlobDriver)
	}

	return cfg, nil
}
