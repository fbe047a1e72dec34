// Package config centralises configuration parsing for the activity tracker API.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures runtime configuration values for the API server and the seeder.
type Config struct {
	Port    string
	GinMode string

	Database DatabaseConfig

	JWTSecret    string
	JWTAlgorithm string
	JWTIssuer    string
	JWTTTL       time.Duration // Zero means issued tokens carry no exp claim.
	BcryptCost   int
	AuthRequired bool
}

// DatabaseConfig selects the gorm dialect and how to reach it.
type DatabaseConfig struct {
	Driver          string // "sqlite" or "postgres"
	Path            string // sqlite database file
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MonitorInterval time.Duration
}

// DefaultJWTSecret is the development signing key used when JWT_SECRET_KEY is unset.
const DefaultJWTSecret = "change-me"

// Validate rejects configurations that would let anyone forge bearer tokens.
func (c Config) Validate() error {
	if c.AuthRequired && c.JWTSecret == DefaultJWTSecret {
		return errors.New("JWT_SECRET_KEY must be set when AUTH_REQUIRED is true")
	}
	return nil
}

// Load reads an optional .env file and then environment variables into Config,
// applying defaults for local development.
func Load(envFiles ...string) Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err == nil {
			log.Printf("Loaded environment from %s", file)
			break
		}
	}

	return Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "release"),
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			Path:            getEnv("DB_PATH", "activity.sqlite"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "activitytracker"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MonitorInterval: getDurationEnv("DB_MONITOR_INTERVAL", 10*time.Second),
		},
		JWTSecret:    getEnv("JWT_SECRET_KEY", DefaultJWTSecret),
		JWTAlgorithm: strings.ToUpper(getEnv("JWT_ALGORITHM", "HS256")),
		JWTIssuer:    getEnv("JWT_ISSUER", "activitytracker"),
		JWTTTL:       getDurationEnv("JWT_TTL", 0),
		BcryptCost:   getIntEnv("BCRYPT_COST", 0),
		AuthRequired: getBoolEnv("AUTH_REQUIRED", false),
	}
}

// PostgresDSN builds the key/value DSN understood by pgx.
func (d DatabaseConfig) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s "+
			"application_name=activitytracker TimeZone=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode, d.TimeZone,
	)
}

// SQLiteDSN points at the database file with foreign keys enforced.
func (d DatabaseConfig) SQLiteDSN() string {
	if strings.Contains(d.Path, "?") {
		return d.Path + "&_foreign_keys=on"
	}
	return d.Path + "?_foreign_keys=on"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
		log.Printf("Ignoring invalid duration %s=%q", key, value)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		log.Printf("Ignoring invalid integer %s=%q", key, value)
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
		log.Printf("Ignoring invalid boolean %s=%q", key, value)
	}
	return fallback
}
