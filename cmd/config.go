package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores the service settings.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaBrokers     []string
	KafkaEventsTopic string

	// DispatchRadiusKm bounds the courier search around a pickup point.
	DispatchRadiusKm float64
	// DispatchSchedule is the six-field cron expression of the sweep.
	DispatchSchedule string
}

// LoadConfig reads configuration in order: .env (if present) → environment →
// flags.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := Config{
		HTTPPort:         envOrDefault("HTTP_PORT", "8080"),
		DBHost:           envOrDefault("DB_HOST", "localhost"),
		DBPort:           envOrDefault("DB_PORT", "5432"),
		DBUser:           envOrDefault("DB_USER", "postgres"),
		DBPassword:       envOrDefault("DB_PASSWORD", "postgres"),
		DBName:           envOrDefault("DB_NAME", "dispatch"),
		DBSslMode:        envOrDefault("DB_SSLMODE", "disable"),
		KafkaEventsTopic: envOrDefault("KAFKA_EVENTS_TOPIC", "dispatch.events"),
		DispatchSchedule: envOrDefault("DISPATCH_SCHEDULE", "*/5 * * * * *"),
		DispatchRadiusKm: 5.0,
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = strings.Split(v, ",")
	}

	if v := os.Getenv("DISPATCH_RADIUS_KM"); v != "" {
		radius, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DISPATCH_RADIUS_KM: %w", err)
		}
		cfg.DispatchRadiusKm = radius
	}

	pflag.StringVarP(&cfg.HTTPPort, "port", "p", cfg.HTTPPort, "port to listen on")
	pflag.Float64Var(&cfg.DispatchRadiusKm, "dispatch-radius-km", cfg.DispatchRadiusKm,
		"courier search radius around a pickup point")
	pflag.Parse()

	if cfg.DispatchRadiusKm <= 0 {
		return Config{}, fmt.Errorf("invalid dispatch radius: %f", cfg.DispatchRadiusKm)
	}

	return cfg, nil
}

// DSN builds the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
