package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment,
// loaded once at startup and passed around explicitly.
type Config struct {
	Port      string
	JWTSecret string
	TokenTTL  time.Duration

	DBHost string
	DBUser string
	DBPass string
	DBName string
	DBPort string

	// KingsChat identity gateway
	KCAPIBase  string
	KCClientID string

	// Requests allowed per IP per window
	APIRateLimit    int
	APIRateWindow   time.Duration
	LoginRateLimit  int
	LoginRateWindow time.Duration
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Warning: .env file not found, using system environment variables")
	}

	cfg := &Config{
		Port:            envOr("PORT", "8080"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		TokenTTL:        24 * time.Hour,
		DBHost:          os.Getenv("DB_HOST"),
		DBUser:          os.Getenv("DB_USER"),
		DBPass:          os.Getenv("DB_PASS"),
		DBName:          os.Getenv("DB_NAME"),
		DBPort:          os.Getenv("DB_PORT"),
		KCAPIBase:       envOr("KC_API_BASE", "https://connect.kingsch.at"),
		KCClientID:      os.Getenv("KC_CLIENT_ID"),
		APIRateLimit:    envIntOr("API_RATE_LIMIT", 100),
		APIRateWindow:   15 * time.Minute,
		LoginRateLimit:  envIntOr("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow: time.Hour,
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is missing in .env")
	}
	if cfg.DBHost == "" || cfg.DBUser == "" || cfg.DBPass == "" || cfg.DBName == "" || cfg.DBPort == "" {
		return nil, fmt.Errorf("DATABASE ENV MISSING — check .env file")
	}

	return cfg, nil
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort,
	)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}
