package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

const minSecretLength = 16

type Config struct {
	// Server
	Port        string   `yaml:"port"`
	Environment string   `yaml:"environment"`
	LogLevel    string   `yaml:"log_level"`
	CORSOrigins []string `yaml:"cors_origins"`

	// Storage. An empty DatabaseURL selects the in-process store.
	DatabaseURL string `yaml:"database_url"`
	RedisURL    string `yaml:"redis_url"`

	// Auth
	JWTSecret     string        `yaml:"jwt_secret"`
	TokenTTL      time.Duration `yaml:"token_ttl"`
	BcryptCost    int           `yaml:"bcrypt_cost"`
	AuthRateLimit int           `yaml:"auth_rate_limit"`
}

// Load builds the configuration from, in increasing precedence: built-in
// defaults, the YAML file at path (skipped when path is empty), a .env file
// in the working directory and the process environment.
func Load(path string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Port:          "3000",
		Environment:   "development",
		LogLevel:      "info",
		CORSOrigins:   []string{"http://localhost:5173", "http://localhost:5000"},
		TokenTTL:      7 * 24 * time.Hour,
		BcryptCost:    12,
		AuthRateLimit: 20,
	}
}

func (c *Config) applyEnvOverrides() {
	c.Port = getEnv("PORT", c.Port)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.CORSOrigins = getEnvSlice("CORS_ORIGINS", c.CORSOrigins)
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.RedisURL = getEnv("REDIS_URL", c.RedisURL)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	if hours := getEnvInt("JWT_EXPIRATION_HOURS", 0); hours > 0 {
		c.TokenTTL = time.Duration(hours) * time.Hour
	}
	c.BcryptCost = getEnvInt("BCRYPT_COST", c.BcryptCost)
	c.AuthRateLimit = getEnvInt("AUTH_RATE_LIMIT", c.AuthRateLimit)
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLength)
	}
	if c.TokenTTL <= 0 {
		return errors.New("token lifetime must be positive")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.AuthRateLimit <= 0 {
		return errors.New("AUTH_RATE_LIMIT must be positive")
	}
	return nil
}

// IsDevelopment reports whether the server runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
