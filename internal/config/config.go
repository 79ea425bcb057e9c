package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultPort      = "5000"
	defaultStaticDir = "web"
	defaultLogLevel  = "info"
	defaultHashCost  = 10
)

// Config holds everything the server needs from the environment
type Config struct {
	DB         DBConfig
	ServerPort string
	StaticDir  string
	LogLevel   string
	HashCost   int
}

// Load reads .env (if present) and the process environment. Fallback warnings are returned
// instead of logged since the logger is built from the result.
func Load() (*Config, []string, error) {
	var warnings []string
	if err := godotenv.Load(); err != nil {
		warnings = append(warnings, "No .env file found or error loading, relying on environment variables")
	}

	dbCfg, err := LoadDBConfig()
	if err != nil {
		return nil, warnings, err
	}

	cfg := &Config{
		DB:         *dbCfg,
		ServerPort: envOr("SERVER_PORT", defaultPort),
		StaticDir:  envOr("STATIC_DIR", defaultStaticDir),
		LogLevel:   envOr("LOG_LEVEL", defaultLogLevel),
		HashCost:   defaultHashCost,
	}

	if raw := os.Getenv("BCRYPT_COST"); raw != "" {
		cost, err := strconv.Atoi(raw)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Invalid BCRYPT_COST %q, defaulting to %d", raw, defaultHashCost))
		} else {
			cfg.HashCost = cost
		}
	}

	return cfg, warnings, nil
}

// NewLogger builds the process logger at the configured level
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
