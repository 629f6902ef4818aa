// Package config resolves notes-api settings from the environment, optionally
// seeded from a .env file in the working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultPort         = 5000
	DefaultStoreURI     = "mongodb://localhost:27017/student-notes"
	DefaultAllowOrigins = "*"
	DefaultLogLevel     = "info"
)

type Config struct {
	Port         int
	StoreURI     string
	AllowOrigins string
	LogLevel     string
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads .env (if present) into the process environment without
// overriding variables that are already set, then resolves the config.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:         DefaultPort,
		StoreURI:     DefaultStoreURI,
		AllowOrigins: DefaultAllowOrigins,
		LogLevel:     DefaultLogLevel,
	}

	if portStr := strings.TrimSpace(getenv("PORT")); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid PORT %q: must be an integer between 1 and 65535", portStr)
		}
		cfg.Port = port
	}
	if uri := strings.TrimSpace(getenv("MONGODB_URI")); uri != "" {
		cfg.StoreURI = uri
	}
	if origins := strings.TrimSpace(getenv("NOTES_API_CORS_ORIGINS")); origins != "" {
		cfg.AllowOrigins = origins
	}
	if level := strings.TrimSpace(getenv("NOTES_API_LOG_LEVEL")); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}

	return cfg, nil
}
