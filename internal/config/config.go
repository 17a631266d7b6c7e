// Package config loads server settings from the environment.
//
// A .env file in the working directory is read first when present; variables
// already set in the process environment win over it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/sakif/gigboard/internal/listing"
)

type Config struct {
	Port     int
	DBPath   string
	LogLevel slog.Level
	Boundary listing.Boundary

	JWTSecret         string
	AdminPasswordHash string

	GitHubClientID      string
	GitHubClientSecret  string
	GitHubCallbackURL   string
	GitHubAllowedLogins []string

	AMQPURL        string
	MetricsEnabled bool
}

// AuthEnabled reports whether write routes require a signed-in editor.
func (c Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// GitHubEnabled reports whether the GitHub sign-in routes are mounted.
func (c Config) GitHubEnabled() bool {
	return c.AuthEnabled() && c.GitHubClientID != "" && c.GitHubClientSecret != ""
}

// Load reads .env (if any) and then the environment.
func Load() (Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. A missing file is not an
// error.
func LoadFile(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return fromEnv()
}

func fromEnv() (Config, error) {
	cfg := Config{
		DBPath:              getEnv("DB_PATH", "data/gigboard.db"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		AdminPasswordHash:   os.Getenv("ADMIN_PASSWORD_HASH"),
		GitHubClientID:      os.Getenv("GITHUB_CLIENT_ID"),
		GitHubClientSecret:  os.Getenv("GITHUB_CLIENT_SECRET"),
		GitHubCallbackURL:   os.Getenv("GITHUB_CALLBACK_URL"),
		GitHubAllowedLogins: splitList(os.Getenv("GITHUB_ALLOWED_LOGINS")),
		AMQPURL:             os.Getenv("AMQP_URL"),
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("config: invalid PORT %q", os.Getenv("PORT"))
	}
	cfg.Port = port

	level, err := ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = level

	boundary, err := listing.ParseBoundary(getEnv("SHOW_BOUNDARY", listing.PastInclusive.String()))
	if err != nil {
		return Config{}, fmt.Errorf("config: SHOW_BOUNDARY: %w", err)
	}
	cfg.Boundary = boundary

	metricsEnabled, err := strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("config: invalid METRICS_ENABLED %q", os.Getenv("METRICS_ENABLED"))
	}
	cfg.MetricsEnabled = metricsEnabled

	if cfg.GitHubCallbackURL == "" {
		cfg.GitHubCallbackURL = fmt.Sprintf("http://localhost:%d/auth/github/callback", cfg.Port)
	}
	return cfg, nil
}

// ParseLevel maps debug, info, warn and error (any case) to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("config: invalid LOG_LEVEL %q", s)
	}
	return level, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// splitList parses "a, b,,c" into [a b c].
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
