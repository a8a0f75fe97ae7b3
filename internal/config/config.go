package config

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config настройки процесса из окружения и .env файлов
type Config struct {
	Addr        string
	GinMode     string
	LogLevel    slog.Level
	GeminiKey   string
	GeminiModel string
	Temperature float32
	// ReferenceDate pins "today" for expiry and prompts; zero means the real clock.
	ReferenceDate time.Time
	SessionKey    []byte
	CookieSecure  bool
}

// envFiles are loaded in order; values already set win.
var envFiles = []string{".env.local", ".env"}

// LoadEnv reads .env.local and .env if present. Missing files are fine.
func LoadEnv() {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			slog.Debug("env file not loaded", "file", f, "err", err)
			continue
		}
		slog.Info("loaded environment file", "file", f)
	}
}

// Load builds Config from the environment. A missing API key is not an error.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:         getEnv("HTTP_ADDR", ":9091"),
		GinMode:      getEnv("GIN_MODE", "debug"),
		GeminiKey:    strings.TrimSpace(getEnv("GEMINI_API_KEY", os.Getenv("API_KEY"))),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		CookieSecure: getEnv("COOKIE_SECURE", "false") == "true",
	}

	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	temp, err := strconv.ParseFloat(getEnv("MODEL_TEMPERATURE", "0.1"), 32)
	if err != nil || temp < 0 || temp > 2 {
		return nil, fmt.Errorf("invalid MODEL_TEMPERATURE %q", os.Getenv("MODEL_TEMPERATURE"))
	}
	cfg.Temperature = float32(temp)

	if v := os.Getenv("REFERENCE_DATE"); v != "" {
		ref, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, fmt.Errorf("invalid REFERENCE_DATE %q: %w", v, err)
		}
		cfg.ReferenceDate = ref
	}

	if key := os.Getenv("SESSION_KEY"); key != "" {
		if len(key) < 32 {
			return nil, fmt.Errorf("SESSION_KEY must be at least 32 bytes")
		}
		cfg.SessionKey = []byte(key)
	} else {
		slog.Warn("SESSION_KEY not set, generating a random one; sessions will not survive a restart")
		cfg.SessionKey = make([]byte, 32)
		if _, err := rand.Read(cfg.SessionKey); err != nil {
			return nil, fmt.Errorf("generate session key: %w", err)
		}
	}

	if cfg.GeminiKey == "" {
		slog.Warn("GEMINI_API_KEY is not set; chat replies will explain how to configure it")
	}
	return cfg, nil
}

// Now returns the reference clock: pinned date if configured, wall clock otherwise.
func (c *Config) Now() func() time.Time {
	if c.ReferenceDate.IsZero() {
		return time.Now
	}
	ref := c.ReferenceDate
	return func() time.Time { return ref }
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
	return l, nil
}
