package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	GeminiApiKey string  `env:"GEMINI_API_KEY"`
	GoogleApiKey string  `env:"GOOGLE_API_KEY"`
	ApiKey       string  `env:"API_KEY"`
	Model        string  `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	Temperature  float32 `env:"TEMPERATURE" envDefault:"0.2"`
	HistorySize  int     `env:"HISTORY_SIZE" envDefault:"10"`
	Port         string  `env:"PORT" envDefault:"8081"`
	RateLimit    float64 `env:"RATE_LIMIT" envDefault:"1"`
	RateBurst    int     `env:"RATE_BURST" envDefault:"3"`
	LogLevel     string  `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string  `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads an optional .env file and then the process environment. A
// missing credential is not an error: queries fail when they are attempted.
func Load() (*Config, error) {
	// It's okay if .env doesn't exist, as long as env vars are set
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// APIKey returns the first configured credential.
func (c *Config) APIKey() string {
	for _, key := range []string{c.GeminiApiKey, c.GoogleApiKey, c.ApiKey} {
		if key != "" {
			return key
		}
	}
	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("temperature must be between 0 and 1, got %v", c.Temperature)
	}
	if c.HistorySize < 1 {
		return fmt.Errorf("history size must be at least 1, got %d", c.HistorySize)
	}
	if c.RateLimit <= 0 || c.RateBurst < 1 {
		return fmt.Errorf("rate limit must be positive with a burst of at least 1")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// NewHandler builds the slog handler described by LogLevel and LogFormat.
func (c *Config) NewHandler(w io.Writer) slog.Handler {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
