package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

// Config holds the settings of the raffle server.
type Config struct {
	Addr            string
	Locale          string
	SessionTTL      time.Duration
	CleanupInterval time.Duration
	Verbose         bool
	LogFile         string
	GinMode         string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Addr:            ":8080",
		Locale:          "es",
		SessionTTL:      time.Hour,
		CleanupInterval: 10 * time.Minute,
		GinMode:         "release",
	}
}

// Load reads the optional .env file, then the optional TOML file named by
// RAFFLE_CONFIG, then the RAFFLE_* environment variables, and validates the
// result. Later sources win.
func Load() (*Config, error) {
	// .env is optional when the variables come from the environment.
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("RAFFLE_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var file struct {
		Addr            *string `toml:"addr"`
		Locale          *string `toml:"locale"`
		SessionTTL      *string `toml:"session_ttl"`
		CleanupInterval *string `toml:"cleanup_interval"`
		Verbose         *bool   `toml:"verbose"`
		LogFile         *string `toml:"log_file"`
		GinMode         *string `toml:"gin_mode"`
	}
	if err := toml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	if file.Addr != nil {
		c.Addr = *file.Addr
	}
	if file.Locale != nil {
		c.Locale = *file.Locale
	}
	if file.SessionTTL != nil {
		if c.SessionTTL, err = time.ParseDuration(*file.SessionTTL); err != nil {
			return fmt.Errorf("config: session_ttl: %w", err)
		}
	}
	if file.CleanupInterval != nil {
		if c.CleanupInterval, err = time.ParseDuration(*file.CleanupInterval); err != nil {
			return fmt.Errorf("config: cleanup_interval: %w", err)
		}
	}
	if file.Verbose != nil {
		c.Verbose = *file.Verbose
	}
	if file.LogFile != nil {
		c.LogFile = *file.LogFile
	}
	if file.GinMode != nil {
		c.GinMode = *file.GinMode
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("RAFFLE_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("RAFFLE_LOCALE"); v != "" {
		c.Locale = v
	}
	if v := os.Getenv("RAFFLE_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: RAFFLE_SESSION_TTL: %w", err)
		}
		c.SessionTTL = d
	}
	if v := os.Getenv("RAFFLE_CLEANUP_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: RAFFLE_CLEANUP_INTERVAL: %w", err)
		}
		c.CleanupInterval = d
	}
	if v := os.Getenv("RAFFLE_VERBOSE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: RAFFLE_VERBOSE: %w", err)
		}
		c.Verbose = b
	}
	if v := os.Getenv("RAFFLE_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		c.GinMode = v
	}
	return nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("config: addr is required")
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("config: invalid locale %q: %w", c.Locale, err)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: session_ttl must be positive, got %s", c.SessionTTL)
	}
	if c.CleanupInterval <= 0 {
		return fmt.Errorf("config: cleanup_interval must be positive, got %s", c.CleanupInterval)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: gin_mode must be debug, release or test, got %q", c.GinMode)
	}
	return nil
}
