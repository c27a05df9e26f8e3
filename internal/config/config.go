package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Defaults for configuration values.
const (
	DefaultLocale          = "zh-TW"
	DefaultKellyFraction   = 1.0
	DefaultAlertCooldown   = 5 * time.Minute
	DefaultCleanupInterval = 10 * time.Minute
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
)

// DefaultOptions are the option names of a fresh two-sided board.
var DefaultOptions = []string{"Blue", "Red"}

// Config holds all application configuration.
type Config struct {
	Options        []string `toml:"options"`
	Bankroll       float64  `toml:"bankroll"`
	Locale         string   `toml:"locale"`
	KellyFraction  float64  `toml:"kelly_fraction"`
	AutoComplement bool     `toml:"auto_complement"`

	AlertCooldown    time.Duration `toml:"-"`
	AlertCooldownSec int           `toml:"alert_cooldown_sec"`

	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Options:          append([]string(nil), DefaultOptions...),
		Locale:           DefaultLocale,
		KellyFraction:    DefaultKellyFraction,
		AutoComplement:   true,
		AlertCooldown:    DefaultAlertCooldown,
		AlertCooldownSec: int(DefaultAlertCooldown / time.Second),
		LogLevel:         DefaultLogLevel,
		LogFormat:        DefaultLogFormat,
	}
}

// Load reads configuration from an optional TOML file named by
// ADVISOR_CONFIG, then environment variables (and .env file if present).
// Environment values override the file.
func Load() (Config, error) {
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	cfg := Defaults()

	if path := os.Getenv("ADVISOR_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	if v := os.Getenv("ADVISOR_OPTIONS"); v != "" {
		cfg.Options = splitNames(v)
	}

	if v := os.Getenv("ADVISOR_BANKROLL"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Bankroll = f
		}
	}

	if v := os.Getenv("ADVISOR_LOCALE"); v != "" {
		cfg.Locale = v
	}

	if v := os.Getenv("ADVISOR_KELLY_FRACTION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.KellyFraction = f
		}
	}

	if v := os.Getenv("ADVISOR_AUTO_COMPLEMENT"); v != "" {
		cfg.AutoComplement = v == "true"
	}

	if v := os.Getenv("ADVISOR_ALERT_COOLDOWN_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.AlertCooldownSec = n
		}
	}
	cfg.AlertCooldown = time.Duration(cfg.AlertCooldownSec) * time.Second

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}

	return cfg, nil
}

func splitNames(v string) []string {
	var names []string
	for _, name := range strings.Split(v, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Validate checks that configuration values are within acceptable ranges.
func Validate(cfg Config) error {
	if len(cfg.Options) < 2 {
		return fmt.Errorf("ADVISOR_OPTIONS must name at least 2 options, got %d", len(cfg.Options))
	}
	if cfg.Bankroll < 0 {
		return fmt.Errorf("ADVISOR_BANKROLL must be non-negative, got %f", cfg.Bankroll)
	}
	if cfg.KellyFraction <= 0 || cfg.KellyFraction > 1 {
		return fmt.Errorf("ADVISOR_KELLY_FRACTION must be between 0 and 1, got %f", cfg.KellyFraction)
	}
	if _, err := language.Parse(cfg.Locale); err != nil {
		return fmt.Errorf("ADVISOR_LOCALE %q is not a valid locale: %w", cfg.Locale, err)
	}
	if cfg.AlertCooldown < 0 {
		return fmt.Errorf("ADVISOR_ALERT_COOLDOWN_SEC must be non-negative, got %v", cfg.AlertCooldown)
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	return nil
}

// ParseLogLevel maps LOG_LEVEL to a slog level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", level)
}

// FormatBankroll returns a human-readable string for the bankroll setting.
func FormatBankroll(bankroll float64) string {
	if bankroll <= 0 {
		return "not set"
	}
	return strconv.FormatFloat(bankroll, 'f', -1, 64)
}
