package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
)

// EnvPrefix prefixes every environment override, e.g. CCS_ADDR
const EnvPrefix = "CCS_"

// Settings contains process configuration for the CLI, TUI and HTTP server
type Settings struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// RatesFile points at a rate schedule overlay; empty uses the built-in figures.
	RatesFile string `koanf:"rates_file"`

	// Withholding overrides the schedule's default withholding percentage.
	Withholding string `koanf:"withholding"`

	// Mode is the default generation mode: exhaustive or common.
	Mode string `koanf:"mode"`

	// Metric is the default ranking metric.
	Metric string `koanf:"metric"`

	// CORSOrigins is a comma separated allow list for the HTTP API.
	CORSOrigins string `koanf:"cors_origins"`
}

// DefaultSettings returns the settings used when nothing is configured
func DefaultSettings() *Settings {
	return &Settings{
		LogLevel:    "info",
		Addr:        ":8080",
		Mode:        "common",
		Metric:      "net_income",
		CORSOrigins: "*",
	}
}

// LoadSettings builds Settings by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (DefaultSettings)
//  2. file (YAML) if CCS_CONFIG is set
//  3. env (prefix CCS_)
func LoadSettings(_ context.Context) (*Settings, error) {
	base := DefaultSettings()

	k := koanf.New(".")

	if path := os.Getenv(EnvPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// CCS_RATES_FILE -> rates_file
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields that have a fixed vocabulary
func (s *Settings) Validate() error {
	if s.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(s.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, s.LogLevel)
	}
	if _, err := s.WithholdingRate(); err != nil {
		return err
	}
	return nil
}

// WithholdingRate parses the withholding override; nil means use the schedule default
func (s *Settings) WithholdingRate() (*decimal.Decimal, error) {
	return ParseDecimal(strings.TrimSpace(s.Withholding))
}

// AllowedOrigins splits CORSOrigins into a list
func (s *Settings) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(s.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
