package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/ccsgo/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var settingsEnvVars = []string{
	"CCS_CONFIG", "CCS_LOG_LEVEL", "CCS_ADDR", "CCS_RATES_FILE",
	"CCS_WITHHOLDING", "CCS_MODE", "CCS_METRIC", "CCS_CORS_ORIGINS",
}

func clearSettingsEnv() {
	for _, key := range settingsEnvVars {
		_ = os.Unsetenv(key)
	}
}

func TestLoadSettings(t *testing.T) {
	convey.Convey("Given a settings loader", t, func() {
		ctx := context.Background()
		clearSettingsEnv()
		defer clearSettingsEnv()

		convey.Convey("When loading with defaults only", func() {
			cfg, err := config.LoadSettings(ctx)

			convey.Convey("Then the defaults apply", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.Mode, convey.ShouldEqual, "common")
				convey.So(cfg.RatesFile, convey.ShouldBeEmpty)
				convey.So(cfg.AllowedOrigins(), convey.ShouldResemble, []string{"*"})

				rate, err := cfg.WithholdingRate()
				convey.So(err, convey.ShouldBeNil)
				convey.So(rate, convey.ShouldBeNil)
			})
		})

		convey.Convey("When environment variables are set", func() {
			_ = os.Setenv("CCS_ADDR", ":9090")
			_ = os.Setenv("CCS_LOG_LEVEL", "debug")
			_ = os.Setenv("CCS_WITHHOLDING", "7.5")
			_ = os.Setenv("CCS_CORS_ORIGINS", "http://localhost:3000, https://example.org")

			cfg, err := config.LoadSettings(ctx)

			convey.Convey("Then they override the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.AllowedOrigins(), convey.ShouldResemble, []string{"http://localhost:3000", "https://example.org"})

				rate, err := cfg.WithholdingRate()
				convey.So(err, convey.ShouldBeNil)
				convey.So(rate.String(), convey.ShouldEqual, "7.5")
			})
		})

		convey.Convey("When a YAML file is provided", func() {
			path := filepath.Join(t.TempDir(), "ccsgo.yaml")
			content := "addr: \":7070\"\nrates_file: rates.yaml\nmetric: out_of_pocket\n"
			_ = os.WriteFile(path, []byte(content), 0o600)
			_ = os.Setenv("CCS_CONFIG", path)
			_ = os.Setenv("CCS_METRIC", "annual_subsidy")

			cfg, err := config.LoadSettings(ctx)

			convey.Convey("Then file values load and env still wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.RatesFile, convey.ShouldEqual, "rates.yaml")
				convey.So(cfg.Metric, convey.ShouldEqual, "annual_subsidy")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			})
		})

		convey.Convey("When the config file is missing", func() {
			_ = os.Setenv("CCS_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

			_, err := config.LoadSettings(ctx)

			convey.Convey("Then a load error is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a value is invalid", func() {
			_ = os.Setenv("CCS_LOG_LEVEL", "chatty")

			_, err := config.LoadSettings(ctx)

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
