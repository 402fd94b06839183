package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/medalboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"MEDALBOARD_CONFIG",
	"MEDALBOARD_ADDR",
	"MEDALBOARD_LOG_LEVEL",
	"MEDALBOARD_DATA_DIR",
	"MEDALBOARD_MEDALS_DELIMITER",
	"MEDALBOARD_ECONOMY_COUNTRY",
	"MEDALBOARD_ECONOMY_FROM_YEAR",
	"MEDALBOARD_BAR_TOP_N",
	"MEDALBOARD_LOAD_WORKERS",
}

func clearConfigEnvVars() {
	for _, v := range configEnvVars {
		_ = os.Unsetenv(v)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "medalboard.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.DataDir, convey.ShouldEqual, "input")
				convey.So(cfg.BarTopN, convey.ShouldEqual, 8)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("MEDALBOARD_ADDR", ":8080")
			_ = os.Setenv("MEDALBOARD_ECONOMY_COUNTRY", "Japan")
			_ = os.Setenv("MEDALBOARD_ECONOMY_FROM_YEAR", "1964")
			_ = os.Setenv("MEDALBOARD_BAR_TOP_N", "10")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.EconomyCountry, convey.ShouldEqual, "Japan")
				convey.So(cfg.EconomyFromYear, convey.ShouldEqual, 1964)
				convey.So(cfg.BarTopN, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When loading config with a YAML file and env", func() {
			path := createTempConfigFile(t, `
addr: ":9090"
data_dir: /srv/olympics
medals_delimiter: ","
load_workers: 2
`)
			_ = os.Setenv("MEDALBOARD_CONFIG", path)
			_ = os.Setenv("MEDALBOARD_LOAD_WORKERS", "3")

			cfg, err := config.Load(ctx)

			convey.Convey("Then env overrides the file and the file overrides defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.Delimiter(), convey.ShouldEqual, ',')
				convey.So(cfg.LoadWorkers, convey.ShouldEqual, 3)
				convey.So(cfg.Path(cfg.HostsFile), convey.ShouldEqual, filepath.Join("/srv/olympics", "olympic_hosts.csv"))
				convey.So(cfg.Season, convey.ShouldEqual, "Summer")
			})
		})

		convey.Convey("When the YAML file is invalid", func() {
			_ = os.Setenv("MEDALBOARD_CONFIG", createTempConfigFile(t, `invalid: yaml: content: [`))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the YAML file is missing", func() {
			_ = os.Setenv("MEDALBOARD_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("MEDALBOARD_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When a numeric variable is not a number", func() {
			_ = os.Setenv("MEDALBOARD_BAR_TOP_N", "eight")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}
