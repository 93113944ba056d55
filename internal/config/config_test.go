package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/ngplus/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFile, convey.ShouldEqual, "./NGPlusLog.txt")
			convey.So(cfg.SaveDir, convey.ShouldEqual, "")
			convey.So(cfg.StopOnFirstMatch, convey.ShouldBeFalse)
			convey.So(cfg.PauseOnExit, convey.ShouldBeFalse)
			convey.So(cfg.MetricsFile, convey.ShouldEqual, "")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with invalid values", t, func() {
		convey.Convey("When the log level is unknown", func() {
			cfg := config.New(context.Background())
			cfg.LogLevel = "verbose"

			convey.Convey("Then validation fails", func() {
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "unknown log level")
			})
		})

		convey.Convey("When metrics and log share a file", func() {
			cfg := config.New(context.Background())
			cfg.MetricsFile = cfg.LogFile

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the log file is disabled", func() {
			cfg := config.New(context.Background())
			cfg.LogFile = ""

			convey.Convey("Then validation passes", func() {
				convey.So(cfg.Validate(), convey.ShouldBeNil)
			})
		})
	})
}
