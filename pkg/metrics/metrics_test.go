package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			customLabelsOpt := WithCustomLabels(map[string]string{"env": "test"})
			registryOpt := WithPrometheusRegistry(prometheus.NewRegistry())

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(customLabelsOpt, ShouldNotBeNil)
				So(registryOpt, ShouldNotBeNil)
			})
		})

		Convey("When empty values are passed", func() {
			m := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithCustomLabels(nil),
				WithPrometheusRegistry(nil),
			)

			Convey("Then defaults are kept", func() {
				So(m.namespace, ShouldEqual, "ngplus")
				So(m.subsystem, ShouldEqual, "saves")
				So(m.histogramBuckets, ShouldNotBeEmpty)
				So(m.customLabels, ShouldNotBeNil)
				So(m.Registry(), ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager()

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating two managers", func() {
			Convey("Then their registries do not collide", func() {
				So(func() {
					NewManager()
					NewManager()
				}, ShouldNotPanic)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it registers on the supplied registry", func() {
				So(manager.Registry() == registry, ShouldBeTrue)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestMetricsSubsystem(t *testing.T) {
	Convey("Given a manager with a custom subsystem", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithSubsystem("profiles"), WithPrometheusRegistry(registry))
		m.RecordEvaluation(true, "", time.Millisecond)
		m.RecordScanStarted()

		Convey("Then only the evaluation metrics move to it", func() {
			families, err := registry.Gather()
			So(err, ShouldBeNil)
			names := make([]string, 0, len(families))
			for _, f := range families {
				names = append(names, f.GetName())
			}
			So(names, ShouldContain, "ngplus_profiles_evaluated_total")
			So(names, ShouldContain, "ngplus_scan_runs_total")
			So(names, ShouldNotContain, "ngplus_saves_evaluated_total")
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a metrics manager", t, func() {
		m := NewManager()

		Convey("When recording evaluations", func() {
			m.RecordEvaluation(true, "quests_complete", 2*time.Millisecond)
			m.RecordEvaluation(false, "version_too_old", time.Millisecond)
			m.RecordEvaluation(false, "version_too_old", time.Millisecond)
			m.RecordEvaluation(false, "end_game_save", 0)

			Convey("Then counters reflect the outcomes", func() {
				So(testutil.ToFloat64(m.savesEvaluated), ShouldEqual, 4)
				So(testutil.ToFloat64(m.savesEligible), ShouldEqual, 1)
				So(testutil.ToFloat64(m.savesRejected.WithLabelValues("version_too_old")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.savesRejected.WithLabelValues("end_game_save")), ShouldEqual, 1)
			})
		})

		Convey("When recording scans", func() {
			m.RecordScanStarted()
			m.RecordScanFailure()
			m.RecordScanFinished(5, 2, true, 12*time.Millisecond)

			Convey("Then gauges carry the last scan", func() {
				So(testutil.ToFloat64(m.scansTotal), ShouldEqual, 1)
				So(testutil.ToFloat64(m.scanFailures), ShouldEqual, 1)
				So(testutil.ToFloat64(m.lastScanSaves), ShouldEqual, 5)
				So(testutil.ToFloat64(m.lastScanEligible), ShouldEqual, 2)
				So(testutil.ToFloat64(m.lastScanAnyMatch), ShouldEqual, 1)
				So(testutil.ToFloat64(m.lastScanDurationMs), ShouldEqual, 12)
			})

			Convey("And a later scan without matches resets the flag", func() {
				m.RecordScanFinished(1, 0, false, time.Millisecond)
				So(testutil.ToFloat64(m.lastScanAnyMatch), ShouldEqual, 0)
			})
		})
	})
}

func TestMetricsNilManager(t *testing.T) {
	Convey("Given a nil manager", t, func() {
		var m *Manager

		Convey("Then recording is a no-op", func() {
			So(func() {
				m.RecordEvaluation(true, "", time.Millisecond)
				m.RecordScanStarted()
				m.RecordScanFailure()
				m.RecordScanFinished(1, 1, true, time.Millisecond)
			}, ShouldNotPanic)
			So(m.WriteTextfile("ignored.prom"), ShouldBeNil)
		})
	})
}

func TestMetricsTextfile(t *testing.T) {
	Convey("Given a manager with recorded values", t, func() {
		m := NewManager()
		m.RecordEvaluation(true, "", time.Millisecond)

		Convey("When writing a textfile", func() {
			path := filepath.Join(t.TempDir(), "ngplus.prom")
			err := m.WriteTextfile(path)

			Convey("Then the exposition contains the metrics", func() {
				So(err, ShouldBeNil)
				data, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "ngplus_saves_evaluated_total 1")
			})
		})

		Convey("When the target directory does not exist", func() {
			path := filepath.Join(t.TempDir(), "missing", "ngplus.prom")
			err := m.WriteTextfile(path)

			Convey("Then the export error is wrapped", func() {
				So(errors.Is(err, ErrExportFailed), ShouldBeTrue)
			})
		})

		Convey("When the path is empty", func() {
			So(m.WriteTextfile(""), ShouldBeNil)
		})
	})
}
