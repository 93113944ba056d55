package main

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	service "github.com/okian/ngplus/internal/app"
	"github.com/okian/ngplus/internal/config"
	"github.com/okian/ngplus/pkg/logger"
	"github.com/okian/ngplus/pkg/metrics"
)

// flags holds the command line values. They override the loaded
// configuration only when set explicitly.
type flags struct {
	configFile       string
	saveDir          string
	logFile          string
	logLevel         string
	stopOnFirstMatch bool
	pause            bool
	metricsFile      string
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "ngplus",
		Short: "Check Cyberpunk 2077 saves for New Game Plus eligibility",
		Long: `ngplus scans the Cyberpunk 2077 save folder and reports whether any save
can start a New Game Plus run. A save qualifies when it is recent enough and
its playthrough either finished quests q104, q110 and q112 or acquired the
q307 blueprint.

Every step is traced to the console and appended to the log file.

Examples:
  ngplus
  ngplus --save-dir ./saves --log-level debug
  ngplus --stop-on-first-match --metrics-file ngplus.prom`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			run(cmd.Context(), cfg, stdin, stdout)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.configFile, "config", "", "YAML config file (default $NGPLUS_CONFIG)")
	fs.StringVar(&f.saveDir, "save-dir", "", "scan this folder instead of the game's save folder")
	fs.StringVar(&f.logFile, "log-file", "", "append the trace to this file, empty disables it (default ./NGPlusLog.txt)")
	fs.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error (default info)")
	fs.BoolVar(&f.stopOnFirstMatch, "stop-on-first-match", false, "stop scanning at the first eligible save")
	fs.BoolVar(&f.pause, "pause", false, "wait for a key press before exiting")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile after the scan")

	return cmd
}

// resolve loads the configuration and applies explicitly set flags on top.
func (f *flags) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadFile(cmd.Context(), f.configFile)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("save-dir") {
		cfg.SaveDir = f.saveDir
	}
	if changed("log-file") {
		cfg.LogFile = f.logFile
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("stop-on-first-match") {
		cfg.StopOnFirstMatch = f.stopOnFirstMatch
	}
	if changed("pause") {
		cfg.PauseOnExit = f.pause
	}
	if changed("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// run performs one scan and reports the aggregate status. Scan failures are
// traced and reported as a false status; they never fail the command.
func run(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout io.Writer) bool {
	level, _ := logger.ParseLevel(cfg.LogLevel) // validated by config

	sink, sinkErr := logger.OpenSink(stdout, cfg.LogFile)
	defer func() {
		_ = sink.Close()
	}()

	log := logger.New(logger.WithWriter(sink), logger.WithLevel(level))
	if sinkErr != nil {
		log.Warn(ctx, "failed to open log file, logging to console only", logger.Error(sinkErr))
	}

	log.Info(ctx, "Running NG+ save metadata debug tool...")

	m := metrics.NewManager()
	svc := service.New(
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithSaveDir(cfg.SaveDir),
		service.WithStopOnFirstMatch(cfg.StopOnFirstMatch),
	)

	svc.ReportPaths(ctx)

	// A scan error has already been traced by the service.
	status := false
	if sum, err := svc.Scan(ctx); err == nil {
		status = sum.AnyEligible
		if len(sum.Playthroughs) > 0 {
			log.Debug(ctx, "eligible playthroughs", logger.String("ids", strings.Join(sum.Playthroughs, ",")))
		}
	}

	log.Info(ctx, "NG+ save status: "+strconv.FormatBool(status))

	if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
		log.Error(ctx, "failed to write metrics file", logger.String("path", cfg.MetricsFile), logger.Error(err))
	}

	if cfg.PauseOnExit {
		log.Info(ctx, "Press any key to exit...")
		_, _ = bufio.NewReader(stdin).ReadByte()
	}

	return status
}
