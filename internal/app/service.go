// Package service drives a scan of the save directory: it resolves the
// directory, evaluates every save folder in it and aggregates the outcome.
package service

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/okian/ngplus/internal/adapters/savedir"
	"github.com/okian/ngplus/internal/domain/eligibility"
	"github.com/okian/ngplus/pkg/logger"
	"github.com/okian/ngplus/pkg/metrics"
)

// SaveResult is the evaluation of one save folder.
type SaveResult struct {
	Identifier string
	eligibility.Result
}

// Summary aggregates one scan.
type Summary struct {
	RunID   string
	SaveDir string

	Scanned  int // save folders evaluated
	Eligible int // eligible saves among them
	Skipped  int // entries that are not folders

	// AnyEligible is the OR of every evaluation.
	AnyEligible bool
	// Stopped is set when the scan ended early on the first match.
	Stopped bool

	// Playthroughs lists the distinct playthrough IDs of eligible saves in
	// the order they were found. Informational only.
	Playthroughs []string

	Results []SaveResult
}

// Service scans save directories.
type Service struct {
	resolver         savedir.Resolver
	saveDir          string
	stopOnFirstMatch bool

	logger  logger.Logger
	metrics *metrics.Manager
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records scans and evaluations on m.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithResolver sets the platform folder resolver.
func WithResolver(r savedir.Resolver) Option {
	return func(s *Service) {
		if r != nil {
			s.resolver = r
		}
	}
}

// WithSaveDir scans dir instead of the resolved save directory.
func WithSaveDir(dir string) Option {
	return func(s *Service) {
		s.saveDir = dir
	}
}

// WithStopOnFirstMatch ends a scan at the first eligible save.
func WithStopOnFirstMatch(stop bool) Option {
	return func(s *Service) {
		s.stopOnFirstMatch = stop
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		resolver: savedir.NewResolver(),
		logger:   logger.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SaveDir returns the directory a scan reads. A configured directory wins
// over the platform lookup.
func (s *Service) SaveDir() (string, error) {
	if s.saveDir != "" {
		return s.saveDir, nil
	}
	return savedir.SaveDir(s.resolver)
}

// ReportPaths logs the save folder and the OS "Saved Games" folder. An
// unresolved save folder is left to Scan, which reports it; a failed
// Saved Games lookup is logged. Nothing is returned.
func (s *Service) ReportPaths(ctx context.Context) {
	if dir, err := s.SaveDir(); err == nil {
		s.logger.Info(ctx, "save folder", logger.String("path", dir))
	}

	legacy, err := s.resolver.LegacySavedGamesDir()
	if err != nil {
		s.logger.Error(ctx, "failed to get old saved games folder", logger.Error(err))
		return
	}
	s.logger.Info(ctx, "windows saved games folder", logger.String("path", legacy))
}

// Scan evaluates every save folder of the save directory in name order.
// It fails only when the directory cannot be resolved or listed; a broken
// save is reported in its SaveResult and the scan moves on.
func (s *Service) Scan(ctx context.Context) (Summary, error) {
	start := time.Now()
	sum := Summary{RunID: uuid.NewString()}
	s.metrics.RecordScanStarted()

	dir, err := s.SaveDir()
	if err != nil {
		return sum, s.fail(ctx, sum, err)
	}
	sum.SaveDir = dir

	entries, err := os.ReadDir(dir)
	if err != nil {
		return sum, s.fail(ctx, sum, err)
	}

	s.logger.Info(ctx, "scanning saves",
		logger.String("run_id", sum.RunID),
		logger.String("dir", dir),
		logger.Int("entries", len(entries)),
		logger.Bool("stop_on_first_match", s.stopOnFirstMatch),
	)

	ev := eligibility.New(
		eligibility.WithBaseDir(dir),
		eligibility.WithLogger(s.logger),
		eligibility.WithMetrics(s.metrics),
	)
	seen := make(map[string]struct{})

	for _, entry := range entries {
		if !isDir(dir, entry) {
			sum.Skipped++
			continue
		}

		id := entry.Name()
		res := ev.Evaluate(ctx, id)
		sum.Scanned++
		sum.Results = append(sum.Results, SaveResult{Identifier: id, Result: res})
		if !res.Eligible {
			continue
		}

		sum.Eligible++
		sum.AnyEligible = true
		if _, ok := seen[res.PlaythroughID]; !ok && res.PlaythroughID != "" {
			seen[res.PlaythroughID] = struct{}{}
			sum.Playthroughs = append(sum.Playthroughs, res.PlaythroughID)
		}
		if s.stopOnFirstMatch {
			sum.Stopped = true
			break
		}
	}

	s.metrics.RecordScanFinished(sum.Scanned, sum.Eligible, sum.AnyEligible, time.Since(start))
	s.logger.Info(ctx, "scan finished",
		logger.String("run_id", sum.RunID),
		logger.Int("scanned", sum.Scanned),
		logger.Int("eligible", sum.Eligible),
		logger.Int("playthroughs", len(sum.Playthroughs)),
	)
	return sum, nil
}

func (s *Service) fail(ctx context.Context, sum Summary, err error) error {
	s.metrics.RecordScanFailure()
	s.logger.Error(ctx, "save directory unavailable",
		logger.String("run_id", sum.RunID),
		logger.Error(err),
	)
	return fmt.Errorf("%w: %w", ErrSaveDirUnavailable, err)
}

// isDir reports whether entry is a folder, following symlinks.
func isDir(dir string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir()
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.IsDir()
}
