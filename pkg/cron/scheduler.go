// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// uploadPattern matches the temp files the statement upload spools.
const uploadPattern = "statement-"

// Scheduler manages background scheduled jobs using robfig/cron.
type Scheduler struct {
	cron      *cron.Cron
	uploadDir string
	maxAge    time.Duration
	logger    *slog.Logger
}

// NewScheduler creates a new job scheduler. uploadDir is swept hourly for
// statement temp files older than maxAge, covering uploads that a crashed
// or cancelled request never cleaned up.
func NewScheduler(uploadDir string, maxAge time.Duration, logger *slog.Logger) *Scheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Scheduler{
		cron:      c,
		uploadDir: uploadDir,
		maxAge:    maxAge,
		logger:    logger,
	}
}

// Start begins scheduled jobs.
func (s *Scheduler) Start() error {
	// Stale upload sweep: runs at the top of every hour
	_, err := s.cron.AddFunc("0 * * * *", s.sweepStaleUploads)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		slog.Int("jobs", len(s.cron.Entries())),
	)
	return nil
}

// Stop gracefully stops all scheduled jobs.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("cron scheduler stopping")
	return s.cron.Stop()
}

// RunNow manually triggers the upload sweep (for testing/admin).
func (s *Scheduler) RunNow() {
	go s.sweepStaleUploads()
}

// sweepStaleUploads removes statement temp files older than maxAge.
func (s *Scheduler) sweepStaleUploads() {
	entries, err := os.ReadDir(s.uploadDir)
	if err != nil {
		s.logger.Error("failed to read upload dir", slog.Any("error", err))
		return
	}

	cutoff := time.Now().Add(-s.maxAge)
	removed := 0
	failed := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), uploadPattern) {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.uploadDir, entry.Name())); err != nil {
			s.logger.Warn("failed to remove stale upload",
				slog.String("file", entry.Name()),
				slog.Any("error", err),
			)
			failed++
			continue
		}
		removed++
	}

	if removed > 0 || failed > 0 {
		s.logger.Info("stale upload sweep completed",
			slog.Int("removed", removed),
			slog.Int("failed", failed),
		)
	}
}
