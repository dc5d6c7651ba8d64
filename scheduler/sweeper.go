// Package scheduler runs the background sweep of the upload directory.
// The predict handler removes its temp file itself; the sweeper only mops up
// leftovers from crashes between write and cleanup.
package scheduler

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// StartUploadSweeper periodically deletes files in dir older than maxAge.
// Blocks until ctx is canceled; run it in its own goroutine.
func StartUploadSweeper(ctx context.Context, dir string, interval, maxAge time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweep(dir, maxAge, logger)
		}
	}
}

func sweep(dir string, maxAge time.Duration, logger *slog.Logger) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("sweep: read upload dir", "dir", dir, "error", err)
		return
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			logger.Warn("sweep: remove stale upload", "path", path, "error", err)
			continue
		}
		removed++
	}
	if removed > 0 {
		logger.Info("sweep: removed stale uploads", "dir", dir, "count", removed)
	}
}
