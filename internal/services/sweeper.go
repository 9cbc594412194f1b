package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"alfredoptarigan/resume-forge/internal/logger"
)

// Sweeper removes transient uploads that outlived their request, e.g.
// after a crash between save and cleanup.
type Sweeper interface {
	Start(ctx context.Context)
	Stop()
	SweepOnce() (int, error)
}

type sweeper struct {
	dir      string
	interval time.Duration
	maxAge   time.Duration
	now      func() time.Time
	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewSweeper(dir string, interval, maxAge time.Duration) Sweeper {
	return &sweeper{
		dir:      dir,
		interval: interval,
		maxAge:   maxAge,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
}

// Start implements Sweeper.
func (s *sweeper) Start(ctx context.Context) {
	logger.Infof("🧹 Starting upload sweeper: dir=%s interval=%s max_age=%s", s.dir, s.interval, s.maxAge)

	s.wg.Add(1)
	go s.loop(ctx)
}

// Stop implements Sweeper.
func (s *sweeper) Stop() {
	s.stopOnce.Do(func() {
		logger.Infof("🛑 Stopping upload sweeper...")
		close(s.stopChan)
		s.wg.Wait()
		logger.Infof("✅ Upload sweeper stopped")
	})
}

func (s *sweeper) loop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.SweepOnce()
			if err != nil {
				logger.Warnf("⚠️  Upload sweep failed: %v", err)
				continue
			}
			if removed > 0 {
				logger.Infof("🧹 Removed %d stale uploads", removed)
			}
		}
	}
}

// SweepOnce implements Sweeper. Only regular files directly inside the
// upload directory are considered.
func (s *sweeper) SweepOnce() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read upload directory: %w", err)
	}

	cutoff := s.now().Add(-s.maxAge)
	removed := 0

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().After(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil && !os.IsNotExist(err) {
			logger.Warnf("⚠️  Failed to remove stale upload %s: %v", entry.Name(), err)
			continue
		}
		removed++
	}

	return removed, nil
}
