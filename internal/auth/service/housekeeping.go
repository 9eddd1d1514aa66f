package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/mcauth/pkg/slogx"
)

// Cleaner is the part of TokenService housekeeping drives.
type Cleaner interface {
	Cleanup(ctx context.Context) (int, error)
}

// HousekeepingService periodically sweeps expired refresh tokens out of the
// registry. Sweeping only reclaims space: expired entries are already
// rejected on use.
type HousekeepingService struct {
	Tokens   Cleaner
	Logger   *slog.Logger
	Interval time.Duration

	// Internal channels for lifecycle management
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewHousekeepingService creates a housekeeping service. If interval is 0
// or negative, defaults to 1 hour.
func NewHousekeepingService(tokens Cleaner, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}

	return &HousekeepingService{
		Tokens:   tokens,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop shuts the worker down and waits for an in-progress sweep to finish.
// It is safe to call more than once.
func (s *HousekeepingService) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		<-s.doneCh
		s.Logger.Info("housekeeping service stopped")
	})
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), s.Interval)
	defer cancel()
	ctx = slogx.WithContext(ctx, s.Logger)

	n, err := s.Tokens.Cleanup(ctx)
	if err != nil {
		s.Logger.Error("failed to sweep expired refresh tokens", "error", err)
		return
	}
	s.Logger.Debug("housekeeping cleanup completed", "swept", n)
}
