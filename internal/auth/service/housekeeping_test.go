package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countingCleaner struct {
	calls atomic.Int32
	err   error
}

func (c *countingCleaner) Cleanup(context.Context) (int, error) {
	c.calls.Add(1)
	return 0, c.err
}

func TestHousekeepingService(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, cleanErr := range []error{nil, errors.New("disk gone")} {
		cleaner := &countingCleaner{err: cleanErr}
		hk := NewHousekeepingService(cleaner, logger, 10*time.Millisecond)

		hk.Start()
		require.Eventually(t, func() bool { return cleaner.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
		hk.Stop()
		hk.Stop()

		after := cleaner.calls.Load()
		time.Sleep(30 * time.Millisecond)
		require.Equal(t, after, cleaner.calls.Load(), "no sweeps after Stop")
	}
}

func TestNewHousekeepingService_DefaultInterval(t *testing.T) {
	hk := NewHousekeepingService(&countingCleaner{}, slog.Default(), 0)
	require.Equal(t, time.Hour, hk.Interval)
}
