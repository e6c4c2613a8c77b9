package watcher

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feliperussi/medwrite-server/internal/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Writer: io.Discard, Environment: "test", Level: slog.LevelError})
}

func TestWatcherTriggersOnJSONChange(t *testing.T) {
	dir := t.TempDir()

	var calls atomic.Int32
	w, err := New(dir, 50*time.Millisecond, func(context.Context) error {
		calls.Add(1)
		return nil
	}, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	go w.Start(ctx)

	// Give the watch goroutine a moment to come up.
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "terms.json"), []byte(`[]`), 0o644))

	require.Eventually(t, func() bool {
		return calls.Load() >= 1
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()

	var calls atomic.Int32
	w, err := New(dir, 150*time.Millisecond, func(context.Context) error {
		calls.Add(1)
		return nil
	}, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	go w.Start(ctx)

	time.Sleep(50 * time.Millisecond)

	// A burst of writes inside the debounce window collapses to one reload.
	for i := range 5 {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "terms.json"), []byte(`[]`), 0o644))
		if i < 4 {
			time.Sleep(10 * time.Millisecond)
		}
	}

	require.Eventually(t, func() bool {
		return calls.Load() >= 1
	}, 3*time.Second, 20*time.Millisecond)

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcherIgnoresNonJSON(t *testing.T) {
	dir := t.TempDir()

	var calls atomic.Int32
	w, err := New(dir, 50*time.Millisecond, func(context.Context) error {
		calls.Add(1)
		return nil
	}, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	go w.Start(ctx)

	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), 0, func(context.Context) error { return nil }, testLogger())
	require.Error(t, err)
}
