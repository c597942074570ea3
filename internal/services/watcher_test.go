package services_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"muserc/internal/services"
)

func awaitEvent(t *testing.T, events <-chan services.WatchEvent) services.WatchEvent {
	t.Helper()
	select {
	case event := <-events:
		return event
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for watch event")
		return services.WatchEvent{}
	}
}

func TestWatcherReportsWriteAndRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".muserc")

	watcher, err := services.NewFileWatcher(path)
	require.NoError(t, err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watcher.Start(ctx)

	require.NoError(t, os.WriteFile(path, []byte("<settings></settings>"), 0o600))
	event := awaitEvent(t, watcher.Events())
	require.False(t, event.Removed)

	require.NoError(t, os.Remove(path))
	// writes may produce several events; drain until the removal shows up
	deadline := time.After(3 * time.Second)
	for {
		select {
		case event := <-watcher.Events():
			if event.Removed {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for remove event")
		}
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".muserc")

	watcher, err := services.NewFileWatcher(path)
	require.NoError(t, err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watcher.Start(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600))
	select {
	case event := <-watcher.Events():
		t.Fatalf("unexpected event for sibling file: %+v", event)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	_, err := services.NewFileWatcher(filepath.Join(t.TempDir(), "missing", ".muserc"))
	require.Error(t, err)
}
