package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func watchFixture(t *testing.T) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "alpha"), 0755))
	return root
}

func waitForBatch(t *testing.T, changes <-chan []string) []string {
	t.Helper()
	select {
	case batch, ok := <-changes:
		require.True(t, ok, "watch channel closed unexpectedly")
		return batch
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a change batch")
		return nil
	}
}

func expectQuiet(t *testing.T, changes <-chan []string) {
	t.Helper()
	select {
	case batch := <-changes:
		t.Fatalf("expected no changes, got %v", batch)
	case <-time.After(1200 * time.Millisecond):
	}
}

// TestWatchReportsDocumentChanges verifies a modified document shows up in a
// batch after the quiet period.
func TestWatchReportsDocumentChanges(t *testing.T) {
	root := watchFixture(t)
	watcher, err := NewWatcher(root, nil)
	require.NoError(t, err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := watcher.Watch(ctx)

	notePath := filepath.Join(root, "alpha", "note.txt")
	require.NoError(t, os.WriteFile(notePath, []byte("first draft"), 0644))

	batch := waitForBatch(t, changes)
	assert.Contains(t, batch, notePath)
}

// TestWatchDebouncesBursts verifies a burst of writes collapses into a single
// batch carrying every touched document.
func TestWatchDebouncesBursts(t *testing.T) {
	root := watchFixture(t)
	watcher, err := NewWatcher(root, nil)
	require.NoError(t, err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := watcher.Watch(ctx)

	first := filepath.Join(root, "alpha", "one.md")
	second := filepath.Join(root, "alpha", "two.md")
	third := filepath.Join(root, "three.txt")
	require.NoError(t, os.WriteFile(first, []byte("one"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("two"), 0644))
	require.NoError(t, os.WriteFile(third, []byte("three"), 0644))

	batch := waitForBatch(t, changes)
	assert.Contains(t, batch, first)
	assert.Contains(t, batch, second)
	assert.Contains(t, batch, third)
}

// TestWatchIgnoresUnsupportedFiles verifies changes to unsupported files
// never produce a batch.
func TestWatchIgnoresUnsupportedFiles(t *testing.T) {
	root := watchFixture(t)
	watcher, err := NewWatcher(root, nil)
	require.NoError(t, err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := watcher.Watch(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(root, "program.exe"), []byte("binary"), 0644))

	expectQuiet(t, changes)
}

// TestWatchIgnoresExcludedDirectories verifies exclude patterns silence whole
// subtrees.
func TestWatchIgnoresExcludedDirectories(t *testing.T) {
	root := watchFixture(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "drafts"), 0755))

	watcher, err := NewWatcher(root, []string{"drafts/"})
	require.NoError(t, err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := watcher.Watch(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(root, "drafts", "hidden.txt"), []byte("draft"), 0644))

	expectQuiet(t, changes)
}

// TestWatchFollowsNewDirectories verifies directories created after startup
// are watched too.
func TestWatchFollowsNewDirectories(t *testing.T) {
	root := watchFixture(t)
	watcher, err := NewWatcher(root, nil)
	require.NoError(t, err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := watcher.Watch(ctx)

	newDir := filepath.Join(root, "beta")
	require.NoError(t, os.Mkdir(newDir, 0755))

	// give the event loop a moment to register the new directory
	time.Sleep(500 * time.Millisecond)

	insidePath := filepath.Join(newDir, "inside.md")
	require.NoError(t, os.WriteFile(insidePath, []byte("# inside"), 0644))

	batch := waitForBatch(t, changes)
	assert.Contains(t, batch, insidePath)
}

// TestWatchStopsOnCancel verifies cancellation closes the change channel.
func TestWatchStopsOnCancel(t *testing.T) {
	root := watchFixture(t)
	watcher, err := NewWatcher(root, nil)
	require.NoError(t, err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	changes := watcher.Watch(ctx)
	cancel()

	select {
	case _, ok := <-changes:
		assert.False(t, ok, "channel should be closed after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}

// TestNewWatcherRejectsMissingRoot verifies construction fails for paths that
// are not directories.
func TestNewWatcherRejectsMissingRoot(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}
