// file: internal/watcher/watcher_test.go
// version: 2.0.0
// guid: a1b2c3d4-e5f6-7890-abcd-ef1234567890

package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdfalk/cover-preview/internal/clock"
)

func newFakeWatcher(t *testing.T, calls *atomic.Int32) (*Watcher, *clock.FakeClock, string) {
	t.Helper()
	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	w := New(func(string) { calls.Add(1) }, 100*time.Millisecond, WithClock(c))
	w.path = path
	return w, c, path
}

func TestHandleEvent_DebouncesBursts(t *testing.T) {
	var calls atomic.Int32
	w, c, path := newFakeWatcher(t, &calls)

	for range 5 {
		w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})
		c.Advance(20 * time.Millisecond)
	}
	assert.Equal(t, int32(0), calls.Load())

	c.Advance(100 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Create})
	c.Advance(100 * time.Millisecond)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHandleEvent_IgnoresOtherFiles(t *testing.T) {
	var calls atomic.Int32
	w, c, path := newFakeWatcher(t, &calls)

	w.handleEvent(fsnotify.Event{Name: filepath.Join(filepath.Dir(path), "other.yaml"), Op: fsnotify.Write})
	w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Chmod})
	w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Remove})
	c.Advance(time.Second)

	assert.Equal(t, int32(0), calls.Load())
	assert.Equal(t, 0, c.Pending())
}

func TestStop_CancelsPendingReload(t *testing.T) {
	var calls atomic.Int32
	w, c, path := newFakeWatcher(t, &calls)
	w.running = true
	close(w.stopped)

	w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})
	w.Stop()
	c.Advance(time.Second)
	assert.Equal(t, int32(0), calls.Load())
}

func TestWatcher_RealFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("friends: []\n"), 0o644))

	var calls atomic.Int32
	w := New(func(got string) {
		abs, _ := filepath.Abs(path)
		if got == abs {
			calls.Add(1)
		}
	}, 50*time.Millisecond)
	require.NoError(t, w.Start(path))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("friends: []\n# edited\n"), 0o644))

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestStartTwiceIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	w := New(nil, 0)
	require.NoError(t, w.Start(path))
	require.NoError(t, w.Start(path))
	w.Stop()
	w.Stop()
	assert.Equal(t, DefaultDebounce, w.debounce)
}
