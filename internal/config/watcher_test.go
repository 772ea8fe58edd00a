package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

const testDebounce = 50 * time.Millisecond

func newTestWatcher(t *testing.T, path string, opts ...WatcherOption[Presets]) *Watcher[Presets] {
	t.Helper()
	opts = append([]WatcherOption[Presets]{WithDebounce[Presets](testDebounce)}, opts...)
	return NewConfigWatcher(path, LoadParameterPresets, slog.New(slog.DiscardHandler), opts...)
}

func startWatcher(t *testing.T, w *Watcher[Presets]) {
	t.Helper()
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := w.Stop(); err != nil {
			t.Errorf("watcher.Stop failed: %v", err)
		}
	})
	// Give the watcher time to register with inotify
	time.Sleep(100 * time.Millisecond)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWatcher_Reload(t *testing.T) {
	path := writeTOML(t, "[parameters]\nGain = 1.0\n")

	received := make(chan Presets, 1)
	w := newTestWatcher(t, path)
	w.OnReload(func(p Presets) { received <- p })
	startWatcher(t, w)

	writeFile(t, path, "[parameters]\nGain = 6.5\n")

	select {
	case p := <-received:
		if p["Gain"] != 6.5 {
			t.Errorf("Gain = %v, want 6.5", p["Gain"])
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for reload")
	}
}

func TestWatcher_RenameReplace(t *testing.T) {
	path := writeTOML(t, "[parameters]\nGain = 1.0\n")

	received := make(chan Presets, 1)
	w := newTestWatcher(t, path)
	w.OnReload(func(p Presets) { received <- p })
	startWatcher(t, w)

	tmp := filepath.Join(filepath.Dir(path), ".spincam.toml.swp")
	writeFile(t, tmp, "[parameters]\nGain = 2.0\n")
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-received:
		if p["Gain"] != 2.0 {
			t.Errorf("Gain = %v, want 2", p["Gain"])
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for reload after rename")
	}

	// The replaced file must still be watched.
	writeFile(t, path, "[parameters]\nGain = 3.0\n")
	select {
	case p := <-received:
		if p["Gain"] != 3.0 {
			t.Errorf("Gain = %v, want 3", p["Gain"])
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for reload after second write")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	path := writeTOML(t, "[parameters]\n")

	var count atomic.Int32
	w := newTestWatcher(t, path)
	w.OnReload(func(Presets) { count.Add(1) })
	startWatcher(t, w)

	writeFile(t, filepath.Join(filepath.Dir(path), "other.toml"), "[parameters]\nGain = 1.0\n")
	time.Sleep(5 * testDebounce)

	if got := count.Load(); got != 0 {
		t.Errorf("handler called %d times for unrelated file", got)
	}
}

func TestWatcher_Debounce(t *testing.T) {
	path := writeTOML(t, "[parameters]\n")

	var count atomic.Int32
	var last atomic.Value
	w := NewConfigWatcher(path, LoadParameterPresets, slog.New(slog.DiscardHandler), WithDebounce[Presets](200*time.Millisecond))
	w.OnReload(func(p Presets) {
		count.Add(1)
		last.Store(p["Gain"])
	})
	startWatcher(t, w)

	for _, gain := range []string{"1.0", "2.0", "3.0", "4.0", "5.0"} {
		writeFile(t, path, "[parameters]\nGain = "+gain+"\n")
		time.Sleep(50 * time.Millisecond)
	}
	time.Sleep(500 * time.Millisecond)

	if got := count.Load(); got != 1 {
		t.Errorf("expected 1 debounced call, got %d", got)
	}
	if got := last.Load(); got != 5.0 {
		t.Errorf("expected final Gain 5, got %v", got)
	}
}

func TestWatcher_ErrorHandler(t *testing.T) {
	path := writeTOML(t, "[parameters]\n")

	errs := make(chan error, 1)
	received := make(chan Presets, 1)
	w := newTestWatcher(t, path, WithErrorHandler[Presets](func(err error) { errs <- err }))
	w.OnReload(func(p Presets) { received <- p })
	startWatcher(t, w)

	writeFile(t, path, "[parameters\n")

	select {
	case <-errs:
	case <-received:
		t.Fatal("handler should not be called on load error")
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for error handler")
	}
}

func TestWatcher_Unsubscribe(t *testing.T) {
	path := writeTOML(t, "[parameters]\n")

	var kept, dropped atomic.Int32
	w := newTestWatcher(t, path)
	w.OnReload(func(Presets) { kept.Add(1) })
	unsub := w.OnReload(func(Presets) { dropped.Add(1) })
	unsub()
	startWatcher(t, w)

	writeFile(t, path, "[parameters]\nGain = 1.0\n")
	time.Sleep(5 * testDebounce)

	if kept.Load() != 1 || dropped.Load() != 0 {
		t.Errorf("kept=%d dropped=%d, want 1 and 0", kept.Load(), dropped.Load())
	}
}

func TestWatcher_ContextCancel(t *testing.T) {
	path := writeTOML(t, "[parameters]\n")

	var count atomic.Int32
	w := newTestWatcher(t, path)
	w.OnReload(func(Presets) { count.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()
	time.Sleep(100 * time.Millisecond)

	writeFile(t, path, "[parameters]\nGain = 1.0\n")
	time.Sleep(5 * testDebounce)

	if got := count.Load(); got != 0 {
		t.Errorf("handler called %d times after cancel", got)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("Stop after cancel: %v", err)
	}
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	w := newTestWatcher(t, filepath.Join(t.TempDir(), "spincam.toml"))
	if err := w.Stop(); err != nil {
		t.Errorf("Stop() = %v, want nil", err)
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := newTestWatcher(t, filepath.Join(t.TempDir(), "missing", "spincam.toml"))
	if err := w.Start(context.Background()); err == nil {
		t.Error("Start should fail when the directory does not exist")
		_ = w.Stop()
	}
}
