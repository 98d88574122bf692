package loader

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/moneta-labs/moneta/internal/active"
	"github.com/moneta-labs/moneta/internal/registry"
	"github.com/rs/zerolog"
)

func writeData(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "currencies.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write data: %v", err)
	}
	return path
}

func newHolder(t *testing.T, path string, opts Options) *Holder {
	t.Helper()
	prev := active.SetDefault(nil)
	t.Cleanup(func() { active.SetDefault(prev) })

	opts.Logger = zerolog.Nop()
	h, err := NewHolder(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	t.Cleanup(h.Stop)
	return h
}

func TestHolder_Get(t *testing.T) {
	h := newHolder(t, writeData(t, primaryData), Options{})

	got := h.Get()
	if got.Len() != 2 {
		t.Errorf("Len() = %d, want 2", got.Len())
	}
	if active.Default() != got {
		t.Error("initial registry was not published")
	}
}

func TestHolder_Reload(t *testing.T) {
	path := writeData(t, primaryData)
	h := newHolder(t, path, Options{})

	if err := os.WriteFile(path, []byte(distData), 0644); err != nil {
		t.Fatalf("write new data: %v", err)
	}
	if err := h.Reload(context.Background()); err != nil {
		t.Fatalf("Reload error: %v", err)
	}

	got := h.Get()
	if got.Version() != "2026.1.0" {
		t.Errorf("Version() = %q, want %q", got.Version(), "2026.1.0")
	}
	if active.Default() != got {
		t.Error("reloaded registry was not published")
	}
}

func TestHolder_ReloadFailureKeepsOld(t *testing.T) {
	path := writeData(t, primaryData)
	h := newHolder(t, path, Options{})
	before := h.Get()

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove data: %v", err)
	}
	if err := h.Reload(context.Background()); err == nil {
		t.Error("Reload should fail for missing required data")
	}
	if h.Get() != before {
		t.Error("should keep old registry")
	}
	if active.Default() != before {
		t.Error("should keep old default")
	}
}

func TestHolder_OptionalRemovalEmpties(t *testing.T) {
	path := writeData(t, primaryData)
	h := newHolder(t, path, Options{Optional: true})

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove data: %v", err)
	}
	if err := h.Reload(context.Background()); err != nil {
		t.Fatalf("Reload error: %v", err)
	}
	if h.Get().Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Get().Len())
	}
}

func TestHolder_OnChange(t *testing.T) {
	path := writeData(t, primaryData)
	h := newHolder(t, path, Options{})

	var mu sync.Mutex
	var received *registry.Registry
	h.OnChange(func(r *registry.Registry) {
		mu.Lock()
		received = r
		mu.Unlock()
	})

	if err := os.WriteFile(path, []byte(distData), 0644); err != nil {
		t.Fatalf("write new data: %v", err)
	}
	if err := h.Reload(context.Background()); err != nil {
		t.Fatalf("Reload error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if received == nil {
		t.Fatal("OnChange callback was not called")
	}
	if received.Version() != "2026.1.0" {
		t.Errorf("callback received version %q, want %q", received.Version(), "2026.1.0")
	}
}

func TestHolder_WatchFile(t *testing.T) {
	path := writeData(t, primaryData)
	h := newHolder(t, path, Options{})

	changed := make(chan struct{}, 1)
	h.OnChange(func(*registry.Registry) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	if err := h.WatchFile(); err != nil {
		t.Fatalf("WatchFile error: %v", err)
	}
	if err := os.WriteFile(path, []byte(distData), 0644); err != nil {
		t.Fatalf("write new data: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("file watcher did not trigger reload")
	}

	deadline := time.Now().Add(2 * time.Second)
	for h.Get().Version() != "2026.1.0" && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := h.Get().Version(); got != "2026.1.0" {
		t.Errorf("after file watch, Version() = %q, want %q", got, "2026.1.0")
	}
}

func TestHolder_StopTwice(t *testing.T) {
	h := newHolder(t, writeData(t, primaryData), Options{})
	h.Stop()
	h.Stop()
}

func TestHolder_ConcurrentReloadsPublishLatest(t *testing.T) {
	path := writeData(t, primaryData)
	h := newHolder(t, path, Options{})

	var calls int
	var mu sync.Mutex
	h.OnChange(func(*registry.Registry) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := h.Reload(context.Background()); err != nil {
				t.Errorf("Reload error: %v", err)
			}
		}()
	}
	wg.Wait()

	if active.Default() != h.Get() {
		t.Error("published registry differs from the held one after concurrent reloads")
	}
	mu.Lock()
	defer mu.Unlock()
	if calls != 16 {
		t.Errorf("OnChange calls = %d, want 16", calls)
	}
}
