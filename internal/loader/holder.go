package loader

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/moneta-labs/moneta/internal/active"
	"github.com/moneta-labs/moneta/internal/registry"
	"github.com/rs/zerolog"
)

// Holder keeps the published registry in step with its primary data file.
// Every successful reload is published as the process-wide default; a
// failed reload keeps the previous registry.
type Holder struct {
	reloadMu sync.Mutex // serializes load and publish
	mu       sync.RWMutex
	current  *registry.Registry
	path     string
	opts     Options
	logger   zerolog.Logger
	watcher  *fsnotify.Watcher
	onChange []func(*registry.Registry)
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewHolder loads and publishes the initial registry. path is a file on
// disk; relative paths are resolved against the working directory.
func NewHolder(ctx context.Context, path string, opts Options) (*Holder, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}

	r, err := LoadAndPublish(ctx, absPath, opts)
	if err != nil {
		return nil, fmt.Errorf("load currency data: %w", err)
	}

	return &Holder{
		current: r,
		path:    absPath,
		opts:    opts,
		logger:  opts.Logger.With().Str("component", "holder").Logger(),
		stopCh:  make(chan struct{}),
	}, nil
}

// Get returns the current registry.
func (h *Holder) Get() *registry.Registry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Path returns the watched file.
func (h *Holder) Path() string { return h.path }

// Reload rebuilds the registry and publishes it.
// Returns error if loading fails (keeps old registry).
func (h *Holder) Reload(ctx context.Context) error {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()

	log := h.logger.With().Str("reload_id", uuid.NewString()).Logger()
	log.Info().Str("path", h.path).Msg("reloading currency data")

	opts := h.opts
	opts.Logger = log
	next, err := Load(ctx, h.path, opts)
	if err != nil {
		log.Error().Err(err).Msg("currency data reload failed, keeping old registry")
		return fmt.Errorf("reload currency data: %w", err)
	}

	h.mu.Lock()
	prev := h.current
	h.current = next
	callbacks := append([]func(*registry.Registry){}, h.onChange...)
	h.mu.Unlock()

	active.SetDefault(next)
	h.logChanges(log, prev, next)

	for _, fn := range callbacks {
		fn(next)
	}

	log.Info().Msg("currency data reloaded successfully")
	return nil
}

// OnChange registers a callback run after each successful reload.
func (h *Holder) OnChange(fn func(*registry.Registry)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = append(h.onChange, fn)
}

// WatchFile starts watching the data file for changes.
// Changes trigger automatic reload.
func (h *Holder) WatchFile() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	h.watcher = watcher

	// Watch the directory (more reliable for editors that do atomic saves)
	dir := filepath.Dir(h.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	go h.watchLoop()

	h.logger.Info().Str("path", h.path).Msg("watching currency data for changes")
	return nil
}

// WatchSignals starts listening for SIGHUP to trigger reload.
func (h *Holder) WatchSignals() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP)

	go func() {
		for {
			select {
			case <-sigCh:
				h.logger.Info().Msg("received SIGHUP, reloading currency data")
				if err := h.Reload(context.Background()); err != nil {
					h.logger.Error().Err(err).Msg("SIGHUP reload failed")
				}
			case <-h.stopCh:
				signal.Stop(sigCh)
				return
			}
		}
	}()
}

// Stop stops watching for file changes and signals.
func (h *Holder) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopCh)
		if h.watcher != nil {
			h.watcher.Close()
		}
	})
}

func (h *Holder) watchLoop() {
	filename := filepath.Base(h.path)

	for {
		select {
		case event, ok := <-h.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			// Atomic saves show up as create; removal matters when the
			// data is optional.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) != 0 {
				h.logger.Debug().
					Str("event", event.Op.String()).
					Str("file", event.Name).
					Msg("currency data changed")

				if err := h.Reload(context.Background()); err != nil {
					h.logger.Error().Err(err).Msg("file watch reload failed")
				}
			}

		case err, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
			h.logger.Error().Err(err).Msg("file watcher error")

		case <-h.stopCh:
			return
		}
	}
}

func (h *Holder) logChanges(log zerolog.Logger, prev, next *registry.Registry) {
	if prev.Version() != next.Version() {
		log.Info().
			Str("old", prev.Version()).
			Str("new", next.Version()).
			Msg("data version changed")
	}
	if prev.Len() != next.Len() {
		log.Info().
			Int("old", prev.Len()).
			Int("new", next.Len()).
			Msg("currency count changed")
	}
}
