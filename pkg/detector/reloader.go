package detector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/macropower/urllang/api/v1beta1/configs"
	"github.com/macropower/urllang/pkg/log"
)

// LoadFunc builds a [Detector] from the configuration file at path.
type LoadFunc func(path string) (*Detector, error)

// LoadFile validates and loads the configuration file at path and builds a
// [Detector] from it.
func LoadFile(path string) (*Detector, error) {
	l, err := configs.NewLoaderFromFile(path)
	if err != nil {
		return nil, err //nolint:wrapcheck // Already wrapped by configs.
	}

	cfg, err := l.ValidateAndLoad()
	if err != nil {
		return nil, err //nolint:wrapcheck // Annotated YAML error.
	}

	return New(cfg)
}

// ReloadEvent is sent to subscribers after every reload attempt.
type ReloadEvent struct {
	// Detector is the detector in use after the attempt.
	Detector *Detector
	// Err is the reason the attempt failed, if it did.
	Err error
}

// Reloader serves the most recent valid [Detector] for a configuration
// file. Detectors are swapped atomically; a failed reload keeps the previous
// one.
type Reloader struct {
	current   atomic.Pointer[Detector]
	load      LoadFunc
	path      string
	listeners []chan<- ReloadEvent
	mu        sync.Mutex
}

// NewReloader loads path once with load. The initial load must succeed.
func NewReloader(path string, load LoadFunc) (*Reloader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("get absolute path: %w", err)
	}

	d, err := load(absPath)
	if err != nil {
		return nil, err
	}

	r := &Reloader{
		load: load,
		path: absPath,
	}
	r.current.Store(d)

	return r, nil
}

// Detector returns the current detector.
func (r *Reloader) Detector() *Detector {
	return r.current.Load()
}

// Path returns the absolute path of the watched file.
func (r *Reloader) Path() string {
	return r.path
}

// Subscribe registers ch to receive a [ReloadEvent] after every reload
// attempt. Sends block, so ch should be buffered or drained.
func (r *Reloader) Subscribe(ch chan<- ReloadEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listeners = append(r.listeners, ch)
}

// Reload rebuilds the detector from the file. On failure the current
// detector is kept and the error is returned.
func (r *Reloader) Reload(ctx context.Context) error {
	return r.reload(log.With(ctx, log.Config(r.path)))
}

func (r *Reloader) reload(ctx context.Context) error {
	logger := log.FromContext(ctx)

	d, err := r.load(r.path)
	if err != nil {
		logger.ErrorContext(ctx, "reload config, keeping previous detector", slog.Any("err", err))
		r.broadcast(ReloadEvent{Detector: r.current.Load(), Err: err})

		return err
	}

	r.current.Store(d)

	logger.InfoContext(ctx, "reloaded config",
		slog.Int("mappings", d.Mappings().Len()),
		slog.Int("matchers", d.Matchers().Len()),
		slog.Int("profiles", d.Profiles().Len()),
	)
	r.broadcast(ReloadEvent{Detector: d})

	return nil
}

func (r *Reloader) broadcast(evt ReloadEvent) {
	r.mu.Lock()
	listeners := r.listeners
	r.mu.Unlock()

	for _, ch := range listeners {
		ch <- evt
	}
}

// Watch reloads the detector whenever the file is written or replaced,
// until ctx is done. The parent directory is watched so that editors
// that replace the file by renaming are handled.
func (r *Reloader) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}

	defer func() {
		err := watcher.Close()
		if err != nil {
			slog.Error("close watcher", slog.Any("err", err))
		}
	}()

	err = watcher.Add(filepath.Dir(r.path))
	if err != nil {
		return fmt.Errorf("add path to watcher: %w", err)
	}

	ctx = log.With(ctx, log.Config(r.path))
	log.FromContext(ctx).DebugContext(ctx, "watching config")

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(evt.Name) != r.path {
				continue
			}

			if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) {
				continue
			}

			// Failures are logged and broadcast by reload.
			_ = r.reload(ctx) //nolint:errcheck // See above.

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			if errors.Is(err, fsnotify.ErrEventOverflow) {
				_ = r.reload(ctx) //nolint:errcheck // Logged by reload.

				continue
			}

			return fmt.Errorf("watch config: %w", err)
		}
	}
}
