// Package reload rebuilds a parser registry when descriptor manifests change.
package reload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period between the last change and the reload.
const DefaultDebounce = 250 * time.Millisecond

// ErrNoFiles is returned when a watcher is configured without files.
var ErrNoFiles = errors.New("no files to watch")

// Reloader is implemented by *registry.Registry.
type Reloader interface {
	Reload() error
}

// Config holds watcher settings.
type Config struct {
	Files    []string
	Debounce time.Duration
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.Debounce <= 0 {
		c.Debounce = DefaultDebounce
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if len(c.Files) == 0 {
		return ErrNoFiles
	}

	return nil
}

// Watcher watches manifest files and reloads the registry after they change.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	target    Reloader
	files     map[string]struct{}
	debounce  time.Duration
	logger    *slog.Logger
	reloaded  chan error
	done      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// New creates a Watcher for target.
func New(cfg Config, target Reloader, logger *slog.Logger) (*Watcher, error) {
	cfg.SetDefaults()

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	files := make(map[string]struct{}, len(cfg.Files))
	for _, file := range cfg.Files {
		files[filepath.Clean(file)] = struct{}{}
	}

	return &Watcher{
		fsWatcher: fsw,
		target:    target,
		files:     files,
		debounce:  cfg.Debounce,
		logger:    logger,
		reloaded:  make(chan error, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start watches the directories containing the files. Directories are watched
// rather than files so that editors replacing a file atomically are noticed.
func (w *Watcher) Start(_ context.Context) error {
	dirs := make(map[string]struct{})

	for file := range w.files {
		dir := filepath.Dir(file)
		if _, seen := dirs[dir]; seen {
			continue
		}

		dirs[dir] = struct{}{}

		err := w.fsWatcher.Add(dir)
		if err != nil {
			return fmt.Errorf("watching directory %s: %w", dir, err)
		}
	}

	w.wg.Add(1)

	go w.loop()

	w.logger.Info("watching parser manifests", slog.Int("files", len(w.files)))

	return nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop(_ context.Context) error {
	var err error

	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
		w.wg.Wait()
	})

	if err != nil {
		return fmt.Errorf("closing fsnotify watcher: %w", err)
	}

	return nil
}

// Reloaded receives the result of each reload. Results are dropped when
// nobody is receiving.
func (w *Watcher) Reloaded() <-chan error {
	return w.reloaded
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer

	timerC := func() <-chan time.Time {
		if timer == nil {
			return nil
		}

		return timer.C
	}

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if !w.isRelevant(event) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}

		case <-timerC():
			timer = nil

			w.reload()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}

			w.logger.Error("manifest watcher error", slog.Any("error", err))

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}

			return
		}
	}
}

func (w *Watcher) reload() {
	err := w.target.Reload()
	if err != nil {
		w.logger.Error("reloading parser registry", slog.Any("error", err))
	} else {
		w.logger.Info("parser registry reloaded")
	}

	select {
	case w.reloaded <- err:
	default:
	}
}

func (w *Watcher) isRelevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	_, ok := w.files[filepath.Clean(event.Name)]

	return ok
}
