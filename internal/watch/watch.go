// Package watch reloads a filter file whenever it changes on disk.
package watch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/filter"
)

// Update carries the result of one reload. Exactly one of Filter and Err is set.
type Update struct {
	Path   string
	Filter filter.Filter
	Err    error
}

// Config configures a Watcher.
type Config struct {
	// Path is the JSON or YAML filter file to watch.
	Path string

	// Options decode the file; the format follows the file extension.
	Options filter.DecodeOptions

	// PollInterval is the backup polling period (default 2s).
	PollInterval time.Duration

	// UseFsnotify enables file system events in addition to polling.
	UseFsnotify bool

	// OnChange receives every update. It is called from the Run goroutine.
	OnChange func(Update)

	Logger *slog.Logger
}

// Watcher decodes a filter file on start and again after every change to its
// contents.
type Watcher struct {
	path     string
	opts     filter.DecodeOptions
	interval time.Duration
	notify   bool
	onChange func(Update)
	logger   *slog.Logger

	last    []byte
	lastErr string
}

// New creates a watcher. The file does not need to exist yet.
func New(cfg Config) (*Watcher, error) {
	if cfg.Path == "" {
		return nil, errors.New("watch path is required")
	}
	if cfg.OnChange == nil {
		return nil, errors.New("watch callback is required")
	}
	path, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		path:     path,
		opts:     cfg.Options,
		interval: cfg.PollInterval,
		notify:   cfg.UseFsnotify,
		onChange: cfg.OnChange,
		logger:   logger,
	}, nil
}

// Run reports the current file and then every change until ctx is done,
// returning the context error.
func (w *Watcher) Run(ctx context.Context) error {
	var events <-chan fsnotify.Event
	var watchErrors <-chan error
	if w.notify {
		// Watch the directory so editors that replace the file by rename
		// keep producing events.
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		defer func() { _ = watcher.Close() }()

		if err := watcher.Add(filepath.Dir(w.path)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
		}
		events, watchErrors = watcher.Events, watcher.Errors
	}

	w.reload()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if filepath.Clean(event.Name) == w.path && event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				w.reload()
			}
		case err, ok := <-watchErrors:
			if !ok {
				watchErrors = nil
				continue
			}
			w.logger.Warn("File watcher error", "path", w.path, "error", err)
		case <-ticker.C:
			// Backup polling in case file events are missed
			w.reload()
		}
	}
}

// reload reads the file and reports it when its contents or read error
// differ from the last report.
func (w *Watcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		if err.Error() == w.lastErr {
			return
		}
		w.last, w.lastErr = nil, err.Error()
		w.emit(Update{Path: w.path, Err: fmt.Errorf("read filter file: %w", err)})
		return
	}
	if w.lastErr == "" && w.last != nil && bytes.Equal(data, w.last) {
		return
	}
	w.last, w.lastErr = data, ""

	var f filter.Filter
	if filter.IsYAMLPath(w.path) {
		f, err = w.opts.UnmarshalYAML(data)
	} else {
		f, err = w.opts.Unmarshal(data)
	}
	if err != nil {
		w.emit(Update{Path: w.path, Err: err})
		return
	}
	w.emit(Update{Path: w.path, Filter: f})
}

func (w *Watcher) emit(u Update) {
	if u.Err != nil {
		w.logger.Warn("Filter file invalid", "path", u.Path, "error", u.Err)
	} else {
		w.logger.Info("Filter file loaded", "path", u.Path, "filter", u.Filter.String())
	}
	w.onChange(u)
}
