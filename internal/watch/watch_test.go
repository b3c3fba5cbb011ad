package watch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/filter"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func startWatcher(t *testing.T, path string, useFsnotify bool) <-chan Update {
	t.Helper()

	updates := make(chan Update, 16)
	w, err := New(Config{
		Path:         path,
		PollInterval: 20 * time.Millisecond,
		UseFsnotify:  useFsnotify,
		OnChange:     func(u Update) { updates <- u },
		Logger:       discardLogger,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := <-done; !errors.Is(err, context.Canceled) {
			t.Errorf("Run() returned %v, want %v", err, context.Canceled)
		}
	})
	return updates
}

func next(t *testing.T, updates <-chan Update) Update {
	t.Helper()
	select {
	case u := <-updates:
		return u
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for update")
		return Update{}
	}
}

// writeFile replaces path atomically so the watcher never sees a partial write.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}
}

func TestWatcher(t *testing.T) {
	for _, useFsnotify := range []bool{true, false} {
		name := "polling"
		if useFsnotify {
			name = "fsnotify"
		}
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "filter.json")
			writeFile(t, path, `{"type":"group","mode":"all"}`)

			updates := startWatcher(t, path, useFsnotify)

			u := next(t, updates)
			if u.Err != nil {
				t.Fatalf("Initial update error = %v", u.Err)
			}
			if u.Filter.Type() != filter.TypeGroup {
				t.Errorf("Expected group, got %s", u.Filter.Type())
			}

			writeFile(t, path, `{"type":"cmc","operation":">=","operand":3}`)
			u = next(t, updates)
			if u.Err != nil || u.Filter.Type() != "cmc" {
				t.Fatalf("Expected cmc filter, got %v (%v)", u.Filter, u.Err)
			}

			writeFile(t, path, `{"type":"cmc"}`)
			u = next(t, updates)
			var de *filter.DecodeError
			if !errors.As(u.Err, &de) {
				t.Fatalf("Expected a decode error, got %v", u.Err)
			}
			if u.Filter != nil {
				t.Error("Expected no filter alongside an error")
			}

			// Unchanged contents produce no further updates
			select {
			case u := <-updates:
				t.Errorf("Unexpected update %+v", u)
			case <-time.After(100 * time.Millisecond):
			}
		})
	}
}

func TestWatcher_YAMLAndMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filter.yaml")
	updates := startWatcher(t, path, true)

	u := next(t, updates)
	if !errors.Is(u.Err, os.ErrNotExist) {
		t.Fatalf("Expected missing file error, got %v", u.Err)
	}

	writeFile(t, path, "type: type_line\ncontains: any_of\npattern: creature\n")
	u = next(t, updates)
	if u.Err != nil {
		t.Fatalf("Update error = %v", u.Err)
	}
	if u.Filter.Type() != filter.TypeTypeLine {
		t.Errorf("Expected type_line filter, got %s", u.Filter.Type())
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{OnChange: func(Update) {}}); err == nil {
		t.Error("Expected missing path to fail")
	}
	if _, err := New(Config{Path: "filter.json"}); err == nil {
		t.Error("Expected missing callback to fail")
	}
}
