// Package watch reloads a record source when its file changes and
// notifies only when the content actually changed.
//
// Editors often save by writing a temp file and renaming it over the
// original, so the watcher subscribes to the file's directory and filters
// events by path. Bursts of events are debounced into one reload.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/roach88/reckit/internal/deep"
	"github.com/roach88/reckit/internal/loader"
	"github.com/roach88/reckit/internal/value"
)

// Change is one accepted version of the watched records.
type Change struct {
	// Path is the watched file.
	Path string

	// Previous is the last notified version, nil for the initial load.
	Previous []value.Value

	// Current is the new version.
	Current []value.Value

	// Fingerprint is value.Fingerprint of Current.
	Fingerprint string
}

// Handler receives changes. It is called from the Run goroutine.
type Handler func(Change)

// Options configures a Watcher.
type Options struct {
	// Debounce is how long to wait for more events before reloading.
	// Default: 100ms
	Debounce time.Duration

	// Equal tunes the change comparison.
	Equal deep.Options

	// Load reads the source. Default: loader.Load
	Load func(ref string) ([]value.Value, error)
}

// DefaultOptions returns the default watcher options.
func DefaultOptions() Options {
	return Options{
		Debounce: 100 * time.Millisecond,
		Load:     loader.Load,
	}
}

// Watcher watches one record source.
type Watcher struct {
	ref     loader.Ref
	path    string
	handler Handler
	opts    Options
	gate    *Gate
}

// New creates a Watcher for ref ("file#selector"). A nil opts uses
// DefaultOptions.
func New(ref string, handler Handler, opts *Options) (*Watcher, error) {
	o := DefaultOptions()
	if opts != nil {
		if opts.Debounce > 0 {
			o.Debounce = opts.Debounce
		}
		if opts.Load != nil {
			o.Load = opts.Load
		}
		o.Equal = opts.Equal
	}

	r := loader.ParseRef(ref)
	path, err := filepath.Abs(r.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", r.Path, err)
	}

	return &Watcher{
		ref:     r,
		path:    path,
		handler: handler,
		opts:    o,
		gate:    NewGate(o.Equal),
	}, nil
}

// Run loads the source, notifies the initial version and then reloads on
// every debounced burst of file events until ctx is cancelled. A failed
// initial load is returned; later load failures are logged and skipped so
// a half-written file does not end the watch.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	if err := w.reload(); err != nil {
		return err
	}

	var timer *time.Timer
	var timerC <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			slog.Debug("watch event", "path", event.Name, "op", event.Op.String())

			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.opts.Debounce)
			}

		case <-timerC:
			timer, timerC = nil, nil
			if err := w.reload(); err != nil {
				slog.Warn("reload failed, keeping previous version", "path", w.path, "error", err)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "path", w.path, "error", err)
		}
	}
}

// reload loads the source and notifies the handler if the gate passes it.
func (w *Watcher) reload() error {
	ref := loader.Ref{Path: w.path, Selector: w.ref.Selector}
	rs, err := w.opts.Load(ref.String())
	if err != nil {
		return fmt.Errorf("load %s: %w", ref, err)
	}

	previous, changed := w.gate.Offer(rs)
	if !changed {
		slog.Debug("content unchanged", "path", w.path, "records", len(rs))
		return nil
	}

	fp, err := value.Fingerprint(value.Array(rs))
	if err != nil {
		return fmt.Errorf("fingerprint %s: %w", ref, err)
	}

	if w.handler != nil {
		w.handler(Change{Path: w.path, Previous: previous, Current: rs, Fingerprint: fp})
	}
	return nil
}
