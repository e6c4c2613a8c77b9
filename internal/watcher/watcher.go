// Package watcher monitors the glossary directory and triggers a reload
// when its JSON collections change. Edits are debounced so a burst of
// writes (editors, rsync) produces a single rebuild.
package watcher

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	domainerrors "github.com/feliperussi/medwrite-server/internal/errors"
	"github.com/feliperussi/medwrite-server/internal/logger"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher watches one directory for glossary file changes.
type Watcher struct {
	dir      string
	debounce time.Duration
	onChange func(context.Context) error
	logger   *logger.Logger

	fs   *fsnotify.Watcher
	done chan struct{}
}

// New creates a watcher over dir. onChange runs after the debounce
// window closes; its error is logged, not fatal, so a bad intermediate
// state never stops the watcher.
func New(dir string, debounce time.Duration, onChange func(context.Context) error, log *logger.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "creating fsnotify watcher")
	}
	if err := fs.Add(filepath.Clean(dir)); err != nil {
		_ = fs.Close()
		return nil, domainerrors.Wrapf(err, domainerrors.CodeInternal, "watching %q", dir)
	}

	return &Watcher{
		dir:      dir,
		debounce: debounce,
		onChange: onChange,
		logger:   log,
		fs:       fs,
		done:     make(chan struct{}),
	}, nil
}

// Start processes events until the context is cancelled or Stop is
// called. It blocks; run it in a goroutine.
func (w *Watcher) Start(ctx context.Context) {
	w.logger.Info("watching glossary directory", "dir", w.dir)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			w.logger.Debug("glossary file event", "op", event.Op.String(), "path", event.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					<-fire
				}
				timer.Reset(w.debounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			if err := w.onChange(ctx); err != nil {
				w.logger.Error("glossary reload failed", "error", err)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Error("glossary watch error", "error", err)
		}
	}
}

// relevant filters to JSON file mutations.
func relevant(event fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(event.Name), ".json") {
		return false
	}
	return event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Remove) ||
		event.Op.Has(fsnotify.Rename)
}

// Stop shuts the watcher down and releases the underlying watch.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fs.Close()
}
