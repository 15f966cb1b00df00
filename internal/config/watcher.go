package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 100 * time.Millisecond

// Watcher reloads a config file whenever it is written and hands every
// valid result to a callback. Invalid files are reported on Errors and the
// previous config stays in effect.
type Watcher struct {
	path     string
	onChange func(Config)
	fs       *fsnotify.Watcher
	errs     chan error

	// Debounce collapses bursts of writes from editors into one reload.
	Debounce time.Duration
}

// WatchFile starts watching the directory holding path. Editors often
// replace files instead of writing them, so the file itself is not watched.
func WatchFile(path string, onChange func(Config)) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(path)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	return &Watcher{
		path:     path,
		onChange: onChange,
		fs:       fs,
		errs:     make(chan error, 8),
		Debounce: defaultDebounce,
	}, nil
}

func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Run processes events until ctx is done, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	var timer *time.Timer
	reload := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.Debounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			cfg, err := Load(w.path)
			if err == nil {
				err = cfg.Validate()
			}
			if err != nil {
				w.report(fmt.Errorf("reload config: %w", err))
				continue
			}
			w.onChange(cfg)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.report(err)
		}
	}
}

func (w *Watcher) report(err error) {
	select {
	case w.errs <- err:
	default:
	}
}
