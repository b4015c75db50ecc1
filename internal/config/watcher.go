package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config file whenever it changes on disk and delivers the
// fresh config on the returned channel. Editors replace files rather than
// writing in place, so the parent directory is watched and events are
// debounced; a broken intermediate state is skipped silently.
//
// The watcher stops when done is closed.
func Watch(done <-chan struct{}) (<-chan *Config, error) {
	path, err := Path()
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	out := make(chan *Config, 1)

	go func() {
		defer watcher.Close()
		defer close(out)

		var debounce *time.Timer
		reload := func() {
			cfg, err := Load()
			if err != nil {
				return // keep the last good config
			}
			// Coalesce: drop a stale pending config before sending.
			select {
			case <-out:
			default:
			}
			out <- cfg
		}

		for {
			select {
			case <-done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(100*time.Millisecond, reload)
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return out, nil
}
