package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"go-irrational/debug"
)

// reloadDelay collapses the burst of events editors emit on save
const reloadDelay = 100 * time.Millisecond

// Watch reloads path whenever it is written and passes the new config to fn.
// A file that fails to parse is logged and skipped; the caller keeps its
// previous config. Blocks until ctx is done.
func Watch(ctx context.Context, path string, fn func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file instead of writing it.
	// It may not exist yet on a fresh install.
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	var (
		mu       sync.Mutex
		debounce *time.Timer
	)
	reload := func() {
		cfg, err := Load(path)
		if err != nil {
			debug.Error("config", err, "reload skipped")
			return
		}
		debug.Log("config", "reloaded %s", path)
		fn(cfg)
	}
	defer func() {
		mu.Lock()
		if debounce != nil {
			debounce.Stop()
		}
		mu.Unlock()
	}()

	name := filepath.Base(path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			mu.Lock()
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDelay, reload)
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			debug.Error("config", err, "watcher")
		}
	}
}
