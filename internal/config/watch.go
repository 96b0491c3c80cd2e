package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay is how long after the last file event Watch waits before
// reloading. One save can emit several events (os.WriteFile truncates and
// then writes; atomic-save editors create and rename); loading on the
// first of them would read a partial or empty file.
const settleDelay = 100 * time.Millisecond

// Watch monitors the config file at path and calls onChange with the newly
// loaded Config each time the file is rewritten. It runs until ctx is
// cancelled.
//
// The watch is registered on the parent directory rather than the file
// itself: atomic-save editors and configuration management tools replace
// the file via rename, which would silently detach a watch on the inode.
//
// Event bursts from a single save are coalesced: the load happens
// settleDelay after the last event, never between the truncate and write
// halves of a rewrite. If a reload fails (e.g., invalid YAML) or the file
// reads empty, the error is logged and the previous config remains active;
// Watch does not call onChange.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir, file := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	if err := watcher.Add(dir); err != nil {
		return err
	}

	slog.Info("config: watching for changes", "path", path)

	// Armed only while a reload is pending.
	settle := time.NewTimer(settleDelay)
	if !settle.Stop() {
		<-settle.C
	}
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != file {
				continue
			}
			// Write covers in-place edits; Create covers the rename step
			// of an atomic save landing the new file.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !settle.Stop() {
				select {
				case <-settle.C:
				default:
				}
			}
			settle.Reset(settleDelay)

		case <-settle.C:
			data, err := os.ReadFile(path)
			if err != nil || len(data) == 0 {
				// Mid-rewrite or gone; a later event re-arms the timer.
				slog.Debug("config: file empty or unreadable, skipping reload",
					"path", path, "err", err)
				continue
			}

			cfg, err := Load(path)
			if err != nil {
				slog.Error("config: reload failed, keeping previous config",
					"path", path, "err", err)
				continue
			}

			slog.Info("config: reloaded", "path", path)
			onChange(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("config: watcher error", "err", err)
		}
	}
}
