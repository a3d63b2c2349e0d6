package catalog

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watch loads path into r and reloads it whenever the file changes, until
// ctx is done. A reload that fails to parse keeps the previous devices.
func Watch(ctx context.Context, r *Registry, path string) error {
	file, err := LoadFile(path)
	if err != nil {
		return err
	}
	Apply(r, file)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create catalog watcher: %w", err)
	}
	// Editors replace files on save, so watch the directory instead.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", path, err)
	}

	go func() {
		defer watcher.Close()
		target := filepath.Clean(path)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				file, err := LoadFile(path)
				if err != nil {
					log.Error().Err(err).Str("path", path).Msg("[Watch] reload catalog failed")
					continue
				}
				Apply(r, file)
				log.Info().Str("path", path).Msg("[Watch] catalog reloaded")
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error().Err(err).Msg("[Watch] watcher error")
			}
		}
	}()
	return nil
}
