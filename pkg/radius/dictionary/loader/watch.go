package loader

import (
	"context"

	"github.com/fsnotify/fsnotify"

	"github.com/openradius/raddecode/internal/logger"
	"github.com/openradius/raddecode/pkg/radius/dictionary"
)

// Watch reloads the dictionary file at path whenever it changes on disk and
// invokes onReload with the freshly parsed dictionary. It blocks until ctx
// is cancelled or the filesystem watcher fails irrecoverably.
//
// Editors typically replace a file rather than writing in place, which
// surfaces as Remove followed by Create rather than a single Write; both are
// treated as reload triggers.
func Watch(ctx context.Context, path string, onReload func(*dictionary.Memory)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
				continue
			}
			if event.Op&fsnotify.Remove != 0 {
				// editors that replace-on-save remove then recreate; re-arm
				// the watch on the new inode.
				_ = watcher.Add(path)
			}
			dict, err := Load(path)
			if err != nil {
				logger.Warn("dictionary reload failed", logger.DictPath(path), logger.Err(err))
				continue
			}
			onReload(dict)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("dictionary watcher error", logger.DictPath(path), logger.Err(err))
		}
	}
}
