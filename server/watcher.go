package server

import (
	"path/filepath"
	"time"

	"Rewind/cache"
	"Rewind/logger"

	"github.com/fsnotify/fsnotify"
)

// watchMergedFile reloads the dataset, flushes the stats cache and
// notifies connected dashboards whenever the merged file changes on disk
// (i.e. after a sync run). The watch is on the parent directory because
// the sync replaces the file via rename.
func watchMergedFile(path string, dataset *Dataset, statsCache cache.StatsCache, hub *Hub) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	target := filepath.Clean(path)

	go func() {
		var debounce *time.Timer
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
					continue
				}
				// Coalesce the burst of events a rewrite produces.
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(500*time.Millisecond, func() {
					if err := dataset.Reload(); err != nil {
						logger.Warn("reload after file change failed", logger.ErrorField(err))
						return
					}
					statsCache.Flush()
					hub.Broadcast([]byte(`{"event":"reload"}`))
					logger.Info("merged timeline changed, dashboards notified")
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("file watcher error", logger.ErrorField(err))
			}
		}
	}()

	return watcher, nil
}
