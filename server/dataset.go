package server

import (
	"sync"
	"time"

	"Rewind/logger"
	"Rewind/merge"
	"Rewind/model"
	"Rewind/stats"
)

// Dataset holds the merged timeline in memory for the dashboard session.
// The timeline itself is read-only; the only mutation is swapping in a
// freshly loaded slice when the file on disk changes.
type Dataset struct {
	mu       sync.RWMutex
	store    *merge.Store
	loc      *time.Location
	events   []model.PlayEvent
	loadedAt time.Time
}

// NewDataset loads the merged file once, converting timestamps to loc for
// the time-derived views. A missing file is fatal for the dashboard:
// there is nothing to show until a sync has run.
func NewDataset(store *merge.Store, loc *time.Location) (*Dataset, error) {
	if loc == nil {
		loc = time.UTC
	}
	d := &Dataset{store: store, loc: loc}
	if err := d.Reload(); err != nil {
		return nil, err
	}
	return d, nil
}

// Events returns the current timeline. Callers must not modify the slice.
func (d *Dataset) Events() []model.PlayEvent {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.events
}

// LoadedAt reports when the timeline was last read from disk.
func (d *Dataset) LoadedAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loadedAt
}

// Reload re-reads the merged file and swaps the timeline atomically.
func (d *Dataset) Reload() error {
	events, err := d.store.Load()
	if err != nil {
		return err
	}
	events = stats.Localize(events, d.loc)

	d.mu.Lock()
	d.events = events
	d.loadedAt = time.Now()
	d.mu.Unlock()

	logger.Info("timeline loaded",
		logger.String("path", d.store.Path()),
		logger.Int("events", len(events)),
	)
	return nil
}
