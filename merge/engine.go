// Package merge combines the historical timeline with the recent API
// window into one chronologically ordered, de-duplicated table.
package merge

import (
	"errors"
	"sort"
	"time"

	"Rewind/logger"
	"Rewind/model"
)

// Combine merges historical and recent play events.
//
// The historical set is authoritative: an empty historical set fails the
// run, because the recent window covers only the last ~50 listens and
// would silently lose everything older. Recent rows at or before the
// historical cutoff are excluded outright; the boundary is strictly
// greater-than, so a recent row stamped exactly at the cutoff is treated
// as already present even when no literal duplicate exists.
//
// The result is sorted ascending by PlayedAt and de-duplicated on
// (PlayedAt, TrackName, ArtistName) keeping the first occurrence; the sort
// is stable, so historical rows win timestamp ties.
func Combine(historical, recent []model.PlayEvent) ([]model.PlayEvent, error) {
	if len(historical) == 0 {
		return nil, &model.DataSourceError{
			Source: "historical timeline",
			Err:    errors.New("empty; the recent API window cannot stand alone"),
		}
	}

	cutoff := Cutoff(historical)

	combined := make([]model.PlayEvent, 0, len(historical)+len(recent))
	combined = append(combined, historical...)

	added := 0
	for _, e := range recent {
		if e.PlayedAt.After(cutoff) {
			combined = append(combined, e)
			added++
		}
	}

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].PlayedAt.Before(combined[j].PlayedAt)
	})

	seen := make(map[string]struct{}, len(combined))
	merged := combined[:0]
	for _, e := range combined {
		k := e.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		merged = append(merged, e)
	}

	logger.Info("timeline merged",
		logger.Int("historical", len(historical)),
		logger.Int("recentFetched", len(recent)),
		logger.Int("recentAdded", added),
		logger.Int("merged", len(merged)),
	)

	return merged, nil
}

// Cutoff returns the latest timestamp in the set, the boundary for
// admitting API-sourced rows. Zero time for an empty set.
func Cutoff(events []model.PlayEvent) time.Time {
	var max time.Time
	for _, e := range events {
		if e.PlayedAt.After(max) {
			max = e.PlayedAt
		}
	}
	return max
}
