package merge

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"Rewind/model"
)

// Canonical column order of the merged timeline file.
var mergedColumns = []string{
	"played_at",
	"track_name",
	"artist_name",
	"album_name",
	"duration_ms",
	"spotify_track_uri",
	"platform",
	"conn_country",
	"shuffle",
	"skipped",
}

const playedAtLayout = time.RFC3339Nano

// Store persists the merged timeline as a flat CSV file. It is the run's
// only persisted artifact and is rewritten whole on every sync; there is
// never a partially updated file on disk.
type Store struct {
	path string
}

// NewStore creates a store for the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string { return s.path }

// Save writes the events to the store's path, creating parent directories
// as needed. The write goes through a temp file and a rename so readers
// never observe a half-written table. Output is deterministic for a given
// input slice.
func (s *Store) Save(events []model.PlayEvent) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".combined-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(mergedColumns); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, e := range events {
		if err := w.Write(record(e)); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush rows: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

// Load reads the merged timeline back. A missing or unreadable file is a
// DataSourceError: the dashboard has nothing to show until a sync has run.
func (s *Store) Load() ([]model.PlayEvent, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, &model.DataSourceError{Source: s.path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)

	header, err := r.Read()
	if err != nil {
		return nil, &model.DataSourceError{Source: s.path, Err: fmt.Errorf("reading header: %w", err)}
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}

	var events []model.PlayEvent
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &model.DataSourceError{Source: s.path, Err: err}
		}

		field := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return rec[i]
		}

		playedAt, err := time.Parse(playedAtLayout, field("played_at"))
		if err != nil {
			return nil, &model.DataSourceError{Source: s.path, Err: fmt.Errorf("bad played_at %q: %w", field("played_at"), err)}
		}
		durationMs, err := strconv.ParseInt(field("duration_ms"), 10, 64)
		if err != nil {
			return nil, &model.DataSourceError{Source: s.path, Err: fmt.Errorf("bad duration_ms %q: %w", field("duration_ms"), err)}
		}

		events = append(events, model.PlayEvent{
			PlayedAt:   playedAt.UTC(),
			TrackName:  field("track_name"),
			ArtistName: field("artist_name"),
			AlbumName:  field("album_name"),
			DurationMs: durationMs,
			TrackURI:   field("spotify_track_uri"),
			Platform:   field("platform"),
			Country:    field("conn_country"),
			Shuffle:    decodeBool(field("shuffle")),
			Skipped:    decodeBool(field("skipped")),
		})
	}

	return events, nil
}

func record(e model.PlayEvent) []string {
	return []string{
		e.PlayedAt.UTC().Format(playedAtLayout),
		e.TrackName,
		e.ArtistName,
		e.AlbumName,
		strconv.FormatInt(e.DurationMs, 10),
		e.TrackURI,
		e.Platform,
		e.Country,
		encodeBool(e.Shuffle),
		encodeBool(e.Skipped),
	}
}

func encodeBool(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}

func decodeBool(s string) *bool {
	switch s {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	default:
		return nil
	}
}
