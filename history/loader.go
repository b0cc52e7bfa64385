// Package history loads the bulk Spotify streaming history export and
// normalizes it into the canonical PlayEvent schema.
package history

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"Rewind/logger"
	"Rewind/model"
)

// Provider column names in the extended streaming history export.
const (
	colTimestamp   = "ts"
	colMsPlayed    = "ms_played"
	colTrackName   = "master_metadata_track_name"
	colArtistName  = "master_metadata_album_artist_name"
	colAlbumName   = "master_metadata_album_album_name"
	colTrackURI    = "spotify_track_uri"
	colPlatform    = "platform"
	colCountry     = "conn_country"
	colShuffle     = "shuffle"
	colSkipped     = "skipped"
	colContentType = "content_type"
)

// contentTypeAudio marks music rows. Podcast and video rows carry other
// markers and are excluded from the analytics domain.
const contentTypeAudio = "audio"

// Timestamp layouts seen across export generations.
var tsLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// Load reads the export at path and returns the qualifying play events.
// Quality filters applied per row:
//   - ms_played >= 30000 (shorter rows are skips/previews)
//   - content type is audio (music only)
//   - track name present after normalization
//
// Rows that fail to parse are skipped with a warning rather than aborting
// the load, but a file with no qualifying rows at all is a
// DataSourceError. Order of the result is not guaranteed; the merge step
// sorts.
func Load(path string) ([]model.PlayEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &model.DataSourceError{Source: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, &model.DataSourceError{Source: path, Err: fmt.Errorf("reading header: %w", err)}
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colTimestamp, colMsPlayed, colTrackName} {
		if _, ok := idx[required]; !ok {
			return nil, &model.DataSourceError{
				Source: path,
				Err:    fmt.Errorf("missing column %q", required),
			}
		}
	}

	var (
		events     []model.PlayEvent
		badRows    int
		underFloor int
		nonAudio   int
		unnamed    int
	)

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			badRows++
			continue
		}

		field := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}

		msPlayed, err := strconv.ParseInt(field(colMsPlayed), 10, 64)
		if err != nil {
			badRows++
			continue
		}
		if msPlayed < model.PlayedThresholdMs {
			underFloor++
			continue
		}

		if ct, ok := idx[colContentType]; ok && ct < len(record) {
			if record[ct] != contentTypeAudio {
				nonAudio++
				continue
			}
		}

		trackName := field(colTrackName)
		if trackName == "" {
			// Unidentifiable plays carry no analytical value.
			unnamed++
			continue
		}

		playedAt, err := parseTimestamp(field(colTimestamp))
		if err != nil {
			badRows++
			continue
		}

		events = append(events, model.PlayEvent{
			PlayedAt:   playedAt,
			TrackName:  trackName,
			ArtistName: field(colArtistName),
			AlbumName:  field(colAlbumName),
			DurationMs: msPlayed,
			TrackURI:   field(colTrackURI),
			Platform:   field(colPlatform),
			Country:    field(colCountry),
			Shuffle:    parseBool(field(colShuffle)),
			Skipped:    parseBool(field(colSkipped)),
		})
	}

	logger.Info("historical export loaded",
		logger.String("path", path),
		logger.Int("events", len(events)),
		logger.Int("underThreshold", underFloor),
		logger.Int("nonAudio", nonAudio),
		logger.Int("unnamed", unnamed),
		logger.Int("badRows", badRows),
	)
	if badRows > 0 {
		logger.Warn("some export rows could not be parsed and were skipped",
			logger.Int("badRows", badRows))
	}

	// A header with no surviving rows is as useless as a missing file.
	if len(events) == 0 {
		return nil, &model.DataSourceError{
			Source: path,
			Err:    errors.New("no qualifying rows in export"),
		}
	}

	return events, nil
}

func parseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range tsLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// parseBool maps the export's boolean strings onto a nullable flag.
func parseBool(s string) *bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1":
		v := true
		return &v
	case "false", "0":
		v := false
		return &v
	default:
		return nil
	}
}
