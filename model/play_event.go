package model

import (
	"time"
)

// PlayedThresholdMs is Spotify's "counted as played" floor. Historical
// export rows shorter than this are skips/previews and are dropped.
const PlayedThresholdMs = 30000

// PlatformAPI tags rows that came from the Web API rather than the export.
const PlatformAPI = "API"

// PlayEvent is one canonical record of a single listen. Events are
// immutable once constructed; the merged timeline is rebuilt from the two
// sources on every sync run.
type PlayEvent struct {
	PlayedAt   time.Time `json:"playedAt"`
	TrackName  string    `json:"trackName"`
	ArtistName string    `json:"artistName"`
	AlbumName  string    `json:"albumName"`
	DurationMs int64     `json:"durationMs"` // Milliseconds actually played, not track length
	TrackURI   string    `json:"trackUri,omitempty"`
	Platform   string    `json:"platform,omitempty"`
	Country    string    `json:"country,omitempty"`
	Shuffle    *bool     `json:"shuffle,omitempty"`
	Skipped    *bool     `json:"skipped,omitempty"`
}

// Key returns the dedup identity of the event. Two rows with the same
// instant, track and artist are considered the same listen.
func (e PlayEvent) Key() string {
	return e.PlayedAt.UTC().Format(time.RFC3339Nano) + "\x1f" + e.TrackName + "\x1f" + e.ArtistName
}

// TrackKey identifies a (track, artist) pair across the timeline.
func (e PlayEvent) TrackKey() string {
	return e.TrackName + " - " + e.ArtistName
}
