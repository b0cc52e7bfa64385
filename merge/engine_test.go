package merge

import (
	"testing"
	"time"

	"Rewind/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event(playedAt time.Time, track, artist string) model.PlayEvent {
	return model.PlayEvent{
		PlayedAt:   playedAt,
		TrackName:  track,
		ArtistName: artist,
		DurationMs: 200000,
	}
}

func TestCombineEmptyHistoricalFails(t *testing.T) {
	recent := []model.PlayEvent{
		event(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "Song", "Artist"),
	}

	_, err := Combine(nil, recent)
	var dsErr *model.DataSourceError
	require.ErrorAs(t, err, &dsErr)

	_, err = Combine([]model.PlayEvent{}, nil)
	require.ErrorAs(t, err, &dsErr)
}

func TestCombineCutoffIsStrict(t *testing.T) {
	cutoff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	historical := []model.PlayEvent{
		event(cutoff.Add(-time.Hour), "Old Song", "Artist"),
		event(cutoff, "Boundary Song", "Artist"),
	}
	recent := []model.PlayEvent{
		event(cutoff, "At Cutoff", "Artist"),                         // Excluded: == cutoff
		event(cutoff.Add(time.Millisecond), "Just After", "Artist"), // Included: 1ms later
	}

	merged, err := Combine(historical, recent)
	require.NoError(t, err)
	require.Len(t, merged, 3)

	names := []string{merged[0].TrackName, merged[1].TrackName, merged[2].TrackName}
	assert.Equal(t, []string{"Old Song", "Boundary Song", "Just After"}, names)
}

func TestCombineSortsAscending(t *testing.T) {
	base := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	historical := []model.PlayEvent{
		event(base.Add(5*time.Hour), "E", "X"),
		event(base.Add(1*time.Hour), "A", "X"),
		event(base.Add(3*time.Hour), "C", "X"),
	}
	recent := []model.PlayEvent{
		event(base.Add(7*time.Hour), "G", "X"),
		event(base.Add(6*time.Hour), "F", "X"),
	}

	merged, err := Combine(historical, recent)
	require.NoError(t, err)

	for i := 1; i < len(merged); i++ {
		assert.False(t, merged[i].PlayedAt.Before(merged[i-1].PlayedAt),
			"rows %d and %d out of order", i-1, i)
	}
}

func TestCombineDeduplicates(t *testing.T) {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	first := event(at, "Same Song", "Same Artist")
	first.Platform = "android"
	dup := event(at, "Same Song", "Same Artist")
	dup.Platform = "ios"

	historical := []model.PlayEvent{first, dup, event(at.Add(time.Hour), "Other", "Artist")}

	merged, err := Combine(historical, nil)
	require.NoError(t, err)
	require.Len(t, merged, 2)
	// First occurrence in sort order survives.
	assert.Equal(t, "android", merged[0].Platform)
}

func TestCombineHistoricalWinsTimestampTie(t *testing.T) {
	// A recent row sharing the cutoff instant is excluded by the strict
	// boundary; a duplicate triple later than the cutoff still resolves
	// to whichever row sorts first, and the stable sort keeps historical
	// rows ahead of recent ones.
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	histRow := event(at, "Tied", "Artist")
	histRow.Platform = "android"
	historical := []model.PlayEvent{event(at.Add(-time.Hour), "Earlier", "Artist"), histRow}

	apiRow := event(at, "Tied", "Artist")
	apiRow.Platform = model.PlatformAPI

	merged, err := Combine(historical, []model.PlayEvent{apiRow})
	require.NoError(t, err)
	require.Len(t, merged, 2)
	assert.Equal(t, "android", merged[1].Platform)
}

func TestCombineDegradesToHistoricalOnly(t *testing.T) {
	historical := []model.PlayEvent{
		event(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), "B", "X"),
		event(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "A", "X"),
	}

	// A failed fetch yields nil recent rows; merge must still succeed.
	merged, err := Combine(historical, nil)
	require.NoError(t, err)
	require.Len(t, merged, 2)
	assert.Equal(t, "A", merged[0].TrackName)
	assert.Equal(t, "B", merged[1].TrackName)
}

func TestCutoff(t *testing.T) {
	assert.True(t, Cutoff(nil).IsZero())

	max := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	events := []model.PlayEvent{
		event(max.Add(-time.Hour), "A", "X"),
		event(max, "B", "X"),
		event(max.Add(-time.Minute), "C", "X"),
	}
	assert.Equal(t, max, Cutoff(events))
}
