package stats

import (
	"testing"
	"time"

	"Rewind/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func play(playedAt time.Time, track, artist string, durationMs int64) model.PlayEvent {
	return model.PlayEvent{
		PlayedAt:   playedAt,
		TrackName:  track,
		ArtistName: artist,
		DurationMs: durationMs,
	}
}

func at(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func TestSeasonOfCoversEveryMonth(t *testing.T) {
	want := map[time.Month]model.Season{
		time.January: model.Winter, time.February: model.Winter, time.December: model.Winter,
		time.March: model.Spring, time.April: model.Spring, time.May: model.Spring,
		time.June: model.Summer, time.July: model.Summer, time.August: model.Summer,
		time.September: model.Fall, time.October: model.Fall, time.November: model.Fall,
	}
	for m := time.January; m <= time.December; m++ {
		assert.Equal(t, want[m], model.SeasonOf(m), "month %s", m)
	}
}

func TestSummarize(t *testing.T) {
	events := []model.PlayEvent{
		play(at(2022, time.March, 1), "Song A", "Artist 1", 3600000), // 1 hour
		play(at(2022, time.March, 2), "Song A", "Artist 1", 1800000),
		play(at(2023, time.July, 4), "Song B", "Artist 2", 1800000),
	}

	s := Summarize(events)
	assert.Equal(t, 3, s.TotalPlays)
	assert.Equal(t, 2, s.UniqueTracks)
	assert.Equal(t, 2, s.UniqueTrackPairs)
	assert.Equal(t, 2, s.UniqueArtists)
	assert.InDelta(t, 2.0, s.TotalHours, 1e-9)
	assert.Equal(t, at(2022, time.March, 1), s.FirstPlay)
	assert.Equal(t, at(2023, time.July, 4), s.LastPlay)
	assert.Equal(t, 2, s.YearsOfData)
	assert.InDelta(t, 1.5, s.AvgPlaysPerYear, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.TotalPlays)
	assert.Zero(t, s.TotalHours)
}

func TestSummarizeDistinguishesTitlesFromPairs(t *testing.T) {
	events := []model.PlayEvent{
		play(at(2023, time.May, 1), "Hurt", "Nine Inch Nails", 200000),
		play(at(2023, time.May, 2), "Hurt", "Johnny Cash", 200000),
	}

	s := Summarize(events)
	assert.Equal(t, 1, s.UniqueTracks, "one title, as the console report counts")
	assert.Equal(t, 2, s.UniqueTrackPairs, "two (track, artist) versions")
}

func TestTopArtistsTieBreakIsAlphabetical(t *testing.T) {
	events := []model.PlayEvent{
		play(at(2023, time.May, 1), "S1", "Zebra", 1),
		play(at(2023, time.May, 2), "S2", "Zebra", 1),
		play(at(2023, time.May, 3), "S3", "Alpha", 1),
		play(at(2023, time.May, 4), "S4", "Alpha", 1),
		play(at(2023, time.May, 5), "S5", "Mid", 1),
		play(at(2023, time.May, 6), "S6", "Mid", 1),
	}

	top := TopArtists(events, 10)
	require.Len(t, top, 3)
	assert.Equal(t, []ArtistCount{
		{Name: "Alpha", Plays: 2},
		{Name: "Mid", Plays: 2},
		{Name: "Zebra", Plays: 2},
	}, top)
}

func TestTopTracksRanking(t *testing.T) {
	events := []model.PlayEvent{
		play(at(2023, time.May, 1), "Big Hit", "A", 1),
		play(at(2023, time.May, 2), "Big Hit", "A", 1),
		play(at(2023, time.May, 3), "Big Hit", "A", 1),
		play(at(2023, time.May, 4), "Other", "B", 1),
	}

	top := TopTracks(events, 1)
	require.Len(t, top, 1)
	assert.Equal(t, TrackCount{Track: "Big Hit", Artist: "A", Plays: 3}, top[0])
}

func TestFilterYears(t *testing.T) {
	events := []model.PlayEvent{
		play(at(2020, time.January, 1), "A", "X", 1),
		play(at(2021, time.January, 1), "B", "X", 1),
		play(at(2022, time.January, 1), "C", "X", 1),
	}

	filtered := FilterYears(events, 2021, 2021)
	require.Len(t, filtered, 1)
	assert.Equal(t, "B", filtered[0].TrackName)

	assert.Len(t, FilterYears(events, 0, 0), 3)
	assert.Len(t, FilterYears(events, 2021, 0), 2)
}

func TestActivityByMonth(t *testing.T) {
	events := []model.PlayEvent{
		play(at(2023, time.January, 5), "A", "X", 1),
		play(at(2023, time.January, 25), "B", "X", 1),
		play(at(2023, time.February, 1), "C", "X", 1),
	}

	series := Activity(events, ByMonth)
	require.Len(t, series, 2)
	assert.Equal(t, time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC), series[0].Bucket)
	assert.Equal(t, 2, series[0].Plays)
	assert.Equal(t, 1, series[1].Plays)
}

func TestActivityByWeekStartsSunday(t *testing.T) {
	// 2023-06-07 is a Wednesday; its week starts Sunday 2023-06-04.
	series := Activity([]model.PlayEvent{play(at(2023, time.June, 7), "A", "X", 1)}, ByWeek)
	require.Len(t, series, 1)
	assert.Equal(t, time.Date(2023, time.June, 4, 0, 0, 0, 0, time.UTC), series[0].Bucket)
}

func TestHourHistogram(t *testing.T) {
	events := []model.PlayEvent{
		play(time.Date(2023, 1, 1, 8, 15, 0, 0, time.UTC), "A", "X", 1),
		play(time.Date(2023, 1, 2, 8, 45, 0, 0, time.UTC), "B", "X", 1),
		play(time.Date(2023, 1, 3, 23, 0, 0, 0, time.UTC), "C", "X", 1),
	}

	hours := HourHistogram(events)
	assert.Equal(t, 2, hours[8])
	assert.Equal(t, 1, hours[23])
	assert.Equal(t, 0, hours[0])
}

func TestWeekdayAveragesDividesByOccurrences(t *testing.T) {
	// Range Mon 2023-06-05 through Mon 2023-06-12: two Mondays, one of
	// every other weekday.
	events := []model.PlayEvent{
		play(at(2023, time.June, 5), "A", "X", 1),  // Monday
		play(at(2023, time.June, 12), "B", "X", 1), // Monday
		play(at(2023, time.June, 6), "C", "X", 1),  // Tuesday
	}

	averages := WeekdayAverages(events)
	require.Len(t, averages, 7)
	assert.Equal(t, "Monday", averages[0].Weekday)
	assert.InDelta(t, 1.0, averages[0].Average, 1e-9) // 2 plays / 2 Mondays
	assert.Equal(t, "Tuesday", averages[1].Weekday)
	assert.InDelta(t, 1.0, averages[1].Average, 1e-9) // 1 play / 1 Tuesday
	assert.InDelta(t, 0.0, averages[2].Average, 1e-9) // No Wednesday plays
}

func TestLocalizeShiftsTimeDerivedViews(t *testing.T) {
	// 00:30 UTC on New Year's Day is 19:30 the previous evening five
	// hours west, so the clock, year and week views all move with it.
	eastern := time.FixedZone("UTC-5", -5*3600)
	events := Localize([]model.PlayEvent{
		{
			PlayedAt:   time.Date(2023, time.January, 1, 0, 30, 0, 0, time.UTC),
			TrackName:  "Midnight Song",
			ArtistName: "Artist",
			DurationMs: 200000,
		},
	}, eastern)

	hours := HourHistogram(events)
	assert.Equal(t, 1, hours[19])
	assert.Equal(t, 0, hours[0])

	require.Len(t, FilterYears(events, 2022, 2022), 1)
	assert.Empty(t, FilterYears(events, 2023, 2023))
	assert.Equal(t, []int{2022}, Years(events))

	series := Activity(events, ByDay)
	require.Len(t, series, 1)
	assert.Equal(t, time.December, series[0].Bucket.Month())
	assert.Equal(t, 31, series[0].Bucket.Day())
}

func TestLocalizeUTCIsIdentity(t *testing.T) {
	events := []model.PlayEvent{play(at(2023, time.May, 1), "A", "X", 1)}
	assert.Equal(t, events, Localize(events, time.UTC))
	assert.Equal(t, events, Localize(events, nil))
}

func TestSeasonTotalsPartitionEverything(t *testing.T) {
	events := []model.PlayEvent{
		play(at(2023, time.January, 10), "A", "X", 1),
		play(at(2023, time.April, 10), "B", "X", 1),
		play(at(2023, time.July, 10), "C", "X", 1),
		play(at(2023, time.October, 10), "D", "X", 1),
		play(at(2023, time.December, 10), "E", "X", 1),
	}

	totals := SeasonTotals(events)
	require.Len(t, totals, 4)

	sum := 0
	for _, sc := range totals {
		sum += sc.Plays
	}
	assert.Equal(t, len(events), sum, "every play belongs to exactly one season")
	assert.Equal(t, model.Winter, totals[0].Season)
	assert.Equal(t, 2, totals[0].Plays)
}

func TestSeasonBreakdownSumsMatchTotals(t *testing.T) {
	events := []model.PlayEvent{
		play(at(2023, time.January, 1), "S", "Solo", 1),
		play(at(2023, time.April, 1), "S", "Solo", 1),
		play(at(2023, time.July, 1), "S", "Solo", 1),
		play(at(2023, time.July, 2), "S", "Solo", 1),
	}

	breakdown := SeasonBreakdownArtists(events, 10)
	require.Len(t, breakdown, 1)

	entity := breakdown[0]
	assert.Equal(t, 4, entity.Total)
	sum := 0
	for _, s := range model.SeasonOrder {
		sum += entity.BySeason[s]
	}
	assert.Equal(t, entity.Total, sum)
	assert.InDelta(t, 50.0, entity.Percent[model.Summer], 1e-9)
}

func TestDiscoveryUsesFullHistory(t *testing.T) {
	full := []model.PlayEvent{
		play(at(2019, time.May, 1), "Early Song", "Veteran", 1),
		play(at(2021, time.May, 1), "Later Song", "Veteran", 1),
		play(at(2021, time.June, 1), "Debut", "Newcomer", 1),
	}

	// Veteran was first heard in 2019, so filtering the view to 2021
	// must not count them as newly discovered.
	assert.Equal(t, 1, NewArtistsInRange(full, 2021, 2021))
	assert.Equal(t, 2, NewArtistsInRange(full, 2019, 2021))

	report := ArtistDiscovery(full)
	assert.Equal(t, 2, report.TotalEntities)
	require.Len(t, report.ByYear, 2)
	assert.Equal(t, YearCount{Year: 2019, Count: 1}, report.ByYear[0])
	assert.Equal(t, YearCount{Year: 2021, Count: 1}, report.ByYear[1])

	require.Len(t, report.Cumulative, 2)
	assert.Equal(t, 1, report.Cumulative[0].Total)
	assert.Equal(t, 2, report.Cumulative[1].Total)
}

func TestCompareYears(t *testing.T) {
	full := []model.PlayEvent{
		play(at(2022, time.March, 1), "A", "X", 3600000),
		play(at(2022, time.March, 2), "B", "Y", 3600000),
		play(at(2023, time.March, 1), "A", "X", 3600000),
		play(at(2023, time.March, 2), "B", "Y", 3600000),
		play(at(2023, time.March, 3), "C", "Z", 3600000),
	}

	yoy, ok := CompareYears(full, 2023)
	require.True(t, ok)
	assert.Equal(t, 2022, yoy.PrevYear)
	assert.InDelta(t, 1.0, yoy.Plays.Change, 1e-9)
	assert.InDelta(t, 50.0, yoy.Plays.Percent, 1e-9)
	assert.InDelta(t, 1.0, yoy.Artists.Change, 1e-9)

	_, ok = CompareYears(full, 2022)
	assert.False(t, ok, "no prior-year data to compare against")
}
