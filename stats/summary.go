// Package stats derives read-only aggregates from a merged timeline.
// Every function here is a pure reduction: the input slice is never
// mutated, and identical inputs always produce identical results.
package stats

import (
	"time"

	"Rewind/model"
)

// Summary holds the headline numbers for a (possibly year-filtered) slice
// of the timeline.
type Summary struct {
	TotalPlays       int       `json:"totalPlays"`
	UniqueTracks     int       `json:"uniqueTracks"`     // Distinct track titles
	UniqueTrackPairs int       `json:"uniqueTrackPairs"` // Distinct (track, artist) pairs
	UniqueArtists    int       `json:"uniqueArtists"`
	TotalHours       float64   `json:"totalHours"`
	FirstPlay        time.Time `json:"firstPlay"`
	LastPlay         time.Time `json:"lastPlay"`
	YearsOfData      int       `json:"yearsOfData"`
	AvgPlaysPerYear  float64   `json:"avgPlaysPerYear"`
}

// Summarize computes the headline numbers. UniqueTracks counts distinct
// titles, matching the console report; UniqueTrackPairs counts (track,
// artist) pairs so same-titled songs by different artists stay distinct
// in the dashboard.
func Summarize(events []model.PlayEvent) Summary {
	var s Summary
	if len(events) == 0 {
		return s
	}

	titles := make(map[string]struct{})
	pairs := make(map[string]struct{})
	artists := make(map[string]struct{})
	years := make(map[int]struct{})
	var totalMs int64

	s.FirstPlay = events[0].PlayedAt
	s.LastPlay = events[0].PlayedAt
	for _, e := range events {
		titles[e.TrackName] = struct{}{}
		pairs[e.TrackKey()] = struct{}{}
		artists[e.ArtistName] = struct{}{}
		years[e.PlayedAt.Year()] = struct{}{}
		totalMs += e.DurationMs
		if e.PlayedAt.Before(s.FirstPlay) {
			s.FirstPlay = e.PlayedAt
		}
		if e.PlayedAt.After(s.LastPlay) {
			s.LastPlay = e.PlayedAt
		}
	}

	s.TotalPlays = len(events)
	s.UniqueTracks = len(titles)
	s.UniqueTrackPairs = len(pairs)
	s.UniqueArtists = len(artists)
	s.TotalHours = float64(totalMs) / (1000 * 60 * 60)
	s.YearsOfData = len(years)
	if s.YearsOfData > 0 {
		s.AvgPlaysPerYear = float64(s.TotalPlays) / float64(s.YearsOfData)
	}
	return s
}

// Localize returns a copy of the timeline with every PlayedAt converted
// to loc. Plays are stored in UTC; the clock, season and year views
// bucket by the wall clock of the event's location, so callers localize
// once after load. A 19:30 listen in New York must land in the evening
// bucket, not the next day's midnight.
func Localize(events []model.PlayEvent, loc *time.Location) []model.PlayEvent {
	if loc == nil || loc == time.UTC {
		return events
	}
	out := make([]model.PlayEvent, len(events))
	for i, e := range events {
		e.PlayedAt = e.PlayedAt.In(loc)
		out[i] = e
	}
	return out
}

// FilterYears returns the events whose play year falls within
// [startYear, endYear] inclusive. Zero bounds mean unbounded on that side.
func FilterYears(events []model.PlayEvent, startYear, endYear int) []model.PlayEvent {
	out := make([]model.PlayEvent, 0, len(events))
	for _, e := range events {
		y := e.PlayedAt.Year()
		if startYear != 0 && y < startYear {
			continue
		}
		if endYear != 0 && y > endYear {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Years lists the distinct play years in ascending order.
func Years(events []model.PlayEvent) []int {
	set := make(map[int]struct{})
	for _, e := range events {
		set[e.PlayedAt.Year()] = struct{}{}
	}
	years := make([]int, 0, len(set))
	for y := range set {
		years = append(years, y)
	}
	sortInts(years)
	return years
}
