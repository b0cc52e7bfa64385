package stats

import (
	"sort"
	"time"

	"Rewind/model"
)

// YearCount is the number of new entities first heard in one year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// CumulativePoint is one step of the cumulative-discovery curve: after
// FirstPlay, Total distinct entities had been heard at least once.
type CumulativePoint struct {
	FirstPlay time.Time `json:"firstPlay"`
	Total     int       `json:"total"`
}

// DiscoveryReport describes when entities (artists or tracks) were first
// encountered.
type DiscoveryReport struct {
	ByYear        []YearCount       `json:"byYear"`
	Cumulative    []CumulativePoint `json:"cumulative"`
	TotalEntities int               `json:"totalEntities"`
}

// ArtistDiscovery reports first-listen years per artist. Discovery is
// always derived from the full timeline, never a filtered slice: an artist
// heard in 2019 is not "new" in a 2021-filtered view. Callers must pass
// the complete dataset here even when the rest of their view is filtered.
func ArtistDiscovery(full []model.PlayEvent) DiscoveryReport {
	return discover(full, func(e model.PlayEvent) string { return e.ArtistName })
}

// TrackDiscovery is the (track, artist) variant of ArtistDiscovery.
func TrackDiscovery(full []model.PlayEvent) DiscoveryReport {
	return discover(full, func(e model.PlayEvent) string { return e.TrackKey() })
}

// NewArtistsInRange counts artists whose first listen ever falls inside
// [startYear, endYear], judged against the full timeline.
func NewArtistsInRange(full []model.PlayEvent, startYear, endYear int) int {
	return countFirstPlaysInRange(firstPlays(full, func(e model.PlayEvent) string { return e.ArtistName }), startYear, endYear)
}

// NewTracksInRange counts (track, artist) pairs first heard inside the range.
func NewTracksInRange(full []model.PlayEvent, startYear, endYear int) int {
	return countFirstPlaysInRange(firstPlays(full, func(e model.PlayEvent) string { return e.TrackKey() }), startYear, endYear)
}

func discover(full []model.PlayEvent, key func(model.PlayEvent) string) DiscoveryReport {
	first := firstPlays(full, key)

	byYear := make(map[int]int)
	points := make([]CumulativePoint, 0, len(first))
	for _, t := range first {
		byYear[t.Year()]++
		points = append(points, CumulativePoint{FirstPlay: t})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].FirstPlay.Before(points[j].FirstPlay)
	})
	for i := range points {
		points[i].Total = i + 1
	}

	years := make([]YearCount, 0, len(byYear))
	for y, c := range byYear {
		years = append(years, YearCount{Year: y, Count: c})
	}
	sort.Slice(years, func(i, j int) bool { return years[i].Year < years[j].Year })

	return DiscoveryReport{
		ByYear:        years,
		Cumulative:    points,
		TotalEntities: len(first),
	}
}

// firstPlays maps each entity to its earliest recorded play.
func firstPlays(events []model.PlayEvent, key func(model.PlayEvent) string) map[string]time.Time {
	first := make(map[string]time.Time)
	for _, e := range events {
		k := key(e)
		if k == "" || k == " - " {
			continue
		}
		if t, ok := first[k]; !ok || e.PlayedAt.Before(t) {
			first[k] = e.PlayedAt
		}
	}
	return first
}

func countFirstPlaysInRange(first map[string]time.Time, startYear, endYear int) int {
	n := 0
	for _, t := range first {
		y := t.Year()
		if (startYear == 0 || y >= startYear) && (endYear == 0 || y <= endYear) {
			n++
		}
	}
	return n
}
