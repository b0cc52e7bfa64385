package stats

import (
	"sort"
	"time"

	"Rewind/model"
)

// Granularity selects the bucket size of the activity series.
type Granularity string

const (
	ByMonth Granularity = "month"
	ByWeek  Granularity = "week"
	ByDay   Granularity = "day"
)

// ActivityPoint is one bucket of the plays-over-time series.
type ActivityPoint struct {
	Bucket time.Time `json:"bucket"`
	Plays  int       `json:"plays"`
}

// Activity buckets plays by month, week (Sunday-start) or day and returns
// the series in chronological order.
func Activity(events []model.PlayEvent, g Granularity) []ActivityPoint {
	counts := make(map[time.Time]int)
	for _, e := range events {
		counts[truncate(e.PlayedAt, g)]++
	}

	series := make([]ActivityPoint, 0, len(counts))
	for bucket, plays := range counts {
		series = append(series, ActivityPoint{Bucket: bucket, Plays: plays})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Bucket.Before(series[j].Bucket)
	})
	return series
}

// truncate buckets in the wall clock of t's location.
func truncate(t time.Time, g Granularity) time.Time {
	switch g {
	case ByMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case ByWeek:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		// Weeks run Sunday through Saturday.
		return day.AddDate(0, 0, -int(day.Weekday()))
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
}

// HourHistogram counts plays per hour of day (0-23).
func HourHistogram(events []model.PlayEvent) [24]int {
	var hours [24]int
	for _, e := range events {
		hours[e.PlayedAt.Hour()]++
	}
	return hours
}

// WeekdayAverage is the average number of plays on one weekday.
type WeekdayAverage struct {
	Weekday string  `json:"weekday"`
	Average float64 `json:"average"`
}

// WeekdayAverages divides each weekday's play total by the number of times
// that weekday occurs between the first and last play date inclusive, so a
// range that spans more Mondays than Sundays does not skew the curve.
// Order is Monday through Sunday.
func WeekdayAverages(events []model.PlayEvent) []WeekdayAverage {
	if len(events) == 0 {
		return nil
	}

	var plays [7]int
	first := truncate(events[0].PlayedAt, ByDay)
	last := first
	for _, e := range events {
		plays[int(e.PlayedAt.Weekday())]++
		d := truncate(e.PlayedAt, ByDay)
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}

	var occurrences [7]int
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		occurrences[int(d.Weekday())]++
	}

	// Monday-first display order.
	order := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	out := make([]WeekdayAverage, 0, 7)
	for _, wd := range order {
		avg := 0.0
		if occurrences[int(wd)] > 0 {
			avg = float64(plays[int(wd)]) / float64(occurrences[int(wd)])
		}
		out = append(out, WeekdayAverage{Weekday: wd.String(), Average: avg})
	}
	return out
}
