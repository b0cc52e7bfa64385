package stats

import (
	"Rewind/model"
)

// Delta pairs an absolute change with its percentage against the prior value.
type Delta struct {
	Change  float64 `json:"change"`
	Percent float64 `json:"percent"`
}

// YearOverYear compares one year against the year before it.
type YearOverYear struct {
	Year     int   `json:"year"`
	PrevYear int   `json:"prevYear"`
	Plays    Delta `json:"plays"`
	Hours    Delta `json:"hours"`
	Artists  Delta `json:"artists"`
	Tracks   Delta `json:"tracks"`
}

// CompareYears computes year-over-year deltas for plays, hours, unique
// artists and unique tracks. The second return is false when the prior
// year has no data, in which case there is nothing to compare against.
func CompareYears(full []model.PlayEvent, year int) (YearOverYear, bool) {
	current := Summarize(FilterYears(full, year, year))
	previous := Summarize(FilterYears(full, year-1, year-1))
	if previous.TotalPlays == 0 {
		return YearOverYear{}, false
	}

	return YearOverYear{
		Year:     year,
		PrevYear: year - 1,
		Plays:    delta(float64(current.TotalPlays), float64(previous.TotalPlays)),
		Hours:    delta(current.TotalHours, previous.TotalHours),
		Artists:  delta(float64(current.UniqueArtists), float64(previous.UniqueArtists)),
		Tracks:   delta(float64(current.UniqueTrackPairs), float64(previous.UniqueTrackPairs)),
	}, true
}

func delta(current, previous float64) Delta {
	d := Delta{Change: current - previous}
	if previous != 0 {
		d.Percent = (current - previous) / previous * 100
	}
	return d
}
