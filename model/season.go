package model

import "time"

// Season is a meteorological season label derived from the calendar month.
type Season string

const (
	Winter Season = "Winter" // Dec, Jan, Feb
	Spring Season = "Spring" // Mar, Apr, May
	Summer Season = "Summer" // Jun, Jul, Aug
	Fall   Season = "Fall"   // Sep, Oct, Nov
)

// SeasonOrder is the display order used by the seasonal views.
var SeasonOrder = []Season{Winter, Spring, Summer, Fall}

// SeasonOf maps a month to its season. The partition is total and
// non-overlapping: every month belongs to exactly one season.
func SeasonOf(m time.Month) Season {
	switch m {
	case time.December, time.January, time.February:
		return Winter
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	default:
		return Fall
	}
}
