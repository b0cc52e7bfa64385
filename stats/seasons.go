package stats

import (
	"Rewind/model"
)

// SeasonCount is one season's share of the filtered range.
type SeasonCount struct {
	Season  model.Season `json:"season"`
	Plays   int          `json:"plays"`
	Percent float64      `json:"percent"`
}

// SeasonTotals counts plays per season in display order. Percent is the
// season's share of all plays in the input.
func SeasonTotals(events []model.PlayEvent) []SeasonCount {
	counts := make(map[model.Season]int, 4)
	for _, e := range events {
		counts[model.SeasonOf(e.PlayedAt.Month())]++
	}

	out := make([]SeasonCount, 0, 4)
	for _, s := range model.SeasonOrder {
		pct := 0.0
		if len(events) > 0 {
			pct = float64(counts[s]) / float64(len(events)) * 100
		}
		out = append(out, SeasonCount{Season: s, Plays: counts[s], Percent: pct})
	}
	return out
}

// SeasonEntity is one ranked entity (artist or track) with its per-season
// play distribution. The per-season counts sum to Total.
type SeasonEntity struct {
	Name     string                   `json:"name"`
	Artist   string                   `json:"artist,omitempty"` // Set for track entities only
	Total    int                      `json:"total"`
	BySeason map[model.Season]int     `json:"bySeason"`
	Percent  map[model.Season]float64 `json:"percent"`
}

// SeasonBreakdownArtists takes the top-n artists of the filtered range and
// splits each one's plays across the four seasons.
func SeasonBreakdownArtists(events []model.PlayEvent, n int) []SeasonEntity {
	top := TopArtists(events, n)

	perSeason := make(map[string]map[model.Season]int, len(top))
	for _, a := range top {
		perSeason[a.Name] = make(map[model.Season]int, 4)
	}
	for _, e := range events {
		if m, ok := perSeason[e.ArtistName]; ok {
			m[model.SeasonOf(e.PlayedAt.Month())]++
		}
	}

	out := make([]SeasonEntity, 0, len(top))
	for _, a := range top {
		out = append(out, buildSeasonEntity(a.Name, "", a.Plays, perSeason[a.Name]))
	}
	return out
}

// SeasonBreakdownTracks is the track-entity variant of the seasonal split.
func SeasonBreakdownTracks(events []model.PlayEvent, n int) []SeasonEntity {
	top := TopTracks(events, n)

	perSeason := make(map[string]map[model.Season]int, len(top))
	for _, t := range top {
		perSeason[t.Track+" - "+t.Artist] = make(map[model.Season]int, 4)
	}
	for _, e := range events {
		if m, ok := perSeason[e.TrackKey()]; ok {
			m[model.SeasonOf(e.PlayedAt.Month())]++
		}
	}

	out := make([]SeasonEntity, 0, len(top))
	for _, t := range top {
		out = append(out, buildSeasonEntity(t.Track, t.Artist, t.Plays, perSeason[t.Track+" - "+t.Artist]))
	}
	return out
}

func buildSeasonEntity(name, artist string, total int, bySeason map[model.Season]int) SeasonEntity {
	pct := make(map[model.Season]float64, 4)
	for _, s := range model.SeasonOrder {
		if total > 0 {
			pct[s] = float64(bySeason[s]) / float64(total) * 100
		} else {
			pct[s] = 0
		}
	}
	return SeasonEntity{
		Name:     name,
		Artist:   artist,
		Total:    total,
		BySeason: bySeason,
		Percent:  pct,
	}
}
