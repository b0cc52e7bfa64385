package stats

import (
	"sort"

	"Rewind/model"
)

// Default ranking sizes: 10 for summary views, 30 for the seasonal breakdown.
const (
	TopNSummary  = 10
	TopNSeasonal = 30
)

// ArtistCount is one row of an artist ranking.
type ArtistCount struct {
	Name  string `json:"name"`
	Plays int    `json:"plays"`
}

// TrackCount is one row of a track ranking.
type TrackCount struct {
	Track  string `json:"track"`
	Artist string `json:"artist"`
	Plays  int    `json:"plays"`
}

// TopArtists ranks artists by play count, descending. Equal counts are
// ordered alphabetically by name so rankings are deterministic.
func TopArtists(events []model.PlayEvent, n int) []ArtistCount {
	counts := make(map[string]int)
	for _, e := range events {
		if e.ArtistName == "" {
			continue
		}
		counts[e.ArtistName]++
	}

	ranked := make([]ArtistCount, 0, len(counts))
	for name, plays := range counts {
		ranked = append(ranked, ArtistCount{Name: name, Plays: plays})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Plays != ranked[j].Plays {
			return ranked[i].Plays > ranked[j].Plays
		}
		return ranked[i].Name < ranked[j].Name
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// TopTracks ranks (track, artist) pairs by play count, descending, with
// the same alphabetical tie-break as TopArtists.
func TopTracks(events []model.PlayEvent, n int) []TrackCount {
	type pair struct{ track, artist string }
	counts := make(map[pair]int)
	for _, e := range events {
		if e.TrackName == "" {
			continue
		}
		counts[pair{e.TrackName, e.ArtistName}]++
	}

	ranked := make([]TrackCount, 0, len(counts))
	for p, plays := range counts {
		ranked = append(ranked, TrackCount{Track: p.track, Artist: p.artist, Plays: plays})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Plays != ranked[j].Plays {
			return ranked[i].Plays > ranked[j].Plays
		}
		if ranked[i].Track != ranked[j].Track {
			return ranked[i].Track < ranked[j].Track
		}
		return ranked[i].Artist < ranked[j].Artist
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func sortInts(v []int) {
	sort.Ints(v)
}
