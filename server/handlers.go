package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"Rewind/cache"
	"Rewind/logger"
	"Rewind/model"
	"Rewind/stats"
)

// ImageResolver resolves artist and track artwork. Implemented by the
// Spotify client; nil when no authorized session exists, in which case
// every lookup degrades to a placeholder.
type ImageResolver interface {
	ArtistImage(ctx context.Context, name string) (string, error)
	TrackImage(ctx context.Context, track, artist string) (string, error)
}

// APIHandler serves the read-only analytics API over the merged timeline.
type APIHandler struct {
	dataset *Dataset
	cache   cache.StatsCache
	images  ImageResolver
}

// NewAPIHandler wires the handler with its dataset, stats cache, and an
// optional image resolver.
func NewAPIHandler(dataset *Dataset, statsCache cache.StatsCache, images ImageResolver) *APIHandler {
	return &APIHandler{
		dataset: dataset,
		cache:   statsCache,
		images:  images,
	}
}

// yearRange extracts the start_year/end_year filter. Zero means unbounded.
func yearRange(q url.Values) (int, int) {
	start, _ := strconv.Atoi(q.Get("start_year"))
	end, _ := strconv.Atoi(q.Get("end_year"))
	return start, end
}

// cacheKey canonicalizes the request into a cache key. url.Values.Encode
// sorts parameters, so equivalent requests share an entry.
func cacheKey(r *http.Request) string {
	return r.URL.Path + "?" + r.URL.Query().Encode()
}

// respondCached serves the response from the stats cache when possible,
// otherwise computes it, stores it, and serves it.
func (h *APIHandler) respondCached(w http.ResponseWriter, r *http.Request, compute func() (interface{}, error)) {
	key := cacheKey(r)
	if body, ok := h.cache.Get(key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
		return
	}

	payload, err := compute()
	if err != nil {
		logger.Error("failed to compute response",
			logger.String("path", r.URL.Path), logger.ErrorField(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	h.cache.Set(key, body)

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

type summaryResponse struct {
	Summary        stats.Summary       `json:"summary"`
	AvailableYears []int               `json:"availableYears"`
	NewArtists     int                 `json:"newArtists"`
	NewTracks      int                 `json:"newTracks"`
	YearOverYear   *stats.YearOverYear `json:"yearOverYear,omitempty"`
}

// SummaryHandler returns the headline numbers for the selected range,
// discovery counts judged against the full timeline, and year-over-year
// deltas when a single year is selected.
func (h *APIHandler) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	h.respondCached(w, r, func() (interface{}, error) {
		full := h.dataset.Events()
		start, end := yearRange(r.URL.Query())
		filtered := stats.FilterYears(full, start, end)

		resp := summaryResponse{
			Summary:        stats.Summarize(filtered),
			AvailableYears: stats.Years(full),
			// Discovery reflects true history: first occurrence over the
			// full timeline, even when the rest of the view is filtered.
			NewArtists: stats.NewArtistsInRange(full, start, end),
			NewTracks:  stats.NewTracksInRange(full, start, end),
		}

		if start != 0 && start == end {
			if yoy, ok := stats.CompareYears(full, start); ok {
				resp.YearOverYear = &yoy
			}
		}
		return resp, nil
	})
}

// TopArtistsHandler returns the artist ranking for the selected range.
func (h *APIHandler) TopArtistsHandler(w http.ResponseWriter, r *http.Request) {
	h.respondCached(w, r, func() (interface{}, error) {
		filtered := h.filtered(r)
		n := limitParam(r, stats.TopNSummary)
		return stats.TopArtists(filtered, n), nil
	})
}

// TopTracksHandler returns the track ranking for the selected range.
func (h *APIHandler) TopTracksHandler(w http.ResponseWriter, r *http.Request) {
	h.respondCached(w, r, func() (interface{}, error) {
		filtered := h.filtered(r)
		n := limitParam(r, stats.TopNSummary)
		return stats.TopTracks(filtered, n), nil
	})
}

// ActivityHandler returns the plays-over-time series at the requested
// granularity (month, week or day; month by default).
func (h *APIHandler) ActivityHandler(w http.ResponseWriter, r *http.Request) {
	h.respondCached(w, r, func() (interface{}, error) {
		g := stats.Granularity(r.URL.Query().Get("view"))
		switch g {
		case stats.ByMonth, stats.ByWeek, stats.ByDay:
		default:
			g = stats.ByMonth
		}
		return stats.Activity(h.filtered(r), g), nil
	})
}

type clockResponse struct {
	Hours    [24]int               `json:"hours"`
	Weekdays []stats.WeekdayAverage `json:"weekdays"`
}

// ClockHandler returns the hour-of-day histogram and weekday averages.
func (h *APIHandler) ClockHandler(w http.ResponseWriter, r *http.Request) {
	h.respondCached(w, r, func() (interface{}, error) {
		filtered := h.filtered(r)
		return clockResponse{
			Hours:    stats.HourHistogram(filtered),
			Weekdays: stats.WeekdayAverages(filtered),
		}, nil
	})
}

type seasonsResponse struct {
	Totals    []stats.SeasonCount  `json:"totals"`
	Breakdown []stats.SeasonEntity `json:"breakdown"`
}

// SeasonsHandler returns the seasonal totals plus the top-30 per-entity
// breakdown; view=tracks switches the entity type from artists.
func (h *APIHandler) SeasonsHandler(w http.ResponseWriter, r *http.Request) {
	h.respondCached(w, r, func() (interface{}, error) {
		filtered := h.filtered(r)
		resp := seasonsResponse{Totals: stats.SeasonTotals(filtered)}
		if r.URL.Query().Get("view") == "tracks" {
			resp.Breakdown = stats.SeasonBreakdownTracks(filtered, stats.TopNSeasonal)
		} else {
			resp.Breakdown = stats.SeasonBreakdownArtists(filtered, stats.TopNSeasonal)
		}
		return resp, nil
	})
}

// DiscoveryHandler returns first-listen statistics, always derived from
// the full timeline regardless of any year filter.
func (h *APIHandler) DiscoveryHandler(w http.ResponseWriter, r *http.Request) {
	h.respondCached(w, r, func() (interface{}, error) {
		full := h.dataset.Events()
		if r.URL.Query().Get("entity") == "tracks" {
			return stats.TrackDiscovery(full), nil
		}
		return stats.ArtistDiscovery(full), nil
	})
}

type imageResponse struct {
	URL         string `json:"url"`
	Placeholder bool   `json:"placeholder"`
}

// ArtistImageHandler resolves an artist image. Lookup failures degrade to
// a placeholder response; the endpoint never reports an error status.
func (h *APIHandler) ArtistImageHandler(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	h.respondCached(w, r, func() (interface{}, error) {
		return h.resolveImage(r.Context(), func(ctx context.Context) (string, error) {
			if h.images == nil {
				return "", model.ErrNoSession
			}
			return h.images.ArtistImage(ctx, name)
		}), nil
	})
}

// TrackImageHandler resolves a track's album art, with the same
// degradation behavior as ArtistImageHandler.
func (h *APIHandler) TrackImageHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name, artist := q.Get("name"), q.Get("artist")
	h.respondCached(w, r, func() (interface{}, error) {
		return h.resolveImage(r.Context(), func(ctx context.Context) (string, error) {
			if h.images == nil {
				return "", model.ErrNoSession
			}
			return h.images.TrackImage(ctx, name, artist)
		}), nil
	})
}

func (h *APIHandler) resolveImage(ctx context.Context, lookup func(context.Context) (string, error)) imageResponse {
	u, err := lookup(ctx)
	if err != nil {
		var lookupErr *model.ImageLookupError
		if !errors.As(err, &lookupErr) && !errors.Is(err, model.ErrNoSession) {
			logger.Warn("unexpected image lookup failure", logger.ErrorField(err))
		}
		return imageResponse{Placeholder: true}
	}
	return imageResponse{URL: u}
}

func (h *APIHandler) filtered(r *http.Request) []model.PlayEvent {
	start, end := yearRange(r.URL.Query())
	return stats.FilterYears(h.dataset.Events(), start, end)
}

func limitParam(r *http.Request, fallback int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		return v
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", logger.ErrorField(err))
	}
}
