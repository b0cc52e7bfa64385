package spotify

import (
	"context"
	"strconv"
	"time"

	"Rewind/logger"
	"Rewind/model"
)

// RecentLimit is the provider's hard cap on the recently-played window.
// One call returns at most this many items; there is no deeper history.
const RecentLimit = 50

type recentlyPlayedResponse struct {
	Items []struct {
		PlayedAt string `json:"played_at"`
		Track    struct {
			Name       string `json:"name"`
			URI        string `json:"uri"`
			DurationMs int64  `json:"duration_ms"`
			Album      struct {
				Name string `json:"name"`
			} `json:"album"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
		} `json:"track"`
	} `json:"items"`
}

// RecentlyPlayed fetches the user's recent listens, normalized into the
// canonical schema. Only the primary (first listed) artist is kept.
// Context fields this endpoint cannot supply (country, shuffle, skip) stay
// null, and Platform carries the API sentinel so merged rows stay
// attributable to their source.
func (c *Client) RecentlyPlayed(ctx context.Context, limit int) ([]model.PlayEvent, error) {
	if limit <= 0 || limit > RecentLimit {
		limit = RecentLimit
	}

	var resp recentlyPlayedResponse
	err := c.get(ctx, "recently played", "/me/player/recently-played",
		map[string]string{"limit": strconv.Itoa(limit)}, &resp)
	if err != nil {
		return nil, err
	}

	events := make([]model.PlayEvent, 0, len(resp.Items))
	for _, item := range resp.Items {
		playedAt, err := time.Parse(time.RFC3339, item.PlayedAt)
		if err != nil {
			logger.Warn("skipping item with unparsable played_at",
				logger.String("playedAt", item.PlayedAt))
			continue
		}

		artist := ""
		if len(item.Track.Artists) > 0 {
			artist = item.Track.Artists[0].Name
		}

		events = append(events, model.PlayEvent{
			PlayedAt:   playedAt.UTC(),
			TrackName:  item.Track.Name,
			ArtistName: artist,
			AlbumName:  item.Track.Album.Name,
			DurationMs: item.Track.DurationMs,
			TrackURI:   item.Track.URI,
			Platform:   model.PlatformAPI,
		})
	}

	logger.Info("recent listens fetched", logger.Int("count", len(events)))
	return events, nil
}

// CurrentUser returns the display name of the authorized account, used by
// the bootstrap command to confirm the session works.
func (c *Client) CurrentUser(ctx context.Context) (string, error) {
	var resp struct {
		DisplayName string `json:"display_name"`
		ID          string `json:"id"`
	}
	if err := c.get(ctx, "current user", "/me", nil, &resp); err != nil {
		return "", err
	}
	if resp.DisplayName != "" {
		return resp.DisplayName, nil
	}
	return resp.ID, nil
}
