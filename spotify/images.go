package spotify

import (
	"context"
	"fmt"

	"Rewind/model"
)

type searchResponse struct {
	Artists struct {
		Items []struct {
			Name   string  `json:"name"`
			Images []image `json:"images"`
		} `json:"items"`
	} `json:"artists"`
	Tracks struct {
		Items []struct {
			Name  string `json:"name"`
			Album struct {
				Images []image `json:"images"`
			} `json:"album"`
		} `json:"items"`
	} `json:"tracks"`
}

type image struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ArtistImage resolves an artist's profile image URL. Any miss or call
// failure comes back as an ImageLookupError; the dashboard renders a
// placeholder instead.
func (c *Client) ArtistImage(ctx context.Context, name string) (string, error) {
	query := fmt.Sprintf("artist:%s", name)

	var resp searchResponse
	err := c.get(ctx, "artist search", "/search",
		map[string]string{"q": query, "type": "artist", "limit": "1"}, &resp)
	if err != nil {
		return "", wrapLookup(query, err)
	}

	if len(resp.Artists.Items) == 0 || len(resp.Artists.Items[0].Images) == 0 {
		return "", wrapLookup(query, nil)
	}
	// First image is the largest.
	return resp.Artists.Items[0].Images[0].URL, nil
}

// TrackImage resolves the album cover for a track.
func (c *Client) TrackImage(ctx context.Context, track, artist string) (string, error) {
	query := fmt.Sprintf("track:%s artist:%s", track, artist)

	var resp searchResponse
	err := c.get(ctx, "track search", "/search",
		map[string]string{"q": query, "type": "track", "limit": "1"}, &resp)
	if err != nil {
		return "", wrapLookup(query, err)
	}

	if len(resp.Tracks.Items) == 0 || len(resp.Tracks.Items[0].Album.Images) == 0 {
		return "", wrapLookup(query, nil)
	}
	return resp.Tracks.Items[0].Album.Images[0].URL, nil
}

func wrapLookup(query string, err error) error {
	return &model.ImageLookupError{Query: query, Err: err}
}
