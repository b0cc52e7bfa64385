package spotify

import (
	"context"
	"fmt"
	"time"

	"Rewind/model"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
)

const defaultBaseURL = "https://api.spotify.com/v1"

// Client is an authenticated Spotify Web API client.
type Client struct {
	http    *resty.Client
	src     oauth2.TokenSource
	baseURL string
}

// NewClient builds a client from the cached session. Returns ErrNoSession
// when no token cache exists; pipeline callers treat that as "skip".
func NewClient(ctx context.Context, auth *Authenticator) (*Client, error) {
	src, err := auth.TokenSource(ctx)
	if err != nil {
		return nil, err
	}
	return &Client{
		http:    resty.New().SetTimeout(10 * time.Second),
		src:     src,
		baseURL: defaultBaseURL,
	}, nil
}

// newClientWithSource is the test seam: fixed token source, custom base URL.
func newClientWithSource(src oauth2.TokenSource, baseURL string) *Client {
	return &Client{
		http:    resty.New().SetTimeout(10 * time.Second),
		src:     src,
		baseURL: baseURL,
	}
}

// get performs an authenticated GET and decodes the JSON body into out.
// Every failure mode (token refresh, transport, non-2xx status) comes back
// as a RemoteCallError so callers can degrade uniformly.
func (c *Client) get(ctx context.Context, op, path string, params map[string]string, out interface{}) error {
	tok, err := c.src.Token()
	if err != nil {
		return &model.RemoteCallError{Op: op, Err: err}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(tok.AccessToken).
		SetQueryParams(params).
		SetResult(out).
		Get(c.baseURL + path)
	if err != nil {
		return &model.RemoteCallError{Op: op, Err: err}
	}
	if resp.IsError() {
		return &model.RemoteCallError{
			Op:  op,
			Err: fmt.Errorf("status %d: %s", resp.StatusCode(), resp.String()),
		}
	}
	return nil
}
