// Package spotify wraps the pieces of the Spotify Web API this system
// needs: the one-time authorization-code bootstrap, the recently-played
// window, and best-effort artist/track image lookups.
package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"Rewind/config"
	"Rewind/logger"
	"Rewind/model"

	"golang.org/x/oauth2"
)

const (
	authURL  = "https://accounts.spotify.com/authorize"
	tokenURL = "https://accounts.spotify.com/api/token"
)

// Scopes requested during the bootstrap. Single user, read-only.
var scopes = []string{
	"user-read-recently-played",
	"user-library-read",
	"user-top-read",
}

// Authenticator handles the OAuth authorization-code grant and the
// persisted token cache. The cache file is the only credential state;
// it is keyed on nothing else (single-user system).
type Authenticator struct {
	conf      *oauth2.Config
	cachePath string
}

// NewAuthenticator builds an authenticator from the configured
// credentials. Returns a ConfigError when any of them is missing.
func NewAuthenticator(cfg *config.Config) (*Authenticator, error) {
	if err := cfg.ValidateSpotify(); err != nil {
		return nil, err
	}
	return &Authenticator{
		conf: &oauth2.Config{
			ClientID:     cfg.SpotifyClientID,
			ClientSecret: cfg.SpotifyClientSecret,
			RedirectURL:  cfg.SpotifyRedirectURI,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
		},
		cachePath: cfg.TokenCachePath,
	}, nil
}

// AuthCodeURL returns the URL the user opens to grant access.
func (a *Authenticator) AuthCodeURL(state string) string {
	return a.conf.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades the callback code for a token pair and persists it.
func (a *Authenticator) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := a.conf.Exchange(ctx, code)
	if err != nil {
		return nil, &model.RemoteCallError{Op: "token exchange", Err: err}
	}
	if err := a.saveToken(tok); err != nil {
		return nil, err
	}
	return tok, nil
}

// CachedToken loads the persisted token. ErrNoSession when the cache file
// does not exist, so callers can skip the API fetch instead of failing.
func (a *Authenticator) CachedToken() (*oauth2.Token, error) {
	raw, err := os.ReadFile(a.cachePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, model.ErrNoSession
		}
		return nil, fmt.Errorf("failed to read token cache %s: %w", a.cachePath, err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(raw, &tok); err != nil {
		return nil, fmt.Errorf("failed to parse token cache %s: %w", a.cachePath, err)
	}
	return &tok, nil
}

// TokenSource returns a source that refreshes expired access tokens and
// writes refreshed tokens back to the cache file.
func (a *Authenticator) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	tok, err := a.CachedToken()
	if err != nil {
		return nil, err
	}
	return &persistingSource{
		auth: a,
		src:  a.conf.TokenSource(ctx, tok),
		last: tok.AccessToken,
	}, nil
}

func (a *Authenticator) saveToken(tok *oauth2.Token) error {
	raw, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	// 0600: the refresh token grants account read access.
	if err := os.WriteFile(a.cachePath, raw, 0600); err != nil {
		return fmt.Errorf("failed to write token cache %s: %w", a.cachePath, err)
	}
	return nil
}

// persistingSource writes refreshed tokens through to the cache file so
// the next run starts from the newest refresh token.
type persistingSource struct {
	auth *Authenticator
	src  oauth2.TokenSource
	last string
}

func (p *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := p.src.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != p.last {
		p.last = tok.AccessToken
		if err := p.auth.saveToken(tok); err != nil {
			logger.Warn("failed to persist refreshed token", logger.ErrorField(err))
		}
	}
	return tok, nil
}
