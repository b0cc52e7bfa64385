package spotify

import (
	"net/url"
	"path/filepath"
	"testing"

	"Rewind/config"
	"Rewind/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		SpotifyClientID:     "client-id",
		SpotifyClientSecret: "client-secret",
		SpotifyRedirectURI:  "http://127.0.0.1:8888/callback",
		TokenCachePath:      filepath.Join(t.TempDir(), ".spotify_cache"),
	}
}

func TestNewAuthenticatorRejectsMissingCredentials(t *testing.T) {
	cfg := testConfig(t)
	cfg.SpotifyClientSecret = ""

	_, err := NewAuthenticator(cfg)
	require.Error(t, err)

	var confErr *model.ConfigError
	require.ErrorAs(t, err, &confErr)
	assert.Equal(t, "SPOTIFY_CLIENT_SECRET", confErr.Field)
}

func TestAuthCodeURL(t *testing.T) {
	auth, err := NewAuthenticator(testConfig(t))
	require.NoError(t, err)

	raw := auth.AuthCodeURL("state-123")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "accounts.spotify.com", u.Host)
	q := u.Query()
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "state-123", q.Get("state"))
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Contains(t, q.Get("scope"), "user-read-recently-played")
}

func TestCachedTokenMissingFileIsNoSession(t *testing.T) {
	auth, err := NewAuthenticator(testConfig(t))
	require.NoError(t, err)

	_, err = auth.CachedToken()
	assert.ErrorIs(t, err, model.ErrNoSession)
}

func TestSaveTokenRoundTrip(t *testing.T) {
	auth, err := NewAuthenticator(testConfig(t))
	require.NoError(t, err)

	tok := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
	}
	require.NoError(t, auth.saveToken(tok))

	loaded, err := auth.CachedToken()
	require.NoError(t, err)
	assert.Equal(t, "access", loaded.AccessToken)
	assert.Equal(t, "refresh", loaded.RefreshToken)
}
