package cmd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"Rewind/logger"
	"Rewind/spotify"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var authorizeCmd = &cobra.Command{
	Use:   "authorize",
	Short: "Run the one-time Spotify OAuth bootstrap",
	Long: `Open the Spotify consent page, capture the callback on the configured
redirect URI, and persist the token cache for later runs. The cached
refresh token is valid for roughly 60 days of inactivity; run this again
if sync reports an expired session.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := initApp()

		auth, err := spotify.NewAuthenticator(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "authorize failed: %v\n", err)
			os.Exit(1)
		}

		redirect, err := url.Parse(cfg.SpotifyRedirectURI)
		if err != nil {
			fmt.Fprintf(os.Stderr, "authorize failed: invalid redirect URI: %v\n", err)
			os.Exit(1)
		}

		state := uuid.NewString()
		codeCh := make(chan string, 1)

		// Temporary callback listener; lives only for this bootstrap.
		mux := http.NewServeMux()
		mux.HandleFunc(redirect.Path, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("state") != state {
				http.Error(w, "state mismatch", http.StatusBadRequest)
				return
			}
			code := r.URL.Query().Get("code")
			if code == "" {
				http.Error(w, "authorization denied", http.StatusBadRequest)
				return
			}
			fmt.Fprintln(w, "Authorization complete. You can close this tab.")
			codeCh <- code
		})
		callbackServer := &http.Server{Addr: redirect.Host, Handler: mux}
		go func() {
			if err := callbackServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Fatal("callback listener failed", logger.ErrorField(err))
			}
		}()

		fmt.Println("Open this URL in your browser and click Agree:")
		fmt.Println()
		fmt.Println("  " + auth.AuthCodeURL(state))
		fmt.Println()
		fmt.Println("Waiting for the callback ...")

		var code string
		select {
		case code = <-codeCh:
		case <-time.After(5 * time.Minute):
			fmt.Fprintln(os.Stderr, "authorize failed: timed out waiting for the callback")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		callbackServer.Shutdown(shutdownCtx)

		if _, err := auth.Exchange(ctx, code); err != nil {
			fmt.Fprintf(os.Stderr, "authorize failed: %v\n", err)
			os.Exit(1)
		}

		// Confirm the session actually works before declaring success.
		client, err := spotify.NewClient(ctx, auth)
		if err != nil {
			fmt.Fprintf(os.Stderr, "authorize failed: %v\n", err)
			os.Exit(1)
		}
		name, err := client.CurrentUser(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "token saved, but the test call failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Authorization successful. Logged in as %s.\n", name)
		fmt.Printf("Token cache written to %s\n", cfg.TokenCachePath)
	},
}

func init() {
	rootCmd.AddCommand(authorizeCmd)
}
