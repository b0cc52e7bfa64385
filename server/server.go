package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Rewind/cache"
	"Rewind/config"
	"Rewind/logger"
	"Rewind/merge"
	"Rewind/model"
	"Rewind/spotify"

	"github.com/gorilla/mux"
)

const statsCacheTTL = 15 * time.Minute

// Start initializes and runs the dashboard HTTP server. It blocks until
// SIGINT/SIGTERM and then shuts down gracefully.
func Start(cfg *config.Config) {
	loc, err := cfg.Location()
	if err != nil {
		logger.Warn("unknown timezone, using UTC",
			logger.String("timezone", cfg.Timezone), logger.ErrorField(err))
		loc = time.UTC
	}

	store := merge.NewStore(cfg.MergedPath)
	dataset, err := NewDataset(store, loc)
	if err != nil {
		logger.Fatal("failed to load merged timeline; run `rewind sync` first",
			logger.String("path", cfg.MergedPath), logger.ErrorField(err))
	}

	statsCache := newStatsCache(cfg)

	// Image lookups need an authorized session; without one the dashboard
	// still works, with placeholder artwork.
	var images ImageResolver
	if client, err := newImageClient(cfg); err != nil {
		logger.Warn("spotify session unavailable, artwork disabled", logger.ErrorField(err))
	} else {
		images = client
	}

	hub := NewHub()
	apiHandler := NewAPIHandler(dataset, statsCache, images)

	watcher, err := watchMergedFile(cfg.MergedPath, dataset, statsCache, hub)
	if err != nil {
		logger.Warn("file watcher unavailable, dashboards will not live-reload", logger.ErrorField(err))
	} else {
		defer watcher.Close()
	}

	router := mux.NewRouter()
	router.Use(corsMiddleware)
	router.Use(requestLogMiddleware)

	router.HandleFunc("/api/summary", apiHandler.SummaryHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/top/artists", apiHandler.TopArtistsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/top/tracks", apiHandler.TopTracksHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/activity", apiHandler.ActivityHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/clock", apiHandler.ClockHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/seasons", apiHandler.SeasonsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/discovery", apiHandler.DiscoveryHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/images/artist", apiHandler.ArtistImageHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/images/track", apiHandler.TrackImageHandler).Methods(http.MethodGet)
	router.HandleFunc("/ws", hub.HandleWS)

	registerStaticRoutes(router, cfg.WebAppDir)

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("dashboard server listening", logger.String("addr", cfg.ServerAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", logger.ErrorField(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down dashboard server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", logger.ErrorField(err))
	}
}

// newStatsCache picks Redis when configured, falling back to the
// in-process cache when Redis is absent or unreachable.
func newStatsCache(cfg *config.Config) cache.StatsCache {
	if cfg.RedisHost != "" {
		redisCache, err := cache.NewRedisCache(cfg, statsCacheTTL)
		if err == nil {
			logger.Info("using redis stats cache",
				logger.String("addr", cfg.RedisHost+":"+cfg.RedisPort))
			return redisCache
		}
		logger.Warn("redis unavailable, falling back to memory cache", logger.ErrorField(err))
	}
	return cache.NewMemoryCache(256, statsCacheTTL)
}

func newImageClient(cfg *config.Config) (*spotify.Client, error) {
	auth, err := spotify.NewAuthenticator(cfg)
	if err != nil {
		// Missing credentials: same degradation as a missing session.
		return nil, model.ErrNoSession
	}
	return spotify.NewClient(context.Background(), auth)
}
