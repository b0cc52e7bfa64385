package server

import (
	"net/http"
	"os"
	"path/filepath"

	"Rewind/logger"

	"github.com/gorilla/mux"
)

// registerStaticRoutes serves the dashboard shell from webAppDir when the
// directory exists. The API is fully usable without it.
func registerStaticRoutes(router *mux.Router, webAppDir string) {
	info, err := os.Stat(webAppDir)
	if err != nil || !info.IsDir() {
		logger.Info("no dashboard shell directory, serving API only",
			logger.String("dir", webAppDir))
		return
	}

	fileServer := http.FileServer(http.Dir(webAppDir))
	index := filepath.Join(webAppDir, "index.html")

	router.PathPrefix("/").Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(webAppDir, filepath.Clean(r.URL.Path))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			// Unknown paths fall through to the shell for client routing.
			http.ServeFile(w, r, index)
			return
		}
		fileServer.ServeHTTP(w, r)
	}))
}
