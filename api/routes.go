package api

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"emoji-panel/panel"
)

func RegisterRoutes(panels *panel.Manager, log *zap.Logger, staticFS fs.FS) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	r := chi.NewRouter()
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	h := &handler{panels: panels, log: log}

	// Recent list
	r.Get("/api/recent", h.getRecent)
	r.Post("/api/recent", h.promoteRecent)
	r.Delete("/api/recent", h.clearRecent)

	// Panels
	r.Get("/api/panels", h.listPanels)
	r.Post("/api/panels", h.createPanel)
	r.Delete("/api/panels/{id}", h.closePanel)

	// WebSocket
	r.Get("/api/panels/{id}/ws", h.handleWS)

	r.Handle("/metrics", promhttp.Handler())

	// Static sub-FS: strip the "static/" prefix present in the embed.FS.
	// In tests staticFS is already rooted at the page directory, so Sub
	// returns a wrapper that finds nothing. Probe index.html to detect this.
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		staticSub = staticFS
	} else if _, statErr := fs.Stat(staticSub, "index.html"); statErr != nil {
		staticSub = staticFS
	}

	// Serve the page by reading from the FS directly.
	// Using http.FileServer with r.URL.Path ending in "index.html" triggers
	// Go's built-in redirect to "./"; avoid that by reading the file manually.
	r.Get("/", serveFile(staticSub, "index.html"))

	fileServer := http.FileServer(http.FS(staticSub))
	r.Get("/css/*", fileServer.ServeHTTP)
	r.Get("/js/*", fileServer.ServeHTTP)

	return r
}

// serveFile returns a handler that reads a single file from fsys and sends it.
func serveFile(fsys fs.FS, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(content)
	}
}

type handler struct {
	panels *panel.Manager
	log    *zap.Logger
}
