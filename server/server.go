// Package server exposes an editor.Editor to a local browser page,
// through a JSON API and a websocket event stream.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/benoitkugler/svgstyler/config"
	"github.com/benoitkugler/svgstyler/editor"
	"github.com/benoitkugler/svgstyler/logging"
)

// Server is the HTTP surface of the editor.
type Server struct {
	cfg        config.ServerConfig
	ed         *editor.Editor
	router     chi.Router
	httpServer *http.Server
}

// New creates a server driving ed. The editor loop must be running.
func New(cfg config.ServerConfig, ed *editor.Editor) *Server {
	s := &Server{cfg: cfg, ed: ed}
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAllOrigins {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/", servePage)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/state", s.handleState)
	r.Post("/document", s.handleUpload)
	r.Get("/document.svg", s.handleDocument)
	r.Get("/export.png", s.handleExport)
	r.Get("/export.pdf", s.handleExportPDF)

	r.Route("/presets", func(r chi.Router) {
		r.Get("/", s.handleListPresets)
		r.Post("/", s.handleSavePreset)
		r.Post("/select", s.handleSelectPreset)
		r.Post("/apply", s.handleApplyPreset)
	})
	r.Route("/palette", func(r chi.Router) {
		r.Post("/active", s.handleSetActive)
		r.Post("/bank", s.handleAddToBank)
		r.Post("/select", s.handleSelectSwatch)
	})
	r.Post("/shapes/{index}/click", s.handleClick)

	r.Get("/ws", s.handleWebSocket)

	return r
}

// Router returns the chi router, mostly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start listens on the configured address and blocks until the
// server is shut down.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln. It returns http.ErrServerClosed
// right away if Shutdown has already been called.
func (s *Server) Serve(ln net.Listener) error {
	logging.Logger().Info("svgstyler listening", slog.String("addr", "http://"+ln.Addr().String()))
	err := s.httpServer.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		ln.Close()
	}
	return err
}

// Shutdown gracefully shuts down the server. It may be called
// before Serve, which then returns immediately.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
