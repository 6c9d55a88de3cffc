// Package web provides the HTTP server for the portfolio site: the comment
// board, the dairy analytics page and the JSON endpoints behind them.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/evcraddock/portfolio/internal/color"
	"github.com/evcraddock/portfolio/internal/comment"
	"github.com/evcraddock/portfolio/internal/config"
	"github.com/evcraddock/portfolio/internal/dairy"
	"github.com/evcraddock/portfolio/internal/farm"
	"github.com/evcraddock/portfolio/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// DefaultCommentCount is the initial value of the comment count field.
const DefaultCommentCount = 10

const shutdownTimeout = 10 * time.Second

// Server is the portfolio HTTP server.
type Server struct {
	comments  comment.Store
	milk      dairy.Data
	farms     []farm.Farm
	farmMap   farm.MapConfig
	cfg       config.Config
	templates *template.Template
	router    chi.Router

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewServer creates a web server backed by the given comment store.
func NewServer(store comment.Store, cfg config.Config) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	milk, err := dairy.Load()
	if err != nil {
		return nil, fmt.Errorf("loading milk data: %w", err)
	}
	farms, err := farm.Load()
	if err != nil {
		return nil, fmt.Errorf("loading farm data: %w", err)
	}
	farmMap, err := farm.BuildMap(farms)
	if err != nil {
		return nil, fmt.Errorf("building farm map: %w", err)
	}

	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating static sub-fs: %w", err)
	}

	s := &Server{
		comments:  store,
		milk:      milk,
		farms:     farms,
		farmMap:   farmMap,
		cfg:       cfg,
		templates: tmpl,
		rng:       color.NewSource(),
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(logging.RequestLogger)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))
	r.Get("/health", s.handleHealth)

	r.Get("/", s.handleIndex)
	r.Get("/dairy", s.handleDairy)
	r.Get("/comments/board", s.handleCommentBoard)

	r.Get("/list-comments", s.apiListComments)
	r.Post("/delete-comments", s.apiDeleteComments)
	r.Post("/data", s.handleCommentSubmit)

	r.Get("/milk-data", s.apiMilkData)
	r.Get("/charts/{name}", s.apiChart)
	r.Get("/cattle-farm-data", s.apiCattleFarms)
	r.Get("/map-config", s.apiMapConfig)
	r.Get("/random-color", s.apiRandomColor)

	s.router = r
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on port until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting web server", "addr", srv.Addr, "base_url", s.cfg.BaseURL)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}

func (s *Server) randomColor() color.HSL {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return color.Random(s.rng)
}
