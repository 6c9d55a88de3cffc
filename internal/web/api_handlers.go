package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/evcraddock/portfolio/internal/board"
	"github.com/evcraddock/portfolio/internal/dairy"
	"github.com/evcraddock/portfolio/internal/logging"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

func requestID(r *http.Request) string {
	return logging.RequestID(r.Context())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// apiListComments returns the most recent comments, newest first.
func (s *Server) apiListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := s.comments.ListRecent(r.Context(), parseCount(r))
	if err != nil {
		slog.Error("listing comments", "error", err, "request_id", requestID(r))
		apiError(w, "listing comments failed", http.StatusInternalServerError)
		return
	}
	apiJSON(w, comments, http.StatusOK)
}

// apiDeleteComments removes every comment. HTMX callers are told to refresh
// the page.
func (s *Server) apiDeleteComments(w http.ResponseWriter, r *http.Request) {
	api := &storeAPI{store: s.comments}
	view := board.NewHTMLView()

	if err := board.New(api, view).DeleteAll(r.Context()); err != nil {
		slog.Error("deleting comments", "error", err, "request_id", requestID(r))
		if r.Header.Get("HX-Request") == "true" && view.ReloadRequested() {
			w.Header().Set("HX-Refresh", "true")
		}
		apiError(w, "deleting comments failed", http.StatusInternalServerError)
		return
	}

	slog.Info("deleted comments", "count", api.deleted, "request_id", requestID(r))
	if r.Header.Get("HX-Request") == "true" && view.ReloadRequested() {
		w.Header().Set("HX-Refresh", "true")
	}
	apiJSON(w, map[string]int64{"deleted": api.deleted}, http.StatusOK)
}

func (s *Server) apiMilkData(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, s.milk, http.StatusOK)
}

// apiChart returns the table and options for one dairy chart.
func (s *Server) apiChart(w http.ResponseWriter, r *http.Request) {
	chart, err := dairy.ChartFor(s.milk, chi.URLParam(r, "name"))
	if err != nil {
		apiError(w, err.Error(), http.StatusNotFound)
		return
	}
	apiJSON(w, chart, http.StatusOK)
}

func (s *Server) apiCattleFarms(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, s.farms, http.StatusOK)
}

func (s *Server) apiMapConfig(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, s.farmMap, http.StatusOK)
}

func (s *Server) apiRandomColor(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"color": s.randomColor().String()}, http.StatusOK)
}
