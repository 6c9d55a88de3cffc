package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/evcraddock/portfolio/internal/board"
	"github.com/evcraddock/portfolio/internal/comment"
	"github.com/evcraddock/portfolio/internal/dairy"
)

type indexData struct {
	DefaultCount int
}

type dairyData struct {
	Charts []dairy.Chart
}

// handleIndex renders the home page with the comment board.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, "index.html", indexData{DefaultCount: DefaultCommentCount})
}

// handleDairy renders the dairy analytics page.
func (s *Server) handleDairy(w http.ResponseWriter, r *http.Request) {
	s.render(w, "dairy.html", dairyData{Charts: dairy.Charts(s.milk)})
}

// handleCommentBoard renders the comment list region and delete control as
// an HTMX fragment.
func (s *Server) handleCommentBoard(w http.ResponseWriter, r *http.Request) {
	count := parseCount(r)

	view := board.NewHTMLView()
	b := board.New(&storeAPI{store: s.comments}, view)
	if err := b.List(r.Context(), count); err != nil {
		http.Error(w, fmt.Sprintf("Error loading comments: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := view.WriteTo(w); err != nil {
		slog.Error("writing comment board", "error", err)
	}
}

// handleCommentSubmit stores a comment posted from the page form, or as JSON
// for API clients.
func (s *Server) handleCommentSubmit(w http.ResponseWriter, r *http.Request) {
	wantsJSON := r.Header.Get("Accept") == "application/json"

	if err := r.ParseForm(); err != nil {
		if wantsJSON {
			apiError(w, "bad request", http.StatusBadRequest)
			return
		}
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	c, err := s.comments.Add(r.Context(), r.FormValue("authorName"), r.FormValue("commentText"))
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, comment.ErrTextRequired) {
			code = http.StatusBadRequest
		}
		if wantsJSON {
			apiError(w, err.Error(), code)
			return
		}
		http.Error(w, err.Error(), code)
		return
	}

	if wantsJSON {
		apiJSON(w, c, http.StatusCreated)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// render executes a full page template.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("Error rendering template: %v", err), http.StatusInternalServerError)
	}
}

// parseCount reads numComments from the query. Values that are not natural
// numbers are logged and treated as zero.
func parseCount(r *http.Request) int {
	raw := r.URL.Query().Get("numComments")
	n, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid numComments", "value", raw, "request_id", requestID(r))
		return 0
	}
	if n < 0 {
		slog.Warn("negative numComments", "value", n, "request_id", requestID(r))
		return 0
	}
	return n
}

// storeAPI lets a board.Board run against the local store.
type storeAPI struct {
	store   comment.Store
	deleted int64
}

func (a *storeAPI) ListComments(ctx context.Context, n int) ([]*comment.Comment, error) {
	return a.store.ListRecent(ctx, n)
}

func (a *storeAPI) DeleteComments(ctx context.Context) (int64, error) {
	n, err := a.store.DeleteAll(ctx)
	a.deleted = n
	return n, err
}
