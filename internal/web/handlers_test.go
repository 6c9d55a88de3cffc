package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestHandleIndex(t *testing.T) {
	srv := testServer(t)

	r := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	for _, id := range []string{"comment-count", "comment-list", "delete-container", "background-button", "main-body"} {
		if !strings.Contains(body, `id="`+id+`"`) {
			t.Errorf("page missing element #%s", id)
		}
	}
	if strings.Contains(body, "onload") {
		t.Error("page should not rely on inline onload handlers")
	}
}

func TestHandleDairy(t *testing.T) {
	srv := testServer(t)

	r := httptest.NewRequest("GET", "/dairy", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	for _, id := range []string{"yearly-chart-container", "relative-chart-container", "dairy-map"} {
		if !strings.Contains(body, `id="`+id+`"`) {
			t.Errorf("page missing element #%s", id)
		}
	}
}

func TestHandleUnknownPage(t *testing.T) {
	srv := testServer(t)

	r := httptest.NewRequest("GET", "/nope", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestCommentBoardFragment(t *testing.T) {
	srv, store := testServerWithStore(t)
	addTestComment(t, store, "Mallory", "<script>alert(1)</script>")

	r := httptest.NewRequest("GET", "/comments/board?numComments=5", nil)
	r.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	if strings.Contains(body, "<script>") {
		t.Error("comment text rendered as markup")
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Errorf("expected escaped comment text, got:\n%s", body)
	}
	if !strings.Contains(body, `id="delete-button"`) {
		t.Error("expected delete control for non-empty board")
	}
}

func TestCommentBoardFragmentEmpty(t *testing.T) {
	srv := testServer(t)

	r := httptest.NewRequest("GET", "/comments/board?numComments=5", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	body := w.Body.String()
	if !strings.Contains(body, `id="comment-list"`) {
		t.Errorf("missing list region:\n%s", body)
	}
	if strings.Contains(body, "delete-button") {
		t.Error("delete control rendered for empty board")
	}
}

func TestCommentSubmitForm(t *testing.T) {
	srv, store := testServerWithStore(t)

	form := url.Values{"authorName": {"Ada"}, "commentText": {"  Hello  "}}
	r := httptest.NewRequest("POST", "/data", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("location = %q, want /", loc)
	}

	comments, err := store.ListRecent(r.Context(), 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(comments) != 1 || comments[0].CommentText != "Hello" || comments[0].AuthorName != "Ada" {
		t.Errorf("stored comments = %+v", comments)
	}
}

func TestCommentSubmitJSON(t *testing.T) {
	srv := testServer(t)

	form := url.Values{"commentText": {"anonymous thoughts"}}
	r := httptest.NewRequest("POST", "/data", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	var got struct {
		ID          int64  `json:"id"`
		AuthorName  string `json:"authorName"`
		CommentText string `json:"commentText"`
	}
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID == 0 || got.AuthorName != "Anonymous" || got.CommentText != "anonymous thoughts" {
		t.Errorf("response = %+v", got)
	}
}

func TestCommentSubmitEmptyText(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		name   string
		accept string
	}{
		{"form", ""},
		{"json", "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{"authorName": {"Ada"}, "commentText": {"   "}}
			r := httptest.NewRequest("POST", "/data", strings.NewReader(form.Encode()))
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tt.accept != "" {
				r.Header.Set("Accept", tt.accept)
			}
			w := httptest.NewRecorder()
			srv.ServeHTTP(w, r)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}
