package board

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/evcraddock/portfolio/internal/comment"
)

//go:embed templates/*.html
var templateFS embed.FS

var boardTmpl = template.Must(template.ParseFS(templateFS, "templates/board.html"))

// HTMLView renders the list region and the delete control container as an
// HTML fragment. Comment fields are escaped by html/template.
type HTMLView struct {
	comments   []*comment.Comment
	showDelete bool
	reload     bool
}

// NewHTMLView creates an empty view.
func NewHTMLView() *HTMLView {
	return &HTMLView{}
}

// RenderList implements View. Rendering starts a new session, so a
// pending reload request is cleared.
func (v *HTMLView) RenderList(comments []*comment.Comment) error {
	v.comments = comments
	v.reload = false
	return nil
}

// ShowDeleteControl implements View.
func (v *HTMLView) ShowDeleteControl() error {
	v.showDelete = true
	return nil
}

// HideDeleteControl implements View.
func (v *HTMLView) HideDeleteControl() error {
	v.showDelete = false
	return nil
}

// Reload implements View. The HTTP layer turns it into a page refresh.
func (v *HTMLView) Reload(ctx context.Context) error {
	v.comments = nil
	v.showDelete = false
	v.reload = true
	return nil
}

// ReloadRequested reports whether Reload was called since the last RenderList.
func (v *HTMLView) ReloadRequested() bool {
	return v.reload
}

// WriteTo writes the fragment to w.
func (v *HTMLView) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := boardTmpl.ExecuteTemplate(cw, "board", struct {
		Comments   []*comment.Comment
		ShowDelete bool
	}{v.comments, v.showDelete})
	if err != nil {
		return cw.n, fmt.Errorf("rendering board: %w", err)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
