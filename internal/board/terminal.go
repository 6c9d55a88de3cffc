package board

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/evcraddock/portfolio/internal/comment"
)

// TerminalView prints the board to a terminal. Control characters in
// comment fields are dropped so they cannot drive the terminal.
type TerminalView struct {
	w io.Writer
}

// NewTerminalView creates a view writing to w.
func NewTerminalView(w io.Writer) *TerminalView {
	return &TerminalView{w: w}
}

// RenderList implements View.
func (v *TerminalView) RenderList(comments []*comment.Comment) error {
	if len(comments) == 0 {
		_, err := fmt.Fprintln(v.w, "No comments.")
		return err
	}
	for i, c := range comments {
		if _, err := fmt.Fprintf(v.w, "%d. %s\n   %s\n", i+1, sanitize(c.AuthorName), sanitize(c.CommentText)); err != nil {
			return err
		}
	}
	return nil
}

// ShowDeleteControl implements View.
func (v *TerminalView) ShowDeleteControl() error {
	_, err := fmt.Fprintln(v.w, "\nRun 'portfolio comments delete-all' to remove every comment.")
	return err
}

// HideDeleteControl implements View.
func (v *TerminalView) HideDeleteControl() error {
	return nil
}

// Reload implements View.
func (v *TerminalView) Reload(ctx context.Context) error {
	_, err := fmt.Fprintln(v.w, "Comment board reset.")
	return err
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
}
