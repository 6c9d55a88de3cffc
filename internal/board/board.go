// Package board implements the comment board controller for one page
// session: it fetches comments, rebuilds the list region of a View and
// derives the visibility of the delete-all control from the last result.
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/evcraddock/portfolio/internal/comment"
)

var (
	// ErrStale is returned by List when a newer List call was applied, or
	// the board was reloaded, before this one resolved. The view is left
	// untouched.
	ErrStale = errors.New("stale comment list discarded")

	// ErrNegativeCount is returned by List for a negative count.
	ErrNegativeCount = errors.New("comment count must not be negative")
)

// API is the backend the board talks to.
type API interface {
	ListComments(ctx context.Context, n int) ([]*comment.Comment, error)
	DeleteComments(ctx context.Context) (int64, error)
}

// View is the rendering target the board drives.
type View interface {
	// RenderList replaces the whole list region with comments, in order.
	RenderList(comments []*comment.Comment) error
	ShowDeleteControl() error
	HideDeleteControl() error
	// Reload discards the page session.
	Reload(ctx context.Context) error
}

// Option configures a Board.
type Option func(*Board)

// WithFireAndForgetDelete makes DeleteAll reload without waiting for the
// delete request to finish.
func WithFireAndForgetDelete() Option {
	return func(b *Board) { b.fireAndForget = true }
}

// WithLogger sets the logger used for request failures.
func WithLogger(l *slog.Logger) Option {
	return func(b *Board) { b.logger = l }
}

// Board is the comment board state for one page session.
type Board struct {
	api           API
	view          View
	logger        *slog.Logger
	fireAndForget bool

	mu       sync.Mutex
	issued   uint64
	applied  uint64
	last     []*comment.Comment
	inflight sync.WaitGroup
}

// New creates a board bound to api and view.
func New(api API, view View, opts ...Option) *Board {
	b := &Board{api: api, view: view, logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// List fetches at most count comments and rebuilds the view from them.
// On failure the view keeps its previous contents.
func (b *Board) List(ctx context.Context, count int) error {
	if count < 0 {
		return ErrNegativeCount
	}

	b.mu.Lock()
	b.issued++
	seq := b.issued
	b.mu.Unlock()

	comments, err := b.api.ListComments(ctx, count)
	if err != nil {
		b.logger.Error("listing comments", "count", count, "error", err)
		return fmt.Errorf("listing comments: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if seq < b.applied {
		b.logger.Debug("discarding stale comment list", "seq", seq, "applied", b.applied)
		return ErrStale
	}

	fresh := slices.Clone(comments)
	if err := b.view.RenderList(fresh); err != nil {
		return fmt.Errorf("rendering comments: %w", err)
	}
	if len(fresh) > 0 {
		err = b.view.ShowDeleteControl()
	} else {
		err = b.view.HideDeleteControl()
	}
	if err != nil {
		return fmt.Errorf("updating delete control: %w", err)
	}

	b.applied = seq
	b.last = fresh
	return nil
}

// DeleteAll removes every comment on the backend and reloads the page.
// The reload happens even when the delete request fails.
func (b *Board) DeleteAll(ctx context.Context) error {
	if b.fireAndForget {
		b.inflight.Add(1)
		go func() {
			defer b.inflight.Done()
			if _, err := b.api.DeleteComments(context.WithoutCancel(ctx)); err != nil {
				b.logger.Error("deleting comments", "error", err)
			}
		}()
		return b.reload(ctx)
	}

	var deleteErr error
	n, err := b.api.DeleteComments(ctx)
	if err != nil {
		b.logger.Error("deleting comments", "error", err)
		deleteErr = fmt.Errorf("deleting comments: %w", err)
	} else {
		b.logger.Debug("deleted comments", "count", n)
	}

	return errors.Join(deleteErr, b.reload(ctx))
}

// reload ends the session: lists issued before it resolve as ErrStale.
func (b *Board) reload(ctx context.Context) error {
	b.mu.Lock()
	b.last = nil
	b.applied = b.issued + 1
	b.mu.Unlock()

	if err := b.view.Reload(ctx); err != nil {
		return fmt.Errorf("reloading: %w", err)
	}
	return nil
}

// Wait blocks until background deletes started by DeleteAll finish.
func (b *Board) Wait() {
	b.inflight.Wait()
}

// Comments returns a copy of the last applied list, never nil.
func (b *Board) Comments() []*comment.Comment {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*comment.Comment, len(b.last))
	copy(out, b.last)
	return out
}

// DeleteControlVisible reports whether the last applied list was non-empty.
func (b *Board) DeleteControlVisible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.last) > 0
}
