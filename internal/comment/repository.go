package comment

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository is the SQLite comment store.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a comment repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Add creates a new comment.
func (r *Repository) Add(ctx context.Context, authorName, commentText string) (*Comment, error) {
	authorName, commentText, err := Normalize(authorName, commentText)
	if err != nil {
		return nil, err
	}

	ts := nowMillis()
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO comments (author_name, comment_text, timestamp) VALUES (?, ?, ?)",
		authorName, commentText, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return &Comment{ID: id, AuthorName: authorName, CommentText: commentText, Timestamp: ts}, nil
}

// ListRecent returns up to limit comments, newest first.
func (r *Repository) ListRecent(ctx context.Context, limit int) (comments []*Comment, err error) {
	comments = make([]*Comment, 0)
	if limit <= 0 {
		return comments, nil
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, author_name, comment_text, timestamp FROM comments ORDER BY timestamp DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.AuthorName, &c.CommentText, &c.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		comments = append(comments, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}

	return comments, nil
}

// DeleteAll removes every comment.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM comments")
	if err != nil {
		return 0, fmt.Errorf("deleting comments: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (r *Repository) Close() error {
	return r.db.Close()
}
