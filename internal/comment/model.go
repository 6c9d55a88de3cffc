// Package comment provides the comment domain model and storage.
package comment

import (
	"errors"
	"strings"
	"time"
)

// DefaultAuthor is stored when a comment is submitted without a name.
const DefaultAuthor = "Anonymous"

// ErrTextRequired is returned when a comment has no body text.
var ErrTextRequired = errors.New("comment text is required")

// Comment is an author/text pair shown on the comment board.
// Timestamp is the creation time in Unix milliseconds.
type Comment struct {
	ID          int64  `json:"id"`
	AuthorName  string `json:"authorName"`
	CommentText string `json:"commentText"`
	Timestamp   int64  `json:"timestamp"`
}

// CreatedAt returns the creation time.
func (c *Comment) CreatedAt() time.Time {
	return time.UnixMilli(c.Timestamp)
}

// Normalize trims submitted fields and applies defaults.
func Normalize(authorName, commentText string) (string, string, error) {
	authorName = strings.TrimSpace(authorName)
	commentText = strings.TrimSpace(commentText)
	if commentText == "" {
		return "", "", ErrTextRequired
	}
	if authorName == "" {
		authorName = DefaultAuthor
	}
	return authorName, commentText, nil
}
