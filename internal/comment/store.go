package comment

import (
	"context"
	"time"
)

// Store persists comments. Implementations return comments newest first.
type Store interface {
	// Add stores a new comment and returns it with its ID and timestamp set.
	Add(ctx context.Context, authorName, commentText string) (*Comment, error)
	// ListRecent returns at most limit comments, newest first.
	// A limit of zero or less returns an empty slice.
	ListRecent(ctx context.Context, limit int) ([]*Comment, error)
	// DeleteAll removes every comment and reports how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
	Close() error
}

// nowMillis is the clock used for new comments.
var nowMillis = func() int64 { return time.Now().UnixMilli() }

var (
	_ Store = (*Repository)(nil)
	_ Store = (*RedisStore)(nil)
)
