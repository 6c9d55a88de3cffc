package comment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps comments in a Redis sorted set scored by timestamp.
// Members carry a zero-padded id prefix so comments sharing a timestamp
// order by id, as in the SQLite repository.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to the Redis server at redisURL. Keys are
// namespaced under prefix (default "portfolio").
func NewRedisStore(redisURL, prefix string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	if prefix == "" {
		prefix = "portfolio"
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		if cerr := client.Close(); cerr != nil {
			return nil, fmt.Errorf("connecting to redis: %w (also failed to close: %v)", err, cerr)
		}
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &RedisStore{client: client, prefix: prefix}, nil
}

func (s *RedisStore) timelineKey() string {
	return s.prefix + ":comments"
}

func (s *RedisStore) idKey() string {
	return s.prefix + ":comments:next_id"
}

// Add stores a comment in the timeline.
func (s *RedisStore) Add(ctx context.Context, authorName, commentText string) (*Comment, error) {
	authorName, commentText, err := Normalize(authorName, commentText)
	if err != nil {
		return nil, err
	}

	id, err := s.client.Incr(ctx, s.idKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("allocating comment id: %w", err)
	}

	c := &Comment{ID: id, AuthorName: authorName, CommentText: commentText, Timestamp: nowMillis()}
	member, err := encodeMember(c)
	if err != nil {
		return nil, err
	}

	if err := s.client.ZAdd(ctx, s.timelineKey(), redis.Z{Score: float64(c.Timestamp), Member: member}).Err(); err != nil {
		return nil, fmt.Errorf("storing comment: %w", err)
	}
	return c, nil
}

// ListRecent returns up to limit comments, newest first.
func (s *RedisStore) ListRecent(ctx context.Context, limit int) ([]*Comment, error) {
	comments := make([]*Comment, 0)
	if limit <= 0 {
		return comments, nil
	}

	members, err := s.client.ZRevRange(ctx, s.timelineKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}

	for _, m := range members {
		c, err := decodeMember(m)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, nil
}

// DeleteAll removes the timeline. The id counter is kept so ids stay unique.
func (s *RedisStore) DeleteAll(ctx context.Context) (int64, error) {
	pipe := s.client.TxPipeline()
	card := pipe.ZCard(ctx, s.timelineKey())
	pipe.Del(ctx, s.timelineKey())
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("deleting comments: %w", err)
	}
	return card.Val(), nil
}

func encodeMember(c *Comment) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshaling comment: %w", err)
	}
	return fmt.Sprintf("%020d:%s", c.ID, data), nil
}

func decodeMember(m string) (*Comment, error) {
	_, data, ok := strings.Cut(m, ":")
	if !ok {
		return nil, fmt.Errorf("decoding comment: malformed member %q", m)
	}
	var c Comment
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, fmt.Errorf("decoding comment: %w", err)
	}
	return &c, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
