package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// MaxRecentQueries caps the shopping-assistant history shown on the
	// assistant's start screen.
	MaxRecentQueries = 3
	// RecentQueryMaxAge prunes entries older than this on every access.
	RecentQueryMaxAge = 30 * 24 * time.Hour
)

// RecentQuery is one remembered shopping-assistant lookup.
type RecentQuery struct {
	Name         string    `json:"name"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// RecentQueryStore keeps the per-user shopping-assistant history in redis.
type RecentQueryStore struct {
	client *redis.Client
}

func NewRecentQueryStore(client *redis.Client) *RecentQueryStore {
	return &RecentQueryStore{client: client}
}

func recentKey(userID string) string {
	return fmt.Sprintf("barangku:recent_queries:%s", userID)
}

// Add prepends a query and trims the list to MaxRecentQueries entries newer
// than RecentQueryMaxAge.
func (s *RecentQueryStore) Add(ctx context.Context, userID string, query RecentQuery) error {
	existing, err := s.List(ctx, userID)
	if err != nil {
		return err
	}

	queries := append([]RecentQuery{query}, existing...)
	if len(queries) > MaxRecentQueries {
		queries = queries[:MaxRecentQueries]
	}

	return s.save(ctx, userID, queries)
}

// List returns the pruned history, newest first.
func (s *RecentQueryStore) List(ctx context.Context, userID string) ([]RecentQuery, error) {
	data, err := s.client.Get(ctx, recentKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var queries []RecentQuery
	if err := json.Unmarshal(data, &queries); err != nil {
		// Corrupt history is dropped rather than surfaced.
		s.client.Del(ctx, recentKey(userID))
		return nil, nil
	}

	cutoff := time.Now().Add(-RecentQueryMaxAge)
	pruned := queries[:0]
	for _, q := range queries {
		if q.CreatedAt.After(cutoff) {
			pruned = append(pruned, q)
		}
	}

	if len(pruned) != len(queries) {
		if err := s.save(ctx, userID, pruned); err != nil {
			return nil, err
		}
	}

	return pruned, nil
}

func (s *RecentQueryStore) save(ctx context.Context, userID string, queries []RecentQuery) error {
	if len(queries) == 0 {
		return s.client.Del(ctx, recentKey(userID)).Err()
	}

	data, err := json.Marshal(queries)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, recentKey(userID), data, RecentQueryMaxAge).Err()
}
