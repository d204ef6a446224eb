package presence

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store tracks which conversation a user is actively viewing. Push
// notifications for that conversation are suppressed while the announcement
// is alive. Keys expire on their own so a crashed client cannot stay
// "viewing" forever.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func NewStore(cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 45 * time.Second
	}

	return &Store{client: client, ttl: ttl}, nil
}

func viewingKey(userID, chatID string) string {
	return fmt.Sprintf("barangku:viewing:%s:%s", userID, chatID)
}

// Announce records that userID is actively viewing chatID.
func (s *Store) Announce(ctx context.Context, userID, chatID string) error {
	return s.client.Set(ctx, viewingKey(userID, chatID), "1", s.ttl).Err()
}

// Clear removes the announcement. Safe to call when none exists.
func (s *Store) Clear(ctx context.Context, userID, chatID string) error {
	return s.client.Del(ctx, viewingKey(userID, chatID)).Err()
}

// IsViewing reports whether userID currently announces chatID. Errors are
// treated as "not viewing" so a redis hiccup degrades to an extra
// notification instead of a lost one.
func (s *Store) IsViewing(ctx context.Context, userID, chatID string) bool {
	n, err := s.client.Exists(ctx, viewingKey(userID, chatID)).Result()
	if err != nil {
		return false
	}
	return n > 0
}

// Client exposes the underlying redis handle for sibling stores.
func (s *Store) Client() *redis.Client {
	return s.client
}

func (s *Store) Close() error {
	return s.client.Close()
}
