package listeditor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultStateTTL = 30 * time.Minute

// Scope identifies one page instance of one resource in one session.
type Scope struct {
	Session  string
	Resource string
	Instance string
}

func (s Scope) key() string {
	return strings.Join([]string{"listeditor", s.Session, s.Resource, s.Instance}, ":")
}

// Store keeps controller snapshots between requests.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore instantiates the store. A zero ttl falls back to thirty minutes.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultStateTTL
	}
	return &Store{client: client, ttl: ttl}
}

// Save writes the snapshot and refreshes its expiry.
func (s *Store) Save(ctx context.Context, scope Scope, snapshot any) error {
	if s == nil || s.client == nil {
		return nil
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("listeditor: encode snapshot: %w", err)
	}
	return s.client.Set(ctx, scope.key(), raw, s.ttl).Err()
}

// Load decodes the stored snapshot into dest. It reports false when the
// instance is unknown or expired.
func (s *Store) Load(ctx context.Context, scope Scope, dest any) (bool, error) {
	if s == nil || s.client == nil || scope.Instance == "" {
		return false, nil
	}
	raw, err := s.client.Get(ctx, scope.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("listeditor: decode snapshot: %w", err)
	}
	return true, nil
}

// Drop forgets an instance.
func (s *Store) Drop(ctx context.Context, scope Scope) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Del(ctx, scope.key()).Err()
}
