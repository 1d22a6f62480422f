package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"matrimony-backend/internal/features/profile/models"

	"github.com/redis/go-redis/v9"
)

func nowUTC() time.Time { return time.Now().UTC() }

// SessionStore caches the current session under the "user" key. It is a
// non-owning view of the roster; clearing it never mutates profile data.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Save(ctx context.Context, sess *models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := checkQuota(data); err != nil {
		return err
	}

	if err := s.client.Set(ctx, sessionKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Get returns the cached session, or nil when none is cached.
func (s *SessionStore) Get(ctx context.Context) (*models.Session, error) {
	data, err := s.client.Get(ctx, sessionKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	return &sess, nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
