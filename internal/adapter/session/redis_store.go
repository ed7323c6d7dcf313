package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	domain "loan-backoffice/internal/domain/session"
)

const keyPrefix = "sess:"

// RedisStore keeps one JSON value per session; Redis expiry does the pruning.
type RedisStore struct {
	rdb *redis.Client
	now func() time.Time
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, now: time.Now}
}

func (s *RedisStore) put(ctx context.Context, sess *domain.Session) error {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return s.Delete(ctx, sess.ID)
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+sess.ID, payload, ttl).Err()
}

func (s *RedisStore) Create(ctx context.Context, sess *domain.Session) error {
	return s.put(ctx, sess)
}

func (s *RedisStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var out domain.Session
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out.Expired(s.now()) {
		return nil, domain.ErrNotFound
	}
	return &out, nil
}

// Touch rewrites the record only while it still exists, so a renewal racing a
// logout cannot bring the session back.
func (s *RedisStore) Touch(ctx context.Context, sess *domain.Session, now time.Time, ttl time.Duration) error {
	sess.LastAccess = now
	if ttl > 0 {
		sess.ExpiresAt = now.Add(ttl)
	}
	remaining := sess.ExpiresAt.Sub(s.now())
	if remaining <= 0 {
		if err := s.Delete(ctx, sess.ID); err != nil {
			return err
		}
		return domain.ErrNotFound
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	ok, err := s.rdb.SetXX(ctx, keyPrefix+sess.ID, payload, remaining).Result()
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, keyPrefix+id).Err()
}

// Prune is a no-op: expired keys are evicted by Redis.
func (s *RedisStore) Prune(context.Context, time.Time) (int, error) { return 0, nil }
