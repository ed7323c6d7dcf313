package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "loan-backoffice/internal/domain/session"
)

func newSession(id string, now time.Time, ttl time.Duration) *domain.Session {
	return &domain.Session{ID: id, UserID: 1, Role: "admin", CreatedAt: now, LastAccess: now, ExpiresAt: now.Add(ttl)}
}

func newRedisStore(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, NewRedisStore(rdb)
}

// stores runs the shared contract against both implementations.
func stores(t *testing.T) map[string]domain.Store {
	_, rs := newRedisStore(t)
	return map[string]domain.Store{"redis": rs, "memory": NewMemoryStore()}
}

func TestStore_CreateGetDelete(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newSession("abc", time.Now(), time.Hour)
			require.NoError(t, st.Create(ctx, s))

			got, err := st.Get(ctx, "abc")
			require.NoError(t, err)
			assert.Equal(t, uint64(1), got.UserID)
			assert.Equal(t, "admin", got.Role)

			require.NoError(t, st.Delete(ctx, "abc"))
			_, err = st.Get(ctx, "abc")
			assert.ErrorIs(t, err, domain.ErrNotFound)
		})
	}
}

func TestStore_UnknownID(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := st.Get(context.Background(), "nope")
			assert.ErrorIs(t, err, domain.ErrNotFound)
		})
	}
}

func TestStore_TouchSlidesExpiry(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Now()
			s := newSession("slide", now, time.Minute)
			require.NoError(t, st.Create(ctx, s))

			later := now.Add(30 * time.Second)
			require.NoError(t, st.Touch(ctx, s, later, time.Hour))

			got, err := st.Get(ctx, "slide")
			require.NoError(t, err)
			assert.WithinDuration(t, later.Add(time.Hour), got.ExpiresAt, time.Second)
			assert.WithinDuration(t, later, got.LastAccess, time.Second)
		})
	}
}

func TestRedisStore_ExpiresWithTTL(t *testing.T) {
	mr, st := newRedisStore(t)
	ctx := context.Background()
	require.NoError(t, st.Create(ctx, newSession("ttl", time.Now(), 10*time.Second)))
	assert.True(t, mr.Exists(keyPrefix+"ttl"))

	mr.FastForward(11 * time.Second)
	_, err := st.Get(ctx, "ttl")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryStore_ExpiredGetAndPrune(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, st.Create(ctx, newSession("old", now.Add(-2*time.Hour), time.Hour)))
	require.NoError(t, st.Create(ctx, newSession("fresh", now, time.Hour)))

	_, err := st.Get(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	n, err := st.Prune(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, st.Len())
}

func TestMemoryStore_TouchUnknown(t *testing.T) {
	st := NewMemoryStore()
	err := st.Touch(context.Background(), newSession("ghost", time.Now(), time.Hour), time.Now(), 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_TouchAfterDelete(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Now()
			s := newSession("gone-"+name, now, time.Hour)
			require.NoError(t, st.Create(ctx, s))

			loaded, err := st.Get(ctx, s.ID)
			require.NoError(t, err)
			require.NoError(t, st.Delete(ctx, s.ID))

			// a renewal that loaded the record before logout must not restore it
			assert.ErrorIs(t, st.Touch(ctx, loaded, now.Add(time.Minute), time.Hour), domain.ErrNotFound)
			_, err = st.Get(ctx, s.ID)
			assert.ErrorIs(t, err, domain.ErrNotFound)
		})
	}
}
