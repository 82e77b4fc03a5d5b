package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// fakeStore implements cmdable in memory. Expire calls are recorded so
// rate limit tests can assert the TTL is stamped exactly once.
type fakeStore struct {
	values  map[string]string
	counts  map[string]int64
	expired []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]string{}, counts: map[string]int64{}}
}

func (f *fakeStore) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeStore) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	f.values[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeStore) Get(_ context.Context, key string) *redis.StringCmd {
	if v, ok := f.values[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeStore) SetNX(_ context.Context, key string, value any, _ time.Duration) *redis.BoolCmd {
	if _, taken := f.values[key]; taken {
		return redis.NewBoolResult(false, nil)
	}
	f.values[key] = fmt.Sprint(value)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeStore) Incr(_ context.Context, key string) *redis.IntCmd {
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeStore) Expire(_ context.Context, key string, _ time.Duration) *redis.BoolCmd {
	f.expired = append(f.expired, key)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeStore) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(f.values, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestFixedWindowAllow(t *testing.T) {
	ctx := context.Background()
	fake := newFakeStore()
	client := &Client{store: fake}

	allowed, count, err := client.FixedWindowAllow(ctx, "login:1.2.3.4", 2, time.Second)
	require.NoError(t, err)
	require.True(t, allowed)
	require.EqualValues(t, 1, count)
	require.Len(t, fake.expired, 1, "first increment must stamp the TTL")

	allowed, count, err = client.FixedWindowAllow(ctx, "login:1.2.3.4", 2, time.Second)
	require.NoError(t, err)
	require.True(t, allowed)
	require.EqualValues(t, 2, count)
	require.Len(t, fake.expired, 1, "TTL must not be re-stamped")

	allowed, _, err = client.FixedWindowAllow(ctx, "login:1.2.3.4", 2, time.Second)
	require.NoError(t, err)
	require.False(t, allowed)
}

func TestRefreshTokenLifecycle(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newFakeStore()}

	require.NoError(t, client.StoreRefreshToken(ctx, "user-1", "jti-a", "token-value", 10*time.Minute))

	token, err := client.GetRefreshToken(ctx, "user-1", "jti-a")
	require.NoError(t, err)
	require.Equal(t, "token-value", token)

	require.NoError(t, client.RevokeRefreshToken(ctx, "user-1", "jti-a"))

	_, err = client.GetRefreshToken(ctx, "user-1", "jti-a")
	require.True(t, IsNil(err), "expected redis.Nil after revoke, got %v", err)
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	require.Equal(t, "sy:idempotency:scope:id", client.IdempotencyKey("scope", "id"))
	require.Equal(t, "sy:rate_limit:scope", client.RateLimitKey("scope"))
	require.Equal(t, "sy:session:user:jti", client.RefreshTokenKey("user", "jti"))
	// empty parts are skipped, not rendered as a dangling colon
	require.Equal(t, "sy:session:user", client.RefreshTokenKey("user", ""))
}

func TestGuardRejectsUninitializedClient(t *testing.T) {
	client := &Client{}
	require.ErrorIs(t, client.Ping(context.Background()), errNotInitialized)
	_, err := client.Get(context.Background(), "any")
	require.ErrorIs(t, err, errNotInitialized)
}
