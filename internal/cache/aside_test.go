package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	Username    string `json:"username"`
	Subscribers int64  `json:"subscribers"`
}

func newStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewStore(rdb), mr
}

func TestStore_Aside(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()
	key := ChannelProfileKey("alice")

	calls := 0
	fetch := func(dest *profile) func() error {
		return func() error {
			calls++
			*dest = profile{Username: "alice", Subscribers: 3}
			return nil
		}
	}

	var first profile
	require.NoError(t, s.Aside(ctx, key, &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, calls)
	assert.True(t, mr.Exists(key))

	var second profile
	require.NoError(t, s.Aside(ctx, key, &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, calls, "second read should be served from cache")
	assert.Equal(t, first, second)

	s.Invalidate(ctx, key)
	assert.False(t, mr.Exists(key))

	var third profile
	require.NoError(t, s.Aside(ctx, key, &third, time.Minute, fetch(&third)))
	assert.Equal(t, 2, calls)
}

func TestStore_AsideFetchError(t *testing.T) {
	s, mr := newStore(t)
	boom := errors.New("db down")

	var p profile
	err := s.Aside(context.Background(), "k", &p, time.Minute, func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("k"))
}

func TestStore_NilClient(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	found, err := s.GetJSON(ctx, "k", &profile{})
	require.NoError(t, err)
	assert.False(t, found)
	require.NoError(t, s.SetJSON(ctx, "k", profile{}, time.Minute))

	calls := 0
	var p profile
	require.NoError(t, s.Aside(ctx, "k", &p, time.Minute, func() error { calls++; return nil }))
	require.NoError(t, s.Aside(ctx, "k", &p, time.Minute, func() error { calls++; return nil }))
	assert.Equal(t, 2, calls)
	s.Invalidate(ctx, "k")
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), mr.Addr())
	require.NoError(t, err)
	require.NoError(t, client.Close())

	client, err = Connect(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	require.NoError(t, client.Close())

	_, err = Connect(context.Background(), "redis://%zz")
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "channel:alice", ChannelProfileKey("alice"))
	assert.Equal(t, "channel:7:subscribers", SubscriberCountKey(7))
}
