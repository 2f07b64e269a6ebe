package redisdoc

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/itembox/internal/model"
	"github.com/sakif/itembox/internal/repository/collection"
)

// newTestStore connects to REDIS_ADDR and skips when it isn't set.
// Each test gets its own key, deleted on cleanup.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping redis tests")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis at %s unreachable: %v", addr, err)
	}

	key := "itembox:test:" + t.Name()
	t.Cleanup(func() {
		client.Del(context.Background(), key)
		client.Close()
	})
	return New(client, key)
}

func TestLoad_UnsetKeyIsEmpty(t *testing.T) {
	s := newTestStore(t)

	items, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	created := model.NewTimestamp(time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC))

	require.NoError(t, s.Save(ctx, []model.Item{
		{ID: 1, Name: "Widget", CreatedAt: created},
		{ID: 2, Name: "ガジェット", Description: "x", CreatedAt: created},
	}))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ガジェット", got[1].Name)
}

func TestLoad_CorruptValue(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.client.Set(ctx, s.key, "nope", 0).Err())

	_, err := s.Load(ctx)
	assert.Error(t, err)
}

func TestCollectionOverRedis(t *testing.T) {
	s := newTestStore(t)
	repo := collection.New(s)
	ctx := context.Background()

	it := &model.Item{Name: "a", CreatedAt: model.NewTimestamp(time.Now())}
	require.NoError(t, repo.Create(ctx, it))
	assert.Equal(t, 1, it.ID)
	assert.NoError(t, repo.Ping(ctx))

	require.NoError(t, repo.Delete(ctx, 1))
	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestNew_DefaultKey(t *testing.T) {
	s := New(redis.NewClient(&redis.Options{Addr: "localhost:0"}), "")
	assert.Equal(t, DefaultKey, s.key)
}
