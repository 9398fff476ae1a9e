package redis

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/grocery/internal/domain/product"
	apperrors "github.com/xiebiao/grocery/pkg/errors"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)
	store := NewSessionStore(client)

	t.Run("保存并读取会话", func(t *testing.T) {
		err := store.SaveSession(ctx, 7, map[string]interface{}{"email": "ann@example.com", "role": "CUSTOMER"}, time.Hour)
		require.NoError(t, err)

		data, err := store.GetSession(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "ann@example.com", data["email"])
		assert.Equal(t, time.Hour, mr.TTL("session:7"))
	})

	t.Run("删除后读取返回未登录", func(t *testing.T) {
		require.NoError(t, store.DeleteSession(ctx, 7))
		_, err := store.GetSession(ctx, 7)
		assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
	})

	t.Run("黑名单随TTL过期", func(t *testing.T) {
		require.NoError(t, store.AddToBlacklist(ctx, "tok", time.Minute))

		revoked, err := store.IsInBlacklist(ctx, "tok")
		require.NoError(t, err)
		assert.True(t, revoked)

		mr.FastForward(2 * time.Minute)
		revoked, err = store.IsInBlacklist(ctx, "tok")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("已过期的Token不写黑名单", func(t *testing.T) {
		require.NoError(t, store.AddToBlacklist(ctx, "old", 0))
		assert.False(t, mr.Exists("blacklist:old"))
	})
}

func TestProductCache(t *testing.T) {
	ctx := context.Background()

	t.Run("未命中时加载并回写,第二次命中", func(t *testing.T) {
		mr, client := newTestClient(t)
		cache := NewProductCache(client, time.Minute)

		var calls int32
		load := func(ctx context.Context) (*product.Product, error) {
			atomic.AddInt32(&calls, 1)
			return &product.Product{ID: 1, Name: "Apple", Price: decimal.RequireFromString("3.50"), Stock: 4}, nil
		}

		p, err := cache.GetOrLoad(ctx, 1, load)
		require.NoError(t, err)
		assert.Equal(t, "Apple", p.Name)
		assert.True(t, mr.Exists("product:detail:1"))

		p, err = cache.GetOrLoad(ctx, 1, load)
		require.NoError(t, err)
		assert.True(t, p.Price.Equal(decimal.RequireFromString("3.50")))
		assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

		cache.Invalidate(ctx, 1)
		assert.False(t, mr.Exists("product:detail:1"))
	})

	t.Run("并发未命中只查询一次", func(t *testing.T) {
		_, client := newTestClient(t)
		cache := NewProductCache(client, time.Minute)

		var calls int32
		release := make(chan struct{})
		load := func(ctx context.Context) (*product.Product, error) {
			atomic.AddInt32(&calls, 1)
			<-release
			return &product.Product{ID: 2, Name: "Milk"}, nil
		}

		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				p, err := cache.GetOrLoad(ctx, 2, load)
				assert.NoError(t, err)
				assert.Equal(t, "Milk", p.Name)
			}()
		}
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(2))
	})

	t.Run("加载失败不写缓存", func(t *testing.T) {
		mr, client := newTestClient(t)
		cache := NewProductCache(client, time.Minute)

		_, err := cache.GetOrLoad(ctx, 3, func(ctx context.Context) (*product.Product, error) {
			return nil, product.NotFound(3)
		})
		assert.True(t, errors.Is(err, product.ErrProductNotFound))
		assert.False(t, mr.Exists("product:detail:3"))
	})

	t.Run("Redis不可用时降级查库", func(t *testing.T) {
		mr, client := newTestClient(t)
		cache := NewProductCache(client, time.Minute)
		mr.Close()

		p, err := cache.GetOrLoad(ctx, 4, func(ctx context.Context) (*product.Product, error) {
			return &product.Product{ID: 4, Name: "Eggs"}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "Eggs", p.Name)
	})
}
