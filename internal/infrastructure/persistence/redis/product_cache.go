package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/xiebiao/grocery/internal/domain/product"
	"github.com/xiebiao/grocery/pkg/metrics"
)

// ProductCache 商品详情缓存(Cache-Aside)
//
// 1. 先查缓存,未命中再通过loader查数据库并回写
// 2. 同一商品的并发未命中通过singleflight合并成一次数据库查询
// 3. 商品更新、删除、库存变化后删除缓存,而不是更新缓存
// 4. Redis故障时降级为直接查库,只记录警告日志
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
}

// NewProductCache 创建商品缓存
func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &ProductCache{client: client, ttl: ttl}
}

// GetOrLoad 读取商品详情,load为缓存未命中时的数据源
func (c *ProductCache) GetOrLoad(ctx context.Context, id uint, load func(ctx context.Context) (*product.Product, error)) (*product.Product, error) {
	key := productKey(id)

	if p, ok := c.get(ctx, key); ok {
		metrics.IncCounterVec(metrics.CacheRequestsTotal, map[string]string{"cache": "product", "result": "hit"})
		return p, nil
	}
	metrics.IncCounterVec(metrics.CacheRequestsTotal, map[string]string{"cache": "product", "result": "miss"})

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		p, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.set(ctx, key, p)
		return p, nil
	})
	if err != nil {
		return nil, err
	}

	// 共享结果需要复制,调用方可能修改返回值
	shared := *v.(*product.Product)
	return &shared, nil
}

// Invalidate 删除商品缓存
func (c *ProductCache) Invalidate(ctx context.Context, ids ...uint) {
	if len(ids) == 0 {
		return
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKey(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.WarnContext(ctx, "删除商品缓存失败", "ids", ids, "error", err)
	}
}

func (c *ProductCache) get(ctx context.Context, key string) (*product.Product, bool) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.WarnContext(ctx, "读取商品缓存失败", "key", key, "error", err)
		}
		return nil, false
	}

	var p product.Product
	if err := json.Unmarshal(val, &p); err != nil {
		slog.WarnContext(ctx, "商品缓存反序列化失败", "key", key, "error", err)
		return nil, false
	}
	return &p, true
}

func (c *ProductCache) set(ctx context.Context, key string, p *product.Product) {
	val, err := json.Marshal(p)
	if err != nil {
		slog.WarnContext(ctx, "商品缓存序列化失败", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "写入商品缓存失败", "key", key, "error", err)
	}
}

func productKey(id uint) string {
	return fmt.Sprintf("product:detail:%d", id)
}
