// Package product 商品相关用例:管理员维护商品、顾客浏览商品
package product

import (
	"context"

	"github.com/xiebiao/grocery/internal/domain/product"
)

// Cache 商品详情缓存
type Cache interface {
	GetOrLoad(ctx context.Context, id uint, load func(ctx context.Context) (*product.Product, error)) (*product.Product, error)
	Invalidate(ctx context.Context, ids ...uint)
}
