package cart

import (
	"context"
)

// Repository 购物车仓储
type Repository interface {
	// GetOrCreate 获取用户购物车(含条目),不存在则创建
	GetOrCreate(ctx context.Context, userID uint) (*Cart, error)

	// FindItem 在指定购物车内查找条目,不属于该购物车返回ErrItemNotFound
	FindItem(ctx context.Context, cartID, itemID uint) (*Item, error)

	// SaveItem 新增或更新条目
	SaveItem(ctx context.Context, item *Item) error

	// DeleteItem 删除购物车内的条目
	DeleteItem(ctx context.Context, cartID, itemID uint) error

	// Clear 清空购物车
	Clear(ctx context.Context, cartID uint) error
}
