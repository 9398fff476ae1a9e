// Package cart 购物车用例
package cart

import (
	"context"
	"log/slog"

	"github.com/xiebiao/grocery/internal/domain/cart"
	"github.com/xiebiao/grocery/internal/domain/product"
	"github.com/xiebiao/grocery/pkg/clock"
)

// UseCase 购物车用例
// 购物车只做库存检查,不占用库存;真正扣减发生在下单时
type UseCase struct {
	cartRepo    cart.Repository
	productRepo product.Repository
	clock       clock.Clock
}

// NewUseCase 创建购物车用例
func NewUseCase(cartRepo cart.Repository, productRepo product.Repository, clk clock.Clock) *UseCase {
	return &UseCase{cartRepo: cartRepo, productRepo: productRepo, clock: clk}
}

// Get 获取购物车,不存在则创建
func (uc *UseCase) Get(ctx context.Context, userID uint) (*cart.Cart, error) {
	return uc.cartRepo.GetOrCreate(ctx, userID)
}

// AddItem 加入购物车
// 已有同一商品时数量累加,库存按累加后的数量检查,价格保留首次加入时的快照
func (uc *UseCase) AddItem(ctx context.Context, userID, productID uint, quantity int) (*cart.Cart, error) {
	if quantity <= 0 {
		return nil, cart.ErrInvalidQuantity
	}

	p, err := uc.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.IsAvailable {
		return nil, product.ErrProductUnavailable.WithMessagef("商品「%s」已下架", p.Name)
	}

	c, err := uc.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	item, exists := c.FindByProduct(productID)
	if exists {
		total := item.Quantity + quantity
		if p.Stock < total {
			return nil, product.InsufficientStock(p.Name, total, p.Stock)
		}
		item.Quantity = total
		item.UpdatedAt = now
	} else {
		if p.Stock < quantity {
			return nil, product.InsufficientStock(p.Name, quantity, p.Stock)
		}
		item = &cart.Item{
			CartID:     c.ID,
			ProductID:  p.ID,
			Quantity:   quantity,
			PriceAtAdd: p.Price,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
	}

	if err := uc.cartRepo.SaveItem(ctx, item); err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "加入购物车", "user_id", userID, "product_id", productID, "quantity", item.Quantity)
	return uc.cartRepo.GetOrCreate(ctx, userID)
}

// UpdateItem 修改条目数量,条目必须属于当前用户的购物车
func (uc *UseCase) UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (*cart.Cart, error) {
	if quantity <= 0 {
		return nil, cart.ErrInvalidQuantity
	}

	c, err := uc.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	item, err := uc.cartRepo.FindItem(ctx, c.ID, itemID)
	if err != nil {
		return nil, err
	}

	p, err := uc.productRepo.FindByID(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if p.Stock < quantity {
		return nil, product.InsufficientStock(p.Name, quantity, p.Stock)
	}

	item.Quantity = quantity
	item.UpdatedAt = uc.clock.Now()
	if err := uc.cartRepo.SaveItem(ctx, item); err != nil {
		return nil, err
	}
	return uc.cartRepo.GetOrCreate(ctx, userID)
}

// RemoveItem 删除条目
func (uc *UseCase) RemoveItem(ctx context.Context, userID, itemID uint) (*cart.Cart, error) {
	c, err := uc.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := uc.cartRepo.DeleteItem(ctx, c.ID, itemID); err != nil {
		return nil, err
	}
	return uc.cartRepo.GetOrCreate(ctx, userID)
}

// Clear 清空购物车
func (uc *UseCase) Clear(ctx context.Context, userID uint) error {
	c, err := uc.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	return uc.cartRepo.Clear(ctx, c.ID)
}
