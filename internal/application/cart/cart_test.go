package cart_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcart "github.com/xiebiao/grocery/internal/application/cart"
	"github.com/xiebiao/grocery/internal/domain/cart"
	"github.com/xiebiao/grocery/internal/domain/catalog"
	"github.com/xiebiao/grocery/internal/domain/product"
	"github.com/xiebiao/grocery/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/grocery/internal/infrastructure/persistence/mysql/testdb"
	"github.com/xiebiao/grocery/pkg/clock"
)

func setup(t *testing.T) (*appcart.UseCase, product.Repository, uint) {
	t.Helper()
	db := testdb.New(t)
	products := mysql.NewProductRepository(db)

	cat, err := catalog.NewCategory("Dairy", "", "", "", 0)
	require.NoError(t, err)
	require.NoError(t, mysql.NewCatalogRepository(db).CreateCategory(context.Background(), cat))

	uc := appcart.NewUseCase(mysql.NewCartRepository(db), products,
		clock.NewFixed(time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)))
	return uc, products, cat.ID
}

func seed(t *testing.T, repo product.Repository, categoryID uint, name, price string, stock int, available bool) *product.Product {
	t.Helper()
	p, err := product.NewProduct(product.Attributes{
		Name:       name,
		CategoryID: categoryID,
		Price:      decimal.RequireFromString(price),
	}, stock, available)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestCartUseCase(t *testing.T) {
	ctx := context.Background()
	uc, products, categoryID := setup(t)
	milk := seed(t, products, categoryID, "Milk", "2.50", 5, true)
	eggs := seed(t, products, categoryID, "Eggs", "4.00", 10, true)

	t.Run("首次获取创建空购物车", func(t *testing.T) {
		c, err := uc.Get(ctx, 1)
		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
	})

	t.Run("加入商品并累加数量", func(t *testing.T) {
		_, err := uc.AddItem(ctx, 1, milk.ID, 2)
		require.NoError(t, err)
		c, err := uc.AddItem(ctx, 1, milk.ID, 1)
		require.NoError(t, err)

		require.Len(t, c.Items, 1)
		assert.Equal(t, 3, c.Items[0].Quantity)
		assert.Equal(t, "Milk", c.Items[0].ProductName)
		assert.True(t, decimal.RequireFromString("7.50").Equal(c.TotalPrice()))
	})

	t.Run("累加后超过库存", func(t *testing.T) {
		_, err := uc.AddItem(ctx, 1, milk.ID, 3)
		assert.True(t, errors.Is(err, product.ErrInsufficientStock))
	})

	t.Run("数量必须大于0", func(t *testing.T) {
		_, err := uc.AddItem(ctx, 1, eggs.ID, 0)
		assert.True(t, errors.Is(err, cart.ErrInvalidQuantity))
	})

	t.Run("下架商品不能加入", func(t *testing.T) {
		off := seed(t, products, categoryID, "Old Bread", "1.00", 3, false)
		_, err := uc.AddItem(ctx, 1, off.ID, 1)
		assert.True(t, errors.Is(err, product.ErrProductUnavailable))
	})

	t.Run("修改数量检查库存", func(t *testing.T) {
		c, err := uc.AddItem(ctx, 1, eggs.ID, 1)
		require.NoError(t, err)
		item, ok := c.FindByProduct(eggs.ID)
		require.True(t, ok)

		_, err = uc.UpdateItem(ctx, 1, item.ID, 11)
		assert.True(t, errors.Is(err, product.ErrInsufficientStock))

		c, err = uc.UpdateItem(ctx, 1, item.ID, 6)
		require.NoError(t, err)
		updated, _ := c.FindByProduct(eggs.ID)
		assert.Equal(t, 6, updated.Quantity)
	})

	t.Run("不能操作他人购物车条目", func(t *testing.T) {
		c, err := uc.Get(ctx, 1)
		require.NoError(t, err)
		itemID := c.Items[0].ID

		_, err = uc.UpdateItem(ctx, 2, itemID, 1)
		assert.True(t, errors.Is(err, cart.ErrItemNotFound))
		_, err = uc.RemoveItem(ctx, 2, itemID)
		assert.True(t, errors.Is(err, cart.ErrItemNotFound))
	})

	t.Run("删除条目与清空", func(t *testing.T) {
		c, err := uc.Get(ctx, 1)
		require.NoError(t, err)
		require.Len(t, c.Items, 2)

		c, err = uc.RemoveItem(ctx, 1, c.Items[0].ID)
		require.NoError(t, err)
		assert.Len(t, c.Items, 1)

		require.NoError(t, uc.Clear(ctx, 1))
		c, err = uc.Get(ctx, 1)
		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
	})
}
