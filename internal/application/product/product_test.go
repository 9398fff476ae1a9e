package product_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/xiebiao/grocery/internal/application/catalog"
	"github.com/xiebiao/grocery/internal/application/event"
	appproduct "github.com/xiebiao/grocery/internal/application/product"
	"github.com/xiebiao/grocery/internal/domain/catalog"
	"github.com/xiebiao/grocery/internal/domain/product"
	"github.com/xiebiao/grocery/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/grocery/internal/infrastructure/persistence/mysql/testdb"
)

// mapCache 内存版缓存,记录命中与失效
type mapCache struct {
	items       map[uint]*product.Product
	loads       int
	invalidated []uint
}

func newMapCache() *mapCache {
	return &mapCache{items: map[uint]*product.Product{}}
}

func (c *mapCache) GetOrLoad(ctx context.Context, id uint, load func(ctx context.Context) (*product.Product, error)) (*product.Product, error) {
	if p, ok := c.items[id]; ok {
		return p, nil
	}
	c.loads++
	p, err := load(ctx)
	if err != nil {
		return nil, err
	}
	c.items[id] = p
	return p, nil
}

func (c *mapCache) Invalidate(_ context.Context, ids ...uint) {
	for _, id := range ids {
		delete(c.items, id)
	}
	c.invalidated = append(c.invalidated, ids...)
}

type fixture struct {
	manage  *appproduct.ManageProductUseCase
	query   *appproduct.QueryProductUseCase
	catalog *appcatalog.UseCase
	cache   *mapCache
	events  *event.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.New(t)
	products := mysql.NewProductRepository(db)
	catalogs := mysql.NewCatalogRepository(db)

	f := &fixture{cache: newMapCache(), events: &event.Recorder{}}
	f.manage = appproduct.NewManageProductUseCase(products, catalogs, product.NewLedger(products), f.cache, f.events)
	f.query = appproduct.NewQueryProductUseCase(products, f.cache)
	f.catalog = appcatalog.NewUseCase(catalogs)
	return f
}

func attrs(categoryID uint, name, price string) product.Attributes {
	return product.Attributes{
		Name:       name,
		CategoryID: categoryID,
		Price:      decimal.RequireFromString(price),
	}
}

func TestManageProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("创建商品默认值", func(t *testing.T) {
		f := newFixture(t)
		cat, err := f.catalog.CreateCategory(ctx, appcatalog.CategoryRequest{Name: "Fruits"})
		require.NoError(t, err)

		p, err := f.manage.Create(ctx, appproduct.CreateProductRequest{
			Attributes:  attrs(cat.ID, "Mango", "1.99"),
			Stock:       0,
			IsAvailable: true,
		})
		require.NoError(t, err)
		assert.False(t, p.IsAvailable, "库存为0时不可售")
		assert.True(t, p.MRP.Equal(p.Price))
		assert.Equal(t, 1, p.MinOrderQuantity)
		assert.Equal(t, "Fruits", p.CategoryName)
	})

	t.Run("引用校验", func(t *testing.T) {
		f := newFixture(t)
		fruits, err := f.catalog.CreateCategory(ctx, appcatalog.CategoryRequest{Name: "Fruits"})
		require.NoError(t, err)
		dairy, err := f.catalog.CreateCategory(ctx, appcatalog.CategoryRequest{Name: "Dairy"})
		require.NoError(t, err)
		milkSub, err := f.catalog.CreateSubcategory(ctx, appcatalog.SubcategoryRequest{CategoryID: dairy.ID, Name: "Milk"})
		require.NoError(t, err)

		_, err = f.manage.Create(ctx, appproduct.CreateProductRequest{Attributes: attrs(999, "Mango", "1.99")})
		assert.True(t, errors.Is(err, catalog.ErrCategoryNotFound))

		a := attrs(fruits.ID, "Mango", "1.99")
		a.SubcategoryID = &milkSub.ID
		_, err = f.manage.Create(ctx, appproduct.CreateProductRequest{Attributes: a})
		assert.True(t, errors.Is(err, catalog.ErrSubcategoryMismatch))

		brandID := uint(42)
		a = attrs(fruits.ID, "Mango", "1.99")
		a.BrandID = &brandID
		_, err = f.manage.Create(ctx, appproduct.CreateProductRequest{Attributes: a})
		assert.True(t, errors.Is(err, catalog.ErrBrandNotFound))
	})

	t.Run("更新后缓存失效,补货重新上架", func(t *testing.T) {
		f := newFixture(t)
		cat, err := f.catalog.CreateCategory(ctx, appcatalog.CategoryRequest{Name: "Fruits"})
		require.NoError(t, err)
		p, err := f.manage.Create(ctx, appproduct.CreateProductRequest{Attributes: attrs(cat.ID, "Mango", "1.99"), IsAvailable: true})
		require.NoError(t, err)

		_, err = f.query.Get(ctx, p.ID)
		require.NoError(t, err)
		_, err = f.query.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, f.cache.loads)

		updated, err := f.manage.Update(ctx, p.ID, attrs(cat.ID, "Alphonso Mango", "2.49"))
		require.NoError(t, err)
		assert.Equal(t, "Alphonso Mango", updated.Name)

		got, err := f.query.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alphonso Mango", got.Name)
		assert.Equal(t, 2, f.cache.loads)

		change, err := f.manage.Restock(ctx, p.ID, 12, 1)
		require.NoError(t, err)
		assert.True(t, change.BackInStock())
		assert.Equal(t, []string{event.ProductBackInStock}, f.events.Keys())

		logs, err := f.manage.StockLogs(ctx, p.ID, 10)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, "admin:1", logs[0].Reference)
		assert.Equal(t, product.ChangeRestock, logs[0].Type)
	})

	t.Run("删除后查询不到", func(t *testing.T) {
		f := newFixture(t)
		cat, err := f.catalog.CreateCategory(ctx, appcatalog.CategoryRequest{Name: "Fruits"})
		require.NoError(t, err)
		p, err := f.manage.Create(ctx, appproduct.CreateProductRequest{Attributes: attrs(cat.ID, "Mango", "1.99"), Stock: 3, IsAvailable: true})
		require.NoError(t, err)

		require.NoError(t, f.manage.Delete(ctx, p.ID))
		_, err = f.query.Get(ctx, p.ID)
		assert.True(t, errors.Is(err, product.ErrProductNotFound))

		assert.True(t, errors.Is(f.manage.Delete(ctx, p.ID), product.ErrProductNotFound))
	})
}

func TestQueryProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	cat, err := f.catalog.CreateCategory(ctx, appcatalog.CategoryRequest{Name: "Fresh Fruits"})
	require.NoError(t, err)

	featured := attrs(cat.ID, "Kiwi", "0.99")
	featured.IsFeatured = true
	_, err = f.manage.Create(ctx, appproduct.CreateProductRequest{Attributes: featured, Stock: 5, IsAvailable: true})
	require.NoError(t, err)
	_, err = f.manage.Create(ctx, appproduct.CreateProductRequest{Attributes: attrs(cat.ID, "Papaya", "2.10"), Stock: 5, IsAvailable: true})
	require.NoError(t, err)

	t.Run("关键词过短", func(t *testing.T) {
		_, _, err := f.query.List(ctx, product.ListParams{Keyword: "  k "})
		assert.True(t, errors.Is(err, product.ErrKeywordTooShort))
	})

	t.Run("推荐商品", func(t *testing.T) {
		list, err := f.query.Featured(ctx, 0)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Kiwi", list[0].Name)
	})

	t.Run("分类slug", func(t *testing.T) {
		list, total, err := f.query.ByCategorySlug(ctx, "fresh-fruits", 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, list, 2)
	})
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.catalog.CreateCategory(ctx, appcatalog.CategoryRequest{Name: "Snacks", DisplayOrder: 2})
	require.NoError(t, err)
	_, err = f.catalog.CreateCategory(ctx, appcatalog.CategoryRequest{Name: "Bakery", DisplayOrder: 1})
	require.NoError(t, err)

	_, err = f.catalog.CreateCategory(ctx, appcatalog.CategoryRequest{Name: "Bakery"})
	assert.True(t, errors.Is(err, catalog.ErrCategoryDuplicate))

	_, err = f.catalog.CreateCategory(ctx, appcatalog.CategoryRequest{Name: "  "})
	assert.True(t, errors.Is(err, catalog.ErrInvalidName))

	list, err := f.catalog.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Bakery", list[0].Name)

	_, err = f.catalog.ListSubcategories(ctx, 999)
	assert.True(t, errors.Is(err, catalog.ErrCategoryNotFound))

	_, err = f.catalog.CreateBrand(ctx, appcatalog.BrandRequest{Name: "Amul"})
	require.NoError(t, err)
	_, err = f.catalog.CreateBrand(ctx, appcatalog.BrandRequest{Name: "Amul"})
	assert.True(t, errors.Is(err, catalog.ErrBrandDuplicate))

	brands, err := f.catalog.ListBrands(ctx)
	require.NoError(t, err)
	assert.Len(t, brands, 1)
}
