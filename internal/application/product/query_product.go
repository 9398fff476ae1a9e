package product

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/xiebiao/grocery/internal/domain/catalog"
	"github.com/xiebiao/grocery/internal/domain/product"
)

const defaultFeaturedLimit = 10

// QueryProductUseCase 商品浏览
type QueryProductUseCase struct {
	productRepo product.Repository
	cache       Cache
}

// NewQueryProductUseCase 创建商品查询用例
func NewQueryProductUseCase(productRepo product.Repository, cache Cache) *QueryProductUseCase {
	return &QueryProductUseCase{productRepo: productRepo, cache: cache}
}

// Get 商品详情(缓存优先)
func (uc *QueryProductUseCase) Get(ctx context.Context, id uint) (*product.Product, error) {
	return uc.cache.GetOrLoad(ctx, id, func(ctx context.Context) (*product.Product, error) {
		return uc.productRepo.FindByID(ctx, id)
	})
}

// List 分页查询,关键词去除首尾空白后至少2个字符
func (uc *QueryProductUseCase) List(ctx context.Context, params product.ListParams) ([]*product.Product, int64, error) {
	params.Keyword = strings.TrimSpace(params.Keyword)
	if params.Keyword != "" && utf8.RuneCountInString(params.Keyword) < 2 {
		return nil, 0, product.ErrKeywordTooShort
	}
	return uc.productRepo.List(ctx, params)
}

// Featured 推荐商品(只含可售商品)
func (uc *QueryProductUseCase) Featured(ctx context.Context, limit int) ([]*product.Product, error) {
	if limit <= 0 || limit > 50 {
		limit = defaultFeaturedLimit
	}
	return uc.productRepo.ListFeatured(ctx, limit)
}

// ByCategorySlug 按分类slug查询,如 fresh-fruits → Fresh Fruits,名称比较不区分大小写
func (uc *QueryProductUseCase) ByCategorySlug(ctx context.Context, slug string, page, pageSize int) ([]*product.Product, int64, error) {
	return uc.productRepo.ListByCategoryName(ctx, catalog.SlugToName(slug), page, pageSize)
}
