package catalog

import (
	"context"
)

// Repository 分类、子分类、品牌仓储
type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	FindCategoryByID(ctx context.Context, id uint) (*Category, error)
	// ListActiveCategories 按display_order、名称排序
	ListActiveCategories(ctx context.Context) ([]*Category, error)
	// ListCategoryNames 去重并按字母排序
	ListCategoryNames(ctx context.Context) ([]string, error)

	CreateSubcategory(ctx context.Context, s *Subcategory) error
	FindSubcategoryByID(ctx context.Context, id uint) (*Subcategory, error)
	ListSubcategories(ctx context.Context, categoryID uint) ([]*Subcategory, error)

	CreateBrand(ctx context.Context, b *Brand) error
	FindBrandByID(ctx context.Context, id uint) (*Brand, error)
	ListBrands(ctx context.Context) ([]*Brand, error)
}
