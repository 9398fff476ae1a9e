// Package catalog 分类、子分类与品牌用例
package catalog

import (
	"context"

	"github.com/xiebiao/grocery/internal/domain/catalog"
)

// UseCase 分类目录用例
type UseCase struct {
	repo catalog.Repository
}

// NewUseCase 创建分类目录用例
func NewUseCase(repo catalog.Repository) *UseCase {
	return &UseCase{repo: repo}
}

// CategoryRequest 创建分类请求
type CategoryRequest struct {
	Name         string
	Description  string
	ImageURL     string
	IconURL      string
	DisplayOrder int
}

// CreateCategory 名称重复返回Conflict
func (uc *UseCase) CreateCategory(ctx context.Context, req CategoryRequest) (*catalog.Category, error) {
	c, err := catalog.NewCategory(req.Name, req.Description, req.ImageURL, req.IconURL, req.DisplayOrder)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCategories 启用中的分类,按展示顺序、名称排序
func (uc *UseCase) ListCategories(ctx context.Context) ([]*catalog.Category, error) {
	return uc.repo.ListActiveCategories(ctx)
}

// ListCategoryNames 去重排序后的分类名
func (uc *UseCase) ListCategoryNames(ctx context.Context) ([]string, error) {
	return uc.repo.ListCategoryNames(ctx)
}

// SubcategoryRequest 创建子分类请求
type SubcategoryRequest struct {
	CategoryID   uint
	Name         string
	Description  string
	ImageURL     string
	DisplayOrder int
}

// CreateSubcategory 所属分类必须存在
func (uc *UseCase) CreateSubcategory(ctx context.Context, req SubcategoryRequest) (*catalog.Subcategory, error) {
	if _, err := uc.repo.FindCategoryByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	s, err := catalog.NewSubcategory(req.CategoryID, req.Name, req.Description, req.ImageURL, req.DisplayOrder)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.CreateSubcategory(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ListSubcategories 分类不存在时返回NotFound
func (uc *UseCase) ListSubcategories(ctx context.Context, categoryID uint) ([]*catalog.Subcategory, error) {
	if _, err := uc.repo.FindCategoryByID(ctx, categoryID); err != nil {
		return nil, err
	}
	return uc.repo.ListSubcategories(ctx, categoryID)
}

// BrandRequest 创建品牌请求
type BrandRequest struct {
	Name        string
	Description string
	LogoURL     string
}

func (uc *UseCase) CreateBrand(ctx context.Context, req BrandRequest) (*catalog.Brand, error) {
	b, err := catalog.NewBrand(req.Name, req.Description, req.LogoURL)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.CreateBrand(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (uc *UseCase) ListBrands(ctx context.Context) ([]*catalog.Brand, error) {
	return uc.repo.ListBrands(ctx)
}
