package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/grocery/internal/domain/catalog"
	apperrors "github.com/xiebiao/grocery/pkg/errors"
)

// catalogRepository 分类/子分类/品牌仓储实现
type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository 创建分类仓储
func NewCatalogRepository(db *gorm.DB) catalog.Repository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) CreateCategory(ctx context.Context, c *catalog.Category) error {
	model := &CategoryModel{
		Name:         c.Name,
		Description:  c.Description,
		ImageURL:     c.ImageURL,
		IconURL:      c.IconURL,
		DisplayOrder: c.DisplayOrder,
		IsActive:     c.IsActive,
	}
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return catalog.ErrCategoryDuplicate
		}
		return apperrors.Wrap(err, "创建分类失败")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *catalogRepository) FindCategoryByID(ctx context.Context, id uint) (*catalog.Category, error) {
	var model CategoryModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound(catalog.ErrCategoryNotFound, "category", id)
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}
	return toCategoryEntity(&model), nil
}

func (r *catalogRepository) ListActiveCategories(ctx context.Context) ([]*catalog.Category, error) {
	var models []CategoryModel
	err := r.getDB(ctx).Where("is_active = ?", true).Order("display_order ASC, name ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询分类列表失败")
	}
	categories := make([]*catalog.Category, len(models))
	for i := range models {
		categories[i] = toCategoryEntity(&models[i])
	}
	return categories, nil
}

func (r *catalogRepository) ListCategoryNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.getDB(ctx).Model(&CategoryModel{}).Distinct("name").Order("name ASC").Pluck("name", &names).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询分类名称失败")
	}
	return names, nil
}

func (r *catalogRepository) CreateSubcategory(ctx context.Context, s *catalog.Subcategory) error {
	model := &SubcategoryModel{
		CategoryID:   s.CategoryID,
		Name:         s.Name,
		Description:  s.Description,
		ImageURL:     s.ImageURL,
		DisplayOrder: s.DisplayOrder,
		IsActive:     s.IsActive,
	}
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return catalog.ErrCategoryDuplicate.WithMessage("该分类下已存在同名子分类")
		}
		return apperrors.Wrap(err, "创建子分类失败")
	}
	s.ID = model.ID
	s.CreatedAt = model.CreatedAt
	s.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *catalogRepository) FindSubcategoryByID(ctx context.Context, id uint) (*catalog.Subcategory, error) {
	var model SubcategoryModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound(catalog.ErrSubcategoryNotFound, "subcategory", id)
		}
		return nil, apperrors.Wrap(err, "查询子分类失败")
	}
	return toSubcategoryEntity(&model), nil
}

func (r *catalogRepository) ListSubcategories(ctx context.Context, categoryID uint) ([]*catalog.Subcategory, error) {
	var models []SubcategoryModel
	err := r.getDB(ctx).
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Order("display_order ASC, name ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询子分类失败")
	}
	subs := make([]*catalog.Subcategory, len(models))
	for i := range models {
		subs[i] = toSubcategoryEntity(&models[i])
	}
	return subs, nil
}

func (r *catalogRepository) CreateBrand(ctx context.Context, b *catalog.Brand) error {
	model := &BrandModel{
		Name:        b.Name,
		Description: b.Description,
		LogoURL:     b.LogoURL,
		IsActive:    b.IsActive,
	}
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return catalog.ErrBrandDuplicate
		}
		return apperrors.Wrap(err, "创建品牌失败")
	}
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *catalogRepository) FindBrandByID(ctx context.Context, id uint) (*catalog.Brand, error) {
	var model BrandModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound(catalog.ErrBrandNotFound, "brand", id)
		}
		return nil, apperrors.Wrap(err, "查询品牌失败")
	}
	return toBrandEntity(&model), nil
}

func (r *catalogRepository) ListBrands(ctx context.Context) ([]*catalog.Brand, error) {
	var models []BrandModel
	if err := r.getDB(ctx).Where("is_active = ?", true).Order("name ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询品牌列表失败")
	}
	brands := make([]*catalog.Brand, len(models))
	for i := range models {
		brands[i] = toBrandEntity(&models[i])
	}
	return brands, nil
}

func (r *catalogRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func toCategoryEntity(m *CategoryModel) *catalog.Category {
	return &catalog.Category{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		ImageURL:     m.ImageURL,
		IconURL:      m.IconURL,
		DisplayOrder: m.DisplayOrder,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toSubcategoryEntity(m *SubcategoryModel) *catalog.Subcategory {
	return &catalog.Subcategory{
		ID:           m.ID,
		CategoryID:   m.CategoryID,
		Name:         m.Name,
		Description:  m.Description,
		ImageURL:     m.ImageURL,
		DisplayOrder: m.DisplayOrder,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toBrandEntity(m *BrandModel) *catalog.Brand {
	return &catalog.Brand{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		LogoURL:     m.LogoURL,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
