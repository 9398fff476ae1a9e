package mysql

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/grocery/internal/domain/product"
	apperrors "github.com/xiebiao/grocery/pkg/errors"
)

// productRepository 商品仓储实现(MySQL)
// 设计说明:
// 1. 负责domain实体与GORM模型之间的转换
// 2. 库存扣减使用条件UPDATE,由数据库保证不超卖
// 3. 所有方法通过getDB(ctx)参与调用方事务
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) product.Repository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	model := toProductModel(p)
	model.Stock = p.Stock
	model.IsAvailable = p.IsAvailable

	if err := r.getDB(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建商品失败")
	}

	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id uint) (*product.Product, error) {
	var model ProductModel
	err := r.getDB(ctx).Preload("Category").Preload("Brand").First(&model, id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, product.NotFound(id)
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}
	return toProductEntity(&model), nil
}

// Update 更新商品信息
// 显式列出可编辑列,stock与is_available不在其中
func (r *productRepository) Update(ctx context.Context, p *product.Product) error {
	model := toProductModel(p)

	result := r.getDB(ctx).Model(&ProductModel{}).Where("id = ?", p.ID).
		Select(editableProductColumns).
		Updates(model)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新商品失败")
	}
	if result.RowsAffected == 0 {
		return product.NotFound(p.ID)
	}
	return nil
}

var editableProductColumns = []string{
	"name", "description", "category_id", "subcategory_id", "brand_id",
	"price", "mrp", "unit", "quantity_per_unit", "weight_quantity",
	"discount_percentage", "image_url", "image_urls", "tags",
	"is_featured", "is_trending", "is_new_arrival",
	"min_order_quantity", "max_order_quantity", "updated_at",
}

// Delete 软删除
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	result := r.getDB(ctx).Delete(&ProductModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除商品失败")
	}
	if result.RowsAffected == 0 {
		return product.NotFound(id)
	}
	return nil
}

func (r *productRepository) List(ctx context.Context, params product.ListParams) ([]*product.Product, int64, error) {
	query := r.getDB(ctx).Model(&ProductModel{})

	if kw := strings.ToLower(strings.TrimSpace(params.Keyword)); kw != "" {
		like := "%" + kw + "%"
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ?)", like, like, like)
	}
	if params.CategoryID > 0 {
		query = query.Where("category_id = ?", params.CategoryID)
	}
	if params.SubcategoryID > 0 {
		query = query.Where("subcategory_id = ?", params.SubcategoryID)
	}
	if params.BrandID > 0 {
		query = query.Where("brand_id = ?", params.BrandID)
	}
	if params.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}
	if params.AvailableOnly {
		query = query.Where("is_available = ?", true)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品总数失败")
	}

	var models []ProductModel
	err := query.Preload("Category").Preload("Brand").
		Order(orderClause(params.SortBy)).
		Scopes(paginate(params.Page, params.PageSize)).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品列表失败")
	}

	return toProductEntities(models), total, nil
}

func orderClause(sortBy product.SortBy) string {
	switch sortBy {
	case product.SortPriceAsc:
		return "price ASC, id ASC"
	case product.SortPriceDesc:
		return "price DESC, id ASC"
	case product.SortRating:
		return "rating DESC, id ASC"
	default:
		return "created_at DESC, id DESC"
	}
}

func (r *productRepository) ListFeatured(ctx context.Context, limit int) ([]*product.Product, error) {
	var models []ProductModel
	err := r.getDB(ctx).Preload("Category").Preload("Brand").
		Where("is_featured = ? AND is_available = ?", true, true).
		Order("rating DESC, id ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询推荐商品失败")
	}
	return toProductEntities(models), nil
}

func (r *productRepository) ListByCategoryName(ctx context.Context, name string, page, pageSize int) ([]*product.Product, int64, error) {
	sub := r.getDB(ctx).Model(&CategoryModel{}).Select("id").Where("LOWER(name) = ?", strings.ToLower(name))
	query := r.getDB(ctx).Model(&ProductModel{}).Where("category_id IN (?)", sub).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品总数失败")
	}

	var models []ProductModel
	err := query.Preload("Category").Preload("Brand").
		Order("created_at DESC, id DESC").
		Scopes(paginate(page, pageSize)).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询分类商品失败")
	}
	return toProductEntities(models), total, nil
}

func (r *productRepository) Stats(ctx context.Context) (*product.Stats, error) {
	db := r.getDB(ctx)
	stats := &product.Stats{}

	if err := db.Model(&ProductModel{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计商品失败")
	}
	if err := db.Model(&ProductModel{}).Where("is_available = ?", true).Count(&stats.AvailableProducts).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计商品失败")
	}
	if err := db.Model(&ProductModel{}).Where("stock = ?", 0).Count(&stats.OutOfStock).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计商品失败")
	}

	var rows []struct {
		CategoryID   uint
		CategoryName string
		Count        int64
	}
	err := db.Model(&ProductModel{}).
		Select("products.category_id AS category_id, categories.name AS category_name, COUNT(*) AS count").
		Joins("JOIN categories ON categories.id = products.category_id").
		Group("products.category_id, categories.name").
		Order("categories.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "按分类统计商品失败")
	}

	stats.ByCategory = make([]product.CategoryCount, len(rows))
	for i, row := range rows {
		stats.ByCategory[i] = product.CategoryCount{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Count:        row.Count,
		}
	}
	return stats, nil
}

// DecreaseStock 扣减库存
//
//	UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ? AND deleted_at IS NULL
//
// 条件UPDATE本身是原子的,并发下不会把库存扣成负数。
// 0行受影响时再查一次区分"商品不存在"与"库存不足"。
// is_available单独更新,避免同一条UPDATE里依赖列的求值顺序。
func (r *productRepository) DecreaseStock(ctx context.Context, id uint, quantity int, reference string) (product.StockChange, error) {
	var change product.StockChange

	err := r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&ProductModel{}).
			Where("id = ? AND stock >= ?", id, quantity).
			Update("stock", gorm.Expr("stock - ?", quantity))
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "扣减库存失败")
		}

		if result.RowsAffected == 0 {
			var current ProductModel
			if err := tx.Select("id", "name", "stock").First(&current, id).Error; err != nil {
				if isNotFound(err) {
					return product.NotFound(id)
				}
				return apperrors.Wrap(err, "查询商品失败")
			}
			return product.InsufficientStock(current.Name, quantity, current.Stock)
		}

		var after ProductModel
		if err := tx.Select("id", "name", "stock", "is_available").First(&after, id).Error; err != nil {
			return apperrors.Wrap(err, "查询商品失败")
		}

		change = product.StockChange{
			ProductID:    id,
			ProductName:  after.Name,
			Quantity:     quantity,
			StockBefore:  after.Stock + quantity,
			StockAfter:   after.Stock,
			WasAvailable: after.IsAvailable,
			IsAvailable:  after.IsAvailable,
		}

		if after.Stock == 0 && after.IsAvailable {
			if err := tx.Model(&ProductModel{}).Where("id = ?", id).Update("is_available", false).Error; err != nil {
				return apperrors.Wrap(err, "更新商品状态失败")
			}
			change.IsAvailable = false
		}

		return r.appendLog(tx, product.ChangeDeduct, change, reference)
	})
	if err != nil {
		return product.StockChange{}, err
	}
	return change, nil
}

// IncreaseStock 增加库存
// 已删除的商品不会被更新,按不存在处理
func (r *productRepository) IncreaseStock(ctx context.Context, id uint, quantity int, changeType product.ChangeType, reference string) (product.StockChange, error) {
	var change product.StockChange

	err := r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&ProductModel{}).
			Where("id = ?", id).
			Update("stock", gorm.Expr("stock + ?", quantity))
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "增加库存失败")
		}
		if result.RowsAffected == 0 {
			return product.NotFound(id)
		}

		var after ProductModel
		if err := tx.Select("id", "name", "stock", "is_available").First(&after, id).Error; err != nil {
			return apperrors.Wrap(err, "查询商品失败")
		}

		change = product.StockChange{
			ProductID:    id,
			ProductName:  after.Name,
			Quantity:     quantity,
			StockBefore:  after.Stock - quantity,
			StockAfter:   after.Stock,
			WasAvailable: after.IsAvailable,
			IsAvailable:  after.IsAvailable,
		}

		if !after.IsAvailable && after.Stock > 0 {
			if err := tx.Model(&ProductModel{}).Where("id = ?", id).Update("is_available", true).Error; err != nil {
				return apperrors.Wrap(err, "更新商品状态失败")
			}
			change.IsAvailable = true
		}

		return r.appendLog(tx, changeType, change, reference)
	})
	if err != nil {
		return product.StockChange{}, err
	}
	return change, nil
}

func (r *productRepository) appendLog(tx *gorm.DB, t product.ChangeType, c product.StockChange, reference string) error {
	entry := &StockLogModel{
		ProductID:   c.ProductID,
		Type:        string(t),
		Quantity:    c.Quantity,
		StockBefore: c.StockBefore,
		StockAfter:  c.StockAfter,
		Reference:   reference,
	}
	if err := tx.Create(entry).Error; err != nil {
		return apperrors.Wrap(err, fmt.Sprintf("写入库存流水失败: product=%d", c.ProductID))
	}
	return nil
}

func (r *productRepository) ListStockLogs(ctx context.Context, productID uint, limit int) ([]*product.StockLog, error) {
	var models []StockLogModel
	err := r.getDB(ctx).
		Where("product_id = ?", productID).
		Order("id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询库存流水失败")
	}

	logs := make([]*product.StockLog, len(models))
	for i, m := range models {
		logs[i] = &product.StockLog{
			ID:          m.ID,
			ProductID:   m.ProductID,
			Type:        product.ChangeType(m.Type),
			Quantity:    m.Quantity,
			StockBefore: m.StockBefore,
			StockAfter:  m.StockAfter,
			Reference:   m.Reference,
			CreatedAt:   m.CreatedAt,
		}
	}
	return logs, nil
}

func (r *productRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toProductModel 不填充Stock与IsAvailable,由调用方按需设置
func toProductModel(p *product.Product) *ProductModel {
	return &ProductModel{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		CategoryID:         p.CategoryID,
		SubcategoryID:      p.SubcategoryID,
		BrandID:            p.BrandID,
		Price:              p.Price,
		MRP:                p.MRP,
		Unit:               p.Unit,
		QuantityPerUnit:    p.QuantityPerUnit,
		WeightQuantity:     p.WeightQuantity,
		DiscountPercentage: p.DiscountPercentage,
		ImageURL:           p.ImageURL,
		ImageURLs:          p.ImageURLs,
		Tags:               p.Tags,
		IsFeatured:         p.IsFeatured,
		IsTrending:         p.IsTrending,
		IsNewArrival:       p.IsNewArrival,
		Rating:             p.Rating,
		ReviewCount:        p.ReviewCount,
		MinOrderQuantity:   p.MinOrderQuantity,
		MaxOrderQuantity:   p.MaxOrderQuantity,
		UpdatedAt:          p.UpdatedAt,
	}
}

func toProductEntity(m *ProductModel) *product.Product {
	p := &product.Product{
		ID:                 m.ID,
		Name:               m.Name,
		Description:        m.Description,
		CategoryID:         m.CategoryID,
		SubcategoryID:      m.SubcategoryID,
		BrandID:            m.BrandID,
		Price:              m.Price,
		MRP:                m.MRP,
		Stock:              m.Stock,
		IsAvailable:        m.IsAvailable,
		Unit:               m.Unit,
		QuantityPerUnit:    m.QuantityPerUnit,
		WeightQuantity:     m.WeightQuantity,
		DiscountPercentage: m.DiscountPercentage,
		ImageURL:           m.ImageURL,
		ImageURLs:          m.ImageURLs,
		Tags:               m.Tags,
		IsFeatured:         m.IsFeatured,
		IsTrending:         m.IsTrending,
		IsNewArrival:       m.IsNewArrival,
		Rating:             m.Rating,
		ReviewCount:        m.ReviewCount,
		MinOrderQuantity:   m.MinOrderQuantity,
		MaxOrderQuantity:   m.MaxOrderQuantity,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
	if m.Category != nil {
		p.CategoryName = m.Category.Name
	}
	if m.Brand != nil {
		p.BrandName = m.Brand.Name
	}
	return p
}

func toProductEntities(models []ProductModel) []*product.Product {
	products := make([]*product.Product, len(models))
	for i := range models {
		products[i] = toProductEntity(&models[i])
	}
	return products
}
