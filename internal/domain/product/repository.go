package product

import (
	"context"
)

// Repository 商品仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 所有方法通过context感知调用方事务
type Repository interface {
	// Create 创建商品
	Create(ctx context.Context, p *Product) error

	// FindByID 根据ID查找商品(不含已删除)
	FindByID(ctx context.Context, id uint) (*Product, error)

	// Update 更新可编辑属性,不会写入stock与is_available
	Update(ctx context.Context, p *Product) error

	// Delete 软删除
	Delete(ctx context.Context, id uint) error

	// List 分页查询
	List(ctx context.Context, params ListParams) ([]*Product, int64, error)

	// ListFeatured 推荐商品(仅可售)
	ListFeatured(ctx context.Context, limit int) ([]*Product, error)

	// ListByCategoryName 按分类名查询(忽略大小写)
	ListByCategoryName(ctx context.Context, name string, page, pageSize int) ([]*Product, int64, error)

	// Stats 商品统计
	Stats(ctx context.Context) (*Stats, error)

	// DecreaseStock 条件扣减库存并写入流水
	// 实现要求:
	// - 单条 UPDATE ... WHERE id = ? AND stock >= ? 完成扣减
	// - 0行受影响时区分商品不存在与库存不足
	// - 扣减后库存为0则置为不可售
	DecreaseStock(ctx context.Context, id uint, quantity int, reference string) (StockChange, error)

	// IncreaseStock 增加库存并写入流水,库存从0变为正数时恢复可售
	IncreaseStock(ctx context.Context, id uint, quantity int, changeType ChangeType, reference string) (StockChange, error)

	// ListStockLogs 查询商品库存流水(按时间倒序)
	ListStockLogs(ctx context.Context, productID uint, limit int) ([]*StockLog, error)
}

// SortBy 列表排序方式
type SortBy string

const (
	SortNewest    SortBy = "newest"
	SortPriceAsc  SortBy = "price_asc"
	SortPriceDesc SortBy = "price_desc"
	SortRating    SortBy = "rating"
)

// ListParams 列表查询参数
type ListParams struct {
	Page          int
	PageSize      int
	Keyword       string // 匹配名称、描述、标签
	CategoryID    uint
	SubcategoryID uint
	BrandID       uint
	FeaturedOnly  bool
	AvailableOnly bool
	SortBy        SortBy
}
