package product

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product 商品实体(聚合根)
// DDD设计说明:
// 1. 价格使用decimal定点数(避免浮点数精度问题)
// 2. Stock与IsAvailable只能由库存台账(Ledger)修改,商品编辑不会触碰这两个字段
// 3. 不变式: Stock >= 0; Stock == 0 时 IsAvailable == false
type Product struct {
	ID                 uint
	Name               string
	Description        string
	CategoryID         uint
	CategoryName       string // 只读投影,查询时填充
	SubcategoryID      *uint
	BrandID            *uint
	BrandName          string // 只读投影
	Price              decimal.Decimal
	MRP                decimal.Decimal // 建议零售价,默认等于Price
	Stock              int
	IsAvailable        bool
	Unit               string // kg、piece、pack等
	QuantityPerUnit    string
	WeightQuantity     string
	DiscountPercentage int
	ImageURL           string
	ImageURLs          []string
	Tags               []string
	IsFeatured         bool
	IsTrending         bool
	IsNewArrival       bool
	Rating             decimal.Decimal
	ReviewCount        int
	MinOrderQuantity   int
	MaxOrderQuantity   *int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Attributes 商品可编辑属性
// 创建与更新共用,不包含库存与上下架状态
type Attributes struct {
	Name               string
	Description        string
	CategoryID         uint
	SubcategoryID      *uint
	BrandID            *uint
	Price              decimal.Decimal
	MRP                decimal.Decimal
	Unit               string
	QuantityPerUnit    string
	WeightQuantity     string
	DiscountPercentage int
	ImageURL           string
	ImageURLs          []string
	Tags               []string
	IsFeatured         bool
	IsTrending         bool
	IsNewArrival       bool
	MinOrderQuantity   int
	MaxOrderQuantity   *int
}

// NewProduct 创建新商品(工厂方法)
// available为请求中的上架标志,最终状态 = available && stock > 0
func NewProduct(attrs Attributes, stock int, available bool) (*Product, error) {
	if stock < 0 {
		return nil, ErrInvalidStock
	}

	p := &Product{}
	if err := p.Apply(attrs); err != nil {
		return nil, err
	}

	now := time.Now()
	p.Stock = stock
	p.IsAvailable = available && stock > 0
	p.Rating = decimal.Zero
	p.CreatedAt = now
	p.UpdatedAt = now
	return p, nil
}

// Apply 覆盖可编辑属性(领域行为)
// 业务规则:
// - 名称不能为空
// - 价格必须>0,MRP为空时取价格
// - 最小起订量默认1,最大起订量不能小于最小起订量
func (p *Product) Apply(attrs Attributes) error {
	name := strings.TrimSpace(attrs.Name)
	if name == "" {
		return ErrInvalidName
	}
	if !attrs.Price.IsPositive() {
		return ErrInvalidPrice
	}
	if attrs.CategoryID == 0 {
		return ErrCategoryRequired
	}
	if attrs.DiscountPercentage < 0 || attrs.DiscountPercentage > 100 {
		return ErrInvalidDiscount
	}

	mrp := attrs.MRP
	if !mrp.IsPositive() {
		mrp = attrs.Price
	}

	minQty := attrs.MinOrderQuantity
	if minQty <= 0 {
		minQty = 1
	}
	if attrs.MaxOrderQuantity != nil && *attrs.MaxOrderQuantity < minQty {
		return ErrInvalidOrderQuantityRange
	}

	p.Name = name
	p.Description = attrs.Description
	p.CategoryID = attrs.CategoryID
	p.SubcategoryID = attrs.SubcategoryID
	p.BrandID = attrs.BrandID
	p.Price = attrs.Price
	p.MRP = mrp
	p.Unit = attrs.Unit
	p.QuantityPerUnit = attrs.QuantityPerUnit
	p.WeightQuantity = attrs.WeightQuantity
	p.DiscountPercentage = attrs.DiscountPercentage
	p.ImageURL = attrs.ImageURL
	p.ImageURLs = attrs.ImageURLs
	p.Tags = attrs.Tags
	p.IsFeatured = attrs.IsFeatured
	p.IsTrending = attrs.IsTrending
	p.IsNewArrival = attrs.IsNewArrival
	p.MinOrderQuantity = minQty
	p.MaxOrderQuantity = attrs.MaxOrderQuantity
	p.UpdatedAt = time.Now()
	return nil
}

// CanSupply 当前库存能否满足指定数量(只读判断,不改变库存)
func (p *Product) CanSupply(quantity int) bool {
	return p.IsAvailable && quantity > 0 && p.Stock >= quantity
}

// ChangeType 库存变动类型
type ChangeType string

const (
	ChangeDeduct  ChangeType = "DEDUCT"  // 下单扣减
	ChangeRestore ChangeType = "RESTORE" // 取消订单归还
	ChangeRestock ChangeType = "RESTOCK" // 管理员补货
)

// StockChange 一次库存变动的前后快照
type StockChange struct {
	ProductID    uint
	ProductName  string
	Quantity     int
	StockBefore  int
	StockAfter   int
	WasAvailable bool
	IsAvailable  bool
}

// SoldOut 本次变动使商品从可售变为售罄
func (c StockChange) SoldOut() bool {
	return c.WasAvailable && !c.IsAvailable
}

// BackInStock 本次变动使商品重新可售
func (c StockChange) BackInStock() bool {
	return !c.WasAvailable && c.IsAvailable
}

// StockLog 库存流水,与库存变动在同一事务中写入
type StockLog struct {
	ID          uint
	ProductID   uint
	Type        ChangeType
	Quantity    int
	StockBefore int
	StockAfter  int
	Reference   string // 订单号或 admin:<用户ID>
	CreatedAt   time.Time
}

// Stats 商品统计(管理后台)
type Stats struct {
	TotalProducts     int64
	AvailableProducts int64
	OutOfStock        int64
	ByCategory        []CategoryCount
}

// CategoryCount 分类下的商品数
type CategoryCount struct {
	CategoryID   uint
	CategoryName string
	Count        int64
}
