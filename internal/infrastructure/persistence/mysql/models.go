package mysql

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 设计说明：
// 1. 这里是infrastructure层的数据模型，包含GORM tag
// 2. domain层的实体不依赖GORM，Repository负责两者之间的转换
// 3. 金额统一使用decimal(10,2)/decimal(12,2)
// 4. bool字段不设置default，避免GORM把false当作零值跳过

// UserModel GORM用户模型
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Email     string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Name      string         `gorm:"size:50;not null;comment:姓名"`
	Phone     string         `gorm:"size:20;comment:手机号"`
	Role      string         `gorm:"size:20;not null;index;comment:角色(CUSTOMER/ADMIN)"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

func (UserModel) TableName() string {
	return "users"
}

// CategoryModel 分类
type CategoryModel struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"uniqueIndex;size:100;not null;comment:分类名称"`
	Description  string `gorm:"size:500"`
	ImageURL     string `gorm:"size:500"`
	IconURL      string `gorm:"size:500"`
	DisplayOrder int    `gorm:"not null;comment:展示顺序"`
	IsActive     bool   `gorm:"not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (CategoryModel) TableName() string {
	return "categories"
}

// SubcategoryModel 子分类
type SubcategoryModel struct {
	ID           uint   `gorm:"primaryKey"`
	CategoryID   uint   `gorm:"not null;uniqueIndex:uk_subcategories_category_name,priority:1"`
	Name         string `gorm:"size:100;not null;uniqueIndex:uk_subcategories_category_name,priority:2"`
	Description  string `gorm:"size:500"`
	ImageURL     string `gorm:"size:500"`
	DisplayOrder int    `gorm:"not null"`
	IsActive     bool   `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (SubcategoryModel) TableName() string {
	return "subcategories"
}

// BrandModel 品牌
type BrandModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:100;not null;comment:品牌名称"`
	Description string `gorm:"size:500"`
	LogoURL     string `gorm:"size:500"`
	IsActive    bool   `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (BrandModel) TableName() string {
	return "brands"
}

// ProductModel 商品
// stock与is_available只由DecreaseStock/IncreaseStock修改
type ProductModel struct {
	ID                 uint            `gorm:"primaryKey"`
	Name               string          `gorm:"size:200;not null;index;comment:商品名称"`
	Description        string          `gorm:"type:text;comment:商品描述"`
	CategoryID         uint            `gorm:"not null;index;comment:分类ID"`
	Category           *CategoryModel  `gorm:"foreignKey:CategoryID"`
	SubcategoryID      *uint           `gorm:"index;comment:子分类ID"`
	BrandID            *uint           `gorm:"index;comment:品牌ID"`
	Brand              *BrandModel     `gorm:"foreignKey:BrandID"`
	Price              decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:售价"`
	MRP                decimal.Decimal `gorm:"column:mrp;type:decimal(10,2);not null;comment:建议零售价"`
	Stock              int             `gorm:"not null;comment:库存"`
	IsAvailable        bool            `gorm:"not null;index;comment:是否可售"`
	Unit               string          `gorm:"size:20"`
	QuantityPerUnit    string          `gorm:"size:50"`
	WeightQuantity     string          `gorm:"size:50"`
	DiscountPercentage int             `gorm:"not null"`
	ImageURL           string          `gorm:"size:500"`
	ImageURLs          []string        `gorm:"column:image_urls;serializer:json;type:text"`
	Tags               []string        `gorm:"serializer:json;type:text"`
	IsFeatured         bool            `gorm:"not null;index"`
	IsTrending         bool            `gorm:"not null"`
	IsNewArrival       bool            `gorm:"not null"`
	Rating             decimal.Decimal `gorm:"type:decimal(3,2);not null"`
	ReviewCount        int             `gorm:"not null"`
	MinOrderQuantity   int             `gorm:"not null"`
	MaxOrderQuantity   *int
	CreatedAt          time.Time      `gorm:"index"`
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

func (ProductModel) TableName() string {
	return "products"
}

// StockLogModel 库存流水
type StockLogModel struct {
	ID          uint   `gorm:"primaryKey"`
	ProductID   uint   `gorm:"not null;index;comment:商品ID"`
	Type        string `gorm:"size:16;not null;comment:DEDUCT/RESTORE/RESTOCK"`
	Quantity    int    `gorm:"not null"`
	StockBefore int    `gorm:"not null"`
	StockAfter  int    `gorm:"not null"`
	Reference   string `gorm:"size:64;index;comment:订单号或操作人"`
	CreatedAt   time.Time
}

func (StockLogModel) TableName() string {
	return "stock_logs"
}

// OrderModel 订单
// 收货信息以快照形式平铺存储
type OrderModel struct {
	ID               uint             `gorm:"primaryKey"`
	OrderNumber      string           `gorm:"uniqueIndex;size:40;not null;comment:订单号"`
	UserID           uint             `gorm:"index;not null;comment:买家用户ID"`
	Total            decimal.Decimal  `gorm:"type:decimal(12,2);not null;comment:订单总金额"`
	Status           string           `gorm:"size:20;not null;index;comment:订单状态"`
	PaymentMethod    string           `gorm:"size:30;not null"`
	PaymentStatus    string           `gorm:"size:20;not null"`
	DeliveryFullName string           `gorm:"size:100"`
	DeliveryPhone    string           `gorm:"size:20"`
	DeliveryAddress  string           `gorm:"size:500"`
	DeliveryCity     string           `gorm:"size:100"`
	DeliveryState    string           `gorm:"size:100"`
	DeliveryPincode  string           `gorm:"size:20"`
	DeliveredAt      *time.Time       `gorm:"comment:送达时间"`
	Items            []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt        time.Time        `gorm:"index;comment:创建时间"`
	UpdatedAt        time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel 订单明细,记录下单时的价格快照
type OrderItemModel struct {
	ID          uint            `gorm:"primaryKey"`
	OrderID     uint            `gorm:"index;not null;comment:订单ID"`
	ProductID   uint            `gorm:"index;not null;comment:商品ID"`
	ProductName string          `gorm:"size:200;not null"`
	Quantity    int             `gorm:"not null;comment:购买数量"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:下单时单价"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}

// CartModel 购物车
type CartModel struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"uniqueIndex;not null"`
	Items     []CartItemModel `gorm:"foreignKey:CartID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel 购物车条目
type CartItemModel struct {
	ID         uint            `gorm:"primaryKey"`
	CartID     uint            `gorm:"not null;uniqueIndex:uk_cart_items_cart_product,priority:1"`
	ProductID  uint            `gorm:"not null;uniqueIndex:uk_cart_items_cart_product,priority:2"`
	Product    *ProductModel   `gorm:"foreignKey:ProductID"`
	Quantity   int             `gorm:"not null"`
	PriceAtAdd decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:加入时价格"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (CartItemModel) TableName() string {
	return "cart_items"
}

// AddressModel 收货地址
type AddressModel struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"not null;index"`
	FullName     string `gorm:"size:100;not null"`
	Phone        string `gorm:"size:20;not null"`
	AddressLine1 string `gorm:"size:255;not null"`
	AddressLine2 string `gorm:"size:255"`
	City         string `gorm:"size:100;not null"`
	State        string `gorm:"size:100;not null"`
	Pincode      string `gorm:"size:20;not null"`
	AddressType  string `gorm:"size:10;not null"`
	IsDefault    bool   `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (AddressModel) TableName() string {
	return "addresses"
}
