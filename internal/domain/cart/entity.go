package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart 购物车(每个用户一个)
type Cart struct {
	ID        uint
	UserID    uint
	Items     []Item
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Item 购物车条目
// PriceAtAdd为加入购物车时的价格快照
type Item struct {
	ID          uint
	CartID      uint
	ProductID   uint
	ProductName string // 只读投影
	Quantity    int
	PriceAtAdd  decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LineTotal 小计
func (i Item) LineTotal() decimal.Decimal {
	return i.PriceAtAdd.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// TotalPrice 购物车总价
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// TotalItems 条目数(按行计,不是件数)
func (c *Cart) TotalItems() int {
	return len(c.Items)
}

// IsEmpty 购物车是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// FindByProduct 查找同一商品的条目
func (c *Cart) FindByProduct(productID uint) (*Item, bool) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i], true
		}
	}
	return nil, false
}
