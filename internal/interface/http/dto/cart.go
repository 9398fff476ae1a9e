package dto

import (
	"github.com/shopspring/decimal"

	"github.com/xiebiao/grocery/internal/domain/cart"
)

type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1,max=999"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=999"`
}

// CartResponse 购物车响应
type CartResponse struct {
	ID         uint               `json:"id"`
	Items      []CartItemResponse `json:"items"`
	TotalItems int                `json:"total_items"`
	TotalPrice decimal.Decimal    `json:"total_price" swaggertype:"string"`
}

type CartItemResponse struct {
	ID          uint            `json:"id"`
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	PriceAtAdd  decimal.Decimal `json:"price_at_add" swaggertype:"string"`
	LineTotal   decimal.Decimal `json:"line_total" swaggertype:"string"`
}

func ToCartResponse(c *cart.Cart) *CartResponse {
	items := make([]CartItemResponse, len(c.Items))
	for i, it := range c.Items {
		items[i] = CartItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			PriceAtAdd:  it.PriceAtAdd,
			LineTotal:   it.LineTotal(),
		}
	}
	return &CartResponse{
		ID:         c.ID,
		Items:      items,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
	}
}
