package dto

import (
	"time"

	"github.com/shopspring/decimal"

	apporder "github.com/xiebiao/grocery/internal/application/order"
	"github.com/xiebiao/grocery/internal/domain/order"
)

// CreateOrderRequest 下单请求
// 说明：数量上限在HTTP层限制,库存是否充足由库存台账判断
type CreateOrderRequest struct {
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod string             `json:"payment_method" binding:"required,payment_method" example:"COD"`
	AddressID     uint               `json:"address_id" binding:"required"`
}

type OrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1,max=999"`
}

// UpdateOrderStatusRequest 管理员修改订单状态,大小写不敏感
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required" example:"SHIPPED"`
}

// CheckoutRequest 购物车结算
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,payment_method" example:"UPI"`
	AddressID     uint   `json:"address_id" binding:"required"`
}

func (r CreateOrderRequest) ToLines() []apporder.LineRequest {
	lines := make([]apporder.LineRequest, len(r.Items))
	for i, it := range r.Items {
		lines[i] = apporder.LineRequest{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return lines
}

// OrderResponse 订单响应
type OrderResponse struct {
	ID            uint                `json:"id"`
	OrderNumber   string              `json:"order_number"`
	UserID        uint                `json:"user_id"`
	Items         []OrderLineResponse `json:"items"`
	TotalAmount   decimal.Decimal     `json:"total_amount" swaggertype:"string"`
	Status        string              `json:"status"`
	PaymentMethod string              `json:"payment_method"`
	PaymentStatus string              `json:"payment_status"`
	Delivery      DeliveryResponse    `json:"delivery"`
	DeliveredAt   *time.Time          `json:"delivered_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

type OrderLineResponse struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price" swaggertype:"string"`
	LineTotal   decimal.Decimal `json:"line_total" swaggertype:"string"`
}

// DeliveryResponse 下单时的收货地址快照
type DeliveryResponse struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

func ToOrderResponse(o *order.Order) *OrderResponse {
	items := make([]OrderLineResponse, len(o.Lines))
	for i, l := range o.Lines {
		items[i] = OrderLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		}
	}
	return &OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		UserID:        o.UserID,
		Items:         items,
		TotalAmount:   o.Total,
		Status:        o.Status.String(),
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
		Delivery:      DeliveryResponse(o.Delivery),
		DeliveredAt:   o.DeliveredAt,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func ToOrderList(orders []*order.Order) []*OrderResponse {
	list := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		list[i] = ToOrderResponse(o)
	}
	return list
}
