// Package event 领域事件定义与发布约定
//
// 事件只在事务提交之后发布,发布失败不影响已提交的业务结果,只记录日志。
package event

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// 路由键
const (
	OrderCreated       = "order.created"
	OrderStatusChanged = "order.status_changed"
	OrderCancelled     = "order.cancelled"
	ProductOutOfStock  = "product.out_of_stock"
	ProductBackInStock = "product.back_in_stock"
)

// Publisher 事件发布者
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// OrderCreatedEvent 下单成功
type OrderCreatedEvent struct {
	OrderID     uint            `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	UserID      uint            `json:"user_id"`
	Total       decimal.Decimal `json:"total"`
	ItemCount   int             `json:"item_count"`
	CreatedAt   time.Time       `json:"created_at"`
}

// OrderStatusChangedEvent 管理员修改订单状态
type OrderStatusChangedEvent struct {
	OrderID     uint      `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	ChangedAt   time.Time `json:"changed_at"`
}

// OrderCancelledEvent 订单取消
type OrderCancelledEvent struct {
	OrderID     uint      `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      uint      `json:"user_id"`
	CancelledBy uint      `json:"cancelled_by"`
	CancelledAt time.Time `json:"cancelled_at"`
}

// StockEvent 商品售罄或重新有货
type StockEvent struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Stock       int    `json:"stock"`
	Reference   string `json:"reference"`
}

// Emit 发布事件,失败只记录警告
func Emit(ctx context.Context, p Publisher, routingKey string, payload interface{}) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, routingKey, payload); err != nil {
		slog.WarnContext(ctx, "事件发布失败", "routing_key", routingKey, "error", err)
	}
}

// Recorder 记录所有发布的事件,用于测试与本地调试
type Recorder struct {
	mu     sync.Mutex
	Events []Recorded
}

// Recorded 一条已记录的事件
type Recorded struct {
	RoutingKey string
	Payload    interface{}
}

func (r *Recorder) Publish(_ context.Context, routingKey string, payload interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, Recorded{RoutingKey: routingKey, Payload: payload})
	return nil
}

// Keys 按发布顺序返回路由键
func (r *Recorder) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, len(r.Events))
	for i, e := range r.Events {
		keys[i] = e.RoutingKey
	}
	return keys
}
