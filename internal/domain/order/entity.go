package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status 订单状态
// 使用字符串枚举,数据库中可直接阅读
type Status string

const (
	StatusPending   Status = "PENDING"   // 待确认
	StatusConfirmed Status = "CONFIRMED" // 已确认
	StatusShipped   Status = "SHIPPED"   // 已发货
	StatusDelivered Status = "DELIVERED" // 已送达
	StatusCancelled Status = "CANCELLED" // 已取消
)

// Statuses 全部合法状态
var Statuses = []Status{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled}

// ParseStatus 忽略大小写解析状态,非枚举值返回ErrInvalidStatus
func ParseStatus(s string) (Status, error) {
	v := Status(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range Statuses {
		if st == v {
			return v, nil
		}
	}
	return "", ErrInvalidStatus.WithMessagef("无效的订单状态: %s", s)
}

// String 实现Stringer接口
func (s Status) String() string {
	return string(s)
}

// Cancellable 已送达和已取消的订单不能再取消
func (s Status) Cancellable() bool {
	return s != StatusDelivered && s != StatusCancelled
}

// PaymentStatusPending 下单时的支付状态
const PaymentStatusPending = "PENDING"

// Order 订单实体(聚合根)
// 设计说明:
// 1. Order是聚合根,Line是子实体
// 2. Total冗余存储,恒等于各行小计之和
// 3. Delivery为下单时的地址快照,后续修改地址簿不影响历史订单
// 4. 订单永不删除
type Order struct {
	ID            uint
	OrderNumber   string
	UserID        uint
	Lines         []Line
	Total         decimal.Decimal
	Status        Status
	PaymentMethod string
	PaymentStatus string
	Delivery      Delivery
	DeliveredAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Line 订单明细
// UnitPrice为下单时单价快照
type Line struct {
	ID          uint
	ProductID   uint
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// NewLine 创建明细行,小计 = 单价 × 数量
func NewLine(productID uint, productName string, quantity int, unitPrice decimal.Decimal) Line {
	return Line{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// Delivery 收货信息快照
type Delivery struct {
	FullName string
	Phone    string
	Address  string // line1[, line2]
	City     string
	State    string
	Pincode  string
}

// JoinAddressLines 合并地址行,line2为空时只保留line1
func JoinAddressLines(line1, line2 string) string {
	line2 = strings.TrimSpace(line2)
	if line2 == "" {
		return line1
	}
	return line1 + ", " + line2
}

// NewOrder 创建新订单(工厂方法)
// 状态与支付状态均为PENDING,支付方式统一转大写
func NewOrder(orderNumber string, userID uint, lines []Line, paymentMethod string, delivery Delivery, now time.Time) *Order {
	o := &Order{
		OrderNumber:   orderNumber,
		UserID:        userID,
		Lines:         lines,
		Status:        StatusPending,
		PaymentMethod: NormalizePaymentMethod(paymentMethod),
		PaymentStatus: PaymentStatusPending,
		Delivery:      delivery,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	o.Total = o.CalculateTotal()
	return o
}

// NormalizePaymentMethod 去除首尾空白并转大写
func NormalizePaymentMethod(m string) string {
	return strings.ToUpper(strings.TrimSpace(m))
}

// CalculateTotal 计算各行小计之和
func (o *Order) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.LineTotal)
	}
	return total
}

// IsOwnedBy 检查订单是否属于指定用户
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}

// SetStatus 管理员直接覆盖状态
// 置为DELIVERED时记录送达时间,送达时间一经记录不会清除
func (o *Order) SetStatus(s Status, now time.Time) {
	o.Status = s
	if s == StatusDelivered {
		t := now
		o.DeliveredAt = &t
	}
	o.UpdatedAt = now
}

// Cancel 取消订单(领域行为)
func (o *Order) Cancel(now time.Time) error {
	if !o.Status.Cancellable() {
		return ErrNotCancellable.WithMessagef("订单状态为%s,不能取消", o.Status)
	}
	o.Status = StatusCancelled
	o.UpdatedAt = now
	return nil
}
