package order

import (
	"context"

	"github.com/xiebiao/grocery/internal/domain/order"
)

// QueryOrderUseCase 订单查询
type QueryOrderUseCase struct {
	orderRepo order.Repository
}

// NewQueryOrderUseCase 创建订单查询用例
func NewQueryOrderUseCase(orderRepo order.Repository) *QueryOrderUseCase {
	return &QueryOrderUseCase{orderRepo: orderRepo}
}

// GetByID 订单详情,本人或管理员可见
func (uc *QueryOrderUseCase) GetByID(ctx context.Context, actor Actor, id uint) (*order.Order, error) {
	o, err := uc.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && !o.IsOwnedBy(actor.UserID) {
		return nil, order.NotFound(id)
	}
	return o, nil
}

// GetByOrderNumber 按订单号查询,可见性规则同GetByID
func (uc *QueryOrderUseCase) GetByOrderNumber(ctx context.Context, actor Actor, orderNumber string) (*order.Order, error) {
	o, err := uc.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && !o.IsOwnedBy(actor.UserID) {
		return nil, order.NotFound(orderNumber)
	}
	return o, nil
}

// ListByUser 用户订单列表,最新的在前
func (uc *QueryOrderUseCase) ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]*order.Order, int64, error) {
	return uc.orderRepo.ListByUserID(ctx, userID, page, pageSize)
}
