package order

import (
	"context"

	"github.com/xiebiao/grocery/internal/application/event"
	"github.com/xiebiao/grocery/internal/domain/order"
	"github.com/xiebiao/grocery/pkg/clock"
	"github.com/xiebiao/grocery/pkg/metrics"
	"github.com/xiebiao/grocery/pkg/tracing"
)

// UpdateStatusUseCase 管理员修改订单状态
//
// 直接覆盖状态,不校验流转顺序。
// 通过这里置为CANCELLED不会归还库存,归还库存请使用取消订单。
type UpdateStatusUseCase struct {
	orderRepo order.Repository
	clock     clock.Clock
	publisher event.Publisher
}

// NewUpdateStatusUseCase 创建修改状态用例
func NewUpdateStatusUseCase(orderRepo order.Repository, clk clock.Clock, publisher event.Publisher) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{orderRepo: orderRepo, clock: clk, publisher: publisher}
}

// Execute 修改状态,status不区分大小写
func (uc *UpdateStatusUseCase) Execute(ctx context.Context, orderID uint, status string) (*order.Order, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "UpdateOrderStatus")
	defer span.End()

	s, err := order.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	from := o.Status
	o.SetStatus(s, uc.clock.Now())
	if err := uc.orderRepo.UpdateStatus(ctx, o); err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	metrics.IncCounterVec(metrics.OrderStatusChangesTotal, map[string]string{"status": string(s)})
	event.Emit(ctx, uc.publisher, event.OrderStatusChanged, event.OrderStatusChangedEvent{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		From:        string(from),
		To:          string(s),
		ChangedAt:   o.UpdatedAt,
	})
	return o, nil
}
