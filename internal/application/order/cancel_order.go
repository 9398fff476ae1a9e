package order

import (
	"context"

	"github.com/xiebiao/grocery/internal/application/event"
	"github.com/xiebiao/grocery/internal/domain/order"
	"github.com/xiebiao/grocery/internal/domain/product"
	"github.com/xiebiao/grocery/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/grocery/pkg/clock"
	"github.com/xiebiao/grocery/pkg/metrics"
	"github.com/xiebiao/grocery/pkg/tracing"
)

// CancelOrderUseCase 取消订单并归还库存
type CancelOrderUseCase struct {
	orderRepo order.Repository
	ledger    *product.Ledger
	txManager *mysql.TxManager
	clock     clock.Clock
	publisher event.Publisher
	cache     CacheInvalidator
}

// NewCancelOrderUseCase 创建取消订单用例
func NewCancelOrderUseCase(
	orderRepo order.Repository,
	ledger *product.Ledger,
	txManager *mysql.TxManager,
	clk clock.Clock,
	publisher event.Publisher,
	cache CacheInvalidator,
) *CancelOrderUseCase {
	return &CancelOrderUseCase{
		orderRepo: orderRepo,
		ledger:    ledger,
		txManager: txManager,
		clock:     clk,
		publisher: publisher,
		cache:     cache,
	}
}

// Execute 取消订单
//
// 状态切换使用CAS(WHERE status = 原状态):两个并发取消只有一个能成功,
// 另一个返回ErrNotCancellable,不会重复归还库存。
// 状态切换与所有明细的库存归还在同一事务中,任一商品已被删除则整体回滚。
func (uc *CancelOrderUseCase) Execute(ctx context.Context, actor Actor, orderID uint) (*order.Order, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CancelOrder")
	defer span.End()

	var (
		cancelled *order.Order
		changes   []product.StockChange
	)
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		o, err := uc.orderRepo.FindByID(txCtx, orderID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin && !o.IsOwnedBy(actor.UserID) {
			return order.NotFound(orderID)
		}

		from := o.Status
		if err := o.Cancel(uc.clock.Now()); err != nil {
			return err
		}

		ok, err := uc.orderRepo.CompareAndSetStatus(txCtx, o.ID, from, order.StatusCancelled)
		if err != nil {
			return err
		}
		if !ok {
			return order.ErrNotCancellable.WithMessage("订单状态已变更,不能取消")
		}

		for _, l := range o.Lines {
			change, err := uc.ledger.Increase(txCtx, l.ProductID, l.Quantity, product.ChangeRestore, o.OrderNumber)
			if err != nil {
				return err
			}
			changes = append(changes, change)
		}

		cancelled = o
		return nil
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	metrics.IncCounter(metrics.OrdersCancelledTotal)
	metrics.IncCounterVec(metrics.OrderStatusChangesTotal, map[string]string{"status": string(order.StatusCancelled)})
	uc.afterCommit(ctx, actor, cancelled, changes)
	return cancelled, nil
}

func (uc *CancelOrderUseCase) afterCommit(ctx context.Context, actor Actor, o *order.Order, changes []product.StockChange) {
	event.Emit(ctx, uc.publisher, event.OrderCancelled, event.OrderCancelledEvent{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		CancelledBy: actor.UserID,
		CancelledAt: o.UpdatedAt,
	})

	ids := make([]uint, 0, len(changes))
	for _, c := range changes {
		ids = append(ids, c.ProductID)
		if c.BackInStock() {
			event.Emit(ctx, uc.publisher, event.ProductBackInStock, event.StockEvent{
				ProductID:   c.ProductID,
				ProductName: c.ProductName,
				Stock:       c.StockAfter,
				Reference:   o.OrderNumber,
			})
		}
	}
	uc.cache.Invalidate(ctx, ids...)
}
