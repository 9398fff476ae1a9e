package order

import (
	"context"
	"time"

	"github.com/xiebiao/grocery/internal/application/event"
	"github.com/xiebiao/grocery/internal/domain/address"
	"github.com/xiebiao/grocery/internal/domain/order"
	"github.com/xiebiao/grocery/internal/domain/product"
	"github.com/xiebiao/grocery/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/grocery/pkg/clock"
	"github.com/xiebiao/grocery/pkg/metrics"
	"github.com/xiebiao/grocery/pkg/tracing"
)

// CreateOrderUseCase 创建订单用例
// 涉及:事务处理、并发控制、业务规则校验
type CreateOrderUseCase struct {
	orderRepo   order.Repository
	productRepo product.Repository
	addressRepo address.Repository
	ledger      *product.Ledger
	txManager   *mysql.TxManager
	numbers     *order.NumberGenerator
	clock       clock.Clock
	publisher   event.Publisher
	cache       CacheInvalidator
}

// NewCreateOrderUseCase 创建下单用例
func NewCreateOrderUseCase(
	orderRepo order.Repository,
	productRepo product.Repository,
	addressRepo address.Repository,
	ledger *product.Ledger,
	txManager *mysql.TxManager,
	numbers *order.NumberGenerator,
	clk clock.Clock,
	publisher event.Publisher,
	cache CacheInvalidator,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		addressRepo: addressRepo,
		ledger:      ledger,
		txManager:   txManager,
		numbers:     numbers,
		clock:       clk,
		publisher:   publisher,
		cache:       cache,
	}
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	UserID        uint // 买家用户ID(从JWT中提取)
	Lines         []LineRequest
	PaymentMethod string
	AddressID     uint
}

// LineRequest 订单明细项
type LineRequest struct {
	ProductID uint
	Quantity  int
}

// Execute 执行下单
//
// 防止超卖:库存扣减是一条带条件的UPDATE(stock >= n),
// 由数据库行锁保证并发安全,不需要先SELECT FOR UPDATE。
// 整个流程在一个事务里:任一行库存不足,之前行的扣减与订单一起回滚。
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (*order.Order, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateOrder")
	defer span.End()

	metrics.IncGauge(metrics.OrdersInProgress)
	defer metrics.DecGauge(metrics.OrdersInProgress)
	start := time.Now()

	o, changes, err := uc.create(ctx, req)
	if err != nil {
		tracing.RecordError(span, err)
		metrics.IncCounterVec(metrics.OrdersFailedTotal, map[string]string{"reason": failureReason(err)})
		return nil, err
	}

	metrics.IncCounter(metrics.OrdersCreatedTotal)
	metrics.ObserveHistogram(metrics.OrderCreationDuration, time.Since(start).Seconds())
	uc.afterCommit(ctx, o, changes)
	return o, nil
}

func (uc *CreateOrderUseCase) create(ctx context.Context, req CreateOrderRequest) (*order.Order, []product.StockChange, error) {
	// 1. 参数校验(不开事务)
	if len(req.Lines) == 0 {
		return nil, nil, order.ErrEmptyLines
	}
	for _, l := range req.Lines {
		if l.Quantity <= 0 {
			return nil, nil, order.ErrInvalidQuantity
		}
	}

	// 2. 收货地址必须属于当前用户
	addr, err := uc.addressRepo.FindByID(ctx, req.UserID, req.AddressID)
	if err != nil {
		return nil, nil, err
	}
	delivery := order.Delivery{
		FullName: addr.FullName,
		Phone:    addr.Phone,
		Address:  order.JoinAddressLines(addr.AddressLine1, addr.AddressLine2),
		City:     addr.City,
		State:    addr.State,
		Pincode:  addr.Pincode,
	}

	orderNumber := uc.numbers.Next()

	var (
		created *order.Order
		changes []product.StockChange
	)
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		lines := make([]order.Line, 0, len(req.Lines))

		// 按请求顺序逐行处理,第一行失败的商品即为错误中的商品
		for _, l := range req.Lines {
			p, err := uc.productRepo.FindByID(txCtx, l.ProductID)
			if err != nil {
				return err
			}

			change, err := uc.ledger.Decrease(txCtx, p.ID, l.Quantity, orderNumber)
			if err != nil {
				return err
			}
			changes = append(changes, change)

			// 使用数据库中的当前价格,而不是客户端传来的价格
			lines = append(lines, order.NewLine(p.ID, p.Name, l.Quantity, p.Price))
		}

		o := order.NewOrder(orderNumber, req.UserID, lines, req.PaymentMethod, delivery, uc.clock.Now())
		if err := uc.orderRepo.Create(txCtx, o); err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return created, changes, nil
}

// afterCommit 事务提交后的副作用:事件与缓存
func (uc *CreateOrderUseCase) afterCommit(ctx context.Context, o *order.Order, changes []product.StockChange) {
	event.Emit(ctx, uc.publisher, event.OrderCreated, event.OrderCreatedEvent{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		Total:       o.Total,
		ItemCount:   len(o.Lines),
		CreatedAt:   o.CreatedAt,
	})

	ids := make([]uint, 0, len(changes))
	for _, c := range changes {
		ids = append(ids, c.ProductID)
		if c.SoldOut() {
			event.Emit(ctx, uc.publisher, event.ProductOutOfStock, event.StockEvent{
				ProductID:   c.ProductID,
				ProductName: c.ProductName,
				Stock:       c.StockAfter,
				Reference:   o.OrderNumber,
			})
		}
	}
	uc.cache.Invalidate(ctx, ids...)
}
