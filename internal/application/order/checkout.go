package order

import (
	"context"
	"time"

	"github.com/xiebiao/grocery/internal/domain/cart"
	"github.com/xiebiao/grocery/internal/domain/order"
	"github.com/xiebiao/grocery/pkg/saga"
	"github.com/xiebiao/grocery/pkg/tracing"
)

// CheckoutUseCase 购物车结算
//
// 两个步骤:
//  1. 按购物车内容下单(补偿:取消订单,归还库存)
//  2. 清空购物车
//
// 清空购物车失败时订单会被取消,用户可以重新结算。
type CheckoutUseCase struct {
	cartRepo    cart.Repository
	createOrder *CreateOrderUseCase
	cancelOrder *CancelOrderUseCase
	timeout     time.Duration
}

// NewCheckoutUseCase 创建结算用例
func NewCheckoutUseCase(
	cartRepo cart.Repository,
	createOrder *CreateOrderUseCase,
	cancelOrder *CancelOrderUseCase,
	timeout time.Duration,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		cartRepo:    cartRepo,
		createOrder: createOrder,
		cancelOrder: cancelOrder,
		timeout:     timeout,
	}
}

// Execute 结算当前用户的购物车
func (uc *CheckoutUseCase) Execute(ctx context.Context, userID uint, paymentMethod string, addressID uint) (*order.Order, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Checkout")
	defer span.End()

	c, err := uc.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, order.ErrEmptyCart
	}

	lines := make([]LineRequest, len(c.Items))
	for i, it := range c.Items {
		lines[i] = LineRequest{ProductID: it.ProductID, Quantity: it.Quantity}
	}

	var created *order.Order
	err = saga.New("checkout", uc.timeout).
		AddStep("create_order",
			func(ctx context.Context) error {
				o, err := uc.createOrder.Execute(ctx, CreateOrderRequest{
					UserID:        userID,
					Lines:         lines,
					PaymentMethod: paymentMethod,
					AddressID:     addressID,
				})
				if err != nil {
					return err
				}
				created = o
				return nil
			},
			func(ctx context.Context) error {
				_, err := uc.cancelOrder.Execute(ctx, Actor{UserID: userID}, created.ID)
				return err
			},
		).
		AddStep("clear_cart",
			func(ctx context.Context) error {
				return uc.cartRepo.Clear(ctx, c.ID)
			},
			nil,
		).
		Execute(ctx)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	return created, nil
}
