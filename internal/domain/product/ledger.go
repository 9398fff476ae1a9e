package product

import (
	"context"
	"log/slog"

	"github.com/xiebiao/grocery/pkg/metrics"
)

// Ledger 库存台账
// 商品的stock与is_available只通过这里变动:
//   - Decrease 下单扣减,扣到0自动售罄
//   - Increase 取消归还或补货,从0恢复时自动上架
//
// 调用方context中带有事务时在该事务内执行,否则各自开启事务。
type Ledger struct {
	repo Repository
}

// NewLedger 创建库存台账
func NewLedger(repo Repository) *Ledger {
	return &Ledger{repo: repo}
}

// Decrease 扣减库存
func (l *Ledger) Decrease(ctx context.Context, productID uint, quantity int, reference string) (StockChange, error) {
	if quantity <= 0 {
		return StockChange{}, ErrInvalidQuantity
	}

	change, err := l.repo.DecreaseStock(ctx, productID, quantity, reference)
	if err != nil {
		return StockChange{}, err
	}

	l.record(ctx, ChangeDeduct, change, reference)
	return change, nil
}

// Increase 增加库存
// changeType为RESTORE(取消订单)或RESTOCK(补货)
func (l *Ledger) Increase(ctx context.Context, productID uint, quantity int, changeType ChangeType, reference string) (StockChange, error) {
	if quantity <= 0 {
		return StockChange{}, ErrInvalidQuantity
	}
	if changeType != ChangeRestore && changeType != ChangeRestock {
		changeType = ChangeRestock
	}

	change, err := l.repo.IncreaseStock(ctx, productID, quantity, changeType, reference)
	if err != nil {
		return StockChange{}, err
	}

	l.record(ctx, changeType, change, reference)
	return change, nil
}

func (l *Ledger) record(ctx context.Context, t ChangeType, c StockChange, reference string) {
	metrics.IncCounterVec(metrics.StockChangesTotal, map[string]string{"type": string(t)})
	if c.SoldOut() {
		metrics.IncCounter(metrics.ProductsSoldOutTotal)
	}

	slog.DebugContext(ctx, "库存变动",
		"type", t,
		"product_id", c.ProductID,
		"quantity", c.Quantity,
		"before", c.StockBefore,
		"after", c.StockAfter,
		"available", c.IsAvailable,
		"reference", reference,
	)
}
