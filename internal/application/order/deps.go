package order

import (
	"context"

	apperrors "github.com/xiebiao/grocery/pkg/errors"
)

const tracerName = "grocery/application/order"

// Actor 发起操作的用户
// 非管理员只能访问自己的订单,访问他人订单统一返回"不存在"
type Actor struct {
	UserID  uint
	IsAdmin bool
}

// CacheInvalidator 库存变化后删除商品缓存
type CacheInvalidator interface {
	Invalidate(ctx context.Context, ids ...uint)
}

// failureReason 下单失败原因,用作指标标签
func failureReason(err error) string {
	code := apperrors.GetAppError(err).Code
	switch {
	case code == apperrors.ErrCodeInsufficientStock:
		return "insufficient_stock"
	case code >= 40400 && code < 40500:
		return "not_found"
	case code >= 40000 && code < 40100:
		return "invalid"
	default:
		return "internal"
	}
}
