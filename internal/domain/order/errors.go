package order

import (
	apperrors "github.com/xiebiao/grocery/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrNotCancellable 当前状态不能取消
	ErrNotCancellable = apperrors.New(apperrors.ErrCodeInvalidState, "订单当前状态不能取消")

	// ErrInvalidStatus 非法的状态值
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "无效的订单状态")

	// ErrOrderNumberGenerate 订单号冲突或生成失败
	ErrOrderNumberGenerate = apperrors.New(apperrors.ErrCodeInternal, "订单号生成失败")

	// ErrEmptyLines 订单明细为空
	ErrEmptyLines = apperrors.New(apperrors.ErrCodeInvalidParams, "订单明细不能为空")

	// ErrInvalidQuantity 购买数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须大于0")

	// ErrEmptyCart 购物车为空,无法结算
	ErrEmptyCart = apperrors.New(apperrors.ErrCodeInvalidParams, "购物车为空")
)

// NotFound 构造带ID的订单不存在错误
func NotFound(id interface{}) *apperrors.AppError {
	return apperrors.NotFound(ErrOrderNotFound, "order", id)
}
