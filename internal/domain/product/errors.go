package product

import (
	apperrors "github.com/xiebiao/grocery/pkg/errors"
)

// 商品领域错误定义
var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = apperrors.New(apperrors.ErrCodeProductNotFound, "商品不存在")

	// ErrProductUnavailable 商品已下架或售罄
	ErrProductUnavailable = apperrors.New(apperrors.ErrCodeProductUnavailable, "商品已下架")

	// ErrInsufficientStock 库存不足
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "库存不足")

	ErrInvalidName               = apperrors.New(apperrors.ErrCodeInvalidParams, "商品名称不能为空")
	ErrInvalidPrice              = apperrors.New(apperrors.ErrCodeInvalidParams, "价格必须大于0")
	ErrInvalidStock              = apperrors.New(apperrors.ErrCodeInvalidParams, "库存不能为负数")
	ErrInvalidQuantity           = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")
	ErrInvalidDiscount           = apperrors.New(apperrors.ErrCodeInvalidParams, "折扣必须在0-100之间")
	ErrCategoryRequired          = apperrors.New(apperrors.ErrCodeInvalidParams, "商品必须属于一个分类")
	ErrInvalidOrderQuantityRange = apperrors.New(apperrors.ErrCodeInvalidParams, "最大起订量不能小于最小起订量")
	ErrKeywordTooShort           = apperrors.New(apperrors.ErrCodeInvalidParams, "搜索关键词至少2个字符")
)

// InsufficientStock 构造带商品名、需求量、可用量的库存不足错误
func InsufficientStock(name string, requested, available int) *apperrors.AppError {
	return ErrInsufficientStock.
		WithMessagef("商品「%s」库存不足,需要%d,剩余%d", name, requested, available).
		WithDetails(map[string]interface{}{
			"product_name": name,
			"requested":    requested,
			"available":    available,
		})
}

// NotFound 构造带ID的商品不存在错误
func NotFound(id uint) *apperrors.AppError {
	return apperrors.NotFound(ErrProductNotFound, "product", id)
}
