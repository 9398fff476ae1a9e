package cart

import (
	apperrors "github.com/xiebiao/grocery/pkg/errors"
)

var (
	// ErrItemNotFound 购物车条目不存在(或不属于当前用户)
	ErrItemNotFound = apperrors.New(apperrors.ErrCodeCartItemNotFound, "购物车商品不存在")

	// ErrInvalidQuantity 数量必须大于0
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")
)
