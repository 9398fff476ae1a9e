package address

import (
	apperrors "github.com/xiebiao/grocery/pkg/errors"
)

var (
	// ErrAddressNotFound 地址不存在(或不属于当前用户)
	ErrAddressNotFound = apperrors.New(apperrors.ErrCodeAddressNotFound, "地址不存在")

	ErrInvalidType  = apperrors.New(apperrors.ErrCodeInvalidParams, "地址类型必须是HOME、WORK或OTHER")
	ErrMissingField = apperrors.New(apperrors.ErrCodeInvalidParams, "收货人、电话、地址、城市、省份、邮编均不能为空")
)

// NotFound 构造带ID的地址不存在错误
func NotFound(id uint) *apperrors.AppError {
	return apperrors.NotFound(ErrAddressNotFound, "address", id)
}
