package user

import (
	apperrors "github.com/xiebiao/grocery/pkg/errors"
)

var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = apperrors.New(apperrors.ErrCodeUserNotFound, "用户不存在")

	ErrInvalidEmail = apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	ErrInvalidName  = apperrors.New(apperrors.ErrCodeInvalidParams, "姓名长度应为2-50个字符")
	ErrInvalidPhone = apperrors.New(apperrors.ErrCodeInvalidParams, "手机号格式不正确")
)
