package catalog

import (
	apperrors "github.com/xiebiao/grocery/pkg/errors"
)

var (
	ErrCategoryNotFound    = apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在")
	ErrSubcategoryNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "子分类不存在")
	ErrBrandNotFound       = apperrors.New(apperrors.ErrCodeBrandNotFound, "品牌不存在")

	ErrCategoryDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "分类名称已存在")
	ErrBrandDuplicate    = apperrors.New(apperrors.ErrCodeDuplicateEntry, "品牌名称已存在")

	ErrInvalidName = apperrors.New(apperrors.ErrCodeInvalidParams, "名称不能为空")

	// ErrSubcategoryMismatch 子分类不属于所选分类
	ErrSubcategoryMismatch = apperrors.New(apperrors.ErrCodeInvalidParams, "子分类不属于该分类")
)
