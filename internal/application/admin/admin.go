// Package admin 管理后台的统计与用户查询
package admin

import (
	"context"

	"github.com/xiebiao/grocery/internal/domain/product"
	"github.com/xiebiao/grocery/internal/domain/user"
)

// UseCase 管理后台用例
type UseCase struct {
	productRepo product.Repository
	userRepo    user.Repository
}

// NewUseCase 创建管理后台用例
func NewUseCase(productRepo product.Repository, userRepo user.Repository) *UseCase {
	return &UseCase{productRepo: productRepo, userRepo: userRepo}
}

// ProductStats 商品总数、可售数、缺货数及按分类统计
func (uc *UseCase) ProductStats(ctx context.Context) (*product.Stats, error) {
	return uc.productRepo.Stats(ctx)
}

// ListUsers 用户列表(分页)
func (uc *UseCase) ListUsers(ctx context.Context, page, pageSize int) ([]*user.User, int64, error) {
	return uc.userRepo.List(ctx, page, pageSize)
}
