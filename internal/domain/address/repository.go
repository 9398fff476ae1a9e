package address

import (
	"context"
)

// Repository 地址仓储
// 所有查询都按用户隔离,他人的地址视为不存在
type Repository interface {
	Create(ctx context.Context, a *Address) error
	FindByID(ctx context.Context, userID, id uint) (*Address, error)
	// ListByUser 默认地址在前,其余按创建时间倒序
	ListByUser(ctx context.Context, userID uint) ([]*Address, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	Update(ctx context.Context, a *Address) error
	Delete(ctx context.Context, userID, id uint) error
	// ClearDefault 取消该用户的所有默认地址
	ClearDefault(ctx context.Context, userID uint) error
}
