package order

import (
	"context"
)

// Repository 订单仓储接口
// 支持事务操作(通过context传递事务)
type Repository interface {
	// Create 创建订单(包含明细),订单号冲突返回ErrOrderNumberGenerate
	Create(ctx context.Context, o *Order) error

	// FindByID 根据ID查找订单(包含明细)
	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindByOrderNumber 根据订单号查找订单
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// UpdateStatus 覆盖状态与送达时间
	UpdateStatus(ctx context.Context, o *Order) error

	// CompareAndSetStatus 仅当当前状态为from时改为to
	// 返回false表示状态已被并发修改
	CompareAndSetStatus(ctx context.Context, id uint, from, to Status) (bool, error)

	// ListByUserID 查询用户订单,按创建时间倒序
	ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*Order, int64, error)
}
