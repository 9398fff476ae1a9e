// Package address 收货地址用例
package address

import (
	"context"
	"time"

	"github.com/xiebiao/grocery/internal/domain/address"
	"github.com/xiebiao/grocery/internal/infrastructure/persistence/mysql"
)

// UseCase 地址簿用例
// 每个用户最多一个默认地址:设置默认时在同一事务中取消其他默认
type UseCase struct {
	repo      address.Repository
	txManager *mysql.TxManager
}

// NewUseCase 创建地址簿用例
func NewUseCase(repo address.Repository, txManager *mysql.TxManager) *UseCase {
	return &UseCase{repo: repo, txManager: txManager}
}

// Create 新增地址,用户的第一个地址自动成为默认地址
func (uc *UseCase) Create(ctx context.Context, userID uint, f address.Fields) (*address.Address, error) {
	a, err := address.New(userID, f)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		count, err := uc.repo.CountByUser(txCtx, userID)
		if err != nil {
			return err
		}
		if count == 0 {
			a.IsDefault = true
		}
		if a.IsDefault {
			if err := uc.repo.ClearDefault(txCtx, userID); err != nil {
				return err
			}
		}
		return uc.repo.Create(txCtx, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// List 默认地址在前,其余按创建时间倒序
func (uc *UseCase) List(ctx context.Context, userID uint) ([]*address.Address, error) {
	return uc.repo.ListByUser(ctx, userID)
}

func (uc *UseCase) Get(ctx context.Context, userID, id uint) (*address.Address, error) {
	return uc.repo.FindByID(ctx, userID, id)
}

// Update 覆盖地址字段
func (uc *UseCase) Update(ctx context.Context, userID, id uint, f address.Fields) (*address.Address, error) {
	var updated *address.Address
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		a, err := uc.repo.FindByID(txCtx, userID, id)
		if err != nil {
			return err
		}
		if err := a.Apply(f); err != nil {
			return err
		}
		if a.IsDefault {
			if err := uc.repo.ClearDefault(txCtx, userID); err != nil {
				return err
			}
		}
		if err := uc.repo.Update(txCtx, a); err != nil {
			return err
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (uc *UseCase) Delete(ctx context.Context, userID, id uint) error {
	return uc.repo.Delete(ctx, userID, id)
}

// SetDefault 设为默认地址
func (uc *UseCase) SetDefault(ctx context.Context, userID, id uint) (*address.Address, error) {
	var updated *address.Address
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		a, err := uc.repo.FindByID(txCtx, userID, id)
		if err != nil {
			return err
		}
		if err := uc.repo.ClearDefault(txCtx, userID); err != nil {
			return err
		}
		a.IsDefault = true
		a.UpdatedAt = time.Now()
		if err := uc.repo.Update(txCtx, a); err != nil {
			return err
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
