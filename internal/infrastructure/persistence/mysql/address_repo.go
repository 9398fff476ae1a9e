package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/grocery/internal/domain/address"
	apperrors "github.com/xiebiao/grocery/pkg/errors"
)

// addressRepository 收货地址仓储实现
// 所有查询都带user_id条件,他人的地址一律视为不存在
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建地址仓储
func NewAddressRepository(db *gorm.DB) address.Repository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Create(ctx context.Context, a *address.Address) error {
	model := toAddressModel(a)
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建地址失败")
	}
	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *addressRepository) FindByID(ctx context.Context, userID, id uint) (*address.Address, error) {
	var model AddressModel
	err := r.getDB(ctx).Where("id = ? AND user_id = ?", id, userID).First(&model).Error
	if err != nil {
		if isNotFound(err) {
			return nil, address.NotFound(id)
		}
		return nil, apperrors.Wrap(err, "查询地址失败")
	}
	return toAddressEntity(&model), nil
}

// ListByUser 默认地址在前,其余按创建时间倒序
func (r *addressRepository) ListByUser(ctx context.Context, userID uint) ([]*address.Address, error) {
	var models []AddressModel
	err := r.getDB(ctx).Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC, id DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询地址列表失败")
	}
	list := make([]*address.Address, len(models))
	for i := range models {
		list[i] = toAddressEntity(&models[i])
	}
	return list, nil
}

func (r *addressRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.getDB(ctx).Model(&AddressModel{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(err, "统计地址数量失败")
	}
	return count, nil
}

func (r *addressRepository) Update(ctx context.Context, a *address.Address) error {
	result := r.getDB(ctx).Model(&AddressModel{}).
		Where("id = ? AND user_id = ?", a.ID, a.UserID).
		Updates(map[string]interface{}{
			"full_name":     a.FullName,
			"phone":         a.Phone,
			"address_line1": a.AddressLine1,
			"address_line2": a.AddressLine2,
			"city":          a.City,
			"state":         a.State,
			"pincode":       a.Pincode,
			"address_type":  string(a.Type),
			"is_default":    a.IsDefault,
			"updated_at":    a.UpdatedAt,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新地址失败")
	}
	if result.RowsAffected == 0 {
		return address.NotFound(a.ID)
	}
	return nil
}

func (r *addressRepository) Delete(ctx context.Context, userID, id uint) error {
	result := r.getDB(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&AddressModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除地址失败")
	}
	if result.RowsAffected == 0 {
		return address.NotFound(id)
	}
	return nil
}

// ClearDefault 取消该用户所有地址的默认标记
func (r *addressRepository) ClearDefault(ctx context.Context, userID uint) error {
	err := r.getDB(ctx).Model(&AddressModel{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
	if err != nil {
		return apperrors.Wrap(err, "重置默认地址失败")
	}
	return nil
}

func (r *addressRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func toAddressModel(a *address.Address) *AddressModel {
	return &AddressModel{
		ID:           a.ID,
		UserID:       a.UserID,
		FullName:     a.FullName,
		Phone:        a.Phone,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		Pincode:      a.Pincode,
		AddressType:  string(a.Type),
		IsDefault:    a.IsDefault,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func toAddressEntity(m *AddressModel) *address.Address {
	return &address.Address{
		ID:           m.ID,
		UserID:       m.UserID,
		FullName:     m.FullName,
		Phone:        m.Phone,
		AddressLine1: m.AddressLine1,
		AddressLine2: m.AddressLine2,
		City:         m.City,
		State:        m.State,
		Pincode:      m.Pincode,
		Type:         address.Type(m.AddressType),
		IsDefault:    m.IsDefault,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
