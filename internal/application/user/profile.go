package user

import (
	"context"

	"github.com/xiebiao/grocery/internal/domain/user"
)

// ProfileUseCase 个人资料
type ProfileUseCase struct {
	userService user.Service
	userRepo    user.Repository
}

// NewProfileUseCase 创建个人资料用例
func NewProfileUseCase(userService user.Service, userRepo user.Repository) *ProfileUseCase {
	return &ProfileUseCase{userService: userService, userRepo: userRepo}
}

// UpdateProfileRequest 空字段表示不修改
type UpdateProfileRequest struct {
	Name  string
	Phone string
	Email string
}

// Get 查询当前用户
func (uc *ProfileUseCase) Get(ctx context.Context, userID uint) (*user.User, error) {
	return uc.userRepo.FindByID(ctx, userID)
}

// Update 更新当前用户资料，邮箱冲突返回ErrEmailDuplicate
func (uc *ProfileUseCase) Update(ctx context.Context, userID uint, req UpdateProfileRequest) (*user.User, error) {
	return uc.userService.UpdateProfile(ctx, userID, req.Name, req.Phone, req.Email)
}
