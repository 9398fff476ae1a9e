package dto

import (
	"time"

	"github.com/xiebiao/grocery/internal/domain/user"
	"github.com/xiebiao/grocery/pkg/jwt"
)

// RegisterRequest HTTP层注册请求
// 说明：HTTP层只做格式校验,密码强度等业务规则由领域服务负责
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=20"`
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest 刷新Token请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest 空字段表示不修改
type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"omitempty,min=2,max=50"`
	Phone string `json:"phone" binding:"omitempty,max=20"`
	Email string `json:"email" binding:"omitempty,email"`
}

// UserResponse 用户响应（不包含密码）
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse 注册/登录响应
type AuthResponse struct {
	User         *UserResponse `json:"user"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int64         `json:"expires_in"` // Access Token过期时间（秒）
}

func ToUserResponse(u *user.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func ToUserList(users []*user.User) []*UserResponse {
	list := make([]*UserResponse, len(users))
	for i, u := range users {
		list[i] = ToUserResponse(u)
	}
	return list
}

func ToAuthResponse(u *user.User, tokens *jwt.TokenPair) *AuthResponse {
	return &AuthResponse{
		User:         ToUserResponse(u),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}
}
