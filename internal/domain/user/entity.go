package user

import (
	"time"
)

// Role 用户角色
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// User 用户实体（聚合根）
// 设计说明：
// 1. 密码为bcrypt哈希值，实体不提供任何获取明文的方法
// 2. 领域实体不依赖GORM tag（Repository负责与数据模型转换）
type User struct {
	ID        uint
	Email     string
	Password  string // bcrypt哈希值
	Name      string
	Phone     string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewUser(email, hashedPassword, name, phone string, role Role) *User {
	now := time.Now()
	if role != RoleAdmin {
		role = RoleCustomer
	}
	return &User{
		Email:     email,
		Password:  hashedPassword,
		Name:      name,
		Phone:     phone,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UpdateProfile 更新个人资料（领域行为）
// 空字符串表示不修改
func (u *User) UpdateProfile(name, phone, email string) {
	if name != "" {
		u.Name = name
	}
	if phone != "" {
		u.Phone = phone
	}
	if email != "" {
		u.Email = email
	}
	u.UpdatedAt = time.Now()
}
