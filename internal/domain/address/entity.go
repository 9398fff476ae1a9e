package address

import (
	"strings"
	"time"
)

// Type 地址类型
type Type string

const (
	TypeHome  Type = "HOME"
	TypeWork  Type = "WORK"
	TypeOther Type = "OTHER"
)

// ParseType 忽略大小写,空值按HOME处理
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToUpper(strings.TrimSpace(s))); t {
	case "":
		return TypeHome, nil
	case TypeHome, TypeWork, TypeOther:
		return t, nil
	default:
		return "", ErrInvalidType
	}
}

// Address 收货地址
type Address struct {
	ID           uint
	UserID       uint
	FullName     string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Pincode      string
	Type         Type
	IsDefault    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Fields 可编辑字段
type Fields struct {
	FullName     string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Pincode      string
	Type         string
	IsDefault    bool
}

// New 创建地址
func New(userID uint, f Fields) (*Address, error) {
	a := &Address{UserID: userID, CreatedAt: time.Now()}
	if err := a.Apply(f); err != nil {
		return nil, err
	}
	return a, nil
}

// Apply 覆盖可编辑字段
func (a *Address) Apply(f Fields) error {
	t, err := ParseType(f.Type)
	if err != nil {
		return err
	}
	for _, required := range []string{f.FullName, f.Phone, f.AddressLine1, f.City, f.State, f.Pincode} {
		if strings.TrimSpace(required) == "" {
			return ErrMissingField
		}
	}

	a.FullName = strings.TrimSpace(f.FullName)
	a.Phone = strings.TrimSpace(f.Phone)
	a.AddressLine1 = strings.TrimSpace(f.AddressLine1)
	a.AddressLine2 = strings.TrimSpace(f.AddressLine2)
	a.City = strings.TrimSpace(f.City)
	a.State = strings.TrimSpace(f.State)
	a.Pincode = strings.TrimSpace(f.Pincode)
	a.Type = t
	a.IsDefault = f.IsDefault
	a.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy 检查地址是否属于指定用户
func (a *Address) IsOwnedBy(userID uint) bool {
	return a.UserID == userID
}
