package catalog

import (
	"strings"
	"time"
)

// Category 商品分类
type Category struct {
	ID           uint
	Name         string
	Description  string
	ImageURL     string
	IconURL      string
	DisplayOrder int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Subcategory 子分类,隶属于一个分类
type Subcategory struct {
	ID           uint
	CategoryID   uint
	Name         string
	Description  string
	ImageURL     string
	DisplayOrder int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Brand 品牌
type Brand struct {
	ID          uint
	Name        string
	Description string
	LogoURL     string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory 创建分类,新建分类默认启用
func NewCategory(name, description, imageURL, iconURL string, displayOrder int) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	now := time.Now()
	return &Category{
		Name:         name,
		Description:  description,
		ImageURL:     imageURL,
		IconURL:      iconURL,
		DisplayOrder: displayOrder,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// NewSubcategory 创建子分类
func NewSubcategory(categoryID uint, name, description, imageURL string, displayOrder int) (*Subcategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	now := time.Now()
	return &Subcategory{
		CategoryID:   categoryID,
		Name:         name,
		Description:  description,
		ImageURL:     imageURL,
		DisplayOrder: displayOrder,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// NewBrand 创建品牌
func NewBrand(name, description, logoURL string) (*Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	now := time.Now()
	return &Brand{
		Name:        name,
		Description: description,
		LogoURL:     logoURL,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// SlugToName 把URL中的kebab-case分类标识转换为分类名
// 例如 fruits-and-vegetables → Fruits And Vegetables
// 查询时按名称忽略大小写匹配
func SlugToName(slug string) string {
	parts := strings.FieldsFunc(strings.TrimSpace(slug), func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, p := range parts {
		runes := []rune(strings.ToLower(p))
		runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

// NameToSlug SlugToName的逆操作: Fresh Fruits → fresh-fruits
func NameToSlug(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}
