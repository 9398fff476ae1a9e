package dto

import (
	"github.com/xiebiao/grocery/internal/domain/catalog"
)

type CategoryRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url" binding:"omitempty,url"`
	IconURL      string `json:"icon_url" binding:"omitempty,url"`
	DisplayOrder int    `json:"display_order"`
}

type SubcategoryRequest struct {
	CategoryID   uint   `json:"category_id" binding:"required"`
	Name         string `json:"name" binding:"required,max=100"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url" binding:"omitempty,url"`
	DisplayOrder int    `json:"display_order"`
}

type BrandRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url" binding:"omitempty,url"`
}

type CategoryResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
	IconURL      string `json:"icon_url,omitempty"`
	DisplayOrder int    `json:"display_order"`
}

type SubcategoryResponse struct {
	ID           uint   `json:"id"`
	CategoryID   uint   `json:"category_id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
	DisplayOrder int    `json:"display_order"`
}

type BrandResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
}

func ToCategoryResponse(c *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Slug:         catalog.NameToSlug(c.Name),
		Description:  c.Description,
		ImageURL:     c.ImageURL,
		IconURL:      c.IconURL,
		DisplayOrder: c.DisplayOrder,
	}
}

func ToCategoryList(list []*catalog.Category) []*CategoryResponse {
	out := make([]*CategoryResponse, len(list))
	for i, c := range list {
		out[i] = ToCategoryResponse(c)
	}
	return out
}

func ToSubcategoryResponse(s *catalog.Subcategory) *SubcategoryResponse {
	return &SubcategoryResponse{
		ID:           s.ID,
		CategoryID:   s.CategoryID,
		Name:         s.Name,
		Description:  s.Description,
		ImageURL:     s.ImageURL,
		DisplayOrder: s.DisplayOrder,
	}
}

func ToSubcategoryList(list []*catalog.Subcategory) []*SubcategoryResponse {
	out := make([]*SubcategoryResponse, len(list))
	for i, s := range list {
		out[i] = ToSubcategoryResponse(s)
	}
	return out
}

func ToBrandResponse(b *catalog.Brand) *BrandResponse {
	return &BrandResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		LogoURL:     b.LogoURL,
	}
}

func ToBrandList(list []*catalog.Brand) []*BrandResponse {
	out := make([]*BrandResponse, len(list))
	for i, b := range list {
		out[i] = ToBrandResponse(b)
	}
	return out
}
