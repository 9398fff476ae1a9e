package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/grocery/internal/domain/product"
)

// ProductRequest 商品可编辑字段(创建与更新共用)
type ProductRequest struct {
	Name               string          `json:"name" binding:"required,max=200"`
	Description        string          `json:"description"`
	CategoryID         uint            `json:"category_id" binding:"required"`
	SubcategoryID      *uint           `json:"subcategory_id"`
	BrandID            *uint           `json:"brand_id"`
	Price              decimal.Decimal `json:"price" swaggertype:"string" example:"2.50"`
	MRP                decimal.Decimal `json:"mrp" swaggertype:"string" example:"3.00"`
	Unit               string          `json:"unit" binding:"omitempty,max=20"`
	QuantityPerUnit    string          `json:"quantity_per_unit" binding:"omitempty,max=50"`
	WeightQuantity     string          `json:"weight_quantity" binding:"omitempty,max=50"`
	DiscountPercentage int             `json:"discount_percentage" binding:"min=0,max=100"`
	ImageURL           string          `json:"image_url" binding:"omitempty,url"`
	ImageURLs          []string        `json:"image_urls" binding:"omitempty,dive,url"`
	Tags               []string        `json:"tags"`
	IsFeatured         bool            `json:"is_featured"`
	IsTrending         bool            `json:"is_trending"`
	IsNewArrival       bool            `json:"is_new_arrival"`
	MinOrderQuantity   int             `json:"min_order_quantity" binding:"min=0"`
	MaxOrderQuantity   *int            `json:"max_order_quantity" binding:"omitempty,min=1"`
}

// CreateProductRequest 创建商品请求,is_available缺省为true
type CreateProductRequest struct {
	ProductRequest
	Stock       int   `json:"stock" binding:"min=0"`
	IsAvailable *bool `json:"is_available"`
}

// RestockRequest 补货请求
type RestockRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// ListProductsQuery 商品列表查询参数
type ListProductsQuery struct {
	PageQuery
	Keyword       string `form:"keyword"`
	CategoryID    uint   `form:"category_id"`
	SubcategoryID uint   `form:"subcategory_id"`
	BrandID       uint   `form:"brand_id"`
	Featured      bool   `form:"featured"`
	Available     bool   `form:"available"`
	Sort          string `form:"sort" binding:"omitempty,oneof=newest price_asc price_desc rating"`
}

// ToParams 转换为仓储查询参数
func (q ListProductsQuery) ToParams() product.ListParams {
	page, size := q.Normalize()
	return product.ListParams{
		Page:          page,
		PageSize:      size,
		Keyword:       q.Keyword,
		CategoryID:    q.CategoryID,
		SubcategoryID: q.SubcategoryID,
		BrandID:       q.BrandID,
		FeaturedOnly:  q.Featured,
		AvailableOnly: q.Available,
		SortBy:        product.SortBy(q.Sort),
	}
}

func (r ProductRequest) ToAttributes() product.Attributes {
	return product.Attributes{
		Name:               r.Name,
		Description:        r.Description,
		CategoryID:         r.CategoryID,
		SubcategoryID:      r.SubcategoryID,
		BrandID:            r.BrandID,
		Price:              r.Price,
		MRP:                r.MRP,
		Unit:               r.Unit,
		QuantityPerUnit:    r.QuantityPerUnit,
		WeightQuantity:     r.WeightQuantity,
		DiscountPercentage: r.DiscountPercentage,
		ImageURL:           r.ImageURL,
		ImageURLs:          r.ImageURLs,
		Tags:               r.Tags,
		IsFeatured:         r.IsFeatured,
		IsTrending:         r.IsTrending,
		IsNewArrival:       r.IsNewArrival,
		MinOrderQuantity:   r.MinOrderQuantity,
		MaxOrderQuantity:   r.MaxOrderQuantity,
	}
}

// Available 未传is_available时按上架处理
func (r CreateProductRequest) Available() bool {
	return r.IsAvailable == nil || *r.IsAvailable
}

// ProductResponse 商品响应
type ProductResponse struct {
	ID                 uint            `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	CategoryID         uint            `json:"category_id"`
	CategoryName       string          `json:"category_name,omitempty"`
	SubcategoryID      *uint           `json:"subcategory_id,omitempty"`
	BrandID            *uint           `json:"brand_id,omitempty"`
	BrandName          string          `json:"brand_name,omitempty"`
	Price              decimal.Decimal `json:"price" swaggertype:"string"`
	MRP                decimal.Decimal `json:"mrp" swaggertype:"string"`
	Stock              int             `json:"stock"`
	IsAvailable        bool            `json:"is_available"`
	Unit               string          `json:"unit,omitempty"`
	QuantityPerUnit    string          `json:"quantity_per_unit,omitempty"`
	WeightQuantity     string          `json:"weight_quantity,omitempty"`
	DiscountPercentage int             `json:"discount_percentage"`
	ImageURL           string          `json:"image_url,omitempty"`
	ImageURLs          []string        `json:"image_urls,omitempty"`
	Tags               []string        `json:"tags,omitempty"`
	IsFeatured         bool            `json:"is_featured"`
	IsTrending         bool            `json:"is_trending"`
	IsNewArrival       bool            `json:"is_new_arrival"`
	Rating             decimal.Decimal `json:"rating" swaggertype:"string"`
	ReviewCount        int             `json:"review_count"`
	MinOrderQuantity   int             `json:"min_order_quantity"`
	MaxOrderQuantity   *int            `json:"max_order_quantity,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func ToProductResponse(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		CategoryID:         p.CategoryID,
		CategoryName:       p.CategoryName,
		SubcategoryID:      p.SubcategoryID,
		BrandID:            p.BrandID,
		BrandName:          p.BrandName,
		Price:              p.Price,
		MRP:                p.MRP,
		Stock:              p.Stock,
		IsAvailable:        p.IsAvailable,
		Unit:               p.Unit,
		QuantityPerUnit:    p.QuantityPerUnit,
		WeightQuantity:     p.WeightQuantity,
		DiscountPercentage: p.DiscountPercentage,
		ImageURL:           p.ImageURL,
		ImageURLs:          p.ImageURLs,
		Tags:               p.Tags,
		IsFeatured:         p.IsFeatured,
		IsTrending:         p.IsTrending,
		IsNewArrival:       p.IsNewArrival,
		Rating:             p.Rating,
		ReviewCount:        p.ReviewCount,
		MinOrderQuantity:   p.MinOrderQuantity,
		MaxOrderQuantity:   p.MaxOrderQuantity,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func ToProductList(products []*product.Product) []*ProductResponse {
	list := make([]*ProductResponse, len(products))
	for i, p := range products {
		list[i] = ToProductResponse(p)
	}
	return list
}

// StockChangeResponse 补货结果
type StockChangeResponse struct {
	ProductID   uint `json:"product_id"`
	Quantity    int  `json:"quantity"`
	StockBefore int  `json:"stock_before"`
	StockAfter  int  `json:"stock_after"`
	IsAvailable bool `json:"is_available"`
}

func ToStockChangeResponse(c product.StockChange) *StockChangeResponse {
	return &StockChangeResponse{
		ProductID:   c.ProductID,
		Quantity:    c.Quantity,
		StockBefore: c.StockBefore,
		StockAfter:  c.StockAfter,
		IsAvailable: c.IsAvailable,
	}
}

// StockLogResponse 库存流水
type StockLogResponse struct {
	ID          uint      `json:"id"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	StockBefore int       `json:"stock_before"`
	StockAfter  int       `json:"stock_after"`
	Reference   string    `json:"reference"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToStockLogList(logs []*product.StockLog) []*StockLogResponse {
	list := make([]*StockLogResponse, len(logs))
	for i, l := range logs {
		list[i] = &StockLogResponse{
			ID:          l.ID,
			Type:        string(l.Type),
			Quantity:    l.Quantity,
			StockBefore: l.StockBefore,
			StockAfter:  l.StockAfter,
			Reference:   l.Reference,
			CreatedAt:   l.CreatedAt,
		}
	}
	return list
}

// ProductStatsResponse 商品统计
type ProductStatsResponse struct {
	TotalProducts     int64                   `json:"total_products"`
	AvailableProducts int64                   `json:"available_products"`
	OutOfStock        int64                   `json:"out_of_stock"`
	ByCategory        []CategoryCountResponse `json:"by_category"`
}

type CategoryCountResponse struct {
	CategoryID   uint   `json:"category_id"`
	CategoryName string `json:"category_name"`
	Count        int64  `json:"count"`
}

func ToProductStatsResponse(s *product.Stats) *ProductStatsResponse {
	resp := &ProductStatsResponse{
		TotalProducts:     s.TotalProducts,
		AvailableProducts: s.AvailableProducts,
		OutOfStock:        s.OutOfStock,
		ByCategory:        make([]CategoryCountResponse, len(s.ByCategory)),
	}
	for i, c := range s.ByCategory {
		resp.ByCategory[i] = CategoryCountResponse(c)
	}
	return resp
}
