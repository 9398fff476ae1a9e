package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/xiebiao/grocery/internal/application/catalog"
	"github.com/xiebiao/grocery/internal/interface/http/dto"
	"github.com/xiebiao/grocery/pkg/response"
)

// CatalogHandler 分类、子分类、品牌
type CatalogHandler struct {
	catalog *appcatalog.UseCase
}

func NewCatalogHandler(catalog *appcatalog.UseCase) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListCategories 分类列表
// @Summary      分类列表
// @Description  启用中的分类，按展示顺序、名称排序
// @Tags         分类
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.CategoryResponse}
// @Router       /categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	list, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToCategoryList(list))
}

// ListCategoryNames 分类名
// @Summary      分类名列表
// @Tags         分类
// @Produce      json
// @Success      200 {object} response.Response{data=[]string}
// @Router       /categories/names [get]
func (h *CatalogHandler) ListCategoryNames(c *gin.Context) {
	names, err := h.catalog.ListCategoryNames(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, names)
}

// ListSubcategories 子分类列表
// @Summary      子分类列表
// @Tags         分类
// @Produce      json
// @Param        category path int true "分类ID"
// @Success      200 {object} response.Response{data=[]dto.SubcategoryResponse}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /categories/{category}/subcategories [get]
func (h *CatalogHandler) ListSubcategories(c *gin.Context) {
	id, ok := pathID(c, "category")
	if !ok {
		return
	}
	list, err := h.catalog.ListSubcategories(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToSubcategoryList(list))
}

// ListBrands 品牌列表
// @Summary      品牌列表
// @Tags         分类
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.BrandResponse}
// @Router       /brands [get]
func (h *CatalogHandler) ListBrands(c *gin.Context) {
	list, err := h.catalog.ListBrands(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToBrandList(list))
}

// CreateCategory 创建分类
// @Summary      创建分类
// @Tags         管理后台
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CategoryRequest true "分类"
// @Success      201 {object} response.Response{data=dto.CategoryResponse}
// @Failure      409 {object} response.Response "分类名已存在"
// @Router       /admin/categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	cat, err := h.catalog.CreateCategory(c.Request.Context(), appcatalog.CategoryRequest{
		Name:         req.Name,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		IconURL:      req.IconURL,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToCategoryResponse(cat))
}

// CreateSubcategory 创建子分类
// @Summary      创建子分类
// @Tags         管理后台
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.SubcategoryRequest true "子分类"
// @Success      201 {object} response.Response{data=dto.SubcategoryResponse}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /admin/subcategories [post]
func (h *CatalogHandler) CreateSubcategory(c *gin.Context) {
	var req dto.SubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	sub, err := h.catalog.CreateSubcategory(c.Request.Context(), appcatalog.SubcategoryRequest{
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToSubcategoryResponse(sub))
}

// CreateBrand 创建品牌
// @Summary      创建品牌
// @Tags         管理后台
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BrandRequest true "品牌"
// @Success      201 {object} response.Response{data=dto.BrandResponse}
// @Failure      409 {object} response.Response "品牌已存在"
// @Router       /admin/brands [post]
func (h *CatalogHandler) CreateBrand(c *gin.Context) {
	var req dto.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	b, err := h.catalog.CreateBrand(c.Request.Context(), appcatalog.BrandRequest{
		Name:        req.Name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToBrandResponse(b))
}
