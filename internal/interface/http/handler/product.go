package handler

import (
	"github.com/gin-gonic/gin"

	appproduct "github.com/xiebiao/grocery/internal/application/product"
	"github.com/xiebiao/grocery/internal/interface/http/dto"
	"github.com/xiebiao/grocery/internal/interface/http/middleware"
	"github.com/xiebiao/grocery/pkg/response"
)

// ProductHandler 商品HTTP处理器(浏览 + 管理后台)
type ProductHandler struct {
	query  *appproduct.QueryProductUseCase
	manage *appproduct.ManageProductUseCase
}

// NewProductHandler 创建商品处理器
func NewProductHandler(query *appproduct.QueryProductUseCase, manage *appproduct.ManageProductUseCase) *ProductHandler {
	return &ProductHandler{query: query, manage: manage}
}

// List 商品列表
// @Summary      商品列表
// @Description  分页查询；keyword匹配名称、描述、标签，去除空白后至少2个字符
// @Tags         商品
// @Produce      json
// @Param        keyword        query string false "关键词"
// @Param        category_id    query int    false "分类ID"
// @Param        subcategory_id query int    false "子分类ID"
// @Param        brand_id       query int    false "品牌ID"
// @Param        featured       query bool   false "只看推荐"
// @Param        available      query bool   false "只看可售"
// @Param        sort           query string false "排序" Enums(newest, price_asc, price_desc, rating)
// @Param        page           query int    false "页码" default(1)
// @Param        page_size      query int    false "每页数量" default(20)
// @Success      200 {object} response.Response{data=response.PageData{list=[]dto.ProductResponse}}
// @Failure      400 {object} response.Response "关键词过短"
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var q dto.ListProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	params := q.ToParams()
	list, total, err := h.query.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, dto.ToProductList(list), total, params.Page, params.PageSize)
}

// Featured 推荐商品
// @Summary      推荐商品
// @Tags         商品
// @Produce      json
// @Param        limit query int false "数量(1-50)" default(10)
// @Success      200 {object} response.Response{data=[]dto.ProductResponse}
// @Router       /products/featured [get]
func (h *ProductHandler) Featured(c *gin.Context) {
	list, err := h.query.Featured(c.Request.Context(), queryInt(c, "limit", 0))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProductList(list))
}

// Get 商品详情
// @Summary      商品详情
// @Tags         商品
// @Produce      json
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response{data=dto.ProductResponse}
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.query.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProductResponse(p))
}

// ByCategory 按分类slug查询商品
// @Summary      分类下的商品
// @Description  slug为kebab-case分类名，如 fresh-fruits
// @Tags         商品
// @Produce      json
// @Param        category  path  string true  "分类slug"
// @Param        page      query int    false "页码" default(1)
// @Param        page_size query int    false "每页数量" default(20)
// @Success      200 {object} response.Response{data=response.PageData{list=[]dto.ProductResponse}}
// @Router       /categories/{category}/products [get]
func (h *ProductHandler) ByCategory(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	page, size := q.Normalize()

	list, total, err := h.query.ByCategorySlug(c.Request.Context(), c.Param("category"), page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, dto.ToProductList(list), total, page, size)
}

// Create 创建商品
// @Summary      创建商品
// @Description  可售状态 = is_available && stock > 0
// @Tags         管理后台
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateProductRequest true "商品信息"
// @Success      201 {object} response.Response{data=dto.ProductResponse}
// @Failure      400 {object} response.Response "参数错误或子分类不属于该分类"
// @Failure      403 {object} response.Response "无权限"
// @Failure      404 {object} response.Response "分类/子分类/品牌不存在"
// @Router       /admin/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	p, err := h.manage.Create(c.Request.Context(), appproduct.CreateProductRequest{
		Attributes:  req.ToAttributes(),
		Stock:       req.Stock,
		IsAvailable: req.Available(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToProductResponse(p))
}

// Update 更新商品
// @Summary      更新商品
// @Description  库存与可售状态不可通过此接口修改，请使用补货接口
// @Tags         管理后台
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                true "商品ID"
// @Param        request body dto.ProductRequest true "商品信息"
// @Success      200 {object} response.Response{data=dto.ProductResponse}
// @Router       /admin/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	p, err := h.manage.Update(c.Request.Context(), id, req.ToAttributes())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProductResponse(p))
}

// Delete 删除商品(软删除)
// @Summary      删除商品
// @Tags         管理后台
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response
// @Router       /admin/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.manage.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Restock 补货
// @Summary      补货
// @Description  库存从0补货后商品自动恢复可售
// @Tags         管理后台
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                true "商品ID"
// @Param        request body dto.RestockRequest true "补货数量"
// @Success      200 {object} response.Response{data=dto.StockChangeResponse}
// @Router       /admin/products/{id}/restock [post]
func (h *ProductHandler) Restock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	change, err := h.manage.Restock(c.Request.Context(), id, req.Quantity, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToStockChangeResponse(change))
}

// StockLogs 库存流水
// @Summary      库存流水
// @Tags         管理后台
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int true  "商品ID"
// @Param        limit query int false "条数" default(50)
// @Success      200 {object} response.Response{data=[]dto.StockLogResponse}
// @Router       /admin/products/{id}/stock-logs [get]
func (h *ProductHandler) StockLogs(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	logs, err := h.manage.StockLogs(c.Request.Context(), id, queryInt(c, "limit", 50))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToStockLogList(logs))
}
