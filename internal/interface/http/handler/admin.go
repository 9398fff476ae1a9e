package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/grocery/internal/application/admin"
	"github.com/xiebiao/grocery/internal/interface/http/dto"
	"github.com/xiebiao/grocery/pkg/response"
)

// AdminHandler 管理后台统计
type AdminHandler struct {
	admin *admin.UseCase
}

func NewAdminHandler(uc *admin.UseCase) *AdminHandler {
	return &AdminHandler{admin: uc}
}

// ProductStats 商品统计
// @Summary      商品统计
// @Tags         管理后台
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.ProductStatsResponse}
// @Router       /admin/product-stats [get]
func (h *AdminHandler) ProductStats(c *gin.Context) {
	stats, err := h.admin.ProductStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProductStatsResponse(stats))
}

// ListUsers 用户列表
// @Summary      用户列表
// @Tags         管理后台
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=response.PageData{list=[]dto.UserResponse}}
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	page, size := q.Normalize()

	users, total, err := h.admin.ListUsers(c.Request.Context(), page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, dto.ToUserList(users), total, page, size)
}
