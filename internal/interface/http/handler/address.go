package handler

import (
	"github.com/gin-gonic/gin"

	appaddress "github.com/xiebiao/grocery/internal/application/address"
	"github.com/xiebiao/grocery/internal/interface/http/dto"
	"github.com/xiebiao/grocery/internal/interface/http/middleware"
	"github.com/xiebiao/grocery/pkg/response"
)

// AddressHandler 收货地址，所有操作限定在当前用户范围内
type AddressHandler struct {
	addresses *appaddress.UseCase
}

func NewAddressHandler(addresses *appaddress.UseCase) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

// Create 新增地址
// @Summary      新增地址
// @Description  第一个地址自动设为默认
// @Tags         地址
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddressRequest true "地址"
// @Success      201 {object} response.Response{data=dto.AddressResponse}
// @Router       /addresses [post]
func (h *AddressHandler) Create(c *gin.Context) {
	var req dto.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	a, err := h.addresses.Create(c.Request.Context(), middleware.GetUserID(c), req.ToFields())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToAddressResponse(a))
}

// List 地址列表
// @Summary      地址列表
// @Description  默认地址在前
// @Tags         地址
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]dto.AddressResponse}
// @Router       /addresses [get]
func (h *AddressHandler) List(c *gin.Context) {
	list, err := h.addresses.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToAddressList(list))
}

// Get 地址详情
// @Summary      地址详情
// @Tags         地址
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "地址ID"
// @Success      200 {object} response.Response{data=dto.AddressResponse}
// @Failure      404 {object} response.Response "地址不存在"
// @Router       /addresses/{id} [get]
func (h *AddressHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, err := h.addresses.Get(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToAddressResponse(a))
}

// Update 修改地址
// @Summary      修改地址
// @Tags         地址
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                true "地址ID"
// @Param        request body dto.AddressRequest true "地址"
// @Success      200 {object} response.Response{data=dto.AddressResponse}
// @Router       /addresses/{id} [put]
func (h *AddressHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	a, err := h.addresses.Update(c.Request.Context(), middleware.GetUserID(c), id, req.ToFields())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToAddressResponse(a))
}

// Delete 删除地址
// @Summary      删除地址
// @Tags         地址
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "地址ID"
// @Success      200 {object} response.Response
// @Router       /addresses/{id} [delete]
func (h *AddressHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.addresses.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// SetDefault 设为默认地址
// @Summary      设为默认地址
// @Tags         地址
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "地址ID"
// @Success      200 {object} response.Response{data=dto.AddressResponse}
// @Router       /addresses/{id}/default [put]
func (h *AddressHandler) SetDefault(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, err := h.addresses.SetDefault(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToAddressResponse(a))
}
