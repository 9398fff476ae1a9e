package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/grocery/internal/application/cart"
	apporder "github.com/xiebiao/grocery/internal/application/order"
	"github.com/xiebiao/grocery/internal/interface/http/dto"
	"github.com/xiebiao/grocery/internal/interface/http/middleware"
	"github.com/xiebiao/grocery/pkg/response"
)

// CartHandler 购物车与结算
type CartHandler struct {
	cart     *appcart.UseCase
	checkout *apporder.CheckoutUseCase
}

func NewCartHandler(cart *appcart.UseCase, checkout *apporder.CheckoutUseCase) *CartHandler {
	return &CartHandler{cart: cart, checkout: checkout}
}

// Get 我的购物车
// @Summary      我的购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.CartResponse}
// @Router       /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	ct, err := h.cart.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToCartResponse(ct))
}

// AddItem 加入购物车
// @Summary      加入购物车
// @Description  同一商品数量累加，按累加后的数量检查库存；加入购物车不占用库存
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddCartItemRequest true "商品与数量"
// @Success      200 {object} response.Response{data=dto.CartResponse}
// @Failure      400 {object} response.Response "库存不足或商品已下架"
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	ct, err := h.cart.AddItem(c.Request.Context(), middleware.GetUserID(c), req.ProductID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToCartResponse(ct))
}

// UpdateItem 修改数量
// @Summary      修改购物车商品数量
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                       true "条目ID"
// @Param        request body dto.UpdateCartItemRequest true "数量"
// @Success      200 {object} response.Response{data=dto.CartResponse}
// @Router       /cart/items/{id} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	ct, err := h.cart.UpdateItem(c.Request.Context(), middleware.GetUserID(c), id, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToCartResponse(ct))
}

// RemoveItem 删除条目
// @Summary      删除购物车商品
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "条目ID"
// @Success      200 {object} response.Response{data=dto.CartResponse}
// @Router       /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ct, err := h.cart.RemoveItem(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToCartResponse(ct))
}

// Clear 清空购物车
// @Summary      清空购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cart.Clear(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Checkout 购物车结算
// @Summary      购物车结算
// @Description  购物车转为订单并清空购物车；清空失败时取消订单并归还库存
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CheckoutRequest true "支付方式与收货地址"
// @Success      201 {object} response.Response{data=dto.OrderResponse}
// @Failure      400 {object} response.Response "购物车为空或库存不足"
// @Router       /cart/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	o, err := h.checkout.Execute(c.Request.Context(), middleware.GetUserID(c), req.PaymentMethod, req.AddressID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToOrderResponse(o))
}
