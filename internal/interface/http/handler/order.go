package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/grocery/internal/application/order"
	"github.com/xiebiao/grocery/internal/interface/http/dto"
	"github.com/xiebiao/grocery/internal/interface/http/middleware"
	"github.com/xiebiao/grocery/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	create       *apporder.CreateOrderUseCase
	query        *apporder.QueryOrderUseCase
	cancel       *apporder.CancelOrderUseCase
	updateStatus *apporder.UpdateStatusUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	create *apporder.CreateOrderUseCase,
	query *apporder.QueryOrderUseCase,
	cancel *apporder.CancelOrderUseCase,
	updateStatus *apporder.UpdateStatusUseCase,
) *OrderHandler {
	return &OrderHandler{
		create:       create,
		query:        query,
		cancel:       cancel,
		updateStatus: updateStatus,
	}
}

func actor(c *gin.Context) apporder.Actor {
	return apporder.Actor{UserID: middleware.GetUserID(c), IsAdmin: middleware.IsAdmin(c)}
}

// Create 创建订单
// @Summary      创建订单
// @Description  按请求顺序逐行扣减库存，整个下单过程在一个事务中完成：任一商品库存不足则全部回滚
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateOrderRequest true "订单信息"
// @Success      201 {object} response.Response{data=dto.OrderResponse} "下单成功"
// @Failure      400 {object} response.Response "参数错误或库存不足(data含product/requested/available)"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "商品或地址不存在"
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	o, err := h.create.Execute(c.Request.Context(), apporder.CreateOrderRequest{
		UserID:        middleware.GetUserID(c),
		Lines:         req.ToLines(),
		PaymentMethod: req.PaymentMethod,
		AddressID:     req.AddressID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToOrderResponse(o))
}

// List 我的订单
// @Summary      我的订单
// @Description  最新的在前
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=response.PageData{list=[]dto.OrderResponse}}
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	page, size := q.Normalize()

	list, total, err := h.query.ListByUser(c.Request.Context(), middleware.GetUserID(c), page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, dto.ToOrderList(list), total, page, size)
}

// Get 订单详情
// @Summary      订单详情
// @Description  只能查看自己的订单（管理员除外），他人订单返回404
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	o, err := h.query.GetByID(c.Request.Context(), actor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToOrderResponse(o))
}

// GetByNumber 按订单号查询
// @Summary      按订单号查询
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        orderNo path string true "订单号"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /orders/number/{orderNo} [get]
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	o, err := h.query.GetByOrderNumber(c.Request.Context(), actor(c), c.Param("orderNo"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToOrderResponse(o))
}

// Cancel 取消订单
// @Summary      取消订单
// @Description  已送达或已取消的订单不能取消；取消后归还库存
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      404 {object} response.Response "订单不存在"
// @Failure      409 {object} response.Response "当前状态不允许取消"
// @Router       /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	o, err := h.cancel.Execute(c.Request.Context(), actor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToOrderResponse(o))
}

// UpdateStatus 修改订单状态
// @Summary      修改订单状态
// @Description  改为DELIVERED时记录送达时间；改为CANCELLED不会归还库存，归还库存请使用取消接口
// @Tags         管理后台
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                          true "订单ID"
// @Param        request body dto.UpdateOrderStatusRequest true "新状态"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      400 {object} response.Response "无效的状态"
// @Router       /admin/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	o, err := h.updateStatus.Execute(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToOrderResponse(o))
}
