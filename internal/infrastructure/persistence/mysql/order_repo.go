package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/grocery/internal/domain/order"
	apperrors "github.com/xiebiao/grocery/pkg/errors"
)

// orderRepository 订单仓储实现(MySQL)
// 1. Order和明细是聚合关系,必须一起保存
// 2. 查询时使用Preload预加载明细,避免N+1问题
// 3. 事务通过context传递
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单(包含明细)
// 订单号冲突由唯一索引发现,转换为ErrOrderNumberGenerate
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return order.ErrOrderNumberGenerate.WithMessagef("订单号冲突: %s", o.OrderNumber)
		}
		return apperrors.Wrap(err, "创建订单失败")
	}

	o.ID = model.ID
	for i := range o.Lines {
		o.Lines[i].ID = model.Items[i].ID
	}
	return nil
}

// FindByID 使用Preload预加载明细
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	if err := r.getDB(ctx).Preload("Items", orderItemsByID).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, order.NotFound(id)
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

func (r *orderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	var model OrderModel
	err := r.getDB(ctx).Preload("Items", orderItemsByID).Where("order_number = ?", orderNumber).First(&model).Error
	if err != nil {
		if isNotFound(err) {
			return nil, order.NotFound(orderNumber)
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// UpdateStatus 覆盖状态与送达时间,不更新明细
func (r *orderRepository) UpdateStatus(ctx context.Context, o *order.Order) error {
	result := r.getDB(ctx).Model(&OrderModel{}).Where("id = ?", o.ID).Updates(map[string]interface{}{
		"status":       string(o.Status),
		"delivered_at": o.DeliveredAt,
		"updated_at":   o.UpdatedAt,
	})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单失败")
	}
	if result.RowsAffected == 0 {
		return order.NotFound(o.ID)
	}
	return nil
}

// CompareAndSetStatus UPDATE orders SET status = to WHERE id = ? AND status = from
func (r *orderRepository) CompareAndSetStatus(ctx context.Context, id uint, from, to order.Status) (bool, error) {
	result := r.getDB(ctx).Model(&OrderModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if result.Error != nil {
		return false, apperrors.Wrap(result.Error, "更新订单状态失败")
	}
	return result.RowsAffected == 1, nil
}

// ListByUserID 查询用户的订单列表,最新的在前
func (r *orderRepository) ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*order.Order, int64, error) {
	var (
		models []OrderModel
		total  int64
	)

	query := r.getDB(ctx).Model(&OrderModel{}).Where("user_id = ?", userID).Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	err := query.Preload("Items", orderItemsByID).
		Order("created_at DESC, id DESC").
		Scopes(paginate(page, pageSize)).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, total, nil
}

func (r *orderRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// 明细按插入顺序返回,与下单时的行顺序一致
func orderItemsByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Lines))
	for i, l := range o.Lines {
		items[i] = OrderItemModel{
			ID:          l.ID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		}
	}

	return &OrderModel{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		UserID:           o.UserID,
		Total:            o.Total,
		Status:           string(o.Status),
		PaymentMethod:    o.PaymentMethod,
		PaymentStatus:    o.PaymentStatus,
		DeliveryFullName: o.Delivery.FullName,
		DeliveryPhone:    o.Delivery.Phone,
		DeliveryAddress:  o.Delivery.Address,
		DeliveryCity:     o.Delivery.City,
		DeliveryState:    o.Delivery.State,
		DeliveryPincode:  o.Delivery.Pincode,
		DeliveredAt:      o.DeliveredAt,
		Items:            items,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

func toOrderEntity(m *OrderModel) *order.Order {
	lines := make([]order.Line, len(m.Items))
	for i, it := range m.Items {
		lines[i] = order.Line{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		}
	}

	return &order.Order{
		ID:            m.ID,
		OrderNumber:   m.OrderNumber,
		UserID:        m.UserID,
		Lines:         lines,
		Total:         m.Total,
		Status:        order.Status(m.Status),
		PaymentMethod: m.PaymentMethod,
		PaymentStatus: m.PaymentStatus,
		Delivery: order.Delivery{
			FullName: m.DeliveryFullName,
			Phone:    m.DeliveryPhone,
			Address:  m.DeliveryAddress,
			City:     m.DeliveryCity,
			State:    m.DeliveryState,
			Pincode:  m.DeliveryPincode,
		},
		DeliveredAt: m.DeliveredAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
