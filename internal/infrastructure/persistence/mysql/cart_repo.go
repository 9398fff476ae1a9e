package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/grocery/internal/domain/cart"
	apperrors "github.com/xiebiao/grocery/pkg/errors"
)

// cartRepository 购物车仓储实现
// 每个用户只有一个购物车(user_id唯一索引),条目按(cart_id, product_id)唯一
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

// GetOrCreate 获取用户购物车,不存在则创建
// 并发首次访问时由唯一索引兜底:插入冲突后重新读取
func (r *cartRepository) GetOrCreate(ctx context.Context, userID uint) (*cart.Cart, error) {
	db := r.getDB(ctx)

	var model CartModel
	err := db.Where(CartModel{UserID: userID}).FirstOrCreate(&model).Error
	if isDuplicateError(err) {
		err = db.Where("user_id = ?", userID).First(&model).Error
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "获取购物车失败")
	}

	err = db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("id ASC")
	}).Preload("Items.Product").First(&model, model.ID).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}

	return toCartEntity(&model), nil
}

func (r *cartRepository) FindItem(ctx context.Context, cartID, itemID uint) (*cart.Item, error) {
	var model CartItemModel
	err := r.getDB(ctx).Preload("Product").
		Where("id = ? AND cart_id = ?", itemID, cartID).
		First(&model).Error
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound(cart.ErrItemNotFound, "cart_item", itemID)
		}
		return nil, apperrors.Wrap(err, "查询购物车条目失败")
	}
	item := toCartItemEntity(&model)
	return &item, nil
}

// SaveItem 新增或覆盖条目(按主键)
func (r *cartRepository) SaveItem(ctx context.Context, item *cart.Item) error {
	model := &CartItemModel{
		ID:         item.ID,
		CartID:     item.CartID,
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
		PriceAtAdd: item.PriceAtAdd,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
	if err := r.getDB(ctx).Omit(clause.Associations).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "保存购物车条目失败")
	}
	item.ID = model.ID
	item.CreatedAt = model.CreatedAt
	item.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, cartID, itemID uint) error {
	result := r.getDB(ctx).Where("id = ? AND cart_id = ?", itemID, cartID).Delete(&CartItemModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除购物车条目失败")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound(cart.ErrItemNotFound, "cart_item", itemID)
	}
	return nil
}

// Clear 清空购物车,空购物车也视为成功
func (r *cartRepository) Clear(ctx context.Context, cartID uint) error {
	if err := r.getDB(ctx).Where("cart_id = ?", cartID).Delete(&CartItemModel{}).Error; err != nil {
		return apperrors.Wrap(err, "清空购物车失败")
	}
	return nil
}

func (r *cartRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func toCartEntity(m *CartModel) *cart.Cart {
	items := make([]cart.Item, len(m.Items))
	for i := range m.Items {
		items[i] = toCartItemEntity(&m.Items[i])
	}
	return &cart.Cart{
		ID:        m.ID,
		UserID:    m.UserID,
		Items:     items,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// 商品被软删除时Product为nil,名称留空
func toCartItemEntity(m *CartItemModel) cart.Item {
	item := cart.Item{
		ID:         m.ID,
		CartID:     m.CartID,
		ProductID:  m.ProductID,
		Quantity:   m.Quantity,
		PriceAtAdd: m.PriceAtAdd,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.Product != nil {
		item.ProductName = m.Product.Name
	}
	return item
}
