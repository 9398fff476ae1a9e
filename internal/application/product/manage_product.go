package product

import (
	"context"
	"fmt"

	"github.com/xiebiao/grocery/internal/application/event"
	"github.com/xiebiao/grocery/internal/domain/catalog"
	"github.com/xiebiao/grocery/internal/domain/product"
)

// ManageProductUseCase 管理员维护商品
// 写操作完成后删除缓存,下次读取时重新加载
type ManageProductUseCase struct {
	productRepo product.Repository
	catalogRepo catalog.Repository
	ledger      *product.Ledger
	cache       Cache
	publisher   event.Publisher
}

// NewManageProductUseCase 创建商品维护用例
func NewManageProductUseCase(
	productRepo product.Repository,
	catalogRepo catalog.Repository,
	ledger *product.Ledger,
	cache Cache,
	publisher event.Publisher,
) *ManageProductUseCase {
	return &ManageProductUseCase{
		productRepo: productRepo,
		catalogRepo: catalogRepo,
		ledger:      ledger,
		cache:       cache,
		publisher:   publisher,
	}
}

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	Attributes  product.Attributes
	Stock       int
	IsAvailable bool
}

// Create 创建商品,可售状态 = 请求值 && 库存>0
func (uc *ManageProductUseCase) Create(ctx context.Context, req CreateProductRequest) (*product.Product, error) {
	p, err := product.NewProduct(req.Attributes, req.Stock, req.IsAvailable)
	if err != nil {
		return nil, err
	}
	if err := uc.checkReferences(ctx, req.Attributes); err != nil {
		return nil, err
	}

	if err := uc.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return uc.productRepo.FindByID(ctx, p.ID)
}

// Update 更新商品信息,库存与可售状态不在可编辑范围内
func (uc *ManageProductUseCase) Update(ctx context.Context, id uint, attrs product.Attributes) (*product.Product, error) {
	p, err := uc.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Apply(attrs); err != nil {
		return nil, err
	}
	if err := uc.checkReferences(ctx, attrs); err != nil {
		return nil, err
	}

	if err := uc.productRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, id)
	return uc.productRepo.FindByID(ctx, id)
}

// Delete 软删除商品,已有订单中的快照不受影响
func (uc *ManageProductUseCase) Delete(ctx context.Context, id uint) error {
	if err := uc.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.cache.Invalidate(ctx, id)
	return nil
}

// Restock 补货,流水中记录操作人
func (uc *ManageProductUseCase) Restock(ctx context.Context, id uint, quantity int, adminID uint) (product.StockChange, error) {
	reference := fmt.Sprintf("admin:%d", adminID)
	change, err := uc.ledger.Increase(ctx, id, quantity, product.ChangeRestock, reference)
	if err != nil {
		return product.StockChange{}, err
	}

	uc.cache.Invalidate(ctx, id)
	if change.BackInStock() {
		event.Emit(ctx, uc.publisher, event.ProductBackInStock, event.StockEvent{
			ProductID:   change.ProductID,
			ProductName: change.ProductName,
			Stock:       change.StockAfter,
			Reference:   reference,
		})
	}
	return change, nil
}

// StockLogs 商品库存流水,最新的在前
func (uc *ManageProductUseCase) StockLogs(ctx context.Context, id uint, limit int) ([]*product.StockLog, error) {
	if _, err := uc.productRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.productRepo.ListStockLogs(ctx, id, limit)
}

// checkReferences 分类必须存在;子分类、品牌可选,但填写了就必须存在
func (uc *ManageProductUseCase) checkReferences(ctx context.Context, attrs product.Attributes) error {
	if _, err := uc.catalogRepo.FindCategoryByID(ctx, attrs.CategoryID); err != nil {
		return err
	}
	if attrs.SubcategoryID != nil {
		sub, err := uc.catalogRepo.FindSubcategoryByID(ctx, *attrs.SubcategoryID)
		if err != nil {
			return err
		}
		if sub.CategoryID != attrs.CategoryID {
			return catalog.ErrSubcategoryMismatch
		}
	}
	if attrs.BrandID != nil {
		if _, err := uc.catalogRepo.FindBrandByID(ctx, *attrs.BrandID); err != nil {
			return err
		}
	}
	return nil
}
