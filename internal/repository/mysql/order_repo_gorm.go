package mysql

import (
	"context"
	"errors"

	"github.com/JJ00428/market-api/internal/apperr"
	"github.com/JJ00428/market-api/internal/domain"
	"github.com/JJ00428/market-api/internal/repository"
	"gorm.io/gorm"
)

var orderColumns = map[string]bool{
	"id": true, "customer_id": true, "total_price": true, "status": true,
	"payment": true, "created_at": true, "updated_at": true,
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *domain.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return apperr.Wrap(apperr.KindInternal, "create order", err)
	}
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.Wrap(apperr.KindInternal, "find order", err)
	}
	return &o, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) error {
	err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "update order status", err)
	}
	return nil
}

func (r *orderRepo) UpdateAfterRemoval(ctx context.Context, orderID, productID uint64, total float64, notes string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ? AND product_id = ?", orderID, productID).
			Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Order{}).Where("id = ?", orderID).
			Updates(map[string]any{"total_price": total, "notes": notes}).Error
	})
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "remove order line", err)
	}
	return nil
}

func (r *orderRepo) List(ctx context.Context, q repository.ListQuery) ([]domain.Order, error) {
	var out []domain.Order
	db := applyListQuery(r.db.WithContext(ctx).Model(&domain.Order{}), q, orderColumns)
	if err := db.Preload("Items").Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list orders", err)
	}
	return out, nil
}

func (r *orderRepo) ListByCustomer(ctx context.Context, customerID uint64, q repository.ListQuery) ([]domain.Order, error) {
	var out []domain.Order
	db := applyListQuery(r.db.WithContext(ctx).Model(&domain.Order{}), q, orderColumns).
		Where("customer_id = ?", customerID)
	if err := db.Preload("Items").Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list customer orders", err)
	}
	return out, nil
}

// ListBySeller joins through order items: a seller's orders are exactly the
// orders containing at least one of their lines.
func (r *orderRepo) ListBySeller(ctx context.Context, sellerID uint64, q repository.ListQuery) ([]domain.Order, error) {
	var out []domain.Order
	db := applyListQuery(r.db.WithContext(ctx).Model(&domain.Order{}), q, orderColumns).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("order_items.seller_id = ?", sellerID).
		Distinct("orders.*")
	if err := db.Preload("Items").Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list seller orders", err)
	}
	return out, nil
}
