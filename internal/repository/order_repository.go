package repository

import (
	"context"

	"github.com/JJ00428/market-api/internal/domain"
)

// OrderRepository persists orders with their line items. FindByID returns
// (nil, nil) when no order exists.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) error
	// UpdateAfterRemoval deletes one line item and persists the recomputed
	// total and appended notes in a single transaction.
	UpdateAfterRemoval(ctx context.Context, orderID, productID uint64, total float64, notes string) error
	List(ctx context.Context, q ListQuery) ([]domain.Order, error)
	ListByCustomer(ctx context.Context, customerID uint64, q ListQuery) ([]domain.Order, error)
	ListBySeller(ctx context.Context, sellerID uint64, q ListQuery) ([]domain.Order, error)
}
