package repository

import (
	"context"

	"github.com/JJ00428/market-api/internal/domain"
)

// ProductRepository persists the catalog. FindByID returns (nil, nil) when
// no product exists.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint64) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	// UpdateQuantity overwrites the stock level with an absolute value.
	// Callers compute the new level themselves; there is no conditional
	// check here, so concurrent checkouts race exactly as the workflow
	// accepts.
	UpdateQuantity(ctx context.Context, id uint64, quantity int64) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, q ListQuery) ([]domain.Product, error)
}
