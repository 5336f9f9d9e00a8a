package repository

import (
	"context"
	"time"

	"github.com/JJ00428/market-api/internal/domain"
)

// UserRepository persists accounts together with their cart and favorites,
// mirroring the account document the workflows operate on. Find methods
// return (nil, nil) when no visible user exists; deactivated non-Seller
// accounts are invisible to lookups, inactive Sellers (pending approval)
// stay visible.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, q ListQuery) ([]domain.User, error)

	CartItems(ctx context.Context, userID uint64) ([]domain.CartItem, error)
	UpsertCartLine(ctx context.Context, item *domain.CartItem) error
	ClearCart(ctx context.Context, userID uint64) error
	// RemoveProductFromCarts drops every cart line referencing the product,
	// across all users. Used when a product is deleted.
	RemoveProductFromCarts(ctx context.Context, productID uint64) error

	Favorites(ctx context.Context, userID uint64) ([]domain.Favorite, error)
	HasFavorite(ctx context.Context, userID, productID uint64) (bool, error)
	AddFavorite(ctx context.Context, userID, productID uint64) error
	RemoveFavorite(ctx context.Context, userID, productID uint64) error
}
