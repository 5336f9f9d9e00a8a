package services

import (
	"context"

	"github.com/JJ00428/market-api/internal/apperr"
	"github.com/JJ00428/market-api/internal/domain"
	"github.com/JJ00428/market-api/internal/repository"
)

// CartService manages a consumer's cart and favorites. The stock check at
// add time is advisory only: nothing is reserved, checkout re-reads the
// product and is the authority on price.
type CartService struct {
	users    repository.UserRepository
	products repository.ProductRepository
}

func NewCartService(users repository.UserRepository, products repository.ProductRepository) *CartService {
	return &CartService{users: users, products: products}
}

func (s *CartService) AddToCart(ctx context.Context, userID, productID uint64, quantity int64) ([]domain.CartItem, error) {
	if quantity < 1 {
		return nil, apperr.Invalid("quantity must be given and at least 1")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperr.NotFound("product does not exist")
	}

	if quantity > product.Quantity {
		return nil, apperr.Invalid("not enough stock available")
	}

	line := &domain.CartItem{
		UserID:        userID,
		ProductID:     productID,
		Quantity:      quantity,
		PriceSnapshot: product.Price,
		SellerID:      product.SellerID,
	}
	if err := s.users.UpsertCartLine(ctx, line); err != nil {
		return nil, err
	}

	return s.users.CartItems(ctx, userID)
}

func (s *CartService) GetCart(ctx context.Context, userID uint64) ([]domain.CartItem, error) {
	return s.users.CartItems(ctx, userID)
}

// ToggleFavorite adds the product to the user's favorites, or removes it if
// already present.
func (s *CartService) ToggleFavorite(ctx context.Context, userID, productID uint64) ([]domain.Favorite, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperr.NotFound("product not found")
	}

	has, err := s.users.HasFavorite(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if has {
		err = s.users.RemoveFavorite(ctx, userID, productID)
	} else {
		err = s.users.AddFavorite(ctx, userID, productID)
	}
	if err != nil {
		return nil, err
	}

	return s.users.Favorites(ctx, userID)
}

func (s *CartService) GetFavorites(ctx context.Context, userID uint64) ([]domain.Favorite, error) {
	return s.users.Favorites(ctx, userID)
}
