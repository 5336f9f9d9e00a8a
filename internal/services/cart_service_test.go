package services

import (
	"context"
	"testing"

	"github.com/JJ00428/market-api/internal/apperr"
	"github.com/JJ00428/market-api/internal/domain"
	"github.com/JJ00428/market-api/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCartService() (*CartService, *mocks.MockUserRepository, *mocks.MockProductRepository) {
	users := new(mocks.MockUserRepository)
	products := new(mocks.MockProductRepository)
	return NewCartService(users, products), users, products
}

func TestAddToCart(t *testing.T) {
	tests := []struct {
		name     string
		quantity int64
		product  *domain.Product
		wantKind apperr.Kind
	}{
		{
			name:     "quantity below one is rejected",
			quantity: 0,
			wantKind: apperr.KindInvalid,
		},
		{
			name:     "missing product is not found",
			quantity: 1,
			product:  nil,
			wantKind: apperr.KindNotFound,
		},
		{
			name:     "quantity above stock is rejected",
			quantity: 6,
			product:  CreateMockProduct(TestProductID, TestSellerID, 10, 5),
			wantKind: apperr.KindInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, products := newCartService()
			if tt.quantity >= 1 {
				products.On("FindByID", mock.Anything, TestProductID).Return(tt.product, nil)
			}

			_, err := svc.AddToCart(context.Background(), TestCustomerID, TestProductID, tt.quantity)

			assert.Error(t, err)
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
			users.AssertNotCalled(t, "UpsertCartLine", mock.Anything, mock.Anything)
		})
	}

	t.Run("price and seller are snapshotted from the product", func(t *testing.T) {
		svc, users, products := newCartService()
		products.On("FindByID", mock.Anything, TestProductID).
			Return(CreateMockProduct(TestProductID, TestSellerID, 10, 5), nil)
		users.On("UpsertCartLine", mock.Anything, mock.MatchedBy(func(item *domain.CartItem) bool {
			return item.PriceSnapshot == 10 && item.SellerID == TestSellerID && item.Quantity == 3
		})).Return(nil)
		users.On("CartItems", mock.Anything, TestCustomerID).
			Return([]domain.CartItem{CreateMockCartItem(TestCustomerID, TestProductID, 3, 10, TestSellerID)}, nil)

		cart, err := svc.AddToCart(context.Background(), TestCustomerID, TestProductID, 3)

		assert.NoError(t, err)
		assert.Len(t, cart, 1)
		users.AssertExpectations(t)
	})
}

func TestToggleFavorite(t *testing.T) {
	t.Run("missing product is not found", func(t *testing.T) {
		svc, _, products := newCartService()
		products.On("FindByID", mock.Anything, TestProductID).Return(nil, nil)

		_, err := svc.ToggleFavorite(context.Background(), TestCustomerID, TestProductID)

		assert.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("absent favorite is added", func(t *testing.T) {
		svc, users, products := newCartService()
		products.On("FindByID", mock.Anything, TestProductID).
			Return(CreateMockProduct(TestProductID, TestSellerID, 10, 5), nil)
		users.On("HasFavorite", mock.Anything, TestCustomerID, TestProductID).Return(false, nil)
		users.On("AddFavorite", mock.Anything, TestCustomerID, TestProductID).Return(nil)
		users.On("Favorites", mock.Anything, TestCustomerID).
			Return([]domain.Favorite{{UserID: TestCustomerID, ProductID: TestProductID}}, nil)

		favs, err := svc.ToggleFavorite(context.Background(), TestCustomerID, TestProductID)

		assert.NoError(t, err)
		assert.Len(t, favs, 1)
		users.AssertExpectations(t)
	})

	t.Run("present favorite is removed", func(t *testing.T) {
		svc, users, products := newCartService()
		products.On("FindByID", mock.Anything, TestProductID).
			Return(CreateMockProduct(TestProductID, TestSellerID, 10, 5), nil)
		users.On("HasFavorite", mock.Anything, TestCustomerID, TestProductID).Return(true, nil)
		users.On("RemoveFavorite", mock.Anything, TestCustomerID, TestProductID).Return(nil)
		users.On("Favorites", mock.Anything, TestCustomerID).Return([]domain.Favorite{}, nil)

		favs, err := svc.ToggleFavorite(context.Background(), TestCustomerID, TestProductID)

		assert.NoError(t, err)
		assert.Empty(t, favs)
		users.AssertExpectations(t)
	})
}
