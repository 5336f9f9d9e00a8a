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

func validProductInput() CreateProductInput {
	return CreateProductInput{
		Name:        "Garden Hose",
		Description: "a 20m expandable hose",
		Price:       25,
		Quantity:    10,
		Category:    domain.CategoryHomeGarden,
	}
}

func TestCreateProduct(t *testing.T) {
	discount := 30.0

	tests := []struct {
		name    string
		mutate  func(*CreateProductInput)
		wantErr string
	}{
		{
			name:   "valid input creates with slug and seller",
			mutate: func(in *CreateProductInput) {},
		},
		{
			name:    "name too short",
			mutate:  func(in *CreateProductInput) { in.Name = "Hose" },
			wantErr: "between 5 and 30 characters",
		},
		{
			name:    "discount above price",
			mutate:  func(in *CreateProductInput) { in.PriceDiscount = &discount },
			wantErr: "discount price must be below price",
		},
		{
			name:    "unknown category",
			mutate:  func(in *CreateProductInput) { in.Category = "Vehicles" },
			wantErr: "category must be one of",
		},
		{
			name:    "missing description",
			mutate:  func(in *CreateProductInput) { in.Description = "" },
			wantErr: "must have a description",
		},
		{
			name:    "negative quantity",
			mutate:  func(in *CreateProductInput) { in.Quantity = -1 },
			wantErr: "cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := new(mocks.MockProductRepository)
			users := new(mocks.MockUserRepository)
			svc := NewProductService(products, users)

			in := validProductInput()
			tt.mutate(&in)

			if tt.wantErr == "" {
				products.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
					return p.Slug == "garden-hose" && p.SellerID == TestSellerID
				})).Return(nil)
			}

			product, err := svc.Create(context.Background(), TestSellerID, in)

			if tt.wantErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
				products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "garden-hose", product.Slug)
			}
			products.AssertExpectations(t)
		})
	}
}

func TestUpdateProductOwnership(t *testing.T) {
	t.Run("owner can update", func(t *testing.T) {
		products := new(mocks.MockProductRepository)
		users := new(mocks.MockUserRepository)
		svc := NewProductService(products, users)

		existing := CreateMockProduct(TestProductID, TestSellerID, 25, 10)
		products.On("FindByID", mock.Anything, TestProductID).Return(existing, nil)
		products.On("Update", mock.Anything, mock.Anything).Return(nil)

		updated, err := svc.Update(context.Background(), seller(TestSellerID), TestProductID, validProductInput())

		assert.NoError(t, err)
		assert.Equal(t, "garden-hose", updated.Slug)
		products.AssertExpectations(t)
	})

	t.Run("admin can update someone else's product", func(t *testing.T) {
		products := new(mocks.MockProductRepository)
		users := new(mocks.MockUserRepository)
		svc := NewProductService(products, users)

		existing := CreateMockProduct(TestProductID, TestSellerID, 25, 10)
		products.On("FindByID", mock.Anything, TestProductID).Return(existing, nil)
		products.On("Update", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Update(context.Background(), admin(1), TestProductID, validProductInput())

		assert.NoError(t, err)
		products.AssertExpectations(t)
	})

	t.Run("other seller is rejected", func(t *testing.T) {
		products := new(mocks.MockProductRepository)
		users := new(mocks.MockUserRepository)
		svc := NewProductService(products, users)

		existing := CreateMockProduct(TestProductID, TestSellerID, 25, 10)
		products.On("FindByID", mock.Anything, TestProductID).Return(existing, nil)

		_, err := svc.Update(context.Background(), seller(99), TestProductID, validProductInput())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not the seller of this product")
		products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("missing product", func(t *testing.T) {
		products := new(mocks.MockProductRepository)
		users := new(mocks.MockUserRepository)
		svc := NewProductService(products, users)

		products.On("FindByID", mock.Anything, TestProductID).Return(nil, nil)

		_, err := svc.Update(context.Background(), seller(TestSellerID), TestProductID, validProductInput())

		assert.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Run("delete cascades into carts", func(t *testing.T) {
		products := new(mocks.MockProductRepository)
		users := new(mocks.MockUserRepository)
		svc := NewProductService(products, users)

		existing := CreateMockProduct(TestProductID, TestSellerID, 25, 10)
		products.On("FindByID", mock.Anything, TestProductID).Return(existing, nil)
		products.On("Delete", mock.Anything, TestProductID).Return(nil)
		users.On("RemoveProductFromCarts", mock.Anything, TestProductID).Return(nil)

		err := svc.Delete(context.Background(), seller(TestSellerID), TestProductID)

		assert.NoError(t, err)
		products.AssertExpectations(t)
		users.AssertExpectations(t)
	})

	t.Run("other seller cannot delete", func(t *testing.T) {
		products := new(mocks.MockProductRepository)
		users := new(mocks.MockUserRepository)
		svc := NewProductService(products, users)

		existing := CreateMockProduct(TestProductID, TestSellerID, 25, 10)
		products.On("FindByID", mock.Anything, TestProductID).Return(existing, nil)

		err := svc.Delete(context.Background(), seller(99), TestProductID)

		assert.Error(t, err)
		products.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		users.AssertNotCalled(t, "RemoveProductFromCarts", mock.Anything, mock.Anything)
	})
}
