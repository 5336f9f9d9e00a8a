package services

import (
	"github.com/JJ00428/market-api/internal/domain"
)

func CreateMockProduct(id, sellerID uint64, price float64, qty int64) *domain.Product {
	return &domain.Product{
		ID:          id,
		Name:        "Test Product",
		Slug:        "test-product",
		Description: "A product for tests",
		Price:       price,
		Quantity:    qty,
		SellerID:    sellerID,
		Category:    domain.CategoryOther,
	}
}

func CreateMockCartItem(userID, productID uint64, qty int64, price float64, sellerID uint64) domain.CartItem {
	return domain.CartItem{
		UserID:        userID,
		ProductID:     productID,
		Quantity:      qty,
		PriceSnapshot: price,
		SellerID:      sellerID,
	}
}

func CreateMockOrder(id, customerID uint64, status domain.OrderStatus, payment domain.PaymentMethod, items ...domain.OrderItem) *domain.Order {
	order := &domain.Order{
		ID:         id,
		CustomerID: customerID,
		Items:      items,
		Status:     status,
		Payment:    payment,
	}
	order.RecomputeTotal()
	return order
}

const (
	TestCustomerID = uint64(1)
	TestSellerID   = uint64(7)
	TestProductID  = uint64(10)
	TestOrderID    = uint64(100)
)
