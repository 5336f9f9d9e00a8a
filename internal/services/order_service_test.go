package services

import (
	"context"
	"testing"
	"time"

	"github.com/JJ00428/market-api/internal/apperr"
	"github.com/JJ00428/market-api/internal/domain"
	"github.com/JJ00428/market-api/internal/guard"
	"github.com/JJ00428/market-api/internal/mocks"
	"github.com/JJ00428/market-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newOrderService(t *testing.T) (*OrderService, *mocks.MockOrderRepository, *mocks.MockProductRepository, *mocks.MockUserRepository, *mocks.MockPublisher) {
	t.Helper()
	orders := new(mocks.MockOrderRepository)
	products := new(mocks.MockProductRepository)
	users := new(mocks.MockUserRepository)
	publisher := new(mocks.MockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return NewOrderService(orders, products, users, publisher), orders, products, users, publisher
}

func consumer(id uint64) guard.Principal {
	return guard.Principal{UserID: id, Role: domain.RoleConsumer, Active: true}
}

func seller(id uint64) guard.Principal {
	return guard.Principal{UserID: id, Role: domain.RoleSeller, Active: true}
}

func admin(id uint64) guard.Principal {
	return guard.Principal{UserID: id, Role: domain.RoleAdmin, Active: true}
}

func TestCheckout(t *testing.T) {
	t.Run("cash on delivery order snapshots price and decrements stock", func(t *testing.T) {
		svc, orders, products, users, _ := newOrderService(t)

		cart := []domain.CartItem{CreateMockCartItem(TestCustomerID, TestProductID, 3, 10, TestSellerID)}
		users.On("CartItems", mock.Anything, TestCustomerID).Return(cart, nil)
		products.On("FindByID", mock.Anything, TestProductID).
			Return(CreateMockProduct(TestProductID, TestSellerID, 10, 5), nil)
		orders.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).
			Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Order).ID = TestOrderID
		})
		products.On("UpdateQuantity", mock.Anything, TestProductID, int64(2)).Return(nil)
		users.On("ClearCart", mock.Anything, TestCustomerID).Return(nil)

		order, err := svc.Checkout(context.Background(), TestCustomerID, CheckoutInput{
			Payment: domain.PaymentCashOnDelivery,
		})

		assert.NoError(t, err)
		assert.Equal(t, TestOrderID, order.ID)
		assert.Equal(t, domain.StatusPending, order.Status)
		assert.Equal(t, float64(30), order.TotalPrice)
		assert.Len(t, order.Items, 1)
		assert.Equal(t, float64(10), order.Items[0].PriceAtOrder)
		assert.Equal(t, []uint64{TestSellerID}, order.SellerIDs())

		time.Sleep(50 * time.Millisecond)
		users.AssertCalled(t, "ClearCart", mock.Anything, TestCustomerID)
		products.AssertExpectations(t)
		orders.AssertExpectations(t)
	})

	t.Run("discount price wins over list price", func(t *testing.T) {
		svc, orders, products, users, _ := newOrderService(t)

		discount := 8.0
		product := CreateMockProduct(TestProductID, TestSellerID, 10, 5)
		product.PriceDiscount = &discount

		cart := []domain.CartItem{CreateMockCartItem(TestCustomerID, TestProductID, 2, 10, TestSellerID)}
		users.On("CartItems", mock.Anything, TestCustomerID).Return(cart, nil)
		products.On("FindByID", mock.Anything, TestProductID).Return(product, nil)
		orders.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
		products.On("UpdateQuantity", mock.Anything, TestProductID, int64(3)).Return(nil)
		users.On("ClearCart", mock.Anything, TestCustomerID).Return(nil)

		order, err := svc.Checkout(context.Background(), TestCustomerID, CheckoutInput{
			Payment: domain.PaymentCashOnDelivery,
		})

		assert.NoError(t, err)
		assert.Equal(t, float64(16), order.TotalPrice)
		assert.Equal(t, float64(8), order.Items[0].PriceAtOrder)
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		svc, orders, _, users, _ := newOrderService(t)
		users.On("CartItems", mock.Anything, TestCustomerID).Return([]domain.CartItem{}, nil)

		_, err := svc.Checkout(context.Background(), TestCustomerID, CheckoutInput{
			Payment: domain.PaymentCashOnDelivery,
		})

		assert.Error(t, err)
		assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
		orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("lines whose product vanished are dropped and cart still clears", func(t *testing.T) {
		svc, orders, products, users, _ := newOrderService(t)

		gone := uint64(99)
		cart := []domain.CartItem{
			CreateMockCartItem(TestCustomerID, TestProductID, 1, 10, TestSellerID),
			CreateMockCartItem(TestCustomerID, gone, 2, 25, TestSellerID),
		}
		users.On("CartItems", mock.Anything, TestCustomerID).Return(cart, nil)
		products.On("FindByID", mock.Anything, TestProductID).
			Return(CreateMockProduct(TestProductID, TestSellerID, 10, 5), nil)
		products.On("FindByID", mock.Anything, gone).Return(nil, nil)
		orders.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
		products.On("UpdateQuantity", mock.Anything, TestProductID, int64(4)).Return(nil)
		users.On("ClearCart", mock.Anything, TestCustomerID).Return(nil)

		order, err := svc.Checkout(context.Background(), TestCustomerID, CheckoutInput{
			Payment: domain.PaymentCashOnDelivery,
		})

		assert.NoError(t, err)
		assert.Len(t, order.Items, 1)
		assert.Equal(t, float64(10), order.TotalPrice)
		users.AssertCalled(t, "ClearCart", mock.Anything, TestCustomerID)
	})

	t.Run("stock decrement clamps at zero", func(t *testing.T) {
		svc, orders, products, users, _ := newOrderService(t)

		cart := []domain.CartItem{CreateMockCartItem(TestCustomerID, TestProductID, 3, 10, TestSellerID)}
		users.On("CartItems", mock.Anything, TestCustomerID).Return(cart, nil)
		products.On("FindByID", mock.Anything, TestProductID).
			Return(CreateMockProduct(TestProductID, TestSellerID, 10, 1), nil)
		orders.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
		products.On("UpdateQuantity", mock.Anything, TestProductID, int64(0)).Return(nil)
		users.On("ClearCart", mock.Anything, TestCustomerID).Return(nil)

		_, err := svc.Checkout(context.Background(), TestCustomerID, CheckoutInput{
			Payment: domain.PaymentCashOnDelivery,
		})

		assert.NoError(t, err)
		products.AssertCalled(t, "UpdateQuantity", mock.Anything, TestProductID, int64(0))
	})

	t.Run("credit without card details fails before any write", func(t *testing.T) {
		svc, orders, products, users, _ := newOrderService(t)

		cart := []domain.CartItem{CreateMockCartItem(TestCustomerID, TestProductID, 3, 10, TestSellerID)}
		users.On("CartItems", mock.Anything, TestCustomerID).Return(cart, nil)
		products.On("FindByID", mock.Anything, TestProductID).
			Return(CreateMockProduct(TestProductID, TestSellerID, 10, 5), nil)

		_, err := svc.Checkout(context.Background(), TestCustomerID, CheckoutInput{
			Payment:    domain.PaymentCredit,
			CardNumber: "4111111111111111",
		})

		assert.Error(t, err)
		assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
		orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		products.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
		users.AssertNotCalled(t, "ClearCart", mock.Anything, mock.Anything)
	})

	t.Run("unknown payment method is rejected", func(t *testing.T) {
		svc, _, products, users, _ := newOrderService(t)

		cart := []domain.CartItem{CreateMockCartItem(TestCustomerID, TestProductID, 1, 10, TestSellerID)}
		users.On("CartItems", mock.Anything, TestCustomerID).Return(cart, nil)
		products.On("FindByID", mock.Anything, TestProductID).
			Return(CreateMockProduct(TestProductID, TestSellerID, 10, 5), nil)

		_, err := svc.Checkout(context.Background(), TestCustomerID, CheckoutInput{Payment: "barter"})

		assert.Error(t, err)
		assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
	})
}

func TestGetOrder(t *testing.T) {
	item := domain.OrderItem{ProductID: TestProductID, Quantity: 1, PriceAtOrder: 10, SellerID: TestSellerID}

	tests := []struct {
		name      string
		principal guard.Principal
		wantKind  apperr.Kind
		wantErr   bool
	}{
		{name: "customer can view own order", principal: consumer(TestCustomerID)},
		{name: "involved seller can view", principal: seller(TestSellerID)},
		{name: "admin can view", principal: admin(42)},
		{name: "unrelated user is forbidden", principal: consumer(55), wantErr: true, wantKind: apperr.KindForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, orders, _, _, _ := newOrderService(t)
			orders.On("FindByID", mock.Anything, TestOrderID).
				Return(CreateMockOrder(TestOrderID, TestCustomerID, domain.StatusPending, domain.PaymentCashOnDelivery, item), nil)

			order, err := svc.Get(context.Background(), tt.principal, TestOrderID)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, TestOrderID, order.ID)
			}
		})
	}

	t.Run("missing order is not found", func(t *testing.T) {
		svc, orders, _, _, _ := newOrderService(t)
		orders.On("FindByID", mock.Anything, TestOrderID).Return(nil, nil)

		_, err := svc.Get(context.Background(), admin(1), TestOrderID)

		assert.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestUpdateStatus(t *testing.T) {
	item := domain.OrderItem{ProductID: TestProductID, Quantity: 1, PriceAtOrder: 10, SellerID: TestSellerID}

	t.Run("involved seller can transition to any status", func(t *testing.T) {
		svc, orders, _, _, _ := newOrderService(t)
		orders.On("FindByID", mock.Anything, TestOrderID).
			Return(CreateMockOrder(TestOrderID, TestCustomerID, domain.StatusDelivered, domain.PaymentCashOnDelivery, item), nil)
		orders.On("UpdateStatus", mock.Anything, TestOrderID, domain.StatusPending).Return(nil)

		order, err := svc.UpdateStatus(context.Background(), seller(TestSellerID), TestOrderID, domain.StatusPending)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusPending, order.Status)
	})

	t.Run("customer cannot update status", func(t *testing.T) {
		svc, orders, _, _, _ := newOrderService(t)
		orders.On("FindByID", mock.Anything, TestOrderID).
			Return(CreateMockOrder(TestOrderID, TestCustomerID, domain.StatusPending, domain.PaymentCashOnDelivery, item), nil)

		_, err := svc.UpdateStatus(context.Background(), consumer(TestCustomerID), TestOrderID, domain.StatusShipped)

		assert.Error(t, err)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})

	t.Run("invalid status value is rejected", func(t *testing.T) {
		svc, orders, _, _, _ := newOrderService(t)
		orders.On("FindByID", mock.Anything, TestOrderID).
			Return(CreateMockOrder(TestOrderID, TestCustomerID, domain.StatusPending, domain.PaymentCashOnDelivery, item), nil)

		_, err := svc.UpdateStatus(context.Background(), admin(1), TestOrderID, "lost")

		assert.Error(t, err)
		assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
		orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCancelOrder(t *testing.T) {
	lineP := domain.OrderItem{ProductID: TestProductID, Quantity: 2, PriceAtOrder: 10, SellerID: TestSellerID}
	lineQ := domain.OrderItem{ProductID: 11, Quantity: 1, PriceAtOrder: 20, SellerID: TestSellerID}

	t.Run("seller removes one line, total recomputed from snapshots, status unchanged", func(t *testing.T) {
		svc, orders, products, _, _ := newOrderService(t)

		orders.On("FindByID", mock.Anything, TestOrderID).
			Return(CreateMockOrder(TestOrderID, TestCustomerID, domain.StatusPending, domain.PaymentCashOnDelivery, lineP, lineQ), nil)
		products.On("FindByID", mock.Anything, uint64(11)).
			Return(CreateMockProduct(11, TestSellerID, 999, 5), nil)
		products.On("UpdateQuantity", mock.Anything, uint64(11), int64(6)).Return(nil)
		orders.On("UpdateAfterRemoval", mock.Anything, TestOrderID, uint64(11), float64(20), mock.AnythingOfType("string")).Return(nil)

		productID := uint64(11)
		order, err := svc.Cancel(context.Background(), seller(TestSellerID), TestOrderID, &productID)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusPending, order.Status)
		assert.Len(t, order.Items, 1)
		assert.Equal(t, float64(20), order.TotalPrice)
		assert.Contains(t, order.Notes, "removed by seller")
		orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		products.AssertExpectations(t)
	})

	t.Run("removing the last line falls through to full cancellation", func(t *testing.T) {
		svc, orders, products, _, _ := newOrderService(t)

		orders.On("FindByID", mock.Anything, TestOrderID).
			Return(CreateMockOrder(TestOrderID, TestCustomerID, domain.StatusPending, domain.PaymentCashOnDelivery, lineP), nil)
		products.On("FindByID", mock.Anything, TestProductID).
			Return(CreateMockProduct(TestProductID, TestSellerID, 10, 3), nil)
		products.On("UpdateQuantity", mock.Anything, TestProductID, int64(5)).Return(nil)
		orders.On("UpdateAfterRemoval", mock.Anything, TestOrderID, TestProductID, float64(0), mock.AnythingOfType("string")).Return(nil)
		orders.On("UpdateStatus", mock.Anything, TestOrderID, domain.StatusCancelled).Return(nil)

		productID := TestProductID
		order, err := svc.Cancel(context.Background(), seller(TestSellerID), TestOrderID, &productID)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, order.Status)
	})

	t.Run("full cancellation restores stock for all lines", func(t *testing.T) {
		svc, orders, products, _, publisher := newOrderService(t)

		orders.On("FindByID", mock.Anything, TestOrderID).
			Return(CreateMockOrder(TestOrderID, TestCustomerID, domain.StatusPending, domain.PaymentCredit, lineP, lineQ), nil)
		orders.On("UpdateStatus", mock.Anything, TestOrderID, domain.StatusCancelled).Return(nil)
		products.On("FindByID", mock.Anything, TestProductID).
			Return(CreateMockProduct(TestProductID, TestSellerID, 10, 3), nil)
		products.On("UpdateQuantity", mock.Anything, TestProductID, int64(5)).Return(nil)
		products.On("FindByID", mock.Anything, uint64(11)).
			Return(CreateMockProduct(11, TestSellerID, 20, 0), nil)
		products.On("UpdateQuantity", mock.Anything, uint64(11), int64(1)).Return(nil)

		order, err := svc.Cancel(context.Background(), consumer(TestCustomerID), TestOrderID, nil)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, order.Status)
		products.AssertExpectations(t)

		time.Sleep(50 * time.Millisecond)
		publisher.AssertCalled(t, "Publish", mock.Anything, "order.refunded", mock.Anything)
	})

	t.Run("cancelling an already cancelled order fails and changes nothing", func(t *testing.T) {
		svc, orders, products, _, _ := newOrderService(t)

		orders.On("FindByID", mock.Anything, TestOrderID).
			Return(CreateMockOrder(TestOrderID, TestCustomerID, domain.StatusCancelled, domain.PaymentCashOnDelivery, lineP), nil)

		_, err := svc.Cancel(context.Background(), consumer(TestCustomerID), TestOrderID, nil)

		assert.Error(t, err)
		assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
		orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		products.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unrelated user cannot cancel", func(t *testing.T) {
		svc, orders, _, _, _ := newOrderService(t)
		orders.On("FindByID", mock.Anything, TestOrderID).
			Return(CreateMockOrder(TestOrderID, TestCustomerID, domain.StatusPending, domain.PaymentCashOnDelivery, lineP), nil)

		_, err := svc.Cancel(context.Background(), consumer(55), TestOrderID, nil)

		assert.Error(t, err)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})

	t.Run("customer naming a product still cancels fully", func(t *testing.T) {
		// partial removal is a seller correction; a customer naming a
		// product gets the normal full cancellation
		svc, orders, products, _, _ := newOrderService(t)

		orders.On("FindByID", mock.Anything, TestOrderID).
			Return(CreateMockOrder(TestOrderID, TestCustomerID, domain.StatusPending, domain.PaymentCashOnDelivery, lineP), nil)
		orders.On("UpdateStatus", mock.Anything, TestOrderID, domain.StatusCancelled).Return(nil)
		products.On("FindByID", mock.Anything, TestProductID).
			Return(CreateMockProduct(TestProductID, TestSellerID, 10, 3), nil)
		products.On("UpdateQuantity", mock.Anything, TestProductID, int64(5)).Return(nil)

		productID := TestProductID
		order, err := svc.Cancel(context.Background(), consumer(TestCustomerID), TestOrderID, &productID)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, order.Status)
		orders.AssertNotCalled(t, "UpdateAfterRemoval", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListOrders(t *testing.T) {
	q := mock.AnythingOfType("repository.ListQuery")

	t.Run("admin sees everything", func(t *testing.T) {
		svc, orders, _, _, _ := newOrderService(t)
		orders.On("List", mock.Anything, q).Return([]domain.Order{}, nil)

		_, err := svc.List(context.Background(), admin(1), listQuery())

		assert.NoError(t, err)
		orders.AssertCalled(t, "List", mock.Anything, q)
	})

	t.Run("seller sees orders containing their lines", func(t *testing.T) {
		svc, orders, _, _, _ := newOrderService(t)
		orders.On("ListBySeller", mock.Anything, TestSellerID, q).Return([]domain.Order{}, nil)

		_, err := svc.List(context.Background(), seller(TestSellerID), listQuery())

		assert.NoError(t, err)
		orders.AssertCalled(t, "ListBySeller", mock.Anything, TestSellerID, q)
	})

	t.Run("consumer sees own orders", func(t *testing.T) {
		svc, orders, _, _, _ := newOrderService(t)
		orders.On("ListByCustomer", mock.Anything, TestCustomerID, q).Return([]domain.Order{}, nil)

		_, err := svc.List(context.Background(), consumer(TestCustomerID), listQuery())

		assert.NoError(t, err)
		orders.AssertCalled(t, "ListByCustomer", mock.Anything, TestCustomerID, q)
	})
}

func listQuery() repository.ListQuery {
	return repository.ListQuery{}
}
