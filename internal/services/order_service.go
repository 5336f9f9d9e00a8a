package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/JJ00428/market-api/internal/apperr"
	"github.com/JJ00428/market-api/internal/domain"
	"github.com/JJ00428/market-api/internal/guard"
	rabbit "github.com/JJ00428/market-api/internal/infra/rabbitmq"
	"github.com/JJ00428/market-api/internal/repository"
)

// OrderService runs the placement and fulfillment workflow. The whole flow is
// best-effort sequential writes: no reservation, no rollback of stock already
// decremented when a later step fails.
type OrderService struct {
	orders    repository.OrderRepository
	products  repository.ProductRepository
	users     repository.UserRepository
	publisher rabbit.PublisherInterface
	cache     *ProductCache
}

func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, users repository.UserRepository, publisher rabbit.PublisherInterface) *OrderService {
	return &OrderService{
		orders:    orders,
		products:  products,
		users:     users,
		publisher: publisher,
	}
}

func (s *OrderService) SetCache(cache *ProductCache) {
	s.cache = cache
}

// CheckoutInput is the payment intent for an order placed from the cart.
// Card fields are format-checked only; nothing is ever charged.
type CheckoutInput struct {
	Payment    domain.PaymentMethod
	CardNumber string
	CardPass   string
	Notes      string
}

func validatePayment(in CheckoutInput) error {
	switch in.Payment {
	case domain.PaymentCredit:
		if in.CardNumber == "" || in.CardPass == "" {
			return apperr.Invalid("credit card details are required")
		}
		return nil
	case domain.PaymentCashOnDelivery:
		return nil
	default:
		return apperr.Invalid("invalid payment method")
	}
}

// Checkout places an order from the user's cart:
//
//  1. load the cart, rejecting an empty one
//  2. re-read each product for the authoritative price and seller; cart
//     lines whose product no longer exists are dropped silently
//  3. validate the payment intent before anything is written
//  4. create the pending order with snapshotted line prices
//  5. decrement stock per line, clamped at zero, with no re-check
//  6. clear the cart unconditionally
func (s *OrderService) Checkout(ctx context.Context, userID uint64, in CheckoutInput) (*domain.Order, error) {
	cart, err := s.users.CartItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return nil, apperr.Invalid("no items in the cart to order")
	}

	type line struct {
		item    domain.OrderItem
		product *domain.Product
	}
	var lines []line
	var total float64
	for _, ci := range cart {
		product, err := s.products.FindByID(ctx, ci.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			continue
		}
		unit := product.EffectivePrice()
		total += unit * float64(ci.Quantity)
		lines = append(lines, line{
			item: domain.OrderItem{
				ProductID:    product.ID,
				Quantity:     ci.Quantity,
				PriceAtOrder: unit,
				SellerID:     product.SellerID,
			},
			product: product,
		})
	}

	if err := validatePayment(in); err != nil {
		return nil, err
	}

	order := &domain.Order{
		CustomerID: userID,
		TotalPrice: total,
		Status:     domain.StatusPending,
		Payment:    in.Payment,
		Notes:      in.Notes,
	}
	for _, l := range lines {
		order.Items = append(order.Items, l.item)
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	var touched []uint64
	for _, l := range lines {
		remaining := l.product.Quantity - l.item.Quantity
		if remaining < 0 {
			remaining = 0
		}
		if err := s.products.UpdateQuantity(ctx, l.product.ID, remaining); err != nil {
			log.Printf("stock decrement failed for product %d: %v", l.product.ID, err)
			continue
		}
		touched = append(touched, l.product.ID)
	}
	s.cache.Invalidate(ctx, touched...)

	if err := s.users.ClearCart(ctx, userID); err != nil {
		log.Printf("failed to clear cart for user %d: %v", userID, err)
	}

	go s.publishOrderCreated(context.Background(), order)

	return order, nil
}

func (s *OrderService) publishOrderCreated(ctx context.Context, order *domain.Order) {
	evt := domain.OrderCreatedEvent{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		SellerIDs:  order.SellerIDs(),
		TotalPrice: order.TotalPrice,
		Payment:    order.Payment,
		CreatedAt:  order.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, "order.created", evt); err != nil {
		log.Printf("failed to publish order.created: %v", err)
	}
}

// Get returns the order when the principal is its customer, one of its
// sellers, or an Admin.
func (s *OrderService) Get(ctx context.Context, p guard.Principal, orderID uint64) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.NotFound("order not found")
	}
	if p.Role != domain.RoleAdmin && !order.InvolvesSeller(p.UserID) && order.CustomerID != p.UserID {
		return nil, apperr.Forbidden("you do not have permission to view this order")
	}
	return order, nil
}

// List returns orders scoped by role: Admins see everything, Sellers the
// orders containing their lines, Consumers their own.
func (s *OrderService) List(ctx context.Context, p guard.Principal, q repository.ListQuery) ([]domain.Order, error) {
	switch p.Role {
	case domain.RoleAdmin:
		return s.orders.List(ctx, q)
	case domain.RoleSeller:
		return s.orders.ListBySeller(ctx, p.UserID, q)
	default:
		return s.orders.ListByCustomer(ctx, p.UserID, q)
	}
}

// ListForCustomer is the Admin view of one customer's orders.
func (s *OrderService) ListForCustomer(ctx context.Context, customerID uint64, q repository.ListQuery) ([]domain.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID, q)
}

// UpdateStatus sets the order status. Any transition between the five values
// is allowed; only Admins and involved sellers may perform it.
func (s *OrderService) UpdateStatus(ctx context.Context, p guard.Principal, orderID uint64, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.NotFound("order not found")
	}
	if p.Role != domain.RoleAdmin && !order.InvolvesSeller(p.UserID) {
		return nil, apperr.Forbidden("you do not have permission to update this order")
	}
	if !status.Valid() {
		return nil, apperr.Invalid("invalid status value, pick from [pending, processing, shipped, delivered, cancelled]")
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	order.Status = status
	return order, nil
}

// Cancel cancels an order, or removes a single line from it when a seller
// names a product. Partial removal restores that line's stock, appends a
// removal note, and recomputes the total from the remaining snapshotted
// prices; the order's status is untouched while lines remain. Full
// cancellation restores stock for every remaining line and triggers the
// simulated refund for credit payments.
func (s *OrderService) Cancel(ctx context.Context, p guard.Principal, orderID uint64, removeProductID *uint64) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.NotFound("order not found")
	}

	isSeller := order.InvolvesSeller(p.UserID)
	if p.Role != domain.RoleAdmin && !isSeller && order.CustomerID != p.UserID {
		return nil, apperr.Forbidden("you do not have permission to cancel this order")
	}

	if isSeller && removeProductID != nil {
		order, err = s.removeLine(ctx, order, *removeProductID)
		if err != nil {
			return nil, err
		}
		if len(order.Items) > 0 {
			return order, nil
		}
		// every line removed, fall through to full cancellation
	}

	if order.Status == domain.StatusCancelled {
		return nil, apperr.Invalid("order is already cancelled")
	}

	if err := s.orders.UpdateStatus(ctx, orderID, domain.StatusCancelled); err != nil {
		return nil, err
	}
	order.Status = domain.StatusCancelled

	s.restoreStock(ctx, order.Items)

	if order.Payment == domain.PaymentCredit {
		log.Printf("refunding order %d for %.2f", order.ID, order.TotalPrice)
		go func(o domain.Order) {
			evt := domain.OrderRefundedEvent{
				OrderID:    o.ID,
				CustomerID: o.CustomerID,
				Amount:     o.TotalPrice,
				RefundedAt: time.Now(),
			}
			if err := s.publisher.Publish(context.Background(), "order.refunded", evt); err != nil {
				log.Printf("failed to publish order.refunded: %v", err)
			}
		}(*order)
	}

	go func(o domain.Order, actor uint64) {
		evt := domain.OrderCancelledEvent{
			OrderID:     o.ID,
			CustomerID:  o.CustomerID,
			CancelledBy: actor,
			CancelledAt: time.Now(),
		}
		if err := s.publisher.Publish(context.Background(), "order.cancelled", evt); err != nil {
			log.Printf("failed to publish order.cancelled: %v", err)
		}
	}(*order, p.UserID)

	return order, nil
}

// removeLine drops one line from the order, restoring its quantity to stock.
// The new total comes from the remaining lines' PriceAtOrder snapshots; the
// checkout-time snapshot stays authoritative once persisted.
func (s *OrderService) removeLine(ctx context.Context, order *domain.Order, productID uint64) (*domain.Order, error) {
	var removed domain.OrderItem
	found := false
	var remaining []domain.OrderItem
	for _, item := range order.Items {
		if item.ProductID == productID && !found {
			removed = item
			found = true
			continue
		}
		remaining = append(remaining, item)
	}
	if !found {
		return nil, apperr.NotFound("product is not part of this order")
	}

	s.restoreStock(ctx, []domain.OrderItem{removed})

	order.Items = remaining
	order.RecomputeTotal()
	order.Notes = fmt.Sprintf("%s\nProduct %d was removed by seller.", order.Notes, productID)

	if err := s.orders.UpdateAfterRemoval(ctx, order.ID, productID, order.TotalPrice, order.Notes); err != nil {
		return nil, err
	}
	return order, nil
}

// restoreStock adds each line's quantity back onto its product. Lines whose
// product has since been deleted are skipped.
func (s *OrderService) restoreStock(ctx context.Context, items []domain.OrderItem) {
	var touched []uint64
	for _, item := range items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil || product == nil {
			continue
		}
		if err := s.products.UpdateQuantity(ctx, product.ID, product.Quantity+item.Quantity); err != nil {
			log.Printf("stock restore failed for product %d: %v", product.ID, err)
			continue
		}
		touched = append(touched, product.ID)
	}
	s.cache.Invalidate(ctx, touched...)
}
