package domain

import "time"

type OrderCreatedEvent struct {
	OrderID    uint64        `json:"orderId"`
	CustomerID uint64        `json:"customerId"`
	SellerIDs  []uint64      `json:"sellerIds"`
	TotalPrice float64       `json:"totalPrice"`
	Payment    PaymentMethod `json:"payment"`
	CreatedAt  time.Time     `json:"createdAt"`
}

type OrderCancelledEvent struct {
	OrderID     uint64    `json:"orderId"`
	CustomerID  uint64    `json:"customerId"`
	CancelledBy uint64    `json:"cancelledBy"`
	CancelledAt time.Time `json:"cancelledAt"`
}

// OrderRefundedEvent is the simulated refund signal emitted when a credit
// order is cancelled. No money moves anywhere.
type OrderRefundedEvent struct {
	OrderID    uint64    `json:"orderId"`
	CustomerID uint64    `json:"customerId"`
	Amount     float64   `json:"amount"`
	RefundedAt time.Time `json:"refundedAt"`
}
