package domain

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash on delivery"
	PaymentCredit         PaymentMethod = "credit"
)

type Order struct {
	ID         uint64        `json:"id" gorm:"primaryKey;autoIncrement"`
	CustomerID uint64        `json:"customerId" gorm:"not null;index"`
	Items      []OrderItem   `json:"products" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalPrice float64       `json:"totalPrice" gorm:"not null"`
	Status     OrderStatus   `json:"status" gorm:"type:enum('pending','processing','shipped','delivered','cancelled');default:'pending';index"`
	Payment    PaymentMethod `json:"payment" gorm:"not null"`
	Notes      string        `json:"notes,omitempty"`
	CreatedAt  time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt  time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`
}

// OrderItem is a frozen line: PriceAtOrder is the checkout-time unit price
// and stays authoritative no matter what happens to the product afterwards.
type OrderItem struct {
	ID           uint64  `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID      uint64  `json:"-" gorm:"not null;index"`
	ProductID    uint64  `json:"productId" gorm:"not null;index"`
	Quantity     int64   `json:"quantity" gorm:"not null"`
	PriceAtOrder float64 `json:"priceAtOrder" gorm:"not null"`
	SellerID     uint64  `json:"sellerId" gorm:"not null;index"`
}

// SellerIDs returns the distinct sellers involved in the order, in first
// appearance order.
func (o *Order) SellerIDs() []uint64 {
	seen := make(map[uint64]bool, len(o.Items))
	var ids []uint64
	for _, item := range o.Items {
		if !seen[item.SellerID] {
			seen[item.SellerID] = true
			ids = append(ids, item.SellerID)
		}
	}
	return ids
}

// InvolvesSeller reports whether the given user sells any line of the order.
func (o *Order) InvolvesSeller(userID uint64) bool {
	for _, item := range o.Items {
		if item.SellerID == userID {
			return true
		}
	}
	return false
}

// RecomputeTotal resets TotalPrice from the remaining items' snapshotted
// prices.
func (o *Order) RecomputeTotal() {
	var total float64
	for _, item := range o.Items {
		total += item.PriceAtOrder * float64(item.Quantity)
	}
	o.TotalPrice = total
}
