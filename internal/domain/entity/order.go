// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is the payment option chosen at checkout.
type PaymentMethod string

const (
	PaymentMethodCreditCard     PaymentMethod = "Credit Card"
	PaymentMethodPayPal         PaymentMethod = "PayPal"
	PaymentMethodCashOnDelivery PaymentMethod = "Cash on Delivery"
)

// IsValid checks if the PaymentMethod is a valid value.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodPayPal, PaymentMethodCashOnDelivery:
		return true
	default:
		return false
	}
}

// PaymentStatus tracks whether an order has been paid.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusFailed  PaymentStatus = "Failed"
)

// IsValid checks if the PaymentStatus is a valid value.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed:
		return true
	default:
		return false
	}
}

// OrderStatus tracks fulfillment progress.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// ShippingAddress is the destination captured at checkout.
// It is embedded in the order, not linked to the user's address book,
// so later address edits never affect placed orders.
type ShippingAddress struct {
	Address    string
	City       string
	PostalCode string
	Country    string
}

// OrderLine is one purchased product within an order.
// Name, Price and Image are snapshots taken from the product at checkout
// and stay fixed regardless of later catalog edits.
type OrderLine struct {
	ProductID uuid.UUID
	Name      string
	Price     float64
	Image     string
	Quantity  int // At least 1.
}

// Order is a placed order. Orders are never deleted.
// PaidAt is stamped exactly once on the first transition to Paid;
// DeliveredAt exactly once on the first transition to Delivered.
type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Lines           []OrderLine
	ShippingAddress ShippingAddress
	PaymentMethod   PaymentMethod
	PaymentStatus   PaymentStatus
	OrderStatus     OrderStatus
	ItemsPrice      float64 // Sum of line price * quantity, computed server-side.
	ShippingPrice   float64
	TaxPrice        float64
	TotalPrice      float64 // ItemsPrice + ShippingPrice + TaxPrice.
	PaidAt          *time.Time
	DeliveredAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// UserName and UserEmail are populated on admin listings only.
	UserName  string
	UserEmail string
}
