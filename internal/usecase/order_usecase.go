package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderLineInput is one requested line at checkout. Name, price and image are
// snapshotted from the database product, never taken from the client.
type OrderLineInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// PlaceOrderInput defines the data required to place an order.
type PlaceOrderInput struct {
	UserID          uuid.UUID
	Lines           []OrderLineInput
	ShippingAddress entity.ShippingAddress
	PaymentMethod   string
	ShippingPrice   float64
	TaxPrice        float64
}

// UpdateOrderStatusInput defines an admin status change. Empty fields are
// left unchanged.
type UpdateOrderStatusInput struct {
	OrderID       uuid.UUID
	OrderStatus   string
	PaymentStatus string
}

// OrderUsecase defines the interface for order lifecycle operations.
type OrderUsecase interface {
	// PlaceOrder decrements stock and persists the order atomically, then
	// publishes an order-created event.
	PlaceOrder(ctx context.Context, input *PlaceOrderInput) (*entity.Order, error)

	// GetOrder returns the order when the requester owns it or is an admin.
	GetOrder(ctx context.Context, orderID, requesterID uuid.UUID, requesterIsAdmin bool) (*entity.Order, error)

	// ListMyOrders returns the caller's orders, newest first.
	ListMyOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// ListAllOrders returns every order with owner identity resolved.
	ListAllOrders(ctx context.Context) ([]*entity.Order, error)

	// UpdateOrderStatus applies payment and fulfillment status changes,
	// stamping PaidAt and DeliveredAt on their first transitions only.
	UpdateOrderStatus(ctx context.Context, input *UpdateOrderStatusInput) (*entity.Order, error)

	// OrderQRCode renders a PNG QR code referencing the order, with the same
	// visibility rule as GetOrder.
	OrderQRCode(ctx context.Context, orderID, requesterID uuid.UUID, requesterIsAdmin bool) ([]byte, error)
}
