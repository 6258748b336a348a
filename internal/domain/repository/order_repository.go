package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// SalesPoint is one day of paid-order sales for the analytics dashboard.
type SalesPoint struct {
	Date       string  `json:"date"` // UTC calendar day, formatted YYYY-MM-DD.
	TotalSales float64 `json:"totalSales"`
	Count      int     `json:"count"`
}

// OrderRepository defines the standard operations for order persistence.
type OrderRepository interface {
	// Create persists a new order with its lines.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order with its lines.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByUser retrieves a user's orders, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// FindAll retrieves every order, newest first, with the owner's name
	// and email resolved.
	FindAll(ctx context.Context) ([]*entity.Order, error)

	// UpdateStatus persists payment and fulfillment status changes,
	// including the PaidAt and DeliveredAt stamps.
	UpdateStatus(ctx context.Context, order *entity.Order) error

	// Count returns the total number of orders.
	Count(ctx context.Context) (int64, error)

	// SumPaidSales returns the sum of TotalPrice over paid orders.
	SumPaidSales(ctx context.Context) (float64, error)

	// PaidSalesByDay aggregates paid orders by UTC calendar day, ascending,
	// returning at most limit of the most recent days.
	PaidSalesByDay(ctx context.Context, limit int) ([]SalesPoint, error)
}
