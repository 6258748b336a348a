package service

import (
	"context"
	"time"
)

// Order event types published on the order lifecycle topic.
const (
	OrderEventCreated       = "order.created"
	OrderEventStatusUpdated = "order.status_updated"
)

// OrderEvent represents an order lifecycle event for async consumers
// (fulfillment, notification and reporting pipelines).
type OrderEvent struct {
	RequestID     string    `json:"request_id,omitempty"` // For distributed tracing
	EventType     string    `json:"event_type"`
	OrderID       string    `json:"order_id"`
	UserID        string    `json:"user_id"`
	TotalPrice    float64   `json:"total_price"`
	PaymentStatus string    `json:"payment_status"`
	OrderStatus   string    `json:"order_status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order lifecycle event for async processing
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
