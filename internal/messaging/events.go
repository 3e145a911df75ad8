package messaging

import (
	"time"

	"github.com/google/uuid"

	"github.com/bakehouse-commerce/storefront-api/internal/domain"
)

type EventType string

const (
	OrderCreated       EventType = "order.created"
	OrderPaid          EventType = "order.paid"
	OrderStatusChanged EventType = "order.status_changed"
)

// OrderEvent is published after the owning transaction commits. Consumers
// outside this process (notification senders, analytics) bind to the topic
// exchange by routing key.
type OrderEvent struct {
	ID         uuid.UUID          `json:"id"`
	OrderID    uuid.UUID          `json:"order_id"`
	UserID     uuid.UUID          `json:"user_id"`
	Type       EventType          `json:"type"`
	Status     domain.OrderStatus `json:"status"`
	TotalCents int64              `json:"total_cents"`
	Timestamp  time.Time          `json:"timestamp"`
}

func NewOrderEvent(order *domain.Order, eventType EventType) OrderEvent {
	return OrderEvent{
		ID:         uuid.New(),
		OrderID:    order.ID,
		UserID:     order.UserID,
		Type:       eventType,
		Status:     order.Status,
		TotalCents: order.TotalCents,
		Timestamp:  time.Now(),
	}
}
