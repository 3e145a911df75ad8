package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusCreated        OrderStatus = "created"
	OrderStatusPaid           OrderStatus = "paid"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// statusFlow is the linear progression walked by the advance operation.
// Cancelled is terminal and reachable only through the admin direct-set.
var statusFlow = []OrderStatus{
	OrderStatusCreated,
	OrderStatusPaid,
	OrderStatusPreparing,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

// NextStatus returns the status following s in the flow. The second return
// is false when s is terminal or outside the flow entirely.
func NextStatus(s OrderStatus) (OrderStatus, bool) {
	for i, st := range statusFlow {
		if st == s && i < len(statusFlow)-1 {
			return statusFlow[i+1], true
		}
	}
	return "", false
}

type PaymentProvider string

const (
	PaymentProviderPix        PaymentProvider = "pix"
	PaymentProviderCreditCard PaymentProvider = "credit_card"
	PaymentProviderBoleto     PaymentProvider = "boleto"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusConfirmed PaymentStatus = "confirmed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type DeliveryMethod string

const (
	DeliveryMethodPickup   DeliveryMethod = "pickup"
	DeliveryMethodDelivery DeliveryMethod = "delivery"
)

type DeliveryStatus string

const (
	DeliveryStatusAwaiting  DeliveryStatus = "awaiting"
	DeliveryStatusEnRoute   DeliveryStatus = "en_route"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
)

type Order struct {
	ID            uuid.UUID   `json:"id"`
	UserID        uuid.UUID   `json:"user_id"`
	AddressID     uuid.UUID   `json:"address_id"`
	Status        OrderStatus `json:"status"`
	SubtotalCents int64       `json:"subtotal_cents"`
	ShippingCents int64       `json:"shipping_cents"`
	DiscountCents int64       `json:"discount_cents"`
	TotalCents    int64       `json:"total_cents"`
	Items         []OrderItem `json:"items"`
	Payment       *Payment    `json:"payment,omitempty"`
	Delivery      *Delivery   `json:"delivery,omitempty"`
	Address       *Address    `json:"address,omitempty"`
	User          *UserRef    `json:"user,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// OrderItem is a frozen snapshot of the product at purchase time. Later
// product edits must not alter historical orders.
type OrderItem struct {
	ID             uuid.UUID `json:"id"`
	OrderID        uuid.UUID `json:"order_id"`
	ProductID      uuid.UUID `json:"product_id"`
	NameSnapshot   string    `json:"name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
	Position       int       `json:"position"`
}

func (i OrderItem) SubtotalCents() int64 {
	return i.UnitPriceCents * int64(i.Quantity)
}

type Payment struct {
	ID       uuid.UUID       `json:"id"`
	OrderID  uuid.UUID       `json:"order_id"`
	Provider PaymentProvider `json:"provider"`
	Status   PaymentStatus   `json:"status"`
	PaidAt   *time.Time      `json:"paid_at,omitempty"`
}

type Delivery struct {
	ID        uuid.UUID      `json:"id"`
	OrderID   uuid.UUID      `json:"order_id"`
	Method    DeliveryMethod `json:"method"`
	Status    DeliveryStatus `json:"status"`
	Tracking  *string        `json:"tracking,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewOrder assembles an order with its pending payment and awaiting delivery
// sub-records. Totals are integer cents: total = subtotal + shipping - discount.
func NewOrder(userID, addressID uuid.UUID, items []OrderItem, shippingCents, discountCents int64, provider PaymentProvider, method DeliveryMethod) *Order {
	orderID := uuid.New()
	now := time.Now()

	var subtotal int64
	for i := range items {
		items[i].ID = uuid.New()
		items[i].OrderID = orderID
		items[i].Position = i
		subtotal += items[i].SubtotalCents()
	}

	return &Order{
		ID:            orderID,
		UserID:        userID,
		AddressID:     addressID,
		Status:        OrderStatusCreated,
		SubtotalCents: subtotal,
		ShippingCents: shippingCents,
		DiscountCents: discountCents,
		TotalCents:    subtotal + shippingCents - discountCents,
		Items:         items,
		Payment: &Payment{
			ID:       uuid.New(),
			OrderID:  orderID,
			Provider: provider,
			Status:   PaymentStatusPending,
		},
		Delivery: &Delivery{
			ID:        uuid.New(),
			OrderID:   orderID,
			Method:    method,
			Status:    DeliveryStatusAwaiting,
			UpdatedAt: now,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type CreateOrderRequest struct {
	AddressID      uuid.UUID          `json:"address_id" validate:"required"`
	Items          []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Payment        PaymentRequest     `json:"payment" validate:"required"`
	DeliveryMethod DeliveryMethod     `json:"delivery_method" validate:"omitempty,oneof=pickup delivery"`
	ShippingCents  *int64             `json:"shipping_cents" validate:"omitempty,min=0"`
}

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type PaymentRequest struct {
	Provider PaymentProvider `json:"provider" validate:"required,oneof=pix credit_card boleto"`
}

type SetOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=created paid preparing out_for_delivery delivered cancelled"`
}

type UpdateDeliveryRequest struct {
	Method   *DeliveryMethod `json:"method" validate:"omitempty,oneof=pickup delivery"`
	Status   *DeliveryStatus `json:"status" validate:"omitempty,oneof=awaiting en_route delivered"`
	Tracking *string         `json:"tracking"`
}

type SetPaymentStatusRequest struct {
	Status PaymentStatus `json:"status" validate:"required,oneof=pending confirmed failed"`
}
