package service

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/bakehouse-commerce/storefront-api/internal/domain"
	"github.com/bakehouse-commerce/storefront-api/internal/messaging"
)

// OrderStore is the persistence surface the order workflow needs.
type OrderStore interface {
	Create(order *domain.Order) error
	GetByID(orderID uuid.UUID) (*domain.Order, error)
	GetForUser(orderID, userID uuid.UUID) (*domain.Order, error)
	ListByUser(userID uuid.UUID) ([]*domain.Order, error)
	ListAll() ([]*domain.Order, error)
	SetStatus(orderID uuid.UUID, status domain.OrderStatus) (bool, error)
	MarkPaid(orderID uuid.UUID, paidAt time.Time) error
	UpsertDelivery(orderID uuid.UUID, req domain.UpdateDeliveryRequest) (*domain.Delivery, error)
	SetPaymentStatus(orderID uuid.UUID, status domain.PaymentStatus) (*domain.Payment, error)
	CountByStatus() (map[domain.OrderStatus]int64, error)
	RevenueCents() (int64, error)
}

type ProductFinder interface {
	GetByIDs(ids []uuid.UUID) ([]*domain.Product, error)
}

type AddressFinder interface {
	GetByID(id uuid.UUID) (*domain.Address, error)
}

type EventPublisher interface {
	PublishOrderEvent(event messaging.OrderEvent) error
}

type OrderService struct {
	orders    OrderStore
	products  ProductFinder
	addresses AddressFinder
	// publisher is optional; nil disables event publication entirely.
	publisher            EventPublisher
	defaultShippingCents int64
}

func NewOrderService(orders OrderStore, products ProductFinder, addresses AddressFinder, publisher EventPublisher, defaultShippingCents int64) *OrderService {
	return &OrderService{
		orders:               orders,
		products:             products,
		addresses:            addresses,
		publisher:            publisher,
		defaultShippingCents: defaultShippingCents,
	}
}

// Create validates the cart, snapshots product name and price into the line
// items, and persists the order with its payment and delivery sub-records.
// The address must belong to the requesting user; a foreign address surfaces
// as not-found so other users' addresses are never confirmed to exist.
func (s *OrderService) Create(userID uuid.UUID, req domain.CreateOrderRequest) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, domain.BadRequest("empty cart")
	}

	ids := make([]uuid.UUID, len(req.Items))
	for i, item := range req.Items {
		ids[i] = item.ProductID
	}
	products, err := s.products.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, domain.BadRequest("invalid product in order: " + item.ProductID.String())
		}
		if item.Quantity > product.Stock {
			return nil, domain.ErrInsufficientStock
		}
		items = append(items, domain.OrderItem{
			ProductID:      product.ID,
			NameSnapshot:   product.Name,
			UnitPriceCents: product.PriceCents,
			Quantity:       item.Quantity,
		})
	}

	address, err := s.addresses.GetByID(req.AddressID)
	if err != nil {
		return nil, err
	}
	if address == nil || address.UserID != userID {
		return nil, domain.NotFound("address not found")
	}

	shipping := s.defaultShippingCents
	if req.ShippingCents != nil {
		shipping = *req.ShippingCents
	}
	method := req.DeliveryMethod
	if method == "" {
		method = domain.DeliveryMethodDelivery
	}

	order := domain.NewOrder(userID, address.ID, items, shipping, 0, req.Payment.Provider, method)
	if err := s.orders.Create(order); err != nil {
		return nil, err
	}

	log.Printf("order created: id=%s user=%s total=%d", order.ID, userID, order.TotalCents)
	s.publish(order, messaging.OrderCreated)
	return order, nil
}

func (s *OrderService) ListForUser(userID uuid.UUID) ([]*domain.Order, error) {
	return s.orders.ListByUser(userID)
}

func (s *OrderService) GetForUser(userID, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orders.GetForUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("order not found")
	}
	return order, nil
}

// OrderTracking is the reduced projection served by the tracking endpoint.
type OrderTracking struct {
	OrderID     uuid.UUID          `json:"order_id"`
	OrderStatus domain.OrderStatus `json:"order_status"`
	OrderDate   time.Time          `json:"order_date"`
	Delivery    *domain.Delivery   `json:"delivery,omitempty"`
}

func (s *OrderService) GetTracking(userID, orderID uuid.UUID) (*OrderTracking, error) {
	order, err := s.GetForUser(userID, orderID)
	if err != nil {
		return nil, err
	}
	return &OrderTracking{
		OrderID:     order.ID,
		OrderStatus: order.Status,
		OrderDate:   order.CreatedAt,
		Delivery:    order.Delivery,
	}, nil
}

// Pay confirms payment for an order still in the created status, moving it
// to paid and stamping the payment in the same update.
func (s *OrderService) Pay(userID, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orders.GetForUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("order not found")
	}
	if order.Status != domain.OrderStatusCreated {
		return nil, domain.BadRequest("order not eligible for payment")
	}

	paidAt := time.Now()
	if err := s.orders.MarkPaid(order.ID, paidAt); err != nil {
		return nil, err
	}

	order.Status = domain.OrderStatusPaid
	order.UpdatedAt = paidAt
	if order.Payment != nil {
		order.Payment.Status = domain.PaymentStatusConfirmed
		order.Payment.PaidAt = &paidAt
	}

	s.publish(order, messaging.OrderPaid)
	return order, nil
}

// Advance moves the order one step along the fixed status flow. Terminal
// statuses, including cancelled, are not advanceable.
func (s *OrderService) Advance(orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("order not found")
	}

	next, ok := domain.NextStatus(order.Status)
	if !ok {
		return nil, domain.BadRequest("order flow not advanceable")
	}

	if _, err := s.orders.SetStatus(order.ID, next); err != nil {
		return nil, err
	}
	order.Status = next
	order.UpdatedAt = time.Now()

	s.publish(order, messaging.OrderStatusChanged)
	return order, nil
}

func (s *OrderService) ListAll() ([]*domain.Order, error) {
	return s.orders.ListAll()
}

func (s *OrderService) GetByID(orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("order not found")
	}
	return order, nil
}

// SetStatus is the admin escape hatch: it writes any status directly and
// performs no transition-validity check.
func (s *OrderService) SetStatus(orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	found, err := s.orders.SetStatus(orderID, status)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NotFound("order not found")
	}

	order, err := s.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	s.publish(order, messaging.OrderStatusChanged)
	return order, nil
}

func (s *OrderService) UpdateDelivery(orderID uuid.UUID, req domain.UpdateDeliveryRequest) (*domain.Delivery, error) {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("order not found")
	}
	return s.orders.UpsertDelivery(orderID, req)
}

func (s *OrderService) SetPaymentStatus(orderID uuid.UUID, status domain.PaymentStatus) (*domain.Payment, error) {
	payment, err := s.orders.SetPaymentStatus(orderID, status)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.NotFound("payment not found for order")
	}
	return payment, nil
}

// Dashboard aggregates order counts per status and total revenue.
type Dashboard struct {
	OrdersByStatus    map[domain.OrderStatus]int64 `json:"orders_by_status"`
	TotalRevenueCents int64                        `json:"total_revenue_cents"`
}

func (s *OrderService) Dashboard() (*Dashboard, error) {
	counts, err := s.orders.CountByStatus()
	if err != nil {
		return nil, err
	}
	revenue, err := s.orders.RevenueCents()
	if err != nil {
		return nil, err
	}
	return &Dashboard{OrdersByStatus: counts, TotalRevenueCents: revenue}, nil
}

// publish sends the lifecycle event after the state change is committed.
// Failures are logged and never surfaced to the request.
func (s *OrderService) publish(order *domain.Order, eventType messaging.EventType) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderEvent(messaging.NewOrderEvent(order, eventType)); err != nil {
		log.Printf("order event publish error: %v", err)
	}
}
