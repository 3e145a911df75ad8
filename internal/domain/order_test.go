package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatusWalksTheFlow(t *testing.T) {
	status := OrderStatusCreated

	expected := []OrderStatus{
		OrderStatusPaid,
		OrderStatusPreparing,
		OrderStatusOutForDelivery,
		OrderStatusDelivered,
	}
	for _, want := range expected {
		next, ok := NextStatus(status)
		require.True(t, ok, "expected %s to be advanceable", status)
		assert.Equal(t, want, next)
		status = next
	}

	_, ok := NextStatus(OrderStatusDelivered)
	assert.False(t, ok, "delivered is terminal")
}

func TestNextStatusTerminalAndUnknown(t *testing.T) {
	_, ok := NextStatus(OrderStatusCancelled)
	assert.False(t, ok, "cancelled is terminal")

	_, ok = NextStatus("bogus")
	assert.False(t, ok)
}

func TestNewOrderTotals(t *testing.T) {
	userID := uuid.New()
	addressID := uuid.New()
	items := []OrderItem{
		{ProductID: uuid.New(), NameSnapshot: "Sourdough Loaf", UnitPriceCents: 1850, Quantity: 2},
		{ProductID: uuid.New(), NameSnapshot: "Cinnamon Roll", UnitPriceCents: 750, Quantity: 3},
	}

	order := NewOrder(userID, addressID, items, 1000, 500, PaymentProviderPix, DeliveryMethodDelivery)

	assert.Equal(t, OrderStatusCreated, order.Status)
	assert.Equal(t, int64(2*1850+3*750), order.SubtotalCents)
	assert.Equal(t, order.SubtotalCents+1000-500, order.TotalCents)

	require.Len(t, order.Items, 2)
	for i, item := range order.Items {
		assert.NotEqual(t, uuid.Nil, item.ID)
		assert.Equal(t, order.ID, item.OrderID)
		assert.Equal(t, i, item.Position)
	}

	// line items keep the order they were submitted in
	assert.Equal(t, "Sourdough Loaf", order.Items[0].NameSnapshot)
	assert.Equal(t, "Cinnamon Roll", order.Items[1].NameSnapshot)

	require.NotNil(t, order.Payment)
	assert.Equal(t, PaymentProviderPix, order.Payment.Provider)
	assert.Equal(t, PaymentStatusPending, order.Payment.Status)
	assert.Nil(t, order.Payment.PaidAt)

	require.NotNil(t, order.Delivery)
	assert.Equal(t, DeliveryMethodDelivery, order.Delivery.Method)
	assert.Equal(t, DeliveryStatusAwaiting, order.Delivery.Status)
}

func TestOrderItemSubtotal(t *testing.T) {
	item := OrderItem{UnitPriceCents: 99900, Quantity: 2}
	assert.Equal(t, int64(199800), item.SubtotalCents())
}
