package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrder_Creation(t *testing.T) {
	draft := NewOrderDraft()
	draft.Pizzas = append(draft.Pizzas, Pizza{Quantity: 2, Size: SizeLarge, Toppings: "Pepperoni", Extras: []string{}})
	draft.DeliveryMethod = DeliveryMethodPickup
	draft.PaymentMethod = PaymentMethodCash

	order := Order{
		ID:           "0001",
		CustomerName: "Sam",
		PhoneNumber:  "5551234567",
		Details:      draft,
		Status:       OrderStatusReceived,
	}

	assert.Equal(t, "0001", order.ID)
	assert.Equal(t, "Sam", order.CustomerName)
	assert.Equal(t, "Received", order.Status)
	assert.Nil(t, order.Details.Address)
	assert.Len(t, order.Details.Pizzas, 1)
}

func TestCard_Masked(t *testing.T) {
	card := Card{Number: "4111111111111111", Expiry: "12/30", CVV: "123"}

	masked := card.Masked()

	assert.Equal(t, "************1111", masked.Number)
	assert.Equal(t, "12/30", masked.Expiry)
	assert.Empty(t, masked.CVV)
}

func TestOrderDraft_Snapshot_DeepCopies(t *testing.T) {
	addr := "12 Elm St"
	ts := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	draft := OrderDraft{
		Pizzas:         []Pizza{{Quantity: 1, Size: SizeMedium, Toppings: "Cheese", Extras: []string{"Garlic Sauce"}}},
		Beverages:      []Beverage{{Quantity: 2, Item: "Coke"}},
		Extras:         []string{"Brownies"},
		DeliveryMethod: DeliveryMethodDelivery,
		Address:        &addr,
		PaymentMethod:  PaymentMethodCard,
		Card:           &Card{Number: "4111111111111111", Expiry: "01/29", CVV: "999"},
		OrderTime:      &ts,
	}

	snap := draft.Snapshot()
	draft.Pizzas[0].Extras[0] = "changed"
	*draft.Address = "changed"

	assert.Equal(t, "Garlic Sauce", snap.Pizzas[0].Extras[0])
	assert.Equal(t, "12 Elm St", *snap.Address)
	assert.Equal(t, "************1111", snap.Card.Number)
	assert.Empty(t, snap.Card.CVV)
	assert.Equal(t, ts, *snap.OrderTime)
}

func TestCustomer_HasOrder(t *testing.T) {
	c := Customer{Name: "Sam", OrderHistory: []string{"0001", "0007"}}

	assert.True(t, c.HasOrder("0007"))
	assert.False(t, c.HasOrder("0002"))
}

func TestOrder_StatusConstants(t *testing.T) {
	assert.Equal(t, "Received", OrderStatusReceived)
	assert.Equal(t, "delivery", DeliveryMethodDelivery)
	assert.Equal(t, "pickup", DeliveryMethodPickup)
	assert.Equal(t, "Cash", PaymentMethodCash)
}

func TestOrderDraft_Summary(t *testing.T) {
	addr := "12 Main St"
	draft := NewOrderDraft()
	draft.Pizzas = []Pizza{
		{Quantity: 2, Size: SizeLarge, Toppings: "Pepperoni", Extras: []string{"Olives", "Extra Cheese"}},
		{Quantity: 1, Size: SizeSmall, Toppings: "Cheese", Extras: []string{}},
	}
	draft.Beverages = []Beverage{{Quantity: 2, Item: "Coke"}}
	draft.Extras = []string{"Garlic Bread"}
	draft.DeliveryMethod = DeliveryMethodDelivery
	draft.Address = &addr
	draft.PaymentMethod = PaymentMethodCard
	draft.Card = &Card{Number: "4111111111111234", Expiry: "12/30", CVV: "123"}

	assert.Equal(t, []string{
		"- 2 Large pizza(s) with Pepperoni",
		"  Extras: Olives, Extra Cheese",
		"- 1 Small pizza(s) with Cheese",
		"- 2 Coke",
		"Extras: Garlic Bread",
		"Delivery to: 12 Main St",
		"Payment: Card ending in 1234",
	}, draft.Summary())
}

func TestOrderDraft_SummaryPickupCash(t *testing.T) {
	draft := NewOrderDraft()
	draft.Pizzas = []Pizza{{Quantity: 1, Size: SizeMedium, Toppings: "Margherita"}}
	draft.DeliveryMethod = DeliveryMethodPickup
	draft.PaymentMethod = PaymentMethodCash

	assert.Equal(t, []string{
		"- 1 Medium pizza(s) with Margherita",
		"Pickup",
		"Payment: Cash",
	}, draft.Summary())
}
