package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	SizeSmall  = "Small"
	SizeMedium = "Medium"
	SizeLarge  = "Large"
)

const (
	DeliveryMethodDelivery = "delivery"
	DeliveryMethodPickup   = "pickup"
)

const (
	PaymentMethodCash = "Cash"
	PaymentMethodCard = "Card"
)

const (
	OrderStatusReceived  = "Received"
	OrderStatusPreparing = "Preparing"
	OrderStatusReady     = "Ready"
	OrderStatusCompleted = "Completed"
	OrderStatusCanceled  = "Canceled"
)

type Pizza struct {
	Quantity int      `json:"quantity"`
	Size     string   `json:"size"`
	Toppings string   `json:"toppings"`
	Extras   []string `json:"extras"`
}

type Beverage struct {
	Quantity int    `json:"quantity"`
	Item     string `json:"item"`
}

// Card holds the payment card collected in the dialog. CVV never leaves the
// session: it is excluded from every persisted snapshot.
type Card struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVV    string `json:"-"`
}

// Masked keeps only the last four digits of the number.
func (c Card) Masked() Card {
	masked := c.Number
	if len(masked) > 4 {
		masked = "************" + masked[len(masked)-4:]
	}
	return Card{Number: masked, Expiry: c.Expiry}
}

type OrderDraft struct {
	Pizzas         []Pizza    `json:"pizzas"`
	Beverages      []Beverage `json:"beverages"`
	Extras         []string   `json:"extras"`
	DeliveryMethod string     `json:"delivery_method,omitempty"`
	Address        *string    `json:"address"`
	PaymentMethod  string     `json:"payment_method,omitempty"`
	Card           *Card      `json:"card,omitempty"`
	EstimatedTotal string     `json:"estimated_total,omitempty"`
	OrderTime      *time.Time `json:"order_time,omitempty"`
}

func NewOrderDraft() OrderDraft {
	return OrderDraft{
		Pizzas:    []Pizza{},
		Beverages: []Beverage{},
		Extras:    []string{},
	}
}

// Snapshot returns a deep copy safe to persist. The card, if any, is masked.
func (d OrderDraft) Snapshot() OrderDraft {
	out := OrderDraft{
		Pizzas:         make([]Pizza, len(d.Pizzas)),
		Beverages:      append([]Beverage{}, d.Beverages...),
		Extras:         append([]string{}, d.Extras...),
		DeliveryMethod: d.DeliveryMethod,
		PaymentMethod:  d.PaymentMethod,
		EstimatedTotal: d.EstimatedTotal,
	}
	for i, p := range d.Pizzas {
		p.Extras = append([]string{}, p.Extras...)
		out.Pizzas[i] = p
	}
	if d.Address != nil {
		addr := *d.Address
		out.Address = &addr
	}
	if d.Card != nil {
		card := d.Card.Masked()
		out.Card = &card
	}
	if d.OrderTime != nil {
		ts := *d.OrderTime
		out.OrderTime = &ts
	}
	return out
}

// Summary renders the draft as confirmation lines.
func (d OrderDraft) Summary() []string {
	var lines []string
	for _, p := range d.Pizzas {
		lines = append(lines, fmt.Sprintf("- %d %s pizza(s) with %s", p.Quantity, p.Size, p.Toppings))
		if len(p.Extras) > 0 {
			lines = append(lines, "  Extras: "+strings.Join(p.Extras, ", "))
		}
	}
	for _, b := range d.Beverages {
		lines = append(lines, fmt.Sprintf("- %d %s", b.Quantity, b.Item))
	}
	if len(d.Extras) > 0 {
		lines = append(lines, "Extras: "+strings.Join(d.Extras, ", "))
	}
	switch d.DeliveryMethod {
	case DeliveryMethodDelivery:
		addr := ""
		if d.Address != nil {
			addr = *d.Address
		}
		lines = append(lines, "Delivery to: "+addr)
	case DeliveryMethodPickup:
		lines = append(lines, "Pickup")
	}
	switch {
	case d.PaymentMethod == PaymentMethodCard && d.Card != nil && len(d.Card.Number) >= 4:
		lines = append(lines, "Payment: Card ending in "+d.Card.Number[len(d.Card.Number)-4:])
	case d.PaymentMethod != "":
		lines = append(lines, "Payment: "+d.PaymentMethod)
	}
	return lines
}

// Order is a confirmed draft as stored. Details comes from
// OrderDraft.Snapshot, so the card number is masked and the CVV is absent.
type Order struct {
	ID           string     `json:"id"`
	CustomerName string     `json:"customer_name"`
	PhoneNumber  string     `json:"phone_number"`
	Details      OrderDraft `json:"order_details"`
	Status       string     `json:"status"`
}
