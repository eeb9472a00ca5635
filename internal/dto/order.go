package dto

import "time"

type OrderResponse struct {
	TraceID        string        `json:"traceId"`
	OrderID        string        `json:"orderId"`
	CustomerName   string        `json:"customerName"`
	Status         string        `json:"status"`
	DeliveryMethod string        `json:"deliveryMethod"`
	PaymentMethod  string        `json:"paymentMethod"`
	Pizzas         []PizzaDTO    `json:"pizzas"`
	Beverages      []BeverageDTO `json:"beverages"`
	Extras         []string      `json:"extras"`
	EstimatedTotal string        `json:"estimatedTotal,omitempty"`
	OrderTime      *time.Time    `json:"orderTime,omitempty"`
}

type PizzaDTO struct {
	Quantity int      `json:"quantity"`
	Size     string   `json:"size"`
	Toppings string   `json:"toppings"`
	Extras   []string `json:"extras"`
}

type BeverageDTO struct {
	Quantity int    `json:"quantity"`
	Item     string `json:"item"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	TraceID   string    `json:"traceId"`
	Status    int       `json:"status"`
	Message   string    `json:"message"`
	Code      string    `json:"code"`
	OrderID   string    `json:"orderId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
