package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"pizzabot/internal/domain"
	"pizzabot/internal/errors"
	"pizzabot/internal/store"
)

type CustomerRepository struct {
	store store.Store
	mu    sync.Mutex
}

func NewCustomerRepository(s store.Store) *CustomerRepository {
	return &CustomerRepository{store: s}
}

func (r *CustomerRepository) FindByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.store.Load(ctx, store.CollectionCustomers)
	if err != nil {
		return nil, err
	}

	raw, ok := data[phone]
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("customer with phone %s not found", phone))
	}

	return decodeCustomer(phone, raw)
}

// AppendOrder adds orderID to the customer's history, creating the customer
// record on first order. An id already present is not appended twice.
func (r *CustomerRepository) AppendOrder(ctx context.Context, phone, name, orderID string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.store.Load(ctx, store.CollectionCustomers)
	if err != nil {
		return nil, err
	}

	customer := &domain.Customer{Phone: phone, Name: name, OrderHistory: []string{}}
	if raw, ok := data[phone]; ok {
		customer, err = decodeCustomer(phone, raw)
		if err != nil {
			return nil, err
		}
	}

	if customer.Name == "" {
		customer.Name = name
	}
	if !customer.HasOrder(orderID) {
		customer.OrderHistory = append(customer.OrderHistory, orderID)
	}

	encoded, err := json.Marshal(customer)
	if err != nil {
		return nil, fmt.Errorf("encoding customer %s: %w", phone, err)
	}
	data[phone] = encoded

	if err := r.store.Save(ctx, store.CollectionCustomers, data); err != nil {
		return nil, err
	}
	return customer, nil
}

func decodeCustomer(phone string, raw json.RawMessage) (*domain.Customer, error) {
	var customer domain.Customer
	if err := json.Unmarshal(raw, &customer); err != nil {
		return nil, fmt.Errorf("decoding customer %s: %w", phone, err)
	}
	customer.Phone = phone
	if customer.OrderHistory == nil {
		customer.OrderHistory = []string{}
	}
	return &customer, nil
}
