package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"pizzabot/internal/domain"
	"pizzabot/internal/errors"
	"pizzabot/internal/store"

	"go.uber.org/zap"
)

// OrderRepository maps the orders collection onto domain.Order. Every
// load-modify-save cycle runs under mu so concurrent confirmations cannot
// lose each other's writes.
type OrderRepository struct {
	store  store.Store
	logger *zap.Logger
	mu     sync.Mutex
}

func NewOrderRepository(s store.Store, logger *zap.Logger) *OrderRepository {
	return &OrderRepository{store: s, logger: logger}
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.store.Load(ctx, store.CollectionOrders)
	if err != nil {
		return nil, err
	}

	raw, ok := data[id]
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}

	order, err := decodeOrder(id, raw)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// IDs returns the set of identifiers currently in the store.
func (r *OrderRepository) IDs(ctx context.Context) (map[string]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.store.Load(ctx, store.CollectionOrders)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]bool, len(data))
	for id := range data {
		ids[id] = true
	}
	return ids, nil
}

func (r *OrderRepository) Insert(ctx context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.store.Load(ctx, store.CollectionOrders)
	if err != nil {
		return err
	}

	if _, exists := data[order.ID]; exists {
		return errors.NewInternalError(fmt.Sprintf("order id %s already in use", order.ID), nil)
	}

	encoded, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encoding order %s: %w", order.ID, err)
	}
	data[order.ID] = encoded

	return r.store.Save(ctx, store.CollectionOrders, data)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.store.Load(ctx, store.CollectionOrders)
	if err != nil {
		return err
	}

	raw, ok := data[id]
	if !ok {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}

	order, err := decodeOrder(id, raw)
	if err != nil {
		return err
	}
	order.Status = status

	encoded, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encoding order %s: %w", id, err)
	}
	data[id] = encoded

	return r.store.Save(ctx, store.CollectionOrders, data)
}

// ListByIDs returns the orders found among ids, in ascending id order.
func (r *OrderRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.store.Load(ctx, store.CollectionOrders)
	if err != nil {
		return nil, err
	}

	sorted := append([]string{}, ids...)
	sort.Strings(sorted)

	orders := make([]domain.Order, 0, len(sorted))
	for _, id := range sorted {
		raw, ok := data[id]
		if !ok {
			continue
		}
		order, err := decodeOrder(id, raw)
		if err != nil {
			r.logger.Warn("skipping unreadable order", zap.String("orderId", id), zap.Error(err))
			continue
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

func decodeOrder(id string, raw json.RawMessage) (*domain.Order, error) {
	var order domain.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("decoding order %s: %w", id, err)
	}
	if order.ID == "" {
		order.ID = id
	}
	return &order, nil
}
