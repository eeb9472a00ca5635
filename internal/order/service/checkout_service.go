package service

import (
	"context"
	"fmt"
	"time"

	"pizzabot/internal/domain"
	apperrors "pizzabot/internal/errors"

	"go.uber.org/zap"
)

type IDAllocator interface {
	Allocate(ctx context.Context, existing map[string]bool) (string, error)
}

type OrderRepository interface {
	IDs(ctx context.Context) (map[string]bool, error)
	Insert(ctx context.Context, order domain.Order) error
}

type CustomerRepository interface {
	AppendOrder(ctx context.Context, phone, name, orderID string) (*domain.Customer, error)
}

type TicketPublisher interface {
	PublishOrder(ctx context.Context, order domain.Order) error
}

type CheckoutService struct {
	allocator IDAllocator
	orders    OrderRepository
	customers CustomerRepository
	publisher TicketPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewCheckoutService wires the commit path. publisher may be nil.
func NewCheckoutService(
	allocator IDAllocator,
	orders OrderRepository,
	customers CustomerRepository,
	publisher TicketPublisher,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		allocator: allocator,
		orders:    orders,
		customers: customers,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// PlaceOrder commits a confirmed draft: it stamps the order time, allocates
// an id, writes the order and then appends it to the customer's history.
//
// The two writes are not atomic. When the order is stored but the customer
// write fails, the order is still returned so that a retry cannot record it
// twice; the gap is logged.
func (s *CheckoutService) PlaceOrder(ctx context.Context, name, phone string, draft domain.OrderDraft) (*domain.Order, error) {
	details := draft.Snapshot()
	orderTime := s.now().UTC()
	details.OrderTime = &orderTime

	existing, err := s.orders.IDs(ctx)
	if err != nil {
		s.logger.Error("failed to load order ids", zap.Error(err))
		return nil, fmt.Errorf("loading order ids: %w", err)
	}

	id, err := s.allocator.Allocate(ctx, existing)
	if err != nil {
		if ae, ok := apperrors.IsAllocationExhaustedError(err); ok {
			s.logger.Error("order not placed: id space exhausted",
				zap.String("phone", phone),
				zap.Int("attempts", ae.Attempts),
			)
		}
		return nil, fmt.Errorf("allocating order id: %w", err)
	}

	order := domain.Order{
		ID:           id,
		CustomerName: name,
		PhoneNumber:  phone,
		Details:      details,
		Status:       domain.OrderStatusReceived,
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		s.logger.Error("failed to store order", zap.String("orderId", id), zap.Error(err))
		return nil, fmt.Errorf("storing order %s: %w", id, err)
	}

	if _, err := s.customers.AppendOrder(ctx, phone, name, id); err != nil {
		s.logger.Error("order stored without customer history update",
			zap.String("orderId", id),
			zap.String("phone", phone),
			zap.Error(err),
		)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrder(ctx, order); err != nil {
			s.logger.Warn("failed to publish kitchen ticket", zap.String("orderId", id), zap.Error(err))
		}
	}

	s.logger.Info("order placed",
		zap.String("orderId", id),
		zap.String("deliveryMethod", details.DeliveryMethod),
		zap.Int("pizzaCount", len(details.Pizzas)),
	)

	return &order, nil
}
