package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"pizzabot/internal/domain"
	apperrors "pizzabot/internal/errors"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

type OrderRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}

// transitions lists the statuses each status may move to.
var transitions = map[string][]string{
	domain.OrderStatusReceived:  {domain.OrderStatusPreparing, domain.OrderStatusCanceled},
	domain.OrderStatusPreparing: {domain.OrderStatusReady, domain.OrderStatusCanceled},
	domain.OrderStatusReady:     {domain.OrderStatusCompleted},
	domain.OrderStatusCompleted: {},
	domain.OrderStatusCanceled:  {},
}

type OrderStatusUseCase struct {
	orderRepo        OrderRepository
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewOrderStatusUseCase(orderRepo OrderRepository, logger *zap.Logger, maxRetryAttempts int) *OrderStatusUseCase {
	if maxRetryAttempts < 1 {
		maxRetryAttempts = 1
	}
	return &OrderStatusUseCase{
		orderRepo:        orderRepo,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

func (uc *OrderStatusUseCase) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if err := validateOrderID(id); err != nil {
		return nil, err
	}
	return uc.orderRepo.FindByID(ctx, id)
}

// UpdateStatus moves an order along Received, Preparing, Ready, Completed.
// Any order not yet Ready may be Canceled.
func (uc *OrderStatusUseCase) UpdateStatus(ctx context.Context, id string, status string) (*domain.Order, error) {
	if err := validateOrderID(id); err != nil {
		return nil, err
	}
	if _, known := transitions[status]; !known {
		return nil, apperrors.NewValidationError("invalid status", apperrors.ValidationDetail{
			Field:   "status",
			Message: fmt.Sprintf("unknown status %q", status),
		})
	}

	order, err := uc.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !allowed(order.Status, status) {
		return nil, apperrors.NewConflictError(fmt.Sprintf("order %s cannot move from %s to %s", id, order.Status, status))
	}

	if err := uc.updateWithRetry(ctx, id, status); err != nil {
		return nil, err
	}

	uc.logger.Info("order status updated",
		zap.String("orderId", id),
		zap.String("from", order.Status),
		zap.String("to", status),
	)

	order.Status = status
	return order, nil
}

func (uc *OrderStatusUseCase) updateWithRetry(ctx context.Context, id string, status string) error {
	backoffs := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

	var err error
	for attempt := 1; attempt <= uc.maxRetryAttempts; attempt++ {
		err = uc.orderRepo.UpdateStatus(ctx, id, status)
		if err == nil || !isDeadlockError(err) {
			return err
		}
		if attempt == uc.maxRetryAttempts {
			break
		}

		base := backoffs[min(attempt, len(backoffs)-1)]
		jitter := time.Duration(float64(base) * (rand.Float64()*0.4 - 0.2))
		uc.logger.Warn("deadlock detected, retrying",
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", uc.maxRetryAttempts),
			zap.String("orderId", id),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(base + jitter):
		}
	}

	return apperrors.NewInternalError("max retries exceeded", err)
}

func allowed(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func validateOrderID(id string) error {
	valid := len(id) == 4
	for _, r := range id {
		if r < '0' || r > '9' {
			valid = false
		}
	}
	if !valid || id == "0000" {
		return apperrors.NewValidationError("invalid orderId", apperrors.ValidationDetail{
			Field:   "orderId",
			Message: "orderId must be a 4-digit number between 0001 and 9999",
		})
	}
	return nil
}

func isDeadlockError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}
