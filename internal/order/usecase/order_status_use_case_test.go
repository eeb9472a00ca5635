package usecase

import (
	"context"
	"errors"
	"testing"

	"pizzabot/internal/domain"
	apperrors "pizzabot/internal/errors"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockOrderRepository struct {
	FindByIDFunc     func(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatusFunc func(ctx context.Context, id string, status string) error
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	return m.UpdateStatusFunc(ctx, id, status)
}

func repoWithStatus(status string) *mockOrderRepository {
	return &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			return &domain.Order{ID: id, CustomerName: "Sam", Status: status}, nil
		},
		UpdateStatusFunc: func(ctx context.Context, id string, status string) error {
			return nil
		},
	}
}

func TestGetOrder_InvalidID(t *testing.T) {
	uc := NewOrderStatusUseCase(repoWithStatus(domain.OrderStatusReceived), zap.NewNop(), 3)

	for _, id := range []string{"", "42", "00042", "abcd", "0000"} {
		_, err := uc.GetOrder(context.Background(), id)
		_, ok := apperrors.IsValidationError(err)
		assert.True(t, ok, id)
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	repo := repoWithStatus(domain.OrderStatusReceived)
	repo.FindByIDFunc = func(ctx context.Context, id string) (*domain.Order, error) {
		return nil, apperrors.NewNotFoundError("order with id 0042 not found")
	}
	uc := NewOrderStatusUseCase(repo, zap.NewNop(), 3)

	_, err := uc.GetOrder(context.Background(), "0042")

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestUpdateStatus_ValidTransition(t *testing.T) {
	var written string
	repo := repoWithStatus(domain.OrderStatusReceived)
	repo.UpdateStatusFunc = func(ctx context.Context, id string, status string) error {
		written = status
		return nil
	}
	uc := NewOrderStatusUseCase(repo, zap.NewNop(), 3)

	order, err := uc.UpdateStatus(context.Background(), "0042", domain.OrderStatusPreparing)

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPreparing, order.Status)
	assert.Equal(t, domain.OrderStatusPreparing, written)
}

func TestUpdateStatus_RejectedTransition(t *testing.T) {
	uc := NewOrderStatusUseCase(repoWithStatus(domain.OrderStatusCompleted), zap.NewNop(), 3)

	_, err := uc.UpdateStatus(context.Background(), "0042", domain.OrderStatusCanceled)

	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	uc := NewOrderStatusUseCase(repoWithStatus(domain.OrderStatusReceived), zap.NewNop(), 3)

	_, err := uc.UpdateStatus(context.Background(), "0042", "Burnt")

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "status", ve.Details[0].Field)
}

func TestUpdateStatus_RetriesDeadlock(t *testing.T) {
	calls := 0
	repo := repoWithStatus(domain.OrderStatusPreparing)
	repo.UpdateStatusFunc = func(ctx context.Context, id string, status string) error {
		calls++
		if calls == 1 {
			return apperrors.NewStorageError("save", "orders", &mysql.MySQLError{Number: 1213, Message: "Deadlock found"})
		}
		return nil
	}
	uc := NewOrderStatusUseCase(repo, zap.NewNop(), 3)

	order, err := uc.UpdateStatus(context.Background(), "0042", domain.OrderStatusReady)

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, domain.OrderStatusReady, order.Status)
}

func TestUpdateStatus_GivesUpAfterMaxAttempts(t *testing.T) {
	calls := 0
	repo := repoWithStatus(domain.OrderStatusReceived)
	repo.UpdateStatusFunc = func(ctx context.Context, id string, status string) error {
		calls++
		return &mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}
	}
	uc := NewOrderStatusUseCase(repo, zap.NewNop(), 2)

	_, err := uc.UpdateStatus(context.Background(), "0042", domain.OrderStatusCanceled)

	require.Error(t, err)
	assert.Equal(t, 2, calls)
	assert.Contains(t, err.Error(), "max retries exceeded")
}

func TestUpdateStatus_OtherErrorNotRetried(t *testing.T) {
	calls := 0
	repo := repoWithStatus(domain.OrderStatusReceived)
	repo.UpdateStatusFunc = func(ctx context.Context, id string, status string) error {
		calls++
		return errors.New("disk full")
	}
	uc := NewOrderStatusUseCase(repo, zap.NewNop(), 3)

	_, err := uc.UpdateStatus(context.Background(), "0042", domain.OrderStatusPreparing)

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
