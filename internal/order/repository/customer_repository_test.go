package repository

import (
	"context"
	"testing"

	apperrors "pizzabot/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepository_FindByPhone_NotFound(t *testing.T) {
	repo := NewCustomerRepository(newTestStore(t))

	customer, err := repo.FindByPhone(context.Background(), "5551234567")

	assert.Nil(t, customer)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestCustomerRepository_AppendOrder_CreatesCustomer(t *testing.T) {
	repo := NewCustomerRepository(newTestStore(t))
	ctx := context.Background()

	customer, err := repo.AppendOrder(ctx, "5551234567", "Sam", "0001")
	require.NoError(t, err)
	assert.Equal(t, "Sam", customer.Name)
	assert.Equal(t, []string{"0001"}, customer.OrderHistory)

	found, err := repo.FindByPhone(ctx, "5551234567")
	require.NoError(t, err)
	assert.Equal(t, "5551234567", found.Phone)
	assert.Equal(t, []string{"0001"}, found.OrderHistory)
}

func TestCustomerRepository_AppendOrder_AppendsInOrderOnce(t *testing.T) {
	repo := NewCustomerRepository(newTestStore(t))
	ctx := context.Background()

	_, err := repo.AppendOrder(ctx, "5551234567", "Sam", "0001")
	require.NoError(t, err)
	_, err = repo.AppendOrder(ctx, "5551234567", "Samantha", "0002")
	require.NoError(t, err)
	customer, err := repo.AppendOrder(ctx, "5551234567", "Sam", "0002")
	require.NoError(t, err)

	assert.Equal(t, "Sam", customer.Name)
	assert.Equal(t, []string{"0001", "0002"}, customer.OrderHistory)
}
