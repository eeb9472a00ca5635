package allocator

import (
	"context"
	"errors"
	"sync"
	"testing"

	apperrors "pizzabot/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryCounter struct {
	mu       sync.Mutex
	value    string
	readErr  error
	writeErr error
	writes   int
}

func (m *memoryCounter) ReadCounter(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return "", m.readErr
	}
	return m.value, nil
}

func (m *memoryCounter) WriteCounter(ctx context.Context, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.value = value
	m.writes++
	return nil
}

func TestAllocate_FirstIDIs0001(t *testing.T) {
	counter := &memoryCounter{value: "0000"}
	a := New(counter, zap.NewNop())

	id, err := a.Allocate(context.Background(), map[string]bool{})

	require.NoError(t, err)
	assert.Equal(t, "0001", id)
	assert.Equal(t, "0001", counter.value)
}

func TestAllocate_SequentialIDsAreDistinct(t *testing.T) {
	a := New(&memoryCounter{value: "0000"}, zap.NewNop())
	ctx := context.Background()
	existing := map[string]bool{}

	for i := 0; i < MaxID; i++ {
		id, err := a.Allocate(ctx, existing)
		require.NoError(t, err)
		require.Len(t, id, 4)
		require.False(t, existing[id], "duplicate id %s", id)
		existing[id] = true
	}

	assert.Len(t, existing, MaxID)
	assert.True(t, existing["0001"])
	assert.True(t, existing["9999"])
	assert.False(t, existing["0000"])
}

func TestAllocate_ExhaustedWhenEveryIDInUse(t *testing.T) {
	counter := &memoryCounter{value: "0000"}
	a := New(counter, zap.NewNop())
	ctx := context.Background()
	existing := map[string]bool{}
	for i := MinID; i <= MaxID; i++ {
		existing[FormatID(i)] = true
	}

	id, err := a.Allocate(ctx, existing)

	assert.Empty(t, id)
	_, ok := apperrors.IsAllocationExhaustedError(err)
	assert.True(t, ok)
	assert.Equal(t, "0000", counter.value, "counter must not move on exhaustion")
}

func TestAllocate_WrapsAfter9999(t *testing.T) {
	a := New(&memoryCounter{value: "9999"}, zap.NewNop())

	id, err := a.Allocate(context.Background(), map[string]bool{})

	require.NoError(t, err)
	assert.Equal(t, "0001", id)
}

func TestAllocate_ProbesPastCollisions(t *testing.T) {
	counter := &memoryCounter{value: "0041"}
	a := New(counter, zap.NewNop())

	id, err := a.Allocate(context.Background(), map[string]bool{"0042": true, "0043": true})

	require.NoError(t, err)
	assert.Equal(t, "0044", id)
	assert.Equal(t, "0044", counter.value)
}

func TestAllocate_ProbeWrapsPastMax(t *testing.T) {
	a := New(&memoryCounter{value: "9998"}, zap.NewNop())

	id, err := a.Allocate(context.Background(), map[string]bool{"9999": true, "0001": true})

	require.NoError(t, err)
	assert.Equal(t, "0002", id)
}

func TestAllocate_CorruptCounterRestartsAtZero(t *testing.T) {
	tests := []struct {
		name    string
		counter *memoryCounter
	}{
		{name: "not a number", counter: &memoryCounter{value: "abcd"}},
		{name: "empty", counter: &memoryCounter{value: ""}},
		{name: "out of range", counter: &memoryCounter{value: "12345"}},
		{name: "read failure", counter: &memoryCounter{readErr: errors.New("permission denied")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(tt.counter, zap.NewNop())

			id, err := a.Allocate(context.Background(), map[string]bool{})

			require.NoError(t, err)
			assert.Equal(t, "0001", id)
		})
	}
}

func TestAllocate_WriteFailureIsReturned(t *testing.T) {
	a := New(&memoryCounter{value: "0001", writeErr: errors.New("read-only fs")}, zap.NewNop())

	id, err := a.Allocate(context.Background(), map[string]bool{})

	assert.Empty(t, id)
	assert.Error(t, err)
}

func TestAllocate_ConcurrentCallersGetUniqueIDs(t *testing.T) {
	counter := &memoryCounter{value: "0000"}
	a := New(counter, zap.NewNop())
	ctx := context.Background()

	const callers = 50
	ids := make(chan string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := a.Allocate(ctx, map[string]bool{})
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, callers)
	assert.Equal(t, "0050", counter.value)
	assert.Equal(t, callers, counter.writes)
}
