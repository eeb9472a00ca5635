package allocator

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	apperrors "pizzabot/internal/errors"
	"pizzabot/internal/store"

	"go.uber.org/zap"
)

const (
	MinID = 1
	MaxID = 9999
)

// Allocator issues 4-digit order identifiers. At most one allocation runs at
// a time in this process; it does not coordinate with other processes sharing
// the same counter.
type Allocator struct {
	counter store.CounterStore
	logger  *zap.Logger
	mu      sync.Mutex
}

func New(counter store.CounterStore, logger *zap.Logger) *Allocator {
	return &Allocator{counter: counter, logger: logger}
}

// Allocate returns the next identifier after the persisted counter that is
// not in existing. The new counter is written before the lock is released.
func (a *Allocator) Allocate(ctx context.Context, existing map[string]bool) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	last := a.readLast(ctx)

	next := wrap(last + 1)
	id := FormatID(next)

	probes := 0
	for existing[id] {
		probes++
		if probes >= MaxID {
			a.logger.Error("order id space exhausted, order not accepted",
				zap.Int("lastId", last), zap.Int("inUse", len(existing)))
			return "", apperrors.NewAllocationExhaustedError(probes)
		}
		next = wrap(next + 1)
		id = FormatID(next)
	}

	if probes > 0 {
		a.logger.Warn("order id collision, probed forward",
			zap.Int("lastId", last), zap.String("orderId", id), zap.Int("probes", probes))
	}

	if err := a.counter.WriteCounter(ctx, id); err != nil {
		return "", fmt.Errorf("persisting order counter: %w", err)
	}

	return id, nil
}

func (a *Allocator) readLast(ctx context.Context) int {
	raw, err := a.counter.ReadCounter(ctx)
	if err != nil {
		a.logger.Warn("order counter unreadable, restarting from 0000", zap.Error(err))
		return 0
	}

	last, err := strconv.Atoi(raw)
	if err != nil || last < 0 || last > MaxID {
		a.logger.Warn("order counter corrupt, restarting from 0000", zap.String("value", raw))
		return 0
	}
	return last
}

func wrap(n int) int {
	if n > MaxID {
		return MinID
	}
	return n
}

func FormatID(n int) string {
	return fmt.Sprintf("%04d", n)
}
