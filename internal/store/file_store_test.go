package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	apperrors "pizzabot/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestFileStore(t *testing.T) (*FileStore, string) {
	dir := t.TempDir()
	return NewFileStore(FileStoreConfig{
		Dir:           dir,
		OrdersFile:    "orders.json",
		CustomersFile: "customers.json",
		CounterFile:   "last_order_id.txt",
	}, zap.NewNop()), dir
}

func TestFileStore_Load_MissingFileIsEmpty(t *testing.T) {
	s, _ := newTestFileStore(t)

	data, err := s.Load(context.Background(), CollectionOrders)

	require.NoError(t, err)
	assert.NotNil(t, data)
	assert.Empty(t, data)
}

func TestFileStore_Load_CorruptFileIsEmpty(t *testing.T) {
	s, dir := newTestFileStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orders.json"), []byte("{not json"), 0o644))

	data, err := s.Load(context.Background(), CollectionOrders)

	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestFileStore_Load_BlankFileIsEmpty(t *testing.T) {
	s, dir := newTestFileStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "customers.json"), []byte("  \n"), 0o644))

	data, err := s.Load(context.Background(), CollectionCustomers)

	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestFileStore_SaveThenLoad(t *testing.T) {
	s, dir := newTestFileStore(t)
	ctx := context.Background()

	in := Collection{
		"0001": json.RawMessage(`{"status":"Received"}`),
		"0002": json.RawMessage(`{"status":"Ready"}`),
	}
	require.NoError(t, s.Save(ctx, CollectionOrders, in))

	out, err := s.Load(ctx, CollectionOrders)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.JSONEq(t, `{"status":"Received"}`, string(out["0001"]))

	raw, err := os.ReadFile(filepath.Join(dir, "orders.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n    \"0001\"")
}

func TestFileStore_Save_OverwritesWholeCollection(t *testing.T) {
	s, _ := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, CollectionCustomers, Collection{"a": json.RawMessage(`1`), "b": json.RawMessage(`2`)}))
	require.NoError(t, s.Save(ctx, CollectionCustomers, Collection{"c": json.RawMessage(`3`)}))

	out, err := s.Load(ctx, CollectionCustomers)
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Contains(t, out, "c")
}

func TestFileStore_UnknownCollection(t *testing.T) {
	s, _ := newTestFileStore(t)

	_, err := s.Load(context.Background(), "payments")

	_, ok := apperrors.IsStorageError(err)
	assert.True(t, ok)
}

func TestFileStore_Save_IOErrorIsStorageError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	s := NewFileStore(FileStoreConfig{Dir: blocker, OrdersFile: "orders.json", CustomersFile: "customers.json", CounterFile: "c.txt"}, zap.NewNop())

	err := s.Save(context.Background(), CollectionOrders, Collection{})

	se, ok := apperrors.IsStorageError(err)
	require.True(t, ok)
	assert.Equal(t, "save", se.Op)
}

func TestFileStore_Counter(t *testing.T) {
	s, dir := newTestFileStore(t)
	ctx := context.Background()

	value, err := s.ReadCounter(ctx)
	require.NoError(t, err)
	assert.Equal(t, InitialCounter, value)

	require.NoError(t, s.WriteCounter(ctx, "0042"))
	value, err = s.ReadCounter(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0042", value)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "last_order_id.txt"), []byte("0043\n"), 0o644))
	value, err = s.ReadCounter(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0043", value)
}
