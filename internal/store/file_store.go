package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "pizzabot/internal/errors"

	"go.uber.org/zap"
)

type FileStoreConfig struct {
	Dir           string
	OrdersFile    string
	CustomersFile string
	CounterFile   string
}

// FileStore keeps each collection in its own JSON file and the counter in a
// plain text file, all under one directory.
type FileStore struct {
	dir         string
	files       map[string]string
	counterFile string
	logger      *zap.Logger
}

func NewFileStore(cfg FileStoreConfig, logger *zap.Logger) *FileStore {
	return &FileStore{
		dir: cfg.Dir,
		files: map[string]string{
			CollectionOrders:    cfg.OrdersFile,
			CollectionCustomers: cfg.CustomersFile,
		},
		counterFile: cfg.CounterFile,
		logger:      logger,
	}
}

func (s *FileStore) path(collection string) (string, error) {
	name, ok := s.files[collection]
	if !ok || name == "" {
		return "", fmt.Errorf("unknown collection %q", collection)
	}
	return filepath.Join(s.dir, name), nil
}

func (s *FileStore) Load(ctx context.Context, collection string) (Collection, error) {
	path, err := s.path(collection)
	if err != nil {
		return nil, apperrors.NewStorageError("load", collection, err)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Collection{}, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError("load", collection, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return Collection{}, nil
	}

	var out Collection
	if err := json.Unmarshal(data, &out); err != nil {
		s.logger.Warn("collection file is corrupt, starting empty",
			zap.String("collection", collection), zap.String("path", path), zap.Error(err))
		return Collection{}, nil
	}
	if out == nil {
		out = Collection{}
	}

	return out, nil
}

func (s *FileStore) Save(ctx context.Context, collection string, data Collection) error {
	path, err := s.path(collection)
	if err != nil {
		return apperrors.NewStorageError("save", collection, err)
	}

	if data == nil {
		data = Collection{}
	}
	encoded, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return apperrors.NewStorageError("save", collection, err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return apperrors.NewStorageError("save", collection, err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return apperrors.NewStorageError("save", collection, err)
	}

	return nil
}

func (s *FileStore) ReadCounter(ctx context.Context) (string, error) {
	path := filepath.Join(s.dir, s.counterFile)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return InitialCounter, nil
	}
	if err != nil {
		return "", apperrors.NewStorageError("load", "counter", err)
	}

	return strings.TrimSpace(string(data)), nil
}

func (s *FileStore) WriteCounter(ctx context.Context, value string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return apperrors.NewStorageError("save", "counter", err)
	}

	path := filepath.Join(s.dir, s.counterFile)
	if err := os.WriteFile(path, []byte(value), 0o644); err != nil {
		return apperrors.NewStorageError("save", "counter", err)
	}

	return nil
}
