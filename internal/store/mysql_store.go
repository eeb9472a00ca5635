package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	apperrors "pizzabot/internal/errors"

	"go.uber.org/zap"
)

const orderCounterName = "order_id"

// MySQLStore keeps each collection as a single JSON document row, so the
// whole-collection load/save contract is the same as the file store.
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewMySQLStore(db *sql.DB, logger *zap.Logger) *MySQLStore {
	return &MySQLStore{db: db, logger: logger}
}

func (s *MySQLStore) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS store_collections (
			name VARCHAR(64) NOT NULL PRIMARY KEY,
			doc LONGTEXT NOT NULL,
			updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS store_counters (
			name VARCHAR(64) NOT NULL PRIMARY KEY,
			value VARCHAR(16) NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return apperrors.NewStorageError("migrate", "schema", err)
		}
	}
	return nil
}

func (s *MySQLStore) Load(ctx context.Context, collection string) (Collection, error) {
	query := `SELECT doc FROM store_collections WHERE name = ?`

	var doc string
	err := s.db.QueryRowContext(ctx, query, collection).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return Collection{}, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError("load", collection, err)
	}

	var out Collection
	if err := json.Unmarshal([]byte(doc), &out); err != nil {
		s.logger.Warn("collection document is corrupt, starting empty",
			zap.String("collection", collection), zap.Error(err))
		return Collection{}, nil
	}
	if out == nil {
		out = Collection{}
	}

	return out, nil
}

func (s *MySQLStore) Save(ctx context.Context, collection string, data Collection) error {
	if data == nil {
		data = Collection{}
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return apperrors.NewStorageError("save", collection, err)
	}

	query := `
		INSERT INTO store_collections (name, doc) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE doc = VALUES(doc)
	`
	if _, err := s.db.ExecContext(ctx, query, collection, string(encoded)); err != nil {
		return apperrors.NewStorageError("save", collection, err)
	}

	return nil
}

func (s *MySQLStore) ReadCounter(ctx context.Context) (string, error) {
	query := `SELECT value FROM store_counters WHERE name = ?`

	var value string
	err := s.db.QueryRowContext(ctx, query, orderCounterName).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return InitialCounter, nil
	}
	if err != nil {
		return "", apperrors.NewStorageError("load", "counter", err)
	}

	return value, nil
}

func (s *MySQLStore) WriteCounter(ctx context.Context, value string) error {
	query := `
		INSERT INTO store_counters (name, value) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE value = VALUES(value)
	`
	if _, err := s.db.ExecContext(ctx, query, orderCounterName, value); err != nil {
		return apperrors.NewStorageError("save", "counter", err)
	}
	return nil
}
