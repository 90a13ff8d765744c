package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/market/internal/domain"
)

const snapshotQueryTimeout = 10 * time.Second

// SnapshotStore хранит снапшоты в таблице snapshots; последним считается
// снапшот с максимальным id. История снапшотов сохраняется целиком.
type SnapshotStore struct {
	store *Store
}

// NewSnapshotStore создаёт приёмник снапшотов поверх подключения.
func NewSnapshotStore(store *Store) *SnapshotStore {
	return &SnapshotStore{store: store}
}

// Save записывает снапшот как новую строку истории.
func (s *SnapshotStore) Save(ctx context.Context, data []byte) error {
	execCtx, cancel := context.WithTimeout(ctx, snapshotQueryTimeout)
	defer cancel()

	_, err := s.store.DB().ExecContext(execCtx, `
		INSERT INTO snapshots (data, created_at)
		VALUES ($1, NOW())
	`, data)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// Load возвращает последний снапшот или ErrSnapshotNotFound.
func (s *SnapshotStore) Load(ctx context.Context) ([]byte, error) {
	queryCtx, cancel := context.WithTimeout(ctx, snapshotQueryTimeout)
	defer cancel()

	var data []byte
	err := s.store.DB().QueryRowContext(queryCtx, `
		SELECT data
		FROM snapshots
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	return data, nil
}

// Ping проверяет доступность базы.
func (s *SnapshotStore) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Close закрывает подключение к базе.
func (s *SnapshotStore) Close() error {
	return s.store.Close()
}

var _ domain.SnapshotStore = (*SnapshotStore)(nil)
