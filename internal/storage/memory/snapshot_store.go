package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/market/internal/domain"
)

// snapshotStoreInMemory держит последний снапшот в памяти.
// Не переживает рестарт процесса; используется в тестах и при разработке.
type snapshotStoreInMemory struct {
	mu   sync.RWMutex
	data []byte
}

// NewSnapshotStore возвращает in-memory приёмник снапшотов.
func NewSnapshotStore() domain.SnapshotStore {
	return &snapshotStoreInMemory{}
}

// Save запоминает копию данных как последний снапшот.
func (s *snapshotStoreInMemory) Save(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = append([]byte(nil), data...)
	return nil
}

// Load возвращает копию последнего снапшота или ErrSnapshotNotFound.
func (s *snapshotStoreInMemory) Load(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, domain.ErrSnapshotNotFound
	}
	return append([]byte(nil), s.data...), nil
}

// Ping всегда успешен.
func (s *snapshotStoreInMemory) Ping(context.Context) error {
	return nil
}

// Close ничего не освобождает.
func (s *snapshotStoreInMemory) Close() error {
	return nil
}

var _ domain.SnapshotStore = (*snapshotStoreInMemory)(nil)
