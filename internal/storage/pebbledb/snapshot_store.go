// Package pebbledb хранит снапшоты состояния в embedded pebble-базе.
package pebbledb

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/vladislavdragonenkov/market/internal/domain"
)

var (
	keyLatest  = []byte("snapshot/latest")
	keySeq     = []byte("snapshot/seq")
	keyHistory = []byte("snapshot/history/") // + big-endian seq
)

// SnapshotStore — приёмник снапшотов поверх pebble. Последний снапшот лежит
// под фиксированным ключом, каждая запись дополнительно сохраняется под
// ключом истории с монотонным порядковым номером.
type SnapshotStore struct {
	db *pebble.DB
}

// Open открывает (или создаёт) базу снапшотов в каталоге dir.
func Open(dir string) (*SnapshotStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble at %s: %w", dir, err)
	}
	return &SnapshotStore{db: db}, nil
}

// Save записывает снапшот как последний и добавляет его в историю.
// Записи синхронные: после возврата данные переживают падение процесса.
func (s *SnapshotStore) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	seq, err := s.nextSeq()
	if err != nil {
		return err
	}

	batch := s.db.NewBatch()
	defer batch.Close()

	if err := batch.Set(keyLatest, data, nil); err != nil {
		return err
	}
	if err := batch.Set(historyKey(seq), data, nil); err != nil {
		return err
	}
	var seqBuf [8]byte
	binary.BigEndian.PutUint64(seqBuf[:], seq)
	if err := batch.Set(keySeq, seqBuf[:], nil); err != nil {
		return err
	}
	return batch.Commit(pebble.Sync)
}

// Load возвращает последний снапшот или ErrSnapshotNotFound.
func (s *SnapshotStore) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, closer, err := s.db.Get(keyLatest)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("read latest snapshot: %w", err)
	}
	defer closer.Close()

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Ping проверяет, что база открыта и отвечает.
func (s *SnapshotStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, closer, err := s.db.Get(keySeq)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil
		}
		return err
	}
	return closer.Close()
}

// Close закрывает базу.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

func (s *SnapshotStore) nextSeq() (uint64, error) {
	value, closer, err := s.db.Get(keySeq)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return 1, nil
		}
		return 0, fmt.Errorf("read snapshot seq: %w", err)
	}
	defer closer.Close()

	if len(value) != 8 {
		return 0, errors.New("invalid snapshot seq record")
	}
	return binary.BigEndian.Uint64(value) + 1, nil
}

func historyKey(seq uint64) []byte {
	key := make([]byte, 0, len(keyHistory)+8)
	key = append(key, keyHistory...)
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], seq)
	return append(key, buf[:]...)
}

var _ domain.SnapshotStore = (*SnapshotStore)(nil)
