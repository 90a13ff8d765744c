package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/market/internal/domain"
)

func TestSnapshotStore_PostgresSaveAndLoad(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	sink := NewSnapshotStore(store)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sink.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	if err := sink.Save(ctx, []byte(`{"items":[]}`)); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := sink.Save(ctx, []byte(`{"items":[{"id":1}]}`)); err != nil {
		t.Fatalf("save second: %v", err)
	}

	data, err := sink.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != `{"items":[{"id":1}]}` {
		t.Errorf("latest snapshot = %q, want most recent insert", data)
	}
}

func TestSnapshotStore_PostgresLoadEmpty(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	sink := NewSnapshotStore(store)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := sink.Load(ctx)
	if !errors.Is(err, domain.ErrSnapshotNotFound) {
		t.Fatalf("load from empty table: got %v, want ErrSnapshotNotFound", err)
	}
}
