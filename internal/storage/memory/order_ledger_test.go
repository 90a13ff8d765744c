package memory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/market/internal/domain"
	"github.com/vladislavdragonenkov/market/internal/storage/memory"
)

func newOrder(buyer string, itemIDs ...uint64) domain.Order {
	now := time.Now().UTC()
	return domain.Order{
		BuyerID:         domain.NewCallerID(buyer),
		ItemIDs:         itemIDs,
		TotalMinor:      1000,
		Status:          domain.OrderStatusPending,
		ShippingAddress: "123 Main St",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestOrderLedger_InsertGet(t *testing.T) {
	ledger := memory.NewOrderLedger()

	order := ledger.Insert(newOrder("buyer-1", 1))
	if order.ID != 1 {
		t.Fatalf("expected id 1, got %d", order.ID)
	}

	stored, err := ledger.Get(order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.BuyerID != order.BuyerID {
		t.Fatalf("unexpected buyer: %s", stored.BuyerID)
	}

	if _, err := ledger.Get(99); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderLedger_Replace(t *testing.T) {
	ledger := memory.NewOrderLedger()
	order := ledger.Insert(newOrder("buyer-1", 1))

	order.Status = domain.OrderStatusPaid
	if err := ledger.Replace(order); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	stored, _ := ledger.Get(order.ID)
	if stored.Status != domain.OrderStatusPaid {
		t.Fatalf("expected paid, got %s", stored.Status)
	}

	missing := newOrder("buyer-1", 2)
	missing.ID = 99
	if err := ledger.Replace(missing); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderLedger_ListByBuyer(t *testing.T) {
	ledger := memory.NewOrderLedger()
	ledger.Insert(newOrder("buyer-1", 1))
	ledger.Insert(newOrder("buyer-2", 2))
	ledger.Insert(newOrder("buyer-1", 3))

	orders := ledger.ListByBuyer(domain.NewCallerID("buyer-1"))
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].ID >= orders[1].ID {
		t.Fatal("orders must be sorted by ascending id")
	}
}

func TestOrderLedger_ListContaining(t *testing.T) {
	ledger := memory.NewOrderLedger()
	ledger.Insert(newOrder("buyer-1", 1, 2))
	ledger.Insert(newOrder("buyer-2", 3))

	orders := ledger.ListContaining([]uint64{2, 7})
	if len(orders) != 1 || !orders[0].Contains(2) {
		t.Fatalf("expected the order containing item 2, got %v", orders)
	}

	if got := ledger.ListContaining(nil); len(got) != 0 {
		t.Fatalf("expected no orders for empty id set, got %d", len(got))
	}
}

func TestOrderLedger_SnapshotRestore(t *testing.T) {
	ledger := memory.NewOrderLedger()
	ledger.Insert(newOrder("buyer-1", 1))
	ledger.Insert(newOrder("buyer-2", 2))

	entries, nextID := ledger.SnapshotOrders()
	if len(entries) != 2 || nextID != 3 {
		t.Fatalf("unexpected snapshot: %d entries, nextID %d", len(entries), nextID)
	}

	restored := memory.NewOrderLedger()
	restored.RestoreOrders(entries, nextID)

	order := restored.Insert(newOrder("buyer-3", 3))
	if order.ID != 3 {
		t.Fatalf("expected id 3 after restore, got %d", order.ID)
	}
}
