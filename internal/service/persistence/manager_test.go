package persistence_test

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/market/internal/domain"
	"github.com/vladislavdragonenkov/market/internal/service/persistence"
	"github.com/vladislavdragonenkov/market/internal/storage/memory"
)

type world struct {
	profiles domain.ProfileStore
	items    domain.ItemStore
	orders   domain.OrderStore
	reviews  domain.ReviewStore
	timeline domain.TimelineRepository
	manager  *persistence.Manager
}

func newWorld(sink domain.SnapshotStore) *world {
	w := &world{
		profiles: memory.NewIdentityStore(),
		items:    memory.NewCatalog(),
		orders:   memory.NewOrderLedger(),
		reviews:  memory.NewReviewBook(),
		timeline: memory.NewTimelineRepository(),
	}
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	w.manager = persistence.NewManagerWithoutMetrics(persistence.Stores{
		Profiles: w.profiles,
		Items:    w.items,
		Orders:   w.orders,
		Reviews:  w.reviews,
		Timeline: w.timeline,
	}, sink, logger.WithField("component", "test"))
	return w
}

func seed(t *testing.T, w *world) {
	t.Helper()

	seller := domain.NewCallerID("seller-1")
	if _, err := w.profiles.Upsert(domain.UserProfile{ID: seller, DisplayName: "Seller", IsSeller: true}); err != nil {
		t.Fatalf("upsert profile: %v", err)
	}
	item := w.items.Insert(domain.Item{Name: "Chair", PriceMinor: 100, SellerID: seller, Available: true})
	reserved, err := w.items.Reserve([]uint64{item.ID})
	require.NoError(t, err)
	order := w.orders.Insert(domain.Order{
		BuyerID:    domain.NewCallerID("buyer-1"),
		ItemIDs:    []uint64{item.ID},
		TotalMinor: reserved[0].PriceMinor,
		Status:     domain.OrderStatusPending,
	})
	require.NoError(t, w.reviews.Append(domain.Review{
		ReviewerID: domain.NewCallerID("buyer-1"),
		ItemID:     item.ID,
		Rating:     5,
	}))
	require.NoError(t, w.timeline.Append(domain.TimelineEvent{OrderID: order.ID, Type: "OrderCreated"}))
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	sink := memory.NewSnapshotStore()
	source := newWorld(sink)
	seed(t, source)

	require.NoError(t, source.manager.Snapshot(context.Background()))

	restored := newWorld(sink)
	require.NoError(t, restored.manager.Restore(context.Background()))

	require.Equal(t, source.profiles.SnapshotProfiles(), restored.profiles.SnapshotProfiles())

	srcItems, srcNextItem := source.items.SnapshotItems()
	dstItems, dstNextItem := restored.items.SnapshotItems()
	require.Equal(t, srcItems, dstItems)
	require.Equal(t, srcNextItem, dstNextItem)

	srcOrders, srcNextOrder := source.orders.SnapshotOrders()
	dstOrders, dstNextOrder := restored.orders.SnapshotOrders()
	require.Equal(t, srcOrders, dstOrders)
	require.Equal(t, srcNextOrder, dstNextOrder)

	require.Equal(t, source.reviews.SnapshotReviews(), restored.reviews.SnapshotReviews())
	events, err := restored.timeline.List(1)
	require.NoError(t, err)
	require.Len(t, events, 1)
}

func TestRestoreIsIdempotent(t *testing.T) {
	sink := memory.NewSnapshotStore()
	source := newWorld(sink)
	seed(t, source)
	require.NoError(t, source.manager.Snapshot(context.Background()))

	restored := newWorld(sink)
	require.NoError(t, restored.manager.Restore(context.Background()))
	first, firstNext := restored.items.SnapshotItems()

	require.NoError(t, restored.manager.Restore(context.Background()))
	second, secondNext := restored.items.SnapshotItems()

	require.Equal(t, first, second)
	require.Equal(t, firstNext, secondNext)
}

func TestIDsNeverReusedAcrossRestart(t *testing.T) {
	sink := memory.NewSnapshotStore()
	source := newWorld(sink)
	seed(t, source)
	require.NoError(t, source.manager.Snapshot(context.Background()))

	restored := newWorld(sink)
	require.NoError(t, restored.manager.Restore(context.Background()))

	item := restored.items.Insert(domain.Item{Name: "Lamp", SellerID: domain.NewCallerID("seller-1")})
	require.Equal(t, uint64(2), item.ID)
	order := restored.orders.Insert(domain.Order{BuyerID: domain.NewCallerID("buyer-1"), ItemIDs: []uint64{item.ID}})
	require.Equal(t, uint64(2), order.ID)
}

func TestRestoreWithoutSnapshotStartsClean(t *testing.T) {
	sink := memory.NewSnapshotStore()
	w := newWorld(sink)

	require.NoError(t, w.manager.Restore(context.Background()))
	items, next := w.items.SnapshotItems()
	require.Empty(t, items)
	require.Equal(t, uint64(1), next)
}
