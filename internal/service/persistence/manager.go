// Package persistence реализует цикл snapshot/restore: сериализацию полного
// состояния всех хранилищ в долговременный приёмник перед остановкой и его
// восстановление при следующем запуске.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/market/internal/domain"
	"github.com/vladislavdragonenkov/market/internal/metrics"
)

// Manager собирает и восстанавливает снапшоты состояния маркетплейса.
// Хост обязан гарантировать, что между завершением Snapshot и завершением
// Restore на следующем запуске не диспетчеризуется ни один вызов.
type Manager struct {
	profiles domain.ProfileStore
	items    domain.ItemStore
	orders   domain.OrderStore
	reviews  domain.ReviewStore
	timeline domain.TimelineRepository
	sink     domain.SnapshotStore

	logger  *log.Entry
	metrics *metrics.MarketMetrics
}

// Stores группирует хранилища, состояние которых входит в снапшот.
type Stores struct {
	Profiles domain.ProfileStore
	Items    domain.ItemStore
	Orders   domain.OrderStore
	Reviews  domain.ReviewStore
	Timeline domain.TimelineRepository
}

// NewManager создаёт менеджер персистентности поверх приёмника снапшотов.
func NewManager(stores Stores, sink domain.SnapshotStore, logger *log.Entry) *Manager {
	if logger == nil {
		logger = log.New().WithField("component", "persistence")
	}
	return &Manager{
		profiles: stores.Profiles,
		items:    stores.Items,
		orders:   stores.Orders,
		reviews:  stores.Reviews,
		timeline: stores.Timeline,
		sink:     sink,
		logger:   logger,
		metrics:  metrics.NewMarketMetrics(),
	}
}

// NewManagerWithoutMetrics создаёт менеджер без метрик (для тестов).
func NewManagerWithoutMetrics(stores Stores, sink domain.SnapshotStore, logger *log.Entry) *Manager {
	m := NewManager(stores, sink, logger)
	m.metrics = nil
	return m
}

// Snapshot собирает упорядоченные последовательности всех хранилищ вместе
// со счётчиками, кодирует их в JSON и записывает в приёмник как последний
// снапшот.
func (m *Manager) Snapshot(ctx context.Context) error {
	start := time.Now()

	items, nextItemID := m.items.SnapshotItems()
	orders, nextOrderID := m.orders.SnapshotOrders()
	snap := domain.Snapshot{
		TakenAt:     time.Now().UTC(),
		Profiles:    m.profiles.SnapshotProfiles(),
		Items:       items,
		NextItemID:  nextItemID,
		Orders:      orders,
		NextOrderID: nextOrderID,
		Reviews:     m.reviews.SnapshotReviews(),
	}
	if m.timeline != nil {
		snap.Timeline = m.timeline.SnapshotEvents()
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := m.sink.Save(ctx, data); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}

	if m.metrics != nil {
		m.metrics.RecordSnapshot(time.Since(start),
			len(snap.Profiles), len(snap.Items), len(snap.Orders), len(snap.Reviews))
	}
	m.logger.WithFields(log.Fields{
		"profiles": len(snap.Profiles),
		"items":    len(snap.Items),
		"orders":   len(snap.Orders),
		"reviews":  len(snap.Reviews),
		"bytes":    len(data),
	}).Info("snapshot persisted")
	return nil
}

// Restore загружает последний снапшот и перестраивает все хранилища.
// Отсутствие снапшота не является ошибкой: хранилища остаются пустыми.
// Счётчики восстанавливаются до записей, повторное восстановление из того же
// снапшота даёт идентичное состояние.
func (m *Manager) Restore(ctx context.Context) error {
	start := time.Now()

	data, err := m.sink.Load(ctx)
	if err != nil {
		if domain.IsNotFound(err) {
			m.logger.Info("no snapshot found, starting clean")
			return nil
		}
		return fmt.Errorf("load snapshot: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	m.profiles.RestoreProfiles(snap.Profiles)
	m.items.RestoreItems(snap.Items, snap.NextItemID)
	m.orders.RestoreOrders(snap.Orders, snap.NextOrderID)
	m.reviews.RestoreReviews(snap.Reviews)
	if m.timeline != nil {
		m.timeline.RestoreEvents(snap.Timeline)
	}

	if m.metrics != nil {
		m.metrics.RecordRestore(time.Since(start))
	}
	m.logger.WithFields(log.Fields{
		"taken_at": snap.TakenAt,
		"profiles": len(snap.Profiles),
		"items":    len(snap.Items),
		"orders":   len(snap.Orders),
		"reviews":  len(snap.Reviews),
	}).Info("state restored from snapshot")
	return nil
}
