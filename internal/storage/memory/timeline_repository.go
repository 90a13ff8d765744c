package memory

import (
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/market/internal/domain"
)

// timelineRepositoryInMemory хранит события жизненного цикла заказов.
type timelineRepositoryInMemory struct {
	mu     sync.RWMutex
	events map[uint64][]domain.TimelineEvent
}

// NewTimelineRepository создаёт in-memory реализацию TimelineRepository.
func NewTimelineRepository() domain.TimelineRepository {
	return &timelineRepositoryInMemory{events: make(map[uint64][]domain.TimelineEvent)}
}

// Append добавляет событие заказа.
func (r *timelineRepositoryInMemory) Append(event domain.TimelineEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events[event.OrderID] = append(r.events[event.OrderID], event)

	sort.SliceStable(r.events[event.OrderID], func(i, j int) bool {
		return r.events[event.OrderID][i].Occurred.Before(r.events[event.OrderID][j].Occurred)
	})

	return nil
}

// List возвращает события заказа в хронологическом порядке.
func (r *timelineRepositoryInMemory) List(orderID uint64) ([]domain.TimelineEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := r.events[orderID]
	result := make([]domain.TimelineEvent, len(events))
	copy(result, events)
	return result, nil
}

// SnapshotEvents возвращает все события, упорядоченные по (заказ, время).
func (r *timelineRepositoryInMemory) SnapshotEvents() []domain.TimelineEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.TimelineEvent
	for _, events := range r.events {
		result = append(result, events...)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].OrderID != result[j].OrderID {
			return result[i].OrderID < result[j].OrderID
		}
		return result[i].Occurred.Before(result[j].Occurred)
	})
	return result
}

// RestoreEvents перестраивает хранилище из снапшота.
func (r *timelineRepositoryInMemory) RestoreEvents(events []domain.TimelineEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = make(map[uint64][]domain.TimelineEvent)
	for _, event := range events {
		r.events[event.OrderID] = append(r.events[event.OrderID], event)
	}
}

var _ domain.TimelineRepository = (*timelineRepositoryInMemory)(nil)
