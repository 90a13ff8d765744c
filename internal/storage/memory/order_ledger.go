package memory

import (
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/market/internal/domain"
)

// orderLedgerInMemory — журнал заказов с монотонным счётчиком идентификаторов.
type orderLedgerInMemory struct {
	mu     sync.RWMutex
	orders map[uint64]domain.Order
	nextID uint64
}

// NewOrderLedger возвращает in-memory журнал заказов.
func NewOrderLedger() domain.OrderStore {
	return &orderLedgerInMemory{
		orders: make(map[uint64]domain.Order),
		nextID: 1,
	}
}

// Insert сохраняет заказ под следующим id и возвращает сохранённую копию.
func (l *orderLedgerInMemory) Insert(order domain.Order) domain.Order {
	l.mu.Lock()
	defer l.mu.Unlock()

	order.ID = l.nextID
	l.nextID++
	l.orders[order.ID] = order
	return order
}

// Get возвращает заказ или ErrOrderNotFound.
func (l *orderLedgerInMemory) Get(id uint64) (domain.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	order, ok := l.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

// Replace перезаписывает существующий заказ.
func (l *orderLedgerInMemory) Replace(order domain.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.orders[order.ID]; !ok {
		return domain.ErrOrderNotFound
	}
	l.orders[order.ID] = order
	return nil
}

// ListByBuyer возвращает заказы покупателя в порядке возрастания id.
func (l *orderLedgerInMemory) ListByBuyer(buyer domain.CallerID) []domain.Order {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.collect(func(order domain.Order) bool { return order.BuyerID == buyer })
}

// ListContaining возвращает заказы, ссылающиеся хотя бы на один из товаров.
// Линейный скан по всем заказам; на текущем масштабе этого достаточно.
func (l *orderLedgerInMemory) ListContaining(itemIDs []uint64) []domain.Order {
	wanted := make(map[uint64]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = struct{}{}
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.collect(func(order domain.Order) bool {
		for _, id := range order.ItemIDs {
			if _, ok := wanted[id]; ok {
				return true
			}
		}
		return false
	})
}

// SnapshotOrders возвращает последовательность (ключ, заказ) и текущий счётчик.
func (l *orderLedgerInMemory) SnapshotOrders() ([]domain.OrderEntry, uint64) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := make([]domain.OrderEntry, 0, len(l.orders))
	for id, order := range l.orders {
		entries = append(entries, domain.OrderEntry{ID: id, Order: order})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, l.nextID
}

// RestoreOrders перестраивает журнал из снапшота; счётчик применяется до записей.
func (l *orderLedgerInMemory) RestoreOrders(entries []domain.OrderEntry, nextID uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if nextID < 1 {
		nextID = 1
	}
	l.nextID = nextID
	l.orders = make(map[uint64]domain.Order, len(entries))
	for _, entry := range entries {
		l.orders[entry.ID] = entry.Order
		if entry.ID >= l.nextID {
			l.nextID = entry.ID + 1
		}
	}
}

func (l *orderLedgerInMemory) collect(match func(domain.Order) bool) []domain.Order {
	result := make([]domain.Order, 0, len(l.orders))
	for _, order := range l.orders {
		if match(order) {
			result = append(result, order)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

var _ domain.OrderStore = (*orderLedgerInMemory)(nil)
