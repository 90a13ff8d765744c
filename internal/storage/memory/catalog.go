package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vladislavdragonenkov/market/internal/domain"
)

// catalogInMemory — хранилище товаров с монотонным счётчиком идентификаторов.
// Счётчик входит в снапшот: id никогда не переиспользуются, в том числе
// после рестарта процесса.
type catalogInMemory struct {
	mu     sync.RWMutex
	items  map[uint64]domain.Item
	nextID uint64
}

// NewCatalog возвращает in-memory каталог товаров.
func NewCatalog() domain.ItemStore {
	return &catalogInMemory{
		items:  make(map[uint64]domain.Item),
		nextID: 1,
	}
}

// Insert сохраняет товар под следующим id и возвращает сохранённую копию.
func (c *catalogInMemory) Insert(item domain.Item) domain.Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	item.ID = c.nextID
	c.nextID++
	c.items[item.ID] = item
	return item
}

// Get возвращает товар или ErrItemNotFound.
func (c *catalogInMemory) Get(id uint64) (domain.Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[id]
	if !ok {
		return domain.Item{}, domain.ErrItemNotFound
	}
	return item, nil
}

// Replace перезаписывает существующий товар.
func (c *catalogInMemory) Replace(item domain.Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[item.ID]; !ok {
		return domain.ErrItemNotFound
	}
	c.items[item.ID] = item
	return nil
}

// List возвращает все товары в порядке возрастания id.
func (c *catalogInMemory) List() []domain.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.collect(func(domain.Item) bool { return true })
}

// ListByCategory возвращает товары указанной категории.
func (c *catalogInMemory) ListByCategory(category string) []domain.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.collect(func(item domain.Item) bool { return item.Category == category })
}

// ListBySeller возвращает товары указанного продавца.
func (c *catalogInMemory) ListBySeller(seller domain.CallerID) []domain.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.collect(func(item domain.Item) bool { return item.SellerID == seller })
}

// Search ищет подстроку в имени или описании без учёта регистра.
// Порядок результата стабилен в пределах одного состояния каталога.
func (c *catalogInMemory) Search(query string) []domain.Item {
	needle := strings.ToLower(query)

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.collect(func(item domain.Item) bool {
		return strings.Contains(strings.ToLower(item.Name), needle) ||
			strings.Contains(strings.ToLower(item.Description), needle)
	})
}

// Reserve выполняет двухфазное резервирование: сперва валидирует каждый id
// (существование и доступность), и только когда вся партия прошла проверку,
// помечает все позиции недоступными. При любом отказе состояние каталога
// не меняется — частичное резервирование не наблюдаемо.
func (c *catalogInMemory) Reserve(ids []uint64) ([]domain.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	reserved := make([]domain.Item, 0, len(ids))
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		item, ok := c.items[id]
		if !ok {
			return nil, fmt.Errorf("reserve item %d: %w", id, domain.ErrItemNotFound)
		}
		// Повтор id в одном запросе — попытка зарезервировать товар дважды.
		if _, dup := seen[id]; dup || !item.Available {
			return nil, fmt.Errorf("reserve item %d: %w", id, domain.ErrItemUnavailable)
		}
		seen[id] = struct{}{}
		reserved = append(reserved, item)
	}

	for i := range reserved {
		reserved[i].Available = false
		c.items[reserved[i].ID] = reserved[i]
	}
	return reserved, nil
}

// SnapshotItems возвращает последовательность (ключ, товар) и текущий счётчик.
func (c *catalogInMemory) SnapshotItems() ([]domain.ItemEntry, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := make([]domain.ItemEntry, 0, len(c.items))
	for id, item := range c.items {
		entries = append(entries, domain.ItemEntry{ID: id, Item: item})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, c.nextID
}

// RestoreItems перестраивает каталог из снапшота. Счётчик применяется до
// записей; если он отстаёт от максимального id, он нормализуется вверх,
// чтобы уже выданный id не был выдан повторно.
func (c *catalogInMemory) RestoreItems(entries []domain.ItemEntry, nextID uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if nextID < 1 {
		nextID = 1
	}
	c.nextID = nextID
	c.items = make(map[uint64]domain.Item, len(entries))
	for _, entry := range entries {
		c.items[entry.ID] = entry.Item
		if entry.ID >= c.nextID {
			c.nextID = entry.ID + 1
		}
	}
}

// collect отбирает товары предикатом; вызывающий держит блокировку.
func (c *catalogInMemory) collect(match func(domain.Item) bool) []domain.Item {
	result := make([]domain.Item, 0, len(c.items))
	for _, item := range c.items {
		if match(item) {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

var _ domain.ItemStore = (*catalogInMemory)(nil)
