package domain

import (
	"context"
	"time"
)

// ProfileStore владеет профилями пользователей, ключ — CallerID.
type ProfileStore interface {
	// Upsert создаёт или заменяет профиль, сохраняя исходный CreatedAt при обновлении.
	Upsert(profile UserProfile) (UserProfile, error)
	// Get возвращает профиль или ErrProfileNotFound.
	Get(id CallerID) (UserProfile, error)
	// SnapshotProfiles возвращает упорядоченную последовательность (ключ, профиль).
	SnapshotProfiles() []ProfileEntry
	// RestoreProfiles перестраивает хранилище из последовательности снапшота.
	RestoreProfiles(entries []ProfileEntry)
}

// ItemStore владеет товарами каталога, ключ — монотонный id.
type ItemStore interface {
	// Insert сохраняет товар под следующим id; id никогда не переиспользуется.
	Insert(item Item) Item
	// Get возвращает товар или ErrItemNotFound.
	Get(id uint64) (Item, error)
	// Replace перезаписывает существующий товар.
	Replace(item Item) error
	// List возвращает все товары в порядке возрастания id.
	List() []Item
	// ListByCategory возвращает товары категории.
	ListByCategory(category string) []Item
	// ListBySeller возвращает товары продавца.
	ListBySeller(seller CallerID) []Item
	// Search ищет подстроку в имени или описании без учёта регистра.
	Search(query string) []Item
	// Reserve атомарно валидирует доступность всех товаров и только после
	// успешной валидации помечает их недоступными. Частичное резервирование
	// не наблюдаемо: при любом отказе состояние не меняется.
	Reserve(ids []uint64) ([]Item, error)
	// SnapshotItems возвращает последовательность (ключ, товар) и счётчик.
	SnapshotItems() ([]ItemEntry, uint64)
	// RestoreItems перестраивает хранилище; счётчик применяется до записей.
	RestoreItems(entries []ItemEntry, nextID uint64)
}

// OrderStore владеет заказами, ключ — монотонный id.
type OrderStore interface {
	// Insert сохраняет заказ под следующим id.
	Insert(order Order) Order
	// Get возвращает заказ или ErrOrderNotFound.
	Get(id uint64) (Order, error)
	// Replace перезаписывает существующий заказ.
	Replace(order Order) error
	// ListByBuyer возвращает заказы покупателя в порядке возрастания id.
	ListByBuyer(buyer CallerID) []Order
	// ListContaining возвращает заказы, ссылающиеся хотя бы на один из товаров.
	ListContaining(itemIDs []uint64) []Order
	// SnapshotOrders возвращает последовательность (ключ, заказ) и счётчик.
	SnapshotOrders() ([]OrderEntry, uint64)
	// RestoreOrders перестраивает хранилище; счётчик применяется до записей.
	RestoreOrders(entries []OrderEntry, nextID uint64)
}

// ReviewStore владеет отзывами, ключ — id товара.
type ReviewStore interface {
	// Append добавляет отзыв; повторный отзыв того же автора — ErrDuplicateReview.
	Append(review Review) error
	// ListByItem возвращает append-only список отзывов товара; пустой срез, если их нет.
	ListByItem(itemID uint64) []Review
	// SnapshotReviews возвращает последовательности отзывов по товарам.
	SnapshotReviews() []ReviewEntry
	// RestoreReviews перестраивает хранилище из снапшота.
	RestoreReviews(entries []ReviewEntry)
}

// TimelineRepository хранит события жизненного цикла заказов.
type TimelineRepository interface {
	Append(event TimelineEvent) error
	List(orderID uint64) ([]TimelineEvent, error)
	SnapshotEvents() []TimelineEvent
	RestoreEvents(events []TimelineEvent)
}

// SnapshotStore — долговременный приёмник закодированных снапшотов.
type SnapshotStore interface {
	// Save сохраняет снапшот как последний; вызывается перед остановкой.
	Save(ctx context.Context, data []byte) error
	// Load возвращает последний снапшот или ErrSnapshotNotFound.
	Load(ctx context.Context) ([]byte, error)
	// Ping проверяет доступность приёмника.
	Ping(ctx context.Context) error
	// Close освобождает ресурсы приёмника.
	Close() error
}

// OutboxPublisher публикует события из transactional outbox.
type OutboxPublisher interface {
	// Publish передаёт событие наружу; должен быть идемпотентным.
	Publish(event OutboxMessage) error
}

// OutboxRepository сохраняет события для последующей публикации.
type OutboxRepository interface {
	Enqueue(msg OutboxMessage) (OutboxMessage, error)
	PullPending(limit int) ([]OutboxMessage, error)
	Stats() (OutboxStats, error)
	MarkSent(id string) error
	MarkFailed(id string) error
}

// OutboxMessage хранит данные публикуемого события.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// OutboxStats описывает текущий backlog transactional outbox.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}
