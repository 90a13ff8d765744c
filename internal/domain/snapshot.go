package domain

import "time"

// ProfileEntry — пара (ключ, профиль) в снапшоте IdentityStore.
type ProfileEntry struct {
	ID      CallerID    `json:"id"`
	Profile UserProfile `json:"profile"`
}

// ItemEntry — пара (ключ, товар) в снапшоте каталога.
type ItemEntry struct {
	ID   uint64 `json:"id"`
	Item Item   `json:"item"`
}

// OrderEntry — пара (ключ, заказ) в снапшоте журнала заказов.
type OrderEntry struct {
	ID    uint64 `json:"id"`
	Order Order  `json:"order"`
}

// ReviewEntry — упорядоченный список отзывов одного товара.
type ReviewEntry struct {
	ItemID  uint64   `json:"item_id"`
	Reviews []Review `json:"reviews"`
}

// Snapshot — полное сериализуемое состояние всех хранилищ.
// Монотонные счётчики входят в снапшот и восстанавливаются до создания
// новых сущностей, чтобы идентификаторы не переиспользовались после рестарта.
type Snapshot struct {
	TakenAt     time.Time       `json:"taken_at"`
	Profiles    []ProfileEntry  `json:"profiles"`
	Items       []ItemEntry     `json:"items"`
	NextItemID  uint64          `json:"next_item_id"`
	Orders      []OrderEntry    `json:"orders"`
	NextOrderID uint64          `json:"next_order_id"`
	Reviews     []ReviewEntry   `json:"reviews"`
	Timeline    []TimelineEvent `json:"timeline,omitempty"`
}
