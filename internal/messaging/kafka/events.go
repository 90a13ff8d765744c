package kafka

import "time"

// EventType определяет тип события
type EventType string

const (
	// Item события
	EventTypeItemListed  EventType = "item.listed"
	EventTypeItemUpdated EventType = "item.updated"

	// Order события
	EventTypeOrderCreated       EventType = "order.created"
	EventTypeOrderStatusChanged EventType = "order.status_changed"

	// Review и Profile события
	EventTypeReviewAdded     EventType = "review.added"
	EventTypeProfileUpserted EventType = "profile.upserted"
)

// Topics для Kafka
const (
	TopicItemEvents    = "market.item.events"
	TopicOrderEvents   = "market.order.events"
	TopicReviewEvents  = "market.review.events"
	TopicProfileEvents = "market.profile.events"
)

// TopicForEvent возвращает topic, в который публикуется событие данного типа.
func TopicForEvent(eventType EventType) string {
	switch eventType {
	case EventTypeItemListed, EventTypeItemUpdated:
		return TopicItemEvents
	case EventTypeOrderCreated, EventTypeOrderStatusChanged:
		return TopicOrderEvents
	case EventTypeReviewAdded:
		return TopicReviewEvents
	case EventTypeProfileUpserted:
		return TopicProfileEvents
	default:
		return TopicOrderEvents
	}
}

// ItemEvent представляет событие каталога
type ItemEvent struct {
	EventType EventType              `json:"event_type"`
	ItemID    uint64                 `json:"item_id"`
	SellerID  string                 `json:"seller_id"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// OrderEvent представляет событие заказа
type OrderEvent struct {
	EventType EventType              `json:"event_type"`
	OrderID   uint64                 `json:"order_id"`
	BuyerID   string                 `json:"buyer_id"`
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewItemEvent создает новое событие каталога
func NewItemEvent(eventType EventType, itemID uint64, sellerID string, metadata map[string]interface{}) *ItemEvent {
	return &ItemEvent{
		EventType: eventType,
		ItemID:    itemID,
		SellerID:  sellerID,
		Timestamp: time.Now(),
		Metadata:  metadata,
	}
}

// NewOrderEvent создает новое событие заказа
func NewOrderEvent(eventType EventType, orderID uint64, buyerID, status string, metadata map[string]interface{}) *OrderEvent {
	return &OrderEvent{
		EventType: eventType,
		OrderID:   orderID,
		BuyerID:   buyerID,
		Status:    status,
		Timestamp: time.Now(),
		Metadata:  metadata,
	}
}
