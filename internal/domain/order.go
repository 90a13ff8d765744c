package domain

import "time"

// OrderStatus описывает жизненный цикл заказа.
type OrderStatus string

const (
	// OrderStatusPending — заказ создан, позиции зарезервированы.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusPaid — оплата подтверждена внешним биллингом.
	OrderStatusPaid OrderStatus = "paid"
	// OrderStatusShipped — заказ передан в доставку.
	OrderStatusShipped OrderStatus = "shipped"
	// OrderStatusDelivered — заказ получен покупателем.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled — заказ отменён до завершения цикла.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// KnownOrderStatus сообщает, входит ли значение в перечисление статусов.
// Допустимость самого перехода между статусами намеренно не проверяется:
// унаследованное поведение позволяет записать любой статус поверх любого.
func KnownOrderStatus(status OrderStatus) bool {
	switch status {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Order агрегирует состояние заказа.
// BuyerID, ItemIDs и TotalMinor неизменяемы после создания; TotalMinor
// фиксирует сумму цен позиций на момент резервирования.
type Order struct {
	ID              uint64      `json:"id"`
	BuyerID         CallerID    `json:"buyer_id"`
	ItemIDs         []uint64    `json:"item_ids"`
	TotalMinor      int64       `json:"total_minor"`
	Status          OrderStatus `json:"status"`
	ShippingAddress string      `json:"shipping_address"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// Validate проверяет базовые инварианты заказа.
func (o *Order) Validate() []error {
	var errs []error

	if o.BuyerID.IsAnonymous() {
		errs = append(errs, ErrAnonymousCaller)
	}
	if len(o.ItemIDs) == 0 {
		errs = append(errs, ErrEmptyOrder)
	}
	if o.TotalMinor < 0 {
		errs = append(errs, ErrNegativePrice)
	}
	if !KnownOrderStatus(o.Status) {
		errs = append(errs, ErrUnknownOrderStatus)
	}

	return errs
}

// Contains сообщает, ссылается ли заказ на указанный товар.
func (o *Order) Contains(itemID uint64) bool {
	for _, id := range o.ItemIDs {
		if id == itemID {
			return true
		}
	}
	return false
}
