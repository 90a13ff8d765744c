package domain

import "time"

// TimelineEvent — событие жизненного цикла заказа.
type TimelineEvent struct {
	OrderID  uint64    `json:"order_id"`
	Type     string    `json:"type"`
	Detail   string    `json:"detail,omitempty"`
	Occurred time.Time `json:"occurred"`
}
