package domain

import (
	"testing"
	"time"
)

func validOrder() Order {
	now := time.Now().UTC()
	return Order{
		ID:              1,
		BuyerID:         NewCallerID("buyer-1"),
		ItemIDs:         []uint64{1, 2},
		TotalMinor:      2500,
		Status:          OrderStatusPending,
		ShippingAddress: "123 Main St",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestOrderValidate(t *testing.T) {
	order := validOrder()
	if errs := order.Validate(); len(errs) != 0 {
		t.Fatalf("expected valid order, got %v", errs)
	}

	order.BuyerID = Anonymous()
	order.ItemIDs = nil
	order.TotalMinor = -1
	order.Status = OrderStatus("shredded")

	if errs := order.Validate(); len(errs) != 4 {
		t.Fatalf("expected 4 errors, got %v", errs)
	}
}

func TestKnownOrderStatus(t *testing.T) {
	known := []OrderStatus{
		OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	}
	for _, status := range known {
		if !KnownOrderStatus(status) {
			t.Errorf("expected %s to be known", status)
		}
	}

	if KnownOrderStatus(OrderStatus("refunded")) {
		t.Error("refunded is not part of the status enum")
	}
	if KnownOrderStatus(OrderStatus("")) {
		t.Error("empty status must be rejected")
	}
}

func TestOrderContains(t *testing.T) {
	order := validOrder()

	if !order.Contains(1) || !order.Contains(2) {
		t.Fatal("order must contain its item ids")
	}
	if order.Contains(3) {
		t.Fatal("order must not contain a foreign item id")
	}
}
