package domain

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func validItem() Item {
	return Item{
		ID:         1,
		Name:       "Oak chair",
		PriceMinor: 1500,
		Category:   "furniture",
		Condition:  "good",
		SellerID:   NewCallerID("seller-1"),
		Available:  true,
		CreatedAt:  time.Now().UTC(),
	}
}

func TestItemValidate(t *testing.T) {
	item := validItem()
	if errs := item.Validate(); len(errs) != 0 {
		t.Fatalf("expected valid item, got %v", errs)
	}

	// Пустое имя допустимо, отрицательная цена — нет.
	item.Name = ""
	if errs := item.Validate(); len(errs) != 0 {
		t.Fatalf("unnamed item must be valid, got %v", errs)
	}

	item.PriceMinor = -1
	errs := item.Validate()
	if len(errs) != 1 || !errors.Is(errs[0], ErrNegativePrice) {
		t.Fatalf("expected ErrNegativePrice, got %v", errs)
	}
}

func TestItemPatch_Apply(t *testing.T) {
	item := validItem()

	name := "Walnut chair"
	price := int64(2000)
	available := false
	patched := ItemPatch{
		Name:       &name,
		PriceMinor: &price,
		Available:  &available,
		Images:     []string{"img-1", "img-2"},
	}.Apply(item)

	if patched.Name != name || patched.PriceMinor != price || patched.Available {
		t.Fatalf("patch not applied: %+v", patched)
	}
	if len(patched.Images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(patched.Images))
	}

	// Отсутствующие поля сохраняют текущее значение.
	if patched.Description != item.Description || patched.Category != item.Category {
		t.Fatal("absent fields must keep current values")
	}
	// Неизменяемые поля не затрагиваются.
	if patched.ID != item.ID || patched.SellerID != item.SellerID || !patched.CreatedAt.Equal(item.CreatedAt) {
		t.Fatal("immutable fields must not change")
	}
}

func TestItemPatch_ApplyIsPure(t *testing.T) {
	item := validItem()
	original := item

	name := "changed"
	_ = ItemPatch{Name: &name}.Apply(item)

	if !reflect.DeepEqual(item, original) {
		t.Fatal("Apply must not mutate its argument")
	}
}

func TestItemPatch_EmptyKeepsEverything(t *testing.T) {
	item := validItem()
	patched := ItemPatch{}.Apply(item)

	if !reflect.DeepEqual(patched, item) {
		t.Fatalf("empty patch must be identity: %+v vs %+v", patched, item)
	}
}

func TestItemValidate_AnonymousSeller(t *testing.T) {
	item := validItem()
	item.SellerID = Anonymous()

	errs := item.Validate()
	if len(errs) != 1 || !errors.Is(errs[0], ErrAnonymousCaller) {
		t.Fatalf("expected ErrAnonymousCaller, got %v", errs)
	}
}
