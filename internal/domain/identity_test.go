package domain

import (
	"encoding/json"
	"testing"
)

func TestCallerID_Anonymous(t *testing.T) {
	if !Anonymous().IsAnonymous() {
		t.Fatal("Anonymous() must be anonymous")
	}
	if !NewCallerID("").IsAnonymous() {
		t.Fatal("empty raw id must be anonymous")
	}
	if NewCallerID("user-1").IsAnonymous() {
		t.Fatal("non-empty id must not be anonymous")
	}
}

func TestCallerID_Comparable(t *testing.T) {
	a := NewCallerID("user-1")
	b := NewCallerID("user-1")
	c := NewCallerID("user-2")

	if a != b {
		t.Fatal("equal raw ids must compare equal")
	}
	if a == c {
		t.Fatal("distinct raw ids must not compare equal")
	}

	// CallerID должен работать ключом map.
	m := map[CallerID]int{a: 1}
	if m[b] != 1 {
		t.Fatal("CallerID must be usable as a map key")
	}
}

func TestCallerID_JSONRoundTrip(t *testing.T) {
	original := NewCallerID("user-1")

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var restored CallerID
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if restored != original {
		t.Fatalf("expected %v, got %v", original, restored)
	}

	// Анонимный идентификатор тоже должен пережить round-trip.
	data, err = json.Marshal(Anonymous())
	if err != nil {
		t.Fatalf("marshal anonymous failed: %v", err)
	}
	var anon CallerID
	if err := json.Unmarshal(data, &anon); err != nil {
		t.Fatalf("unmarshal anonymous failed: %v", err)
	}
	if !anon.IsAnonymous() {
		t.Fatal("anonymous id must stay anonymous after round-trip")
	}
}
