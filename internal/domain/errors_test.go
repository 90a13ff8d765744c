package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	cases := []struct {
		err  error
		kind string
	}{
		{ErrProfileNotFound, "not_found"},
		{ErrItemNotFound, "not_found"},
		{ErrOrderNotFound, "not_found"},
		{ErrSnapshotNotFound, "not_found"},
		{ErrNotASeller, "unauthorized"},
		{ErrNotItemSeller, "unauthorized"},
		{ErrNotOrderParty, "unauthorized"},
		{ErrAnonymousCaller, "validation"},
		{ErrRatingOutOfRange, "validation"},
		{ErrUnknownOrderStatus, "validation"},
		{ErrEmptyOrder, "validation"},
		{ErrItemUnavailable, "conflict"},
		{ErrDuplicateReview, "conflict"},
		{errors.New("boom"), "internal"},
		{nil, "ok"},
	}

	for _, tc := range cases {
		if got := ErrorKind(tc.err); got != tc.kind {
			t.Errorf("ErrorKind(%v) = %s, want %s", tc.err, got, tc.kind)
		}
	}
}

func TestKindPredicates(t *testing.T) {
	if !IsNotFound(ErrItemNotFound) {
		t.Error("expected ErrItemNotFound to be NotFound")
	}
	if !IsUnauthorized(ErrNotItemSeller) {
		t.Error("expected ErrNotItemSeller to be Unauthorized")
	}
	if !IsValidation(ErrRatingOutOfRange) {
		t.Error("expected ErrRatingOutOfRange to be ValidationError")
	}
	if !IsConflict(ErrItemUnavailable) {
		t.Error("expected ErrItemUnavailable to be Conflict")
	}
	if IsConflict(ErrItemNotFound) {
		t.Error("ErrItemNotFound must not be Conflict")
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("reserve item 7: %w", ErrItemUnavailable)

	if !IsConflict(wrapped) {
		t.Error("wrapped error lost its kind")
	}
	if !errors.Is(wrapped, ErrItemUnavailable) {
		t.Error("wrapped error lost its identity")
	}
}
