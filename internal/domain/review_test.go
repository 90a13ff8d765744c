package domain

import (
	"errors"
	"testing"
	"time"
)

func TestReviewValidate(t *testing.T) {
	review := Review{
		ReviewerID: NewCallerID("buyer-1"),
		ItemID:     1,
		Rating:     5,
		Comment:    "solid chair",
		CreatedAt:  time.Now().UTC(),
	}
	if errs := review.Validate(); len(errs) != 0 {
		t.Fatalf("expected valid review, got %v", errs)
	}

	for _, rating := range []int{0, 6, -3} {
		review.Rating = rating
		errs := review.Validate()
		if len(errs) != 1 || !errors.Is(errs[0], ErrRatingOutOfRange) {
			t.Fatalf("rating %d: expected ErrRatingOutOfRange, got %v", rating, errs)
		}
	}
}

func TestReviewValidate_AnonymousReviewer(t *testing.T) {
	review := Review{ReviewerID: Anonymous(), ItemID: 1, Rating: 3}

	errs := review.Validate()
	if len(errs) != 1 || !errors.Is(errs[0], ErrAnonymousCaller) {
		t.Fatalf("expected ErrAnonymousCaller, got %v", errs)
	}
}
