package domain

import (
	"errors"
	"testing"
)

func TestUserProfileValidate(t *testing.T) {
	profile := UserProfile{ID: NewCallerID("user-1")}
	if errs := profile.Validate(); len(errs) != 0 {
		t.Fatalf("profile without optional fields must be valid, got %v", errs)
	}

	profile.ID = Anonymous()
	errs := profile.Validate()
	if len(errs) != 1 || !errors.Is(errs[0], ErrAnonymousCaller) {
		t.Fatalf("expected ErrAnonymousCaller, got %v", errs)
	}
}
