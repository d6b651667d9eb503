package packages

import "testing"

func TestPackageStatusTransitions(t *testing.T) {
	cases := []struct {
		from    PackageStatus
		to      PackageStatus
		allowed bool
	}{
		{StatusDraft, StatusPublished, true},
		{StatusDraft, StatusCancelled, true},
		{StatusDraft, StatusClosed, false},
		{StatusPublished, StatusClosed, true},
		{StatusPublished, StatusCancelled, true},
		{StatusPublished, StatusDraft, false},
		{StatusClosed, StatusPublished, false},
		{StatusCancelled, StatusPublished, false},
		{StatusClosed, StatusCancelled, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestPackageStatusIsValid(t *testing.T) {
	for _, s := range []PackageStatus{StatusDraft, StatusPublished, StatusClosed, StatusCancelled} {
		if !s.IsValid() {
			t.Errorf("expected %s to be valid", s)
		}
	}

	if PackageStatus("archived").IsValid() {
		t.Error("expected unknown status to be invalid")
	}
}

func TestPackageStatusBookable(t *testing.T) {
	if !StatusPublished.CanBeBooked() {
		t.Error("published packages should accept bookings")
	}
	for _, s := range []PackageStatus{StatusDraft, StatusClosed, StatusCancelled} {
		if s.CanBeBooked() {
			t.Errorf("%s packages should not accept bookings", s)
		}
	}
}
