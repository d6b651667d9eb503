package bookings

import "testing"

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusRefunded, false},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusRefunded, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusRefunded, true},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusRefunded, StatusConfirmed, false},
	}

	for _, tc := range cases {
		if got := Allowed(tc.from, tc.to); got != tc.allowed {
			t.Errorf("Allowed(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestStatusHoldsSeats(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed} {
		if !s.HoldsSeats() {
			t.Errorf("%s should hold seats", s)
		}
	}
	for _, s := range []Status{StatusCancelled, StatusCompleted, StatusRefunded} {
		if s.HoldsSeats() {
			t.Errorf("%s should not hold seats", s)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range []Status{StatusCancelled, StatusRefunded} {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusCompleted} {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusRefunded} {
		if !s.IsValid() {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if Status("archived").IsValid() {
		t.Error("expected unknown status to be invalid")
	}
}
