package bookings

import "testing"

func TestCanTransitionPolicy(t *testing.T) {
	cases := []struct {
		name        string
		role        string
		ownsBooking bool
		ownsPackage bool
		to          Status
		want        bool
	}{
		{"tourist cancels own booking", "tourist", true, false, StatusCancelled, true},
		{"tourist cancels someone else's booking", "tourist", false, false, StatusCancelled, false},
		{"tourist confirms own booking", "tourist", true, false, StatusConfirmed, false},
		{"tourist completes own booking", "tourist", true, false, StatusCompleted, false},
		{"operator confirms booking on own package", "operator", false, true, StatusConfirmed, true},
		{"operator completes booking on own package", "operator", false, true, StatusCompleted, true},
		{"operator cancels booking on own package", "operator", false, true, StatusCancelled, true},
		{"operator confirms booking on another package", "operator", false, false, StatusConfirmed, false},
		{"admin confirms any booking", "admin", false, false, StatusConfirmed, true},
		{"admin cancels any booking", "admin", false, false, StatusCancelled, true},
		{"admin cannot set refunded directly", "admin", false, false, StatusRefunded, false},
		{"operator cannot set refunded directly", "operator", false, true, StatusRefunded, false},
		{"unknown role denied", "guest", true, true, StatusCancelled, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := canTransition(tc.role, tc.ownsBooking, tc.ownsPackage, tc.to)
			if got != tc.want {
				t.Errorf("canTransition(%s, owns=%v, pkg=%v, %s) = %v, want %v",
					tc.role, tc.ownsBooking, tc.ownsPackage, tc.to, got, tc.want)
			}
		})
	}
}
