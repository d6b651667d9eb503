package bookings

import "hawabodol/internal/users"

// canTransition consolidates every role-based rule about who may move a
// booking between statuses. The lifecycle table (Allowed) is checked first
// by the caller; this layer only decides whether the requester is entitled
// to the change.
//
// Tourists may cancel their own bookings. Operators confirm, complete, or
// cancel bookings on their own packages. Admins may perform any lifecycle
// transition. Nobody reaches refunded through this path; that status is set
// by the refund approval flow.
func canTransition(role string, ownsBooking, ownsPackage bool, to Status) bool {
	if to == StatusRefunded {
		return false
	}

	switch role {
	case string(users.RoleAdmin):
		return true
	case string(users.RoleOperator):
		if !ownsPackage {
			return false
		}
		return to == StatusConfirmed || to == StatusCompleted || to == StatusCancelled
	case string(users.RoleTourist):
		return ownsBooking && to == StatusCancelled
	default:
		return false
	}
}
