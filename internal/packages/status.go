package packages

// PackageStatus represents the lifecycle state of a tour package
type PackageStatus string

const (
	StatusDraft     PackageStatus = "draft"
	StatusPublished PackageStatus = "published"
	StatusClosed    PackageStatus = "closed"
	StatusCancelled PackageStatus = "cancelled"
)

func (s PackageStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusClosed, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the package lifecycle allows moving to the
// target status. Draft packages publish or cancel; published packages close
// or cancel; closed and cancelled are terminal.
func (s PackageStatus) CanTransitionTo(target PackageStatus) bool {
	switch s {
	case StatusDraft:
		return target == StatusPublished || target == StatusCancelled
	case StatusPublished:
		return target == StatusClosed || target == StatusCancelled
	default:
		return false
	}
}

// CanBeBooked reports whether bookings are accepted in this status.
func (s PackageStatus) CanBeBooked() bool {
	return s == StatusPublished
}

// CanBeUpdated reports whether the package details may still change.
func (s PackageStatus) CanBeUpdated() bool {
	return s == StatusDraft || s == StatusPublished
}

// CanBeDeleted reports whether the package may be removed outright.
func (s PackageStatus) CanBeDeleted() bool {
	return s == StatusDraft
}

func (s PackageStatus) String() string {
	return string(s)
}
