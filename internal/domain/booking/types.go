package booking

type Status string

const (
	StatusReserved  Status = "reserved"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
	StatusRefunded  Status = "refunded"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusReserved, StatusPaid, StatusCancelled, StatusRefunded:
		return true
	default:
		return false
	}
}

// Terminal statuses no longer hold a seat.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusRefunded
}

// Active statuses count toward the one-active-booking-per-parent rule.
func (s Status) IsActive() bool {
	return s == StatusReserved || s == StatusPaid
}

// CanTransition reports whether a status change is allowed.
// reserved → paid | cancelled; paid → refunded | cancelled(*).
// (*) paid → cancelled only via the refund-failed path: money moved but the
// refund did not, so the booking still ends, just without a refunded marker.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusReserved:
		return to == StatusPaid || to == StatusCancelled
	case StatusPaid:
		return to == StatusRefunded || to == StatusCancelled
	default:
		return false
	}
}

type RefundStatus string

const (
	RefundNone RefundStatus = "none"
	RefundFull RefundStatus = "full"
)

// RefundResult describes what happened to the money during a cancellation.
type RefundResult struct {
	Status      RefundStatus
	AmountCents int64
}
