package reservation

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusInUse     Status = "in_use"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInUse, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status can never change again.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsActive reports whether the reservation still occupies a slot.
func (s Status) IsActive() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInUse:
		return true
	default:
		return false
	}
}

// ActiveStatuses in the order used by store queries.
func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusInUse}
}

// adminTransitions is the admin-settable transition table. Every (from, to)
// pair not listed here is rejected. CONFIRMED -> IN_USE is absent on purpose:
// that edge belongs to the date scheduler alone.
var adminTransitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusConfirmed: true,
		StatusCancelled: true,
	},
	StatusConfirmed: {
		StatusCancelled: true,
	},
	StatusInUse: {
		StatusCompleted: true,
		StatusCancelled: true,
	},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanAdminTransition reports whether an admin may move a reservation from
// one status to another.
func CanAdminTransition(from, to Status) bool {
	allowed, ok := adminTransitions[from]
	if !ok {
		return false
	}
	return allowed[to]
}
