package waitinglist

type Status string

const (
	StatusPending  Status = "pending"
	StatusNotified Status = "notified"
	StatusClaimed  Status = "claimed"
	StatusExpired  Status = "expired"
	StatusRemoved  Status = "removed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusNotified, StatusClaimed, StatusExpired, StatusRemoved:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the entry has left the queue for good. A
// terminal entry's token must never be honored again.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusClaimed, StatusExpired, StatusRemoved:
		return true
	default:
		return false
	}
}
