package reservation

// Status represents the lifecycle state of a booking
type Status string

const (
	StatusHold      Status = "HOLD"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusExpired   Status = "EXPIRED"
)

// IsValid checks if the status is a known lifecycle state
func (s Status) IsValid() bool {
	switch s {
	case StatusHold, StatusConfirmed, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed
func (s Status) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusCancelled || s == StatusExpired
}

// CanTransitionTo reports whether the state machine allows moving from s to
// target. Only a HOLD ever moves; terminal states absorb.
func (s Status) CanTransitionTo(target Status) bool {
	if s != StatusHold {
		return false
	}
	switch target {
	case StatusConfirmed, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}
