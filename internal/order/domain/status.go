package domain

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusDelivered Status = "delivered"
)

// transitions is the exhaustive table: pending -> confirmed -> delivered,
// monotonic, never reverting.
var transitions = map[Status]Status{
	StatusPending:   StatusConfirmed,
	StatusConfirmed: StatusDelivered,
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDelivered:
		return true
	}
	return false
}

func (s Status) CanTransitionTo(next Status) bool {
	return transitions[s] == next
}

func (s Status) IsTerminal() bool {
	return s == StatusDelivered
}

func (s Status) String() string {
	return string(s)
}
