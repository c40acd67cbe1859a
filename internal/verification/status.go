package verification

import "fmt"

// Status is the overall verification status of a candidate. Values match the
// names stored in the verification_status table.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusSubmitted  Status = "SUBMITTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusRejected   Status = "REJECTED"
)

var AllStatuses = []Status{StatusPending, StatusSubmitted, StatusInProgress, StatusCompleted, StatusRejected}

// transitions lists the allowed targets for each state. Self-loops on the
// non-terminal states let an interrupted run or a re-submission proceed.
var transitions = map[Status][]Status{
	StatusPending:    {StatusSubmitted, StatusInProgress, StatusCompleted, StatusRejected},
	StatusSubmitted:  {StatusSubmitted, StatusInProgress, StatusCompleted, StatusRejected},
	StatusInProgress: {StatusInProgress, StatusCompleted, StatusRejected},
}

// NormalizeStatus maps an unset status to PENDING.
func NormalizeStatus(s Status) Status {
	if s == "" {
		return StatusPending
	}
	return s
}

func (s Status) Terminal() bool {
	s = NormalizeStatus(s)
	return s == StatusCompleted || s == StatusRejected
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[NormalizeStatus(from)] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates from -> to and returns to, or an error wrapping ErrInvalidTransition.
func Transition(from, to Status) (Status, error) {
	if !CanTransition(from, to) {
		return NormalizeStatus(from), fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, NormalizeStatus(from), to)
	}
	return to, nil
}
