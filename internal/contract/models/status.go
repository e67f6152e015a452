package models

// Status is the lifecycle state of a contract.
//
// Machine:
//
//	Created → Active
//	Active  → Disputed | Terminated | Completed
//	Disputed → Terminated
//
// Terminated and Completed are terminal. Completed is only reachable once
// the contract term has elapsed (checked at the service layer).
type Status string

const (
	StatusCreated    Status = "created"
	StatusActive     Status = "active"
	StatusDisputed   Status = "disputed"
	StatusTerminated Status = "terminated"
	StatusCompleted  Status = "completed"
)

var transitions = map[Status][]Status{
	StatusCreated:    {StatusActive},
	StatusActive:     {StatusDisputed, StatusTerminated, StatusCompleted},
	StatusDisputed:   {StatusTerminated},
	StatusTerminated: {},
	StatusCompleted:  {},
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the status has no outgoing transitions.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}
