package models

import "time"

// Status is the derived availability of a medication
type Status string

const (
	StatusAvailable Status = "available"
	StatusWaiting   Status = "waiting"
)

// Availability is the status of a medication at an instant. Remaining is
// zero when Available.
type Availability struct {
	Status    Status
	Remaining time.Duration
}

// IsAvailable reports whether a dose may be taken now
func (a Availability) IsAvailable() bool {
	return a.Status == StatusAvailable
}
