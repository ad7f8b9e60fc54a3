package models

import "time"

// Status is the per-action state machine:
// Pending/Queued -> Running -> {Success, Failed, Timeout, Cancelled}.
type Status int

const (
	StatusPending Status = iota
	StatusRunning
	StatusSuccess
	StatusFailed
	StatusTimeout
	StatusCancelled
	StatusQueued
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	case StatusTimeout:
		return "timeout"
	case StatusCancelled:
		return "cancelled"
	case StatusQueued:
		return "queued"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	switch s {
	case StatusSuccess, StatusFailed, StatusTimeout, StatusCancelled:
		return true
	}
	return false
}

// ActionResult is produced once per dispatched action. Output is bounded
// to MaxOutputLen and carries either captured output or an error message.
type ActionResult struct {
	Status    Status
	ExitCode  int
	Output    string
	Duration  time.Duration
	Timestamp time.Time
}
