package models

import "time"

// ActionCallback is invoked by the worker after an enqueued action
// completes (or is cancelled while still queued).
type ActionCallback func(action Action, result ActionResult, userData any)

// QueueEntry is the envelope wrapping an Action for async execution.
// Priority is recorded for observability; dequeue order is FIFO.
type QueueEntry struct {
	ID          string
	Action      Action
	Callback    ActionCallback
	UserData    any
	Priority    uint8
	EnqueueTime time.Time
}
