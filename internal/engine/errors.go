package engine

import "errors"

var (
	// ErrQueueFull is returned by Enqueue when the bounded wait on a full
	// queue expires.
	ErrQueueFull = errors.New("engine: action queue full")

	// ErrNotRunning is returned by Enqueue after Close.
	ErrNotRunning = errors.New("engine: not running")

	// ErrShutdownTimeout is returned by Close when the worker does not
	// exit within the stop timeout.
	ErrShutdownTimeout = errors.New("engine: worker did not stop in time")

	// ErrHostNotFound is returned for unknown host IDs.
	ErrHostNotFound = errors.New("engine: ssh host not found")

	// ErrTemplateNotFound is returned for unknown template IDs.
	ErrTemplateNotFound = errors.New("engine: template not found")

	// ErrTemplateExists is returned by AddTemplate on a duplicate ID.
	ErrTemplateExists = errors.New("engine: template already exists")

	// ErrTemplateDisabled is returned by ExecuteTemplate for disabled
	// templates.
	ErrTemplateDisabled = errors.New("engine: template disabled")

	// ErrCapacity is returned when a fixed-capacity registry is full.
	ErrCapacity = errors.New("engine: capacity reached")
)
