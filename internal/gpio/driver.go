// Package gpio defines the pin driver collaborator for GPIO actions and
// an in-memory simulator for tests and host builds.
package gpio

import (
	"fmt"
	"sync"
)

// Mode is a pin direction.
type Mode int

const (
	ModeInput Mode = iota
	ModeOutput
)

// Driver abstracts the platform GPIO driver. Configure is idempotent.
type Driver interface {
	Configure(pin int, mode Mode) error
	SetLevel(pin int, level bool) error
}

// MemDriver simulates pins in memory.
type MemDriver struct {
	mu     sync.Mutex
	modes  map[int]Mode
	levels map[int]bool
}

func NewMemDriver() *MemDriver {
	return &MemDriver{
		modes:  make(map[int]Mode),
		levels: make(map[int]bool),
	}
}

func (d *MemDriver) Configure(pin int, mode Mode) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.modes[pin] = mode
	return nil
}

func (d *MemDriver) SetLevel(pin int, level bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.modes[pin] != ModeOutput {
		return fmt.Errorf("gpio: pin %d not configured as output", pin)
	}
	d.levels[pin] = level
	return nil
}

// Level reports the simulated pin level.
func (d *MemDriver) Level(pin int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.levels[pin]
}

// ModeOf reports the simulated pin mode.
func (d *MemDriver) ModeOf(pin int) Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.modes[pin]
}
