// Package devicectl controls managed compute devices (power rails of the
// attached modules) on behalf of DeviceControl actions.
package devicectl

import (
	"errors"
	"fmt"
	"sync"
)

// Verbs accepted by Apply.
const (
	VerbPowerOn  = "power_on"
	VerbPowerOff = "power_off"
	VerbReset    = "reset"
)

var (
	ErrDeviceNotFound  = errors.New("devicectl: device not found")
	ErrUnsupportedVerb = errors.New("devicectl: unsupported verb")
)

// Controller applies a control verb to a named device.
type Controller interface {
	Apply(device, verb string) error
}

// MemController tracks power state of a fixed set of devices in memory.
type MemController struct {
	mu    sync.Mutex
	power map[string]bool
}

// NewMemController registers the given device names, all powered off.
func NewMemController(devices ...string) *MemController {
	c := &MemController{power: make(map[string]bool, len(devices))}
	for _, d := range devices {
		c.power[d] = false
	}
	return c
}

func (c *MemController) Apply(device, verb string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.power[device]; !ok {
		return fmt.Errorf("%w: %q", ErrDeviceNotFound, device)
	}

	switch verb {
	case VerbPowerOn:
		c.power[device] = true
	case VerbPowerOff:
		c.power[device] = false
	case VerbReset:
		// A reset cycles the rail and leaves the device powered.
		c.power[device] = true
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedVerb, verb)
	}
	return nil
}

// PoweredOn reports the simulated power state.
func (c *MemController) PoweredOn(device string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.power[device]
}
