// Package led defines the LED device collaborator the engine renders
// through, plus an in-memory implementation backed by pixel buffers.
package led

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrDeviceNotFound is returned when no device with the requested
	// name is registered.
	ErrDeviceNotFound = errors.New("led: device not found")

	// ErrEffectUnsupported is returned by devices whose render layer has
	// no effect support.
	ErrEffectUnsupported = errors.New("led: effect not supported")
)

// Device is a single addressable LED device (board indicator, touch ring,
// matrix panel).
type Device interface {
	Name() string
	Fill(c RGB) error
	SetPixel(index int, c RGB) error
	// StartEffect starts a named effect asynchronously on the device's
	// render layer. Devices without effect support return
	// ErrEffectUnsupported.
	StartEffect(name string, c RGB) error
}

// Registry resolves the closed set of named device classes.
type Registry interface {
	Device(name string) (Device, error)
}

// MemDevice is a mutex-guarded in-memory Device used by tests and host
// builds without real hardware.
type MemDevice struct {
	mu      sync.Mutex
	name    string
	pixels  []RGB
	effects map[string]bool
	active  string
	color   RGB
}

// NewMemDevice creates a device with the given pixel count. The listed
// effect names are accepted by StartEffect; an empty list means the
// device has no effect support.
func NewMemDevice(name string, pixelCount int, effects ...string) *MemDevice {
	d := &MemDevice{
		name:    name,
		pixels:  make([]RGB, pixelCount),
		effects: make(map[string]bool, len(effects)),
	}
	for _, e := range effects {
		d.effects[e] = true
	}
	return d
}

func (d *MemDevice) Name() string { return d.name }

func (d *MemDevice) Fill(c RGB) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.pixels {
		d.pixels[i] = c
	}
	d.active = ""
	return nil
}

func (d *MemDevice) SetPixel(index int, c RGB) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if index < 0 || index >= len(d.pixels) {
		return fmt.Errorf("led: pixel %d out of range on %s", index, d.name)
	}
	d.pixels[index] = c
	return nil
}

func (d *MemDevice) StartEffect(name string, c RGB) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.effects) == 0 || !d.effects[name] {
		return fmt.Errorf("%w: %q on %s", ErrEffectUnsupported, name, d.name)
	}
	d.active = name
	d.color = c
	return nil
}

// Pixels returns a copy of the pixel buffer.
func (d *MemDevice) Pixels() []RGB {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]RGB, len(d.pixels))
	copy(out, d.pixels)
	return out
}

// ActiveEffect returns the last effect started, or "".
func (d *MemDevice) ActiveEffect() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// MemRegistry is an in-memory Registry.
type MemRegistry struct {
	mu      sync.Mutex
	devices map[string]Device
}

func NewMemRegistry() *MemRegistry {
	return &MemRegistry{devices: make(map[string]Device)}
}

func (r *MemRegistry) Add(d Device) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devices[d.Name()] = d
}

func (r *MemRegistry) Device(name string) (Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.devices[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDeviceNotFound, name)
	}
	return d, nil
}

// NewDefaultRegistry builds the three device classes of the reference
// hardware: a single board indicator, a 4-pixel touch ring and an 8x8
// matrix. Only the matrix render layer has effect support.
func NewDefaultRegistry() *MemRegistry {
	r := NewMemRegistry()
	r.Add(NewMemDevice("board", 1))
	r.Add(NewMemDevice("touch", 4))
	r.Add(NewMemDevice("matrix", 64, "blink", "pulse", "rainbow"))
	return r
}
