package engine

import (
	"fmt"
	"log"

	"github.com/emberline-dev/emberline/internal/models"
)

// RegisterHost inserts or, if the ID is already present, updates a host
// credential in place. The registry is capacity-bounded.
func (e *Engine) RegisterHost(h models.SSHHost) error {
	if h.ID == "" {
		return fmt.Errorf("engine: host id is required")
	}
	h = h.Capped()

	e.hostsMu.Lock()
	defer e.hostsMu.Unlock()

	for i := range e.hosts {
		if e.hosts[i].ID == h.ID {
			e.hosts[i] = h
			log.Printf("engine: updated ssh host %s", h.ID)
			return nil
		}
	}

	if len(e.hosts) >= e.opts.HostCapacity {
		return fmt.Errorf("engine: host registry full (%d): %w", e.opts.HostCapacity, ErrCapacity)
	}
	e.hosts = append(e.hosts, h)
	log.Printf("engine: registered ssh host %s (%s@%s:%d)", h.ID, h.Username, h.Host, h.Port)
	return nil
}

// UnregisterHost removes the host by ID. Not-found is a normal, non-fatal
// outcome reported as ErrHostNotFound.
func (e *Engine) UnregisterHost(id string) error {
	e.hostsMu.Lock()
	defer e.hostsMu.Unlock()

	for i := range e.hosts {
		if e.hosts[i].ID == id {
			// Order is not part of the registry contract.
			e.hosts[i] = e.hosts[len(e.hosts)-1]
			e.hosts = e.hosts[:len(e.hosts)-1]
			log.Printf("engine: unregistered ssh host %s", id)
			return nil
		}
	}
	return fmt.Errorf("%q: %w", id, ErrHostNotFound)
}

// Host returns the credential for the given ID, including the secret;
// this accessor is for executors, not for bulk listing.
func (e *Engine) Host(id string) (models.SSHHost, error) {
	e.hostsMu.Lock()
	defer e.hostsMu.Unlock()

	for i := range e.hosts {
		if e.hosts[i].ID == id {
			return e.hosts[i], nil
		}
	}
	return models.SSHHost{}, fmt.Errorf("%q: %w", id, ErrHostNotFound)
}

// Hosts returns a copy of all registered hosts with passwords redacted.
func (e *Engine) Hosts() []models.SSHHost {
	e.hostsMu.Lock()
	defer e.hostsMu.Unlock()

	out := make([]models.SSHHost, 0, len(e.hosts))
	for i := range e.hosts {
		out = append(out, e.hosts[i].Redacted())
	}
	return out
}

// HostCount returns the number of registered hosts.
func (e *Engine) HostCount() int {
	e.hostsMu.Lock()
	defer e.hostsMu.Unlock()
	return len(e.hosts)
}
