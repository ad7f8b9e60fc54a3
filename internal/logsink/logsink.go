// Package logsink defines the log sink collaborator that Log actions
// emit through, plus the production and test implementations.
package logsink

import (
	"fmt"
	"log"
	"sync"

	"go.uber.org/zap"
)

// Severity mirrors the four levels a Log action may request.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarn
	SeverityInfo
	SeverityDebug
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarn:
		return "warn"
	case SeverityInfo:
		return "info"
	case SeverityDebug:
		return "debug"
	default:
		return "info"
	}
}

// ParseSeverity maps a textual level to a Severity. Unknown levels
// default to info, matching the reference behavior.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "error":
		return SeverityError, nil
	case "warn", "warning":
		return SeverityWarn, nil
	case "info", "":
		return SeverityInfo, nil
	case "debug":
		return SeverityDebug, nil
	default:
		return SeverityInfo, fmt.Errorf("logsink: unknown severity %q", s)
	}
}

// Sink receives the expanded message of every Log action.
type Sink interface {
	Emit(sev Severity, msg string)
}

// ZapSink routes Log actions into a zap logger.
type ZapSink struct {
	l *zap.Logger
}

func NewZapSink(l *zap.Logger) *ZapSink {
	if l == nil {
		l = zap.NewNop()
	}
	return &ZapSink{l: l}
}

func (z *ZapSink) Emit(sev Severity, msg string) {
	switch sev {
	case SeverityError:
		z.l.Error(msg)
	case SeverityWarn:
		z.l.Warn(msg)
	case SeverityDebug:
		z.l.Debug(msg)
	default:
		z.l.Info(msg)
	}
}

// StdSink writes through the standard library logger. Used as the
// engine default when no sink is configured.
type StdSink struct{}

func (StdSink) Emit(sev Severity, msg string) {
	log.Printf("automation [%s]: %s", sev, msg)
}

// CaptureSink records emitted entries for assertions in tests.
type CaptureSink struct {
	mu      sync.Mutex
	entries []CapturedEntry
}

type CapturedEntry struct {
	Severity Severity
	Message  string
}

func (c *CaptureSink) Emit(sev Severity, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = append(c.entries, CapturedEntry{Severity: sev, Message: msg})
}

func (c *CaptureSink) Entries() []CapturedEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]CapturedEntry, len(c.entries))
	copy(out, c.entries)
	return out
}
