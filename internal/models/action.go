package models

import (
	"time"
	"unicode/utf8"

	"github.com/emberline-dev/emberline/internal/logsink"
	"github.com/emberline-dev/emberline/internal/vars"
)

// String length caps shared with the embedded target. Inputs above these
// bounds are truncated, never rejected.
const (
	MaxNameLen   = 32
	MaxLabelLen  = 48
	MaxPathLen   = 96
	MaxExprLen   = 64
	MaxOutputLen = 256
)

// PixelAll addresses every pixel of an LED device instead of a single index.
const PixelAll uint8 = 0xFF

// ActionType tags the Action variant.
type ActionType int

const (
	ActionLED ActionType = iota
	ActionSSHCommand
	ActionGPIO
	ActionWebhook
	ActionLog
	ActionSetVariable
	ActionDeviceControl
)

func (t ActionType) String() string {
	switch t {
	case ActionLED:
		return "led"
	case ActionSSHCommand:
		return "ssh"
	case ActionGPIO:
		return "gpio"
	case ActionWebhook:
		return "webhook"
	case ActionLog:
		return "log"
	case ActionSetVariable:
		return "set_variable"
	case ActionDeviceControl:
		return "device_control"
	default:
		return "unknown"
	}
}

// LEDAction sets a color, a single pixel, or starts a named effect on one
// of the LED device classes (board, touch, matrix).
type LEDAction struct {
	Device  string
	R, G, B uint8
	Index   uint8 // pixel index, PixelAll fills the whole device
	Effect  string
}

// SSHCommandAction runs a command on a host registered in the host
// registry, referenced by ID. A zero Timeout uses the engine default.
type SSHCommandAction struct {
	HostRef string
	Command string
	Timeout time.Duration
}

// GPIOAction drives a pin. Pulse > 0 holds the level for the pulse
// duration and then sets the opposite level.
type GPIOAction struct {
	Pin   int
	Level bool
	Pulse time.Duration
}

// WebhookAction is carried in the model but not executed; the dispatcher
// reports it as unsupported.
type WebhookAction struct {
	URL    string
	Method string
	Body   string
}

// LogAction emits an expanded message to the log sink.
type LogAction struct {
	Level   logsink.Severity
	Message string
}

// SetVariableAction writes a value into the variable store.
type SetVariableAction struct {
	Variable string
	Value    vars.Value
}

// DeviceControlAction applies a verb (power_on, power_off, reset) to a
// managed compute device.
type DeviceControlAction struct {
	Device string
	Verb   string
}

// Action is the closed variant the dispatcher switches on. Only the
// payload matching Type is meaningful; the rest stay zero. Actions are
// immutable once built and copied by value between caller, queue and
// executor.
type Action struct {
	Type  ActionType
	Delay time.Duration

	LED     LEDAction
	SSH     SSHCommandAction
	GPIO    GPIOAction
	Webhook WebhookAction
	Log     LogAction
	SetVar  SetVariableAction
	Device  DeviceControlAction
}

// Capped returns a copy with every string payload field bounded to its
// cap, applied at the ingestion boundaries (Execute, Enqueue, template
// and host registration) so oversized input never reaches an executor.
func (a Action) Capped() Action {
	a.LED.Device = Truncate(a.LED.Device, MaxNameLen)
	a.LED.Effect = Truncate(a.LED.Effect, MaxNameLen)
	a.SSH.HostRef = Truncate(a.SSH.HostRef, MaxNameLen)
	a.SSH.Command = Truncate(a.SSH.Command, MaxPathLen)
	a.Webhook.URL = Truncate(a.Webhook.URL, MaxPathLen)
	a.Webhook.Method = Truncate(a.Webhook.Method, MaxNameLen)
	a.Webhook.Body = Truncate(a.Webhook.Body, MaxOutputLen)
	a.Log.Message = Truncate(a.Log.Message, MaxExprLen)
	a.SetVar.Variable = Truncate(a.SetVar.Variable, MaxNameLen)
	if a.SetVar.Value.Type == vars.TypeString {
		a.SetVar.Value.Str = Truncate(a.SetVar.Value.Str, MaxExprLen)
	}
	a.Device.Device = Truncate(a.Device.Device, MaxNameLen)
	a.Device.Verb = Truncate(a.Device.Verb, MaxNameLen)
	return a
}

// Truncate bounds s to max bytes, backing up so a multi-byte rune is
// never split.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
