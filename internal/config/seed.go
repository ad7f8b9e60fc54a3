package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/emberline-dev/emberline/internal/led"
	"github.com/emberline-dev/emberline/internal/logsink"
	"github.com/emberline-dev/emberline/internal/models"
	"github.com/emberline-dev/emberline/internal/vars"
)

// Seed is the optional YAML file loaded at first start to pre-populate
// hosts and templates before any persisted state exists.
type Seed struct {
	Hosts     []SeedHost     `yaml:"hosts"`
	Templates []SeedTemplate `yaml:"templates"`
}

type SeedHost struct {
	ID       string `yaml:"id"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	KeyPath  string `yaml:"key_path"`
}

type SeedTemplate struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Enabled     *bool      `yaml:"enabled"`
	Async       bool       `yaml:"async"`
	Action      SeedAction `yaml:"action"`
}

// SeedAction is the YAML surface of an action. Type selects which of the
// remaining fields apply.
type SeedAction struct {
	Type    string `yaml:"type"`
	DelayMS int    `yaml:"delay_ms"`

	// led
	Device string `yaml:"device"`
	Color  string `yaml:"color"`
	Pixel  *int   `yaml:"pixel"`
	Effect string `yaml:"effect"`

	// ssh
	Host           string `yaml:"host_ref"`
	Command        string `yaml:"command"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`

	// gpio
	Pin     int  `yaml:"pin"`
	Level   bool `yaml:"level"`
	PulseMS int  `yaml:"pulse_ms"`

	// log
	LogLevel string `yaml:"log_level"`
	Message  string `yaml:"message"`

	// set_variable
	Variable string `yaml:"variable"`
	Value    string `yaml:"value"`

	// device_control
	Verb string `yaml:"verb"`

	// webhook
	URL    string `yaml:"url"`
	Method string `yaml:"method"`
	Body   string `yaml:"body"`
}

// LoadSeed parses the seed file at path.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	return &seed, nil
}

// HostList converts the seeded hosts to registry entries.
func (s *Seed) HostList() []models.SSHHost {
	out := make([]models.SSHHost, 0, len(s.Hosts))
	for _, h := range s.Hosts {
		port := h.Port
		if port == 0 {
			port = 22
		}
		out = append(out, models.SSHHost{
			ID:         h.ID,
			Host:       h.Host,
			Port:       port,
			Username:   h.Username,
			Password:   h.Password,
			KeyPath:    h.KeyPath,
			UseKeyAuth: h.KeyPath != "",
		})
	}
	return out
}

// TemplateList converts the seeded templates to engine templates.
func (s *Seed) TemplateList() ([]models.ActionTemplate, error) {
	out := make([]models.ActionTemplate, 0, len(s.Templates))
	for _, t := range s.Templates {
		action, err := t.Action.ToAction()
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", t.ID, err)
		}

		enabled := true
		if t.Enabled != nil {
			enabled = *t.Enabled
		}

		out = append(out, models.ActionTemplate{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Action:      action,
			Enabled:     enabled,
			Async:       t.Async,
			CreatedAt:   time.Now(),
		})
	}
	return out, nil
}

// ToAction converts the YAML form into a typed action.
func (a SeedAction) ToAction() (models.Action, error) {
	action := models.Action{Delay: time.Duration(a.DelayMS) * time.Millisecond}

	switch a.Type {
	case "led":
		action.Type = models.ActionLED
		action.LED = models.LEDAction{
			Device: a.Device,
			Index:  models.PixelAll,
			Effect: a.Effect,
		}
		if a.Color != "" {
			rgb, err := led.ParseColor(a.Color)
			if err != nil {
				return models.Action{}, err
			}
			action.LED.R, action.LED.G, action.LED.B = rgb.R, rgb.G, rgb.B
		}
		if a.Pixel != nil {
			if *a.Pixel < 0 || *a.Pixel >= int(models.PixelAll) {
				return models.Action{}, fmt.Errorf("pixel index %d out of range", *a.Pixel)
			}
			action.LED.Index = uint8(*a.Pixel)
		}

	case "ssh":
		action.Type = models.ActionSSHCommand
		action.SSH = models.SSHCommandAction{
			HostRef: a.Host,
			Command: a.Command,
			Timeout: time.Duration(a.TimeoutSeconds) * time.Second,
		}

	case "gpio":
		action.Type = models.ActionGPIO
		action.GPIO = models.GPIOAction{
			Pin:   a.Pin,
			Level: a.Level,
			Pulse: time.Duration(a.PulseMS) * time.Millisecond,
		}

	case "log":
		action.Type = models.ActionLog
		level := logsink.SeverityInfo
		if a.LogLevel != "" {
			var err error
			level, err = logsink.ParseSeverity(a.LogLevel)
			if err != nil {
				return models.Action{}, err
			}
		}
		action.Log = models.LogAction{Level: level, Message: a.Message}

	case "set_variable":
		action.Type = models.ActionSetVariable
		action.SetVar = models.SetVariableAction{
			Variable: a.Variable,
			Value:    vars.Parse(a.Value),
		}

	case "device_control":
		action.Type = models.ActionDeviceControl
		action.Device = models.DeviceControlAction{Device: a.Device, Verb: a.Verb}

	case "webhook":
		action.Type = models.ActionWebhook
		action.Webhook = models.WebhookAction{URL: a.URL, Method: a.Method, Body: a.Body}

	default:
		return models.Action{}, fmt.Errorf("unknown action type %q", a.Type)
	}

	return action, nil
}
