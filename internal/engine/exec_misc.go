package engine

import (
	"fmt"
	"log"

	"github.com/emberline-dev/emberline/internal/models"
)

// execLog expands variables in the message and emits it at the requested
// severity. Log actions always succeed.
func (e *Engine) execLog(p models.LogAction) models.ActionResult {
	msg := e.ExpandVariables(p.Message)
	e.opts.LogSink.Emit(p.Level, msg)
	return success(msg)
}

// execSetVariable writes the value through the variable store.
func (e *Engine) execSetVariable(p models.SetVariableAction) models.ActionResult {
	if p.Variable == "" {
		return failure("set variable: variable name is required")
	}
	if err := e.opts.Vars.Set(p.Variable, p.Value); err != nil {
		return failure("set variable failed: " + err.Error())
	}
	return success(fmt.Sprintf("variable '%s' set", p.Variable))
}

// execDeviceControl applies the verb through the device controller.
func (e *Engine) execDeviceControl(p models.DeviceControlAction) models.ActionResult {
	log.Printf("engine: device control: %s -> %s", p.Device, p.Verb)
	if err := e.opts.Devices.Apply(p.Device, p.Verb); err != nil {
		return failure("device control failed: " + err.Error())
	}
	return success(fmt.Sprintf("device %s: %s applied", p.Device, p.Verb))
}
