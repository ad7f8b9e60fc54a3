package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/emberline-dev/emberline/internal/models"
)

// dispatch routes the action to its executor and always returns exactly
// one result; executor failures, including panics, are captured into the
// result rather than raised past this boundary.
func (e *Engine) dispatch(action models.Action) (result models.ActionResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("engine: executor panic for %s action: %v", action.Type, r)
			result = failure(fmt.Sprintf("executor panic: %v", r))
		}
	}()

	switch action.Type {
	case models.ActionSSHCommand:
		return e.execSSH(action.SSH)
	case models.ActionLED:
		return e.execLED(action.LED)
	case models.ActionGPIO:
		return e.execGPIO(action.GPIO)
	case models.ActionLog:
		return e.execLog(action.Log)
	case models.ActionSetVariable:
		return e.execSetVariable(action.SetVar)
	case models.ActionDeviceControl:
		return e.execDeviceControl(action.Device)
	case models.ActionWebhook:
		return failure("webhook actions are not implemented")
	default:
		return failure(fmt.Sprintf("unknown action type: %d", action.Type))
	}
}

func failure(msg string) models.ActionResult {
	return models.ActionResult{
		Status:    models.StatusFailed,
		Output:    models.Truncate(msg, models.MaxOutputLen),
		Timestamp: time.Now(),
	}
}

func success(msg string) models.ActionResult {
	return models.ActionResult{
		Status:    models.StatusSuccess,
		Output:    models.Truncate(msg, models.MaxOutputLen),
		Timestamp: time.Now(),
	}
}
