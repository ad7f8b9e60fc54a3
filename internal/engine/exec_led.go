package engine

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/emberline-dev/emberline/internal/led"
	"github.com/emberline-dev/emberline/internal/models"
)

// execLED resolves the device class and either fills it with the color,
// sets a single pixel, or starts a named effect. Devices whose render
// layer has no effect support are an acknowledged gap: the request is
// logged and the action still succeeds. The led counter is updated on
// every outcome, including failures.
func (e *Engine) execLED(p models.LEDAction) models.ActionResult {
	start := time.Now()
	color := led.RGB{R: p.R, G: p.G, B: p.B}

	var opErr error
	device, err := e.opts.LEDs.Device(p.Device)
	switch {
	case err != nil:
		opErr = fmt.Errorf("led device %q not found", p.Device)
	case p.Effect != "":
		if err := device.StartEffect(p.Effect, color); err != nil {
			if errors.Is(err, led.ErrEffectUnsupported) {
				log.Printf("engine: led effect %q not supported on %s", p.Effect, p.Device)
			} else {
				opErr = fmt.Errorf("led effect failed: %w", err)
			}
		}
	case p.Index != models.PixelAll:
		if err := device.SetPixel(int(p.Index), color); err != nil {
			opErr = fmt.Errorf("led set pixel failed: %w", err)
		}
	default:
		if err := device.Fill(color); err != nil {
			opErr = fmt.Errorf("led fill failed: %w", err)
		}
	}

	var result models.ActionResult
	if opErr != nil {
		result = failure(opErr.Error())
	} else {
		result = success("led " + p.Device + " updated")
	}
	result.Duration = time.Since(start)

	e.statsMu.Lock()
	e.stats.LEDActions++
	e.statsMu.Unlock()

	return result
}
