package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/emberline-dev/emberline/internal/gpio"
	"github.com/emberline-dev/emberline/internal/models"
)

// execGPIO configures the pin as output and sets the requested level.
// With a pulse the level is held for the pulse duration and then the
// opposite level is set; the calling path blocks for the whole hold.
// Without a pulse the level is left as set and the caller owns it.
func (e *Engine) execGPIO(p models.GPIOAction) models.ActionResult {
	start := time.Now()

	if err := e.opts.GPIO.Configure(p.Pin, gpio.ModeOutput); err != nil {
		return failure("gpio configure failed: " + err.Error())
	}
	if err := e.opts.GPIO.SetLevel(p.Pin, p.Level); err != nil {
		return failure("gpio set failed: " + err.Error())
	}

	var output string
	if p.Pulse > 0 {
		time.Sleep(p.Pulse)
		if err := e.opts.GPIO.SetLevel(p.Pin, !p.Level); err != nil {
			log.Printf("engine: gpio pulse restore failed: %v", err)
		}
		output = fmt.Sprintf("gpio %d pulsed for %v", p.Pin, p.Pulse)
	} else {
		output = fmt.Sprintf("gpio %d set to %t", p.Pin, p.Level)
	}

	e.statsMu.Lock()
	e.stats.GPIOActions++
	e.statsMu.Unlock()

	result := success(output)
	result.Duration = time.Since(start)
	return result
}
