package models

// ActionStats holds the engine's monotonic counters. Cleared only by an
// explicit reset.
type ActionStats struct {
	TotalExecuted  uint64 `json:"total_executed"`
	TotalSucceeded uint64 `json:"total_succeeded"`
	TotalFailed    uint64 `json:"total_failed"`
	TotalTimedOut  uint64 `json:"total_timed_out"`

	SSHCommands uint64 `json:"ssh_commands"`
	LEDActions  uint64 `json:"led_actions"`
	GPIOActions uint64 `json:"gpio_actions"`

	QueueHighWater int `json:"queue_high_water"`
}
