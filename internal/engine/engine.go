// Package engine executes automation actions, either synchronously on the
// caller's goroutine or asynchronously through a bounded queue consumed by
// a single worker. It also owns the SSH host registry, the action template
// store and the running statistics counters.
package engine

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/emberline-dev/emberline/internal/devicectl"
	"github.com/emberline-dev/emberline/internal/gpio"
	"github.com/emberline-dev/emberline/internal/led"
	"github.com/emberline-dev/emberline/internal/logsink"
	"github.com/emberline-dev/emberline/internal/models"
	"github.com/emberline-dev/emberline/internal/sshclient"
	"github.com/emberline-dev/emberline/internal/vars"
)

// Defaults mirror the reference deployment.
const (
	DefaultQueueSize        = 16
	DefaultEnqueueTimeout   = 100 * time.Millisecond
	DefaultPollInterval     = time.Second
	DefaultStopTimeout      = 2 * time.Second
	DefaultSSHTimeout       = 30 * time.Second
	DefaultHostCapacity     = 8
	DefaultTemplateCapacity = 32
)

// ResultPublisher receives every completed result for downstream
// observability (event bus). Failures are logged, never propagated.
type ResultPublisher interface {
	PublishResult(action models.Action, result models.ActionResult) error
}

// Options configures an Engine. Nil collaborators are replaced with
// in-memory defaults so an Engine is always fully usable.
type Options struct {
	Vars    vars.Store
	SSH     sshclient.Factory
	GPIO    gpio.Driver
	LEDs    led.Registry
	Devices devicectl.Controller
	LogSink logsink.Sink

	Publisher ResultPublisher

	QueueSize        int
	EnqueueTimeout   time.Duration
	PollInterval     time.Duration
	StopTimeout      time.Duration
	SSHTimeout       time.Duration
	HostCapacity     int
	TemplateCapacity int
}

func (o *Options) applyDefaults() {
	if o.Vars == nil {
		o.Vars = vars.NewMemoryStore()
	}
	if o.SSH == nil {
		o.SSH = sshclient.ClientFactory{}
	}
	if o.GPIO == nil {
		o.GPIO = gpio.NewMemDriver()
	}
	if o.LEDs == nil {
		o.LEDs = led.NewDefaultRegistry()
	}
	if o.Devices == nil {
		o.Devices = devicectl.NewMemController()
	}
	if o.LogSink == nil {
		o.LogSink = logsink.StdSink{}
	}
	if o.QueueSize <= 0 {
		o.QueueSize = DefaultQueueSize
	}
	if o.EnqueueTimeout <= 0 {
		o.EnqueueTimeout = DefaultEnqueueTimeout
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.StopTimeout <= 0 {
		o.StopTimeout = DefaultStopTimeout
	}
	if o.SSHTimeout <= 0 {
		o.SSHTimeout = DefaultSSHTimeout
	}
	if o.HostCapacity <= 0 {
		o.HostCapacity = DefaultHostCapacity
	}
	if o.TemplateCapacity <= 0 {
		o.TemplateCapacity = DefaultTemplateCapacity
	}
}

// queueItem wraps a QueueEntry with the shutdown sentinel.
type queueItem struct {
	models.QueueEntry
	sentinel bool
}

// Engine is an explicit instance; there is no package-level state. All
// methods are safe for concurrent use.
type Engine struct {
	opts Options

	queue   chan queueItem
	running atomic.Bool
	done    chan struct{}

	hostsMu sync.Mutex
	hosts   []models.SSHHost

	tplMu     sync.Mutex
	templates []models.ActionTemplate

	statsMu sync.Mutex
	stats   models.ActionStats
}

// New builds an Engine and starts its worker goroutine.
func New(opts Options) *Engine {
	opts.applyDefaults()

	e := &Engine{
		opts:  opts,
		queue: make(chan queueItem, opts.QueueSize),
		done:  make(chan struct{}),
	}
	e.running.Store(true)
	go e.worker()

	log.Printf("engine: started (queue=%d, hosts=%d, templates=%d)",
		opts.QueueSize, opts.HostCapacity, opts.TemplateCapacity)
	return e
}

// Close stops the worker: the running flag is cleared, a sentinel unblocks
// the dequeue wait, and Close waits a bounded interval. A goroutine cannot
// be force-terminated, so on timeout the worker is abandoned and
// ErrShutdownTimeout returned; this bounds shutdown latency, not cleanup.
func (e *Engine) Close() error {
	if !e.running.CompareAndSwap(true, false) {
		return nil
	}

	select {
	case e.queue <- queueItem{sentinel: true}:
	default:
	}

	select {
	case <-e.done:
		log.Printf("engine: worker stopped")
		return nil
	case <-time.After(e.opts.StopTimeout):
		log.Printf("engine: worker did not stop within %v", e.opts.StopTimeout)
		return ErrShutdownTimeout
	}
}

// Execute runs the action synchronously on the caller's goroutine:
// delay, dispatch, statistics. Independent callers run fully in parallel;
// only the statistics lock is shared, and never across the dispatch.
func (e *Engine) Execute(action models.Action) models.ActionResult {
	action = action.Capped()
	if action.Delay > 0 {
		time.Sleep(action.Delay)
	}
	result := e.dispatch(action)
	e.recordResult(action, result)
	return result
}

// ExecuteSequence runs actions in order on the caller's goroutine. With
// stopOnError set, the first non-success result stops the sequence and an
// error is returned alongside the results gathered so far.
func (e *Engine) ExecuteSequence(actions []models.Action, stopOnError bool) ([]models.ActionResult, error) {
	results := make([]models.ActionResult, 0, len(actions))
	for i, a := range actions {
		result := e.Execute(a)
		results = append(results, result)
		if result.Status != models.StatusSuccess {
			log.Printf("engine: sequence action %d failed: %s", i, result.Output)
			if stopOnError {
				return results, fmt.Errorf("engine: sequence stopped at action %d: %s", i, result.Output)
			}
		}
	}
	return results, nil
}

// Enqueue submits the action for async execution. The push waits at most
// the enqueue timeout on a full queue, then fails with ErrQueueFull.
// The callback, if any, runs on the worker goroutine.
func (e *Engine) Enqueue(action models.Action, cb models.ActionCallback, userData any, priority uint8) error {
	if !e.running.Load() {
		return ErrNotRunning
	}

	item := queueItem{QueueEntry: models.QueueEntry{
		ID:          uuid.NewString(),
		Action:      action.Capped(),
		Callback:    cb,
		UserData:    userData,
		Priority:    priority,
		EnqueueTime: time.Now(),
	}}

	select {
	case e.queue <- item:
	case <-time.After(e.opts.EnqueueTimeout):
		log.Printf("engine: action queue full, rejecting %s action", action.Type)
		return ErrQueueFull
	}

	e.statsMu.Lock()
	if pending := len(e.queue); pending > e.stats.QueueHighWater {
		e.stats.QueueHighWater = pending
	}
	e.statsMu.Unlock()
	return nil
}

// CancelAll drains every entry still sitting in the queue and reports each
// to its callback as Cancelled. An action the worker has already dequeued
// cannot be interrupted. Returns the number of cancelled entries.
func (e *Engine) CancelAll() int {
	n := 0
	sentinels := 0
	for {
		select {
		case item := <-e.queue:
			if item.sentinel {
				// Drained shutdown signals go back so Close is not
				// left waiting on the worker's next poll tick.
				sentinels++
				continue
			}
			if item.Callback != nil {
				item.Callback(item.Action, models.ActionResult{
					Status:    models.StatusCancelled,
					Output:    "cancelled before execution",
					Timestamp: time.Now(),
				}, item.UserData)
			}
			n++
		default:
			for ; sentinels > 0; sentinels-- {
				select {
				case e.queue <- queueItem{sentinel: true}:
				default:
				}
			}
			if n > 0 {
				log.Printf("engine: cancelled %d pending actions", n)
			}
			return n
		}
	}
}

// QueueDepth reports the number of entries waiting in the queue.
func (e *Engine) QueueDepth() int { return len(e.queue) }

// Stats returns a copy of the counters.
func (e *Engine) Stats() models.ActionStats {
	e.statsMu.Lock()
	defer e.statsMu.Unlock()
	return e.stats
}

// ResetStats clears all counters.
func (e *Engine) ResetStats() {
	e.statsMu.Lock()
	defer e.statsMu.Unlock()
	e.stats = models.ActionStats{}
}

// worker is the single queue consumer. The dequeue wait is bounded so the
// running flag is rechecked at least once per poll interval.
func (e *Engine) worker() {
	defer close(e.done)
	log.Printf("engine: worker started")

	for e.running.Load() {
		select {
		case item := <-e.queue:
			if item.sentinel {
				continue
			}
			if !e.running.Load() {
				log.Printf("engine: worker exiting, dropping entry %s", item.ID)
				return
			}
			e.runEntry(item.QueueEntry)
		case <-time.After(e.opts.PollInterval):
		}
	}
	log.Printf("engine: worker exiting")
}

// runEntry applies the entry's delay before dispatch, which intentionally
// serializes later queued actions behind it (the queue is a throttle, not
// a scheduler).
func (e *Engine) runEntry(entry models.QueueEntry) {
	if entry.Action.Delay > 0 {
		time.Sleep(entry.Action.Delay)
	}

	result := e.dispatch(entry.Action)

	if entry.Callback != nil {
		entry.Callback(entry.Action, result, entry.UserData)
	}
	e.recordResult(entry.Action, result)
}

// recordResult folds a result into the statistics and hands it to the
// publisher when one is configured. The stats lock is held only for the
// counter update.
func (e *Engine) recordResult(action models.Action, result models.ActionResult) {
	e.statsMu.Lock()
	e.stats.TotalExecuted++
	switch result.Status {
	case models.StatusSuccess:
		e.stats.TotalSucceeded++
	case models.StatusTimeout:
		e.stats.TotalTimedOut++
	default:
		e.stats.TotalFailed++
	}
	e.statsMu.Unlock()

	if e.opts.Publisher != nil {
		if err := e.opts.Publisher.PublishResult(action, result); err != nil {
			log.Printf("engine: publish result: %v", err)
		}
	}
}
