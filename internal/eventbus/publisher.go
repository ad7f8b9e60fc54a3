// Package eventbus publishes action outcomes to NATS so dashboards and
// the rule engine can observe executions without polling the engine.
package eventbus

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/emberline-dev/emberline/internal/models"
)

// SubjectActionStatus carries one ActionStatusEvent per completed action.
const SubjectActionStatus = "automation.actions.status"

// ActionStatusEvent is the wire form of a completed action.
type ActionStatusEvent struct {
	ActionType string `json:"action_type"`
	Status     string `json:"status"`
	ExitCode   int    `json:"exit_code"`
	Output     string `json:"output"`
	DurationMS int64  `json:"duration_ms"`
	Timestamp  int64  `json:"timestamp"`
}

type Publisher struct {
	conn *nats.Conn
}

func NewPublisher(natsURL string) (*Publisher, error) {
	conn, err := nats.Connect(natsURL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2*time.Second))

	if err != nil {
		return nil, err
	}

	log.Printf("Action publisher connected to NATS: %s", natsURL)

	return &Publisher{
		conn: conn,
	}, nil
}

// PublishResult implements engine.ResultPublisher.
func (p *Publisher) PublishResult(action models.Action, result models.ActionResult) error {
	event := buildEvent(action, result)

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal action status: %w", err)
	}

	if err := p.conn.Publish(SubjectActionStatus, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", SubjectActionStatus, err)
	}

	return nil
}

func buildEvent(action models.Action, result models.ActionResult) ActionStatusEvent {
	return ActionStatusEvent{
		ActionType: action.Type.String(),
		Status:     result.Status.String(),
		ExitCode:   result.ExitCode,
		Output:     result.Output,
		DurationMS: result.Duration.Milliseconds(),
		Timestamp:  result.Timestamp.Unix(),
	}
}

func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
		log.Printf("Action publisher disconnected from NATS")
	}
}

func (p *Publisher) IsConnected() bool {
	return p.conn != nil && p.conn.IsConnected()
}
