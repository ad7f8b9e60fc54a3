package models

import "time"

// ActionTemplate is a named, reusable action configuration with usage
// metadata. CreatedAt, LastUsedAt and UseCount are owned by the template
// store and survive updates of the action payload.
type ActionTemplate struct {
	ID          string
	Name        string
	Description string
	Action      Action
	Enabled     bool
	Async       bool
	CreatedAt   time.Time
	LastUsedAt  time.Time
	UseCount    uint32
}

// Capped returns a copy with every string field, including the embedded
// action's, bounded to its cap.
func (t ActionTemplate) Capped() ActionTemplate {
	t.ID = Truncate(t.ID, MaxNameLen)
	t.Name = Truncate(t.Name, MaxLabelLen)
	t.Description = Truncate(t.Description, MaxPathLen)
	t.Action = t.Action.Capped()
	return t
}
