package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/emberline-dev/emberline/internal/models"
)

// AddTemplate registers a new template. Duplicate IDs and a full store
// are rejected; there is no silent overwrite. CreatedAt and the usage
// counters are owned by the store and reset on add.
func (e *Engine) AddTemplate(t models.ActionTemplate) error {
	if t.ID == "" {
		return fmt.Errorf("engine: template id is required")
	}
	t = t.Capped()

	e.tplMu.Lock()
	defer e.tplMu.Unlock()

	for i := range e.templates {
		if e.templates[i].ID == t.ID {
			return fmt.Errorf("%q: %w", t.ID, ErrTemplateExists)
		}
	}
	if len(e.templates) >= e.opts.TemplateCapacity {
		return fmt.Errorf("engine: template store full (%d): %w", e.opts.TemplateCapacity, ErrCapacity)
	}

	t.CreatedAt = time.Now()
	t.LastUsedAt = time.Time{}
	t.UseCount = 0
	e.templates = append(e.templates, t)
	log.Printf("engine: added template %s (%s)", t.ID, t.Name)
	return nil
}

// RemoveTemplate deletes the template by ID, compacting the store.
func (e *Engine) RemoveTemplate(id string) error {
	e.tplMu.Lock()
	defer e.tplMu.Unlock()

	for i := range e.templates {
		if e.templates[i].ID == id {
			e.templates = append(e.templates[:i], e.templates[i+1:]...)
			log.Printf("engine: removed template %s", id)
			return nil
		}
	}
	return fmt.Errorf("%q: %w", id, ErrTemplateNotFound)
}

// Template returns a copy of the template with the given ID.
func (e *Engine) Template(id string) (models.ActionTemplate, error) {
	e.tplMu.Lock()
	defer e.tplMu.Unlock()

	for i := range e.templates {
		if e.templates[i].ID == id {
			return e.templates[i], nil
		}
	}
	return models.ActionTemplate{}, fmt.Errorf("%q: %w", id, ErrTemplateNotFound)
}

// Templates returns a copy of up to limit templates in insertion order;
// limit <= 0 returns all.
func (e *Engine) Templates(limit int) []models.ActionTemplate {
	e.tplMu.Lock()
	defer e.tplMu.Unlock()

	n := len(e.templates)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]models.ActionTemplate, n)
	copy(out, e.templates[:n])
	return out
}

// TemplateCount returns the number of stored templates.
func (e *Engine) TemplateCount() int {
	e.tplMu.Lock()
	defer e.tplMu.Unlock()
	return len(e.templates)
}

// UpdateTemplate replaces the template body while preserving CreatedAt,
// LastUsedAt and UseCount.
func (e *Engine) UpdateTemplate(id string, t models.ActionTemplate) error {
	e.tplMu.Lock()
	defer e.tplMu.Unlock()

	t = t.Capped()
	for i := range e.templates {
		if e.templates[i].ID == id {
			t.ID = id
			t.CreatedAt = e.templates[i].CreatedAt
			t.LastUsedAt = e.templates[i].LastUsedAt
			t.UseCount = e.templates[i].UseCount
			e.templates[i] = t
			log.Printf("engine: updated template %s", id)
			return nil
		}
	}
	return fmt.Errorf("%q: %w", id, ErrTemplateNotFound)
}

// ExecuteTemplate loads the template, rejects it if disabled, executes
// its action synchronously and then updates the usage metadata regardless
// of the dispatch outcome.
func (e *Engine) ExecuteTemplate(id string) (models.ActionResult, error) {
	tpl, err := e.Template(id)
	if err != nil {
		return failure("template not found: " + id), err
	}
	if !tpl.Enabled {
		return failure("template disabled: " + id), fmt.Errorf("%q: %w", id, ErrTemplateDisabled)
	}

	result := e.Execute(tpl.Action)

	e.tplMu.Lock()
	for i := range e.templates {
		if e.templates[i].ID == id {
			e.templates[i].LastUsedAt = time.Now()
			e.templates[i].UseCount++
			break
		}
	}
	e.tplMu.Unlock()

	return result, nil
}

// SeedTemplates bulk-loads persisted templates, keeping their stored
// usage metadata. Used at startup before the engine is published.
func (e *Engine) SeedTemplates(templates []models.ActionTemplate) error {
	e.tplMu.Lock()
	defer e.tplMu.Unlock()

	for _, t := range templates {
		if t.ID == "" {
			continue
		}
		if len(e.templates) >= e.opts.TemplateCapacity {
			return fmt.Errorf("engine: template store full (%d): %w", e.opts.TemplateCapacity, ErrCapacity)
		}
		e.templates = append(e.templates, t.Capped())
	}
	return nil
}
