package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/emberline-dev/emberline/internal/models"
)

func testTemplate(id string) models.ActionTemplate {
	return models.ActionTemplate{
		ID:      id,
		Name:    "night mode",
		Action:  logAction("night mode engaged"),
		Enabled: true,
	}
}

func TestAddTemplate(t *testing.T) {
	e := newTestEngine(t, Options{})

	tpl := testTemplate("tpl-1")
	tpl.UseCount = 99 // store owns the counters
	assert.NoError(t, e.AddTemplate(tpl))
	assert.Equal(t, 1, e.TemplateCount())

	got, err := e.Template("tpl-1")
	assert.NoError(t, err)
	assert.Equal(t, uint32(0), got.UseCount)
	assert.False(t, got.CreatedAt.IsZero())
	assert.True(t, got.LastUsedAt.IsZero())
}

func TestAddTemplate_DuplicateRejected(t *testing.T) {
	e := newTestEngine(t, Options{})

	assert.NoError(t, e.AddTemplate(testTemplate("tpl-1")))
	err := e.AddTemplate(testTemplate("tpl-1"))
	assert.ErrorIs(t, err, ErrTemplateExists)
	assert.Equal(t, 1, e.TemplateCount())
}

func TestAddTemplate_CapacityBound(t *testing.T) {
	e := newTestEngine(t, Options{TemplateCapacity: 2})

	assert.NoError(t, e.AddTemplate(testTemplate("a")))
	assert.NoError(t, e.AddTemplate(testTemplate("b")))
	err := e.AddTemplate(testTemplate("c"))
	assert.ErrorIs(t, err, ErrCapacity)
}

func TestRemoveTemplate(t *testing.T) {
	e := newTestEngine(t, Options{})
	assert.NoError(t, e.AddTemplate(testTemplate("tpl-1")))

	assert.NoError(t, e.RemoveTemplate("tpl-1"))
	assert.Equal(t, 0, e.TemplateCount())

	err := e.RemoveTemplate("tpl-1")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestTemplates_Limit(t *testing.T) {
	e := newTestEngine(t, Options{})
	for i := 0; i < 5; i++ {
		assert.NoError(t, e.AddTemplate(testTemplate(fmt.Sprintf("tpl-%d", i))))
	}

	assert.Len(t, e.Templates(0), 5)
	assert.Len(t, e.Templates(-1), 5)
	assert.Len(t, e.Templates(3), 3)
	assert.Len(t, e.Templates(10), 5)
	assert.Equal(t, "tpl-0", e.Templates(3)[0].ID)
}

func TestUpdateTemplate_PreservesMetadata(t *testing.T) {
	e := newTestEngine(t, Options{})
	assert.NoError(t, e.AddTemplate(testTemplate("tpl-1")))

	_, err := e.ExecuteTemplate("tpl-1")
	assert.NoError(t, err)

	before, _ := e.Template("tpl-1")
	assert.Equal(t, uint32(1), before.UseCount)

	updated := testTemplate("ignored-id")
	updated.Name = "day mode"
	assert.NoError(t, e.UpdateTemplate("tpl-1", updated))

	after, err := e.Template("tpl-1")
	assert.NoError(t, err)
	assert.Equal(t, "tpl-1", after.ID)
	assert.Equal(t, "day mode", after.Name)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	assert.Equal(t, before.LastUsedAt, after.LastUsedAt)
	assert.Equal(t, uint32(1), after.UseCount)
}

func TestUpdateTemplate_NotFound(t *testing.T) {
	e := newTestEngine(t, Options{})

	err := e.UpdateTemplate("ghost", testTemplate("ghost"))
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestExecuteTemplate(t *testing.T) {
	e := newTestEngine(t, Options{})
	assert.NoError(t, e.AddTemplate(testTemplate("tpl-1")))

	result, err := e.ExecuteTemplate("tpl-1")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusSuccess, result.Status)

	got, _ := e.Template("tpl-1")
	assert.Equal(t, uint32(1), got.UseCount)
	assert.False(t, got.LastUsedAt.IsZero())
}

func TestExecuteTemplate_NotFound(t *testing.T) {
	e := newTestEngine(t, Options{})

	result, err := e.ExecuteTemplate("ghost")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	assert.Equal(t, models.StatusFailed, result.Status)
}

func TestExecuteTemplate_Disabled(t *testing.T) {
	e := newTestEngine(t, Options{})

	tpl := testTemplate("tpl-1")
	tpl.Enabled = false
	assert.NoError(t, e.AddTemplate(tpl))

	result, err := e.ExecuteTemplate("tpl-1")
	assert.ErrorIs(t, err, ErrTemplateDisabled)
	assert.Equal(t, models.StatusFailed, result.Status)

	// A rejected run does not count as a use
	got, _ := e.Template("tpl-1")
	assert.Equal(t, uint32(0), got.UseCount)
}

func TestExecuteTemplate_UsageBumpedOnFailure(t *testing.T) {
	e := newTestEngine(t, Options{})

	tpl := testTemplate("tpl-1")
	tpl.Action = models.Action{Type: models.ActionWebhook}
	assert.NoError(t, e.AddTemplate(tpl))

	result, err := e.ExecuteTemplate("tpl-1")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusFailed, result.Status)

	got, _ := e.Template("tpl-1")
	assert.Equal(t, uint32(1), got.UseCount)
}

func TestSeedTemplates_KeepsStoredMetadata(t *testing.T) {
	e := newTestEngine(t, Options{})

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	seeded := []models.ActionTemplate{
		{ID: "tpl-1", Name: "restored", Action: logAction("hi"), Enabled: true, CreatedAt: created, UseCount: 7},
		{ID: "", Name: "skipped"},
	}
	assert.NoError(t, e.SeedTemplates(seeded))
	assert.Equal(t, 1, e.TemplateCount())

	got, err := e.Template("tpl-1")
	assert.NoError(t, err)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, uint32(7), got.UseCount)
}
