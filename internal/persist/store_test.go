package persist

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/emberline-dev/emberline/internal/models"
	"github.com/emberline-dev/emberline/internal/vars"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenAt(filepath.Join(t.TempDir(), "state", "emberline.db"))
	assert.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_EmptyDatabase(t *testing.T) {
	s := openTestStore(t)

	hosts, err := s.LoadHosts()
	assert.NoError(t, err)
	assert.Empty(t, hosts)

	templates, err := s.LoadTemplates()
	assert.NoError(t, err)
	assert.Empty(t, templates)
}

func TestStore_HostsRoundtrip(t *testing.T) {
	s := openTestStore(t)

	in := []models.SSHHost{
		{ID: "nas", Host: "192.168.1.50", Port: 22, Username: "admin", Password: "hunter2"},
		{ID: "relay", Host: "10.0.0.2", Port: 2222, Username: "ops", KeyPath: "/etc/keys/relay", UseKeyAuth: true},
	}
	assert.NoError(t, s.SaveHosts(in))

	out, err := s.LoadHosts()
	assert.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestStore_SaveHostsReplaces(t *testing.T) {
	s := openTestStore(t)

	assert.NoError(t, s.SaveHosts([]models.SSHHost{
		{ID: "old", Host: "h", Port: 22, Username: "u"},
	}))
	assert.NoError(t, s.SaveHosts([]models.SSHHost{
		{ID: "new", Host: "h", Port: 22, Username: "u"},
	}))

	out, err := s.LoadHosts()
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "new", out[0].ID)
}

func TestStore_TemplatesRoundtrip(t *testing.T) {
	s := openTestStore(t)

	created := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	lastUsed := created.Add(48 * time.Hour)

	in := []models.ActionTemplate{
		{
			ID:          "tpl-led",
			Name:        "alert lights",
			Description: "matrix goes red",
			Action: models.Action{
				Type: models.ActionLED,
				LED:  models.LEDAction{Device: "matrix", R: 255, Index: models.PixelAll},
			},
			Enabled:    true,
			CreatedAt:  created,
			LastUsedAt: lastUsed,
			UseCount:   12,
		},
		{
			ID:   "tpl-var",
			Name: "arm system",
			Action: models.Action{
				Type:   models.ActionSetVariable,
				SetVar: models.SetVariableAction{Variable: "armed", Value: vars.NewBool(true)},
			},
			Enabled:   true,
			Async:     true,
			CreatedAt: created,
		},
	}
	assert.NoError(t, s.SaveTemplates(in))

	out, err := s.LoadTemplates()
	assert.NoError(t, err)
	assert.Len(t, out, 2)

	byID := map[string]models.ActionTemplate{}
	for _, tpl := range out {
		byID[tpl.ID] = tpl
	}

	ledTpl := byID["tpl-led"]
	assert.Equal(t, "alert lights", ledTpl.Name)
	assert.Equal(t, models.ActionLED, ledTpl.Action.Type)
	assert.Equal(t, uint8(255), ledTpl.Action.LED.R)
	assert.Equal(t, uint32(12), ledTpl.UseCount)
	assert.True(t, ledTpl.CreatedAt.Equal(created))
	assert.True(t, ledTpl.LastUsedAt.Equal(lastUsed))

	varTpl := byID["tpl-var"]
	assert.True(t, varTpl.Async)
	assert.True(t, varTpl.LastUsedAt.IsZero())
	assert.Equal(t, vars.NewBool(true), varTpl.Action.SetVar.Value)
}

func TestStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emberline.db")

	s, err := OpenAt(path)
	assert.NoError(t, err)
	assert.NoError(t, s.SaveHosts([]models.SSHHost{
		{ID: "nas", Host: "h", Port: 22, Username: "u"},
	}))
	assert.NoError(t, s.Close())

	s2, err := OpenAt(path)
	assert.NoError(t, err)
	defer s2.Close()

	hosts, err := s2.LoadHosts()
	assert.NoError(t, err)
	assert.Len(t, hosts, 1)
	assert.Equal(t, "nas", hosts[0].ID)
}
