package models

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/emberline-dev/emberline/internal/vars"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 32))
	assert.Equal(t, "exact", Truncate("exact", 5))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
	assert.Equal(t, "", Truncate("abc", 0))
}

func TestTruncate_KeepsRunesWhole(t *testing.T) {
	// "héllo" is 6 bytes; cutting at 2 would split the é
	out := Truncate("héllo", 2)
	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, "h", out)

	long := strings.Repeat("日", 100) // 300 bytes
	out = Truncate(long, MaxOutputLen)
	assert.True(t, utf8.ValidString(out))
	assert.LessOrEqual(t, len(out), MaxOutputLen)
	assert.Equal(t, 0, len(out)%3)
}

func TestActionCapped(t *testing.T) {
	long := strings.Repeat("x", 500)

	a := Action{
		Type: ActionSSHCommand,
		LED:  LEDAction{Device: long, Effect: long},
		SSH:  SSHCommandAction{HostRef: long, Command: long},
		Webhook: WebhookAction{
			URL:    long,
			Method: long,
			Body:   long,
		},
		Log:    LogAction{Message: long},
		SetVar: SetVariableAction{Variable: long, Value: vars.NewString(long)},
		Device: DeviceControlAction{Device: long, Verb: long},
	}.Capped()

	assert.Len(t, a.LED.Device, MaxNameLen)
	assert.Len(t, a.LED.Effect, MaxNameLen)
	assert.Len(t, a.SSH.HostRef, MaxNameLen)
	assert.Len(t, a.SSH.Command, MaxPathLen)
	assert.Len(t, a.Webhook.URL, MaxPathLen)
	assert.Len(t, a.Webhook.Method, MaxNameLen)
	assert.Len(t, a.Webhook.Body, MaxOutputLen)
	assert.Len(t, a.Log.Message, MaxExprLen)
	assert.Len(t, a.SetVar.Variable, MaxNameLen)
	assert.Len(t, a.SetVar.Value.Str, MaxExprLen)
	assert.Len(t, a.Device.Device, MaxNameLen)
	assert.Len(t, a.Device.Verb, MaxNameLen)

	// Non-string values pass through untouched
	b := Action{SetVar: SetVariableAction{Value: vars.NewInt(9)}}.Capped()
	assert.Equal(t, vars.NewInt(9), b.SetVar.Value)
}

func TestSSHHostCapped(t *testing.T) {
	long := strings.Repeat("y", 500)

	h := SSHHost{ID: long, Host: long, Username: long, Password: long, KeyPath: long}.Capped()

	assert.Len(t, h.ID, MaxNameLen)
	assert.Len(t, h.Host, MaxLabelLen)
	assert.Len(t, h.Username, MaxNameLen)
	assert.Len(t, h.Password, MaxLabelLen)
	assert.Len(t, h.KeyPath, MaxPathLen)
}

func TestActionTemplateCapped(t *testing.T) {
	long := strings.Repeat("z", 500)

	tpl := ActionTemplate{
		ID:          long,
		Name:        long,
		Description: long,
		Action:      Action{SSH: SSHCommandAction{Command: long}},
	}.Capped()

	assert.Len(t, tpl.ID, MaxNameLen)
	assert.Len(t, tpl.Name, MaxLabelLen)
	assert.Len(t, tpl.Description, MaxPathLen)
	assert.Len(t, tpl.Action.SSH.Command, MaxPathLen)
}
