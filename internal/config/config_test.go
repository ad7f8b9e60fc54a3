package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "8082", cfg.HealthPort)
	assert.Equal(t, "nats://localhost:4222", cfg.NatsURL)
	assert.False(t, cfg.EnableEventBus)
	assert.Equal(t, 16, cfg.QueueSize)
	assert.Equal(t, 100, cfg.EnqueueTimeoutMS)
	assert.Equal(t, 30, cfg.SSHTimeoutSeconds)
	assert.Equal(t, 8, cfg.HostCapacity)
	assert.Equal(t, 32, cfg.TemplateCapacity)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HEALTH_PORT", "9090")
	t.Setenv("ACTION_QUEUE_SIZE", "64")
	t.Setenv("ENABLE_EVENT_BUS", "true")
	t.Setenv("NATS_URL", "nats://broker:4222")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "9090", cfg.HealthPort)
	assert.Equal(t, 64, cfg.QueueSize)
	assert.True(t, cfg.EnableEventBus)
	assert.Equal(t, "nats://broker:4222", cfg.NatsURL)
}

func TestLoad_IgnoresUnparsableInts(t *testing.T) {
	t.Setenv("ACTION_QUEUE_SIZE", "lots")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 16, cfg.QueueSize)
}

func TestValidate(t *testing.T) {
	valid := &Config{
		HealthPort:        "8082",
		DBPath:            "x.db",
		QueueSize:         16,
		EnqueueTimeoutMS:  100,
		SSHTimeoutSeconds: 30,
	}
	assert.NoError(t, valid.Validate())

	noDB := *valid
	noDB.DBPath = ""
	assert.Error(t, noDB.Validate())

	busNoURL := *valid
	busNoURL.EnableEventBus = true
	assert.Error(t, busNoURL.Validate())

	badQueue := *valid
	badQueue.QueueSize = 0
	assert.Error(t, badQueue.Validate())
}
