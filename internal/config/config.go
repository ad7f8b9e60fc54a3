package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the automation daemon.
type Config struct {
	// Service addresses
	HealthPort string
	NatsURL    string

	// Feature flags
	EnableEventBus bool

	// Storage
	DBPath   string
	SeedPath string

	// Engine settings
	QueueSize         int
	EnqueueTimeoutMS  int
	SSHTimeoutSeconds int
	HostCapacity      int
	TemplateCapacity  int
}

// Load reads configuration from environment variables and .env file.
func Load() (*Config, error) {
	// Try multiple .env locations
	envPaths := []string{
		".env",
		"../.env",
		"/etc/emberline/.env",
	}

	envLoaded := false
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Printf("Loaded config from: %s", path)
			envLoaded = true
			break
		}
	}

	if !envLoaded {
		log.Printf("No .env file found, using environment variables")
	}

	config := &Config{
		HealthPort: getEnvOrDefault("HEALTH_PORT", "8082"),
		NatsURL:    getEnvOrDefault("NATS_URL", "nats://localhost:4222"),

		EnableEventBus: getEnvOrDefault("ENABLE_EVENT_BUS", "false") == "true",

		DBPath:   getEnvOrDefault("DB_PATH", "emberline.db"),
		SeedPath: getEnvOrDefault("SEED_PATH", ""),

		QueueSize:         parseIntOrDefault("ACTION_QUEUE_SIZE", 16),
		EnqueueTimeoutMS:  parseIntOrDefault("ENQUEUE_TIMEOUT_MS", 100),
		SSHTimeoutSeconds: parseIntOrDefault("SSH_TIMEOUT_SECONDS", 30),
		HostCapacity:      parseIntOrDefault("HOST_CAPACITY", 8),
		TemplateCapacity:  parseIntOrDefault("TEMPLATE_CAPACITY", 32),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.HealthPort == "" {
		return fmt.Errorf("HEALTH_PORT is required")
	}

	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH is required")
	}

	if c.EnableEventBus && c.NatsURL == "" {
		return fmt.Errorf("NATS_URL is required when the event bus is enabled")
	}

	if c.QueueSize < 1 {
		return fmt.Errorf("ACTION_QUEUE_SIZE must be at least 1")
	}

	if c.EnqueueTimeoutMS < 1 {
		return fmt.Errorf("ENQUEUE_TIMEOUT_MS must be at least 1")
	}

	if c.SSHTimeoutSeconds < 1 {
		return fmt.Errorf("SSH_TIMEOUT_SECONDS must be at least 1")
	}

	return nil
}

// Helper functions
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
