package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/emberline-dev/emberline/internal/config"
	"github.com/emberline-dev/emberline/internal/devicectl"
	"github.com/emberline-dev/emberline/internal/engine"
	"github.com/emberline-dev/emberline/internal/eventbus"
	"github.com/emberline-dev/emberline/internal/gpio"
	"github.com/emberline-dev/emberline/internal/health"
	"github.com/emberline-dev/emberline/internal/led"
	"github.com/emberline-dev/emberline/internal/logsink"
	"github.com/emberline-dev/emberline/internal/models"
	"github.com/emberline-dev/emberline/internal/persist"
	"github.com/emberline-dev/emberline/internal/vars"
)

// main is the entry point for the automation daemon.
//
// Lifecycle:
//  1. Load configuration from environment variables
//  2. Open the persistence store and restore hosts and templates
//  3. Seed hosts and templates from the YAML file on first start
//  4. Connect the NATS result publisher (optional)
//  5. Start the engine and the health check server
//  6. Listen for shutdown signals (SIGINT, SIGTERM)
//  7. Persist state and stop the engine on shutdown
func main() {
	log.Printf("Emberline automation daemon starting...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Configuration loaded successfully")
	log.Printf("  Health Port: %s", cfg.HealthPort)
	log.Printf("  DB Path: %s", cfg.DBPath)
	log.Printf("  Event Bus Enabled: %v", cfg.EnableEventBus)
	log.Printf("  Queue Size: %d", cfg.QueueSize)

	zl, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	store, err := persist.OpenAt(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open persistence store: %v", err)
	}
	defer store.Close()

	hosts, err := store.LoadHosts()
	if err != nil {
		log.Fatalf("Failed to load hosts: %v", err)
	}
	templates, err := store.LoadTemplates()
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	// First start with a seed file: take hosts and templates from it.
	if len(hosts) == 0 && len(templates) == 0 && cfg.SeedPath != "" {
		seed, err := config.LoadSeed(cfg.SeedPath)
		if err != nil {
			log.Fatalf("Failed to load seed file: %v", err)
		}
		hosts = seed.HostList()
		templates, err = seed.TemplateList()
		if err != nil {
			log.Fatalf("Failed to convert seed templates: %v", err)
		}
		log.Printf("Seeded %d hosts and %d templates from %s", len(hosts), len(templates), cfg.SeedPath)
	}

	var publisher *eventbus.Publisher
	if cfg.EnableEventBus {
		publisher, err = eventbus.NewPublisher(cfg.NatsURL)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer publisher.Close()
	}

	opts := engine.Options{
		Vars:    vars.NewMemoryStore(),
		GPIO:    gpio.NewMemDriver(),
		LEDs:    led.NewDefaultRegistry(),
		Devices: devicectl.NewMemController(),
		LogSink: logsink.NewZapSink(zl),

		QueueSize:        cfg.QueueSize,
		EnqueueTimeout:   durationMS(cfg.EnqueueTimeoutMS),
		SSHTimeout:       durationS(cfg.SSHTimeoutSeconds),
		HostCapacity:     cfg.HostCapacity,
		TemplateCapacity: cfg.TemplateCapacity,
	}
	if publisher != nil {
		opts.Publisher = publisher
	}

	eng := engine.New(opts)

	for _, h := range hosts {
		if err := eng.RegisterHost(h); err != nil {
			log.Printf("Skipping host %s: %v", h.ID, err)
		}
	}
	if err := eng.SeedTemplates(templates); err != nil {
		log.Printf("Template restore incomplete: %v", err)
	}

	health.StartHealthCheckServer(cfg.HealthPort, eng.Stats)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Printf("Shutdown signal received, initiating graceful shutdown...")

	if n := eng.CancelAll(); n > 0 {
		log.Printf("Cancelled %d queued actions", n)
	}

	if err := store.SaveHosts(rawHosts(eng)); err != nil {
		log.Printf("Failed to persist hosts: %v", err)
	}
	if err := store.SaveTemplates(eng.Templates(0)); err != nil {
		log.Printf("Failed to persist templates: %v", err)
	}

	if err := eng.Close(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Printf("Emberline stopped successfully")
}

func durationMS(ms int) time.Duration { return time.Duration(ms) * time.Millisecond }
func durationS(s int) time.Duration   { return time.Duration(s) * time.Second }

// rawHosts collects unredacted hosts so credentials survive the restart.
func rawHosts(eng *engine.Engine) []models.SSHHost {
	redacted := eng.Hosts()
	out := make([]models.SSHHost, 0, len(redacted))
	for _, h := range redacted {
		full, err := eng.Host(h.ID)
		if err != nil {
			continue
		}
		out = append(out, full)
	}
	return out
}
