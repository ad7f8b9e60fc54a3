package health

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/emberline-dev/emberline/internal/models"
)

var startTime time.Time

func init() {
	startTime = time.Now()
}

type HealthResponse struct {
	Status        string `json:"status"`
	Service       string `json:"service"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Timestamp     int64  `json:"timestamp"`
}

// StartHealthCheckServer serves /health plus /stats with the engine's
// current counters. statsFn is called per request.
func StartHealthCheckServer(port string, statsFn func() models.ActionStats) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(statsFn())
	})

	log.Printf("Health check listening on: %s", port)

	go func() {
		if err := http.ListenAndServe(":"+port, mux); err != nil {
			log.Fatalf("Health server failed: %v", err)
		}
	}()
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response := &HealthResponse{
		Status:        "healthy",
		Service:       "emberlined",
		UptimeSeconds: int64(time.Since(startTime).Seconds()),
		Timestamp:     time.Now().Unix(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
