package rest

import (
	"context"
	"net/http"
	"time"
)

const healthCheckTimeout = 3 * time.Second

// pinger is anything the readiness probe can check: the database pool,
// the SMTP relay.
type pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck names one dependency checked by /ready and /health.
type HealthCheck struct {
	Name     string
	Pinger   pinger
	Optional bool // a failing optional check degrades, not fails, the service
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	checks  []HealthCheck
	version string
	now     func() time.Time
}

// NewHealthHandler creates a HealthHandler. Checks run in the order given.
func NewHealthHandler(version string, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks, version: version, now: time.Now}
}

// HealthResponse is the JSON response for /live, /ready and /health.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.now()})
}

// Ready is the readiness probe: 503 when any required check fails.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status, _ := h.run(r.Context())
	code := http.StatusOK
	if status == "down" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{Status: status, Timestamp: h.now()})
}

// Health reports every component with its latency and the build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, components := h.run(r.Context())
	code := http.StatusOK
	if status == "down" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{
		Status:     status,
		Version:    h.version,
		Components: components,
		Timestamp:  h.now(),
	})
}

// run returns "ok", "degraded" (only optional checks failed) or "down".
func (h *HealthHandler) run(ctx context.Context) (string, map[string]CompStatus) {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	overall := "ok"
	components := make(map[string]CompStatus, len(h.checks))
	for _, c := range h.checks {
		start := time.Now()
		err := c.Pinger.Ping(ctx)
		latency := time.Since(start)

		if err == nil {
			components[c.Name] = CompStatus{Status: "ok", Latency: latency.String()}
			continue
		}
		components[c.Name] = CompStatus{Status: "down", Error: err.Error()}
		switch {
		case !c.Optional:
			overall = "down"
		case overall == "ok":
			overall = "degraded"
		}
	}
	return overall, components
}
