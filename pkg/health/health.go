// Package health provides liveness and readiness probe endpoints.
//
// All registered checks run from a single background goroutine at a fixed
// interval; endpoint handlers only read the cached results. A check is
// unhealthy as soon as it fails once and healthy again as soon as it passes.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// CheckFunc probes one component. A nil return means healthy.
type CheckFunc func(ctx context.Context) error

type check struct {
	name    string
	timeout time.Duration
	fn      CheckFunc

	// lastErr is written by the probe goroutine and read by endpoint
	// handlers.
	lastErr atomic.Pointer[error]
}

func (c *check) run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	err := c.fn(ctx)
	c.lastErr.Store(&err)
}

func (c *check) failure() string {
	p := c.lastErr.Load()
	if p == nil || *p == nil {
		return ""
	}
	return (*p).Error()
}

// Health manages the service's probe state. Register checks before calling
// Start; the service reports not-ready until SetReady(true).
type Health struct {
	ready atomic.Bool

	mu        sync.Mutex
	liveness  []*check
	readiness []*check
	cancel    context.CancelFunc
}

// New creates a Health in the not-ready state.
func New() *Health {
	return &Health{}
}

// AddLivenessCheck registers a check deciding whether the process is alive
// at all, such as a goroutine-leak probe.
func (h *Health) AddLivenessCheck(name string, timeout time.Duration, fn CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.liveness = append(h.liveness, &check{name: name, timeout: timeout, fn: fn})
}

// AddReadinessCheck registers a check deciding whether the service can take
// traffic, such as a loaded-catalog probe.
func (h *Health) AddReadinessCheck(name string, timeout time.Duration, fn CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.readiness = append(h.readiness, &check{name: name, timeout: timeout, fn: fn})
}

// Start runs every registered check once immediately, then again each
// interval, until Stop is called or ctx is cancelled.
func (h *Health) Start(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)

	h.mu.Lock()
	h.cancel = cancel
	checks := append(append([]*check(nil), h.liveness...), h.readiness...)
	h.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			for _, c := range checks {
				c.run(ctx)
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop halts the probe goroutine. Safe to call more than once.
func (h *Health) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}

// SetReady flips the manual readiness gate. Typically set true after
// startup and false at the beginning of a graceful drain.
func (h *Health) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady reports whether the manual gate is open and every readiness
// check passed on its last run.
func (h *Health) IsReady() bool {
	if !h.ready.Load() {
		return false
	}
	h.mu.Lock()
	checks := h.readiness
	h.mu.Unlock()
	for _, c := range checks {
		if c.failure() != "" {
			return false
		}
	}
	return true
}

type statusResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// LiveEndpoint serves /livez: 200 when every liveness check passed on its
// last run, 503 with per-check failures otherwise.
func (h *Health) LiveEndpoint(w http.ResponseWriter, _ *http.Request) {
	h.mu.Lock()
	checks := h.liveness
	h.mu.Unlock()
	writeStatus(w, failures(checks))
}

// ReadyEndpoint serves /readyz: 200 when the service is marked ready and
// every readiness check passed, 503 with details otherwise.
func (h *Health) ReadyEndpoint(w http.ResponseWriter, _ *http.Request) {
	h.mu.Lock()
	checks := h.readiness
	h.mu.Unlock()

	fails := failures(checks)
	if !h.ready.Load() {
		fails["_readiness"] = "service is not ready"
	}
	writeStatus(w, fails)
}

func failures(checks []*check) map[string]string {
	fails := make(map[string]string)
	for _, c := range checks {
		if msg := c.failure(); msg != "" {
			fails[c.name] = msg
		}
	}
	return fails
}

func writeStatus(w http.ResponseWriter, fails map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	resp := statusResponse{Status: "ok"}
	code := http.StatusOK
	if len(fails) > 0 {
		resp = statusResponse{Status: "unhealthy", Checks: fails}
		code = http.StatusServiceUnavailable
	}
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
