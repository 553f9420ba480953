package health

import (
	"context"
	"sync"
	"time"
)

// Status represents the outcome of a health probe
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// CheckFunc probes a single dependency
type CheckFunc func(ctx context.Context) error

// CheckResult is the recorded outcome of one check
type CheckResult struct {
	Status  Status `json:"status"`
	Error   string `json:"error,omitempty"`
	Latency string `json:"latency"`
}

// HealthResponse is the wire format for health endpoints
type HealthResponse struct {
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Uptime    string                 `json:"uptime,omitempty"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

type namedCheck struct {
	name     string
	check    CheckFunc
	critical bool
}

// HealthChecker runs a set of dependency probes. Critical check failures
// mark the service unhealthy, non-critical ones degrade it.
type HealthChecker struct {
	mu      sync.RWMutex
	checks  []namedCheck
	timeout time.Duration
}

// NewHealthChecker creates a checker with a per-check timeout
func NewHealthChecker(timeout time.Duration) *HealthChecker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HealthChecker{timeout: timeout}
}

// AddCheck registers a probe
func (h *HealthChecker) AddCheck(name string, critical bool, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks = append(h.checks, namedCheck{name: name, check: check, critical: critical})
}

// Check runs all registered probes and aggregates their statuses
func (h *HealthChecker) Check(ctx context.Context) (Status, map[string]CheckResult) {
	h.mu.RLock()
	checks := make([]namedCheck, len(h.checks))
	copy(checks, h.checks)
	h.mu.RUnlock()

	overall := StatusHealthy
	results := make(map[string]CheckResult, len(checks))

	for _, nc := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, h.timeout)
		start := time.Now()
		err := nc.check(checkCtx)
		latency := time.Since(start)
		cancel()

		result := CheckResult{Status: StatusHealthy, Latency: latency.String()}
		if err != nil {
			result.Error = err.Error()
			if nc.critical {
				result.Status = StatusUnhealthy
				overall = StatusUnhealthy
			} else {
				result.Status = StatusDegraded
				if overall == StatusHealthy {
					overall = StatusDegraded
				}
			}
		}
		results[nc.name] = result
	}

	return overall, results
}
