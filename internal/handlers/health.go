// internal/handlers/health.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sort"
	"time"
)

// ErrUnhealthy is returned when at least one dependency check failed
var ErrUnhealthy = errors.New("one or more dependencies are unhealthy")

// HealthCheck probes one dependency and may return details about it
type HealthCheck func(ctx context.Context) (map[string]interface{}, error)

// HealthStatus represents the health status of the application
type HealthStatus struct {
	Status      string                 `json:"status"`
	Version     string                 `json:"version"`
	Environment string                 `json:"environment"`
	Timestamp   time.Time              `json:"timestamp"`
	Services    map[string]ServiceInfo `json:"services"`
	System      SystemInfo             `json:"system"`
}

// ServiceInfo represents the status of a service dependency
type ServiceInfo struct {
	Status       string                 `json:"status"`
	Message      string                 `json:"message,omitempty"`
	ResponseTime string                 `json:"response_time,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// SystemInfo represents system-level information
type SystemInfo struct {
	GoVersion     string `json:"go_version"`
	NumCPU        int    `json:"num_cpu"`
	MemoryAllocMB uint64 `json:"memory_alloc_mb"`
}

// HealthHandler reports on the session store and other dependencies
type HealthHandler struct {
	checks      map[string]HealthCheck
	version     string
	environment string
	timeout     time.Duration
	logger      *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version, environment string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		checks:      make(map[string]HealthCheck),
		version:     version,
		environment: environment,
		timeout:     5 * time.Second,
		logger:      logger.With(slog.String("handler", "health")),
	}
}

// AddCheck registers a named dependency check
func (h *HealthHandler) AddCheck(name string, check HealthCheck) {
	h.checks[name] = check
}

// Health runs every check and writes the report as JSON to w
func (h *HealthHandler) Health(ctx context.Context, w io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	health := HealthStatus{
		Status:      "healthy",
		Version:     h.version,
		Environment: h.environment,
		Timestamp:   time.Now(),
		Services:    make(map[string]ServiceInfo, len(h.checks)),
		System:      systemInfo(),
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		info := h.run(ctx, name, h.checks[name])
		health.Services[name] = info
		if info.Status != "healthy" {
			health.Status = "degraded"
		}
	}

	data, err := json.MarshalIndent(health, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode health report: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("failed to write health report: %w", err)
	}

	if health.Status != "healthy" {
		return ErrUnhealthy
	}
	return nil
}

func (h *HealthHandler) run(ctx context.Context, name string, check HealthCheck) ServiceInfo {
	start := time.Now()

	details, err := check(ctx)
	info := ServiceInfo{
		Status:       "healthy",
		ResponseTime: time.Since(start).String(),
		Details:      details,
	}

	if err != nil {
		info.Status = "unhealthy"
		info.Message = err.Error()
		h.logger.ErrorContext(ctx, "health check failed",
			slog.String("service", name),
			slog.String("error", err.Error()))
	}

	return info
}

func systemInfo() SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return SystemInfo{
		GoVersion:     runtime.Version(),
		NumCPU:        runtime.NumCPU(),
		MemoryAllocMB: m.Alloc / 1024 / 1024,
	}
}
