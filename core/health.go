package core

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthStatus represents the health status of a component
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnknown   HealthStatus = "unknown"
)

// HealthCheck represents a single health check
type HealthCheck struct {
	Name        string                          `json:"name"`
	Status      HealthStatus                    `json:"status"`
	Message     string                          `json:"message,omitempty"`
	LastChecked time.Time                       `json:"last_checked"`
	CheckFunc   func(ctx context.Context) error `json:"-"`
}

// HealthChecker manages health checks for the application
type HealthChecker struct {
	mu     sync.RWMutex
	checks map[string]*HealthCheck
}

// NewHealthChecker creates a new health checker
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checks: make(map[string]*HealthCheck),
	}
}

// RegisterCheck registers a new health check
func (hc *HealthChecker) RegisterCheck(name string, checkFunc func(ctx context.Context) error) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	hc.checks[name] = &HealthCheck{
		Name:      name,
		Status:    HealthStatusUnknown,
		CheckFunc: checkFunc,
	}
}

// RunChecks executes all registered checks and returns the overall status.
func (hc *HealthChecker) RunChecks(ctx context.Context) HealthStatus {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	overall := HealthStatusHealthy
	for _, check := range hc.checks {
		check.LastChecked = time.Now()
		if err := check.CheckFunc(ctx); err != nil {
			check.Status = HealthStatusUnhealthy
			check.Message = err.Error()
			overall = HealthStatusUnhealthy
		} else {
			check.Status = HealthStatusHealthy
			check.Message = ""
		}
	}
	return overall
}

// Checks returns a snapshot of all checks.
func (hc *HealthChecker) Checks() []HealthCheck {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	out := make([]HealthCheck, 0, len(hc.checks))
	for _, check := range hc.checks {
		out = append(out, *check)
	}
	return out
}

// Handler returns a gin handler serving the health status as JSON.
func (hc *HealthChecker) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		overall := hc.RunChecks(ctx)
		code := http.StatusOK
		if overall == HealthStatusUnhealthy {
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status": overall,
			"checks": hc.Checks(),
		})
	}
}

// RegisterDefaultHealthChecks wires the standard checks for the content
// directory and the category catalog.
func RegisterDefaultHealthChecks(appCtx *Context) {
	appCtx.Health.RegisterCheck("content-dir", func(ctx context.Context) error {
		info, err := os.Stat(appCtx.Config.ContentDir())
		if err != nil {
			return fmt.Errorf("content directory unavailable: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("content path is not a directory")
		}
		if len(appCtx.Repository.ListAllIDs()) == 0 {
			return fmt.Errorf("%w: %s", ErrContentDirEmpty, appCtx.Config.ContentDir())
		}
		return nil
	})

	appCtx.Health.RegisterCheck("catalog", func(ctx context.Context) error {
		if appCtx.Catalog.Len() == 0 {
			return ErrCatalogMissing
		}
		return nil
	})
}
