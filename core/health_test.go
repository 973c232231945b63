package core

import (
	"context"
	"errors"
	"testing"
)

func newHealthContext(t *testing.T, siteDir string) *Context {
	t.Helper()

	ctx := &Context{Logger: NewLogger(LogLevelError)}
	ctx.Config = NewDefaultConfig()
	ctx.Config.SiteDirectory = siteDir
	if err := InitializeContext(ctx); err != nil {
		t.Fatalf("InitializeContext() error = %v", err)
	}
	return ctx
}

func healthCheckByName(t *testing.T, hc *HealthChecker, name string) HealthCheck {
	t.Helper()

	for _, check := range hc.Checks() {
		if check.Name == name {
			return check
		}
	}
	t.Fatalf("Check %s not registered", name)
	return HealthCheck{}
}

func TestHealthChecksHealthySite(t *testing.T) {
	siteDir := NewTestSiteBuilder(t).
		WithStructure(`{"categories": [{"slug": "eng", "title": "Engineering"}]}`).
		WithContent("a", testContentFile("A", "eng", "d")).
		Build(t)
	appCtx := newHealthContext(t, siteDir)

	if overall := appCtx.Health.RunChecks(context.Background()); overall != HealthStatusHealthy {
		t.Errorf("RunChecks() = %s, want healthy", overall)
	}
	for _, check := range appCtx.Health.Checks() {
		if check.Status != HealthStatusHealthy {
			t.Errorf("Check %s: %s (%s)", check.Name, check.Status, check.Message)
		}
	}
}

func TestHealthCheckEmptyContentDir(t *testing.T) {
	siteDir := NewTestSiteBuilder(t).
		WithStructure(`{"categories": [{"slug": "eng", "title": "Engineering"}]}`).
		Build(t)
	appCtx := newHealthContext(t, siteDir)

	if overall := appCtx.Health.RunChecks(context.Background()); overall != HealthStatusUnhealthy {
		t.Errorf("RunChecks() = %s, want unhealthy for a site without content files", overall)
	}

	check := healthCheckByName(t, appCtx.Health, "content-dir")
	if !errors.Is(check.CheckFunc(context.Background()), ErrContentDirEmpty) {
		t.Error("Expected ErrContentDirEmpty from the content-dir check")
	}
}

func TestHealthCheckMissingCatalog(t *testing.T) {
	siteDir := NewTestSiteBuilder(t).
		WithContent("a", testContentFile("A", "eng", "d")).
		Build(t)
	appCtx := newHealthContext(t, siteDir)

	check := healthCheckByName(t, appCtx.Health, "catalog")
	if !errors.Is(check.CheckFunc(context.Background()), ErrCatalogMissing) {
		t.Error("Expected ErrCatalogMissing for an empty catalog")
	}
}
