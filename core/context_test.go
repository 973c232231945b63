package core

import (
	"testing"
)

func TestInitializeContext(t *testing.T) {
	siteDir := NewTestSiteBuilder(t).
		WithSiteYaml("server:\n  port: 9090\n  title: \"Test Careers\"\n").
		WithStructure(`{"categories": [{"slug": "eng", "title": "Engineering"}]}`).
		WithAuthors("authors:\n  - name: ed\n    fullname: Editorial\n").
		WithContent("a", testContentFile("A", "eng", "d")).
		Build(t)

	ctx := &Context{Logger: NewLogger(LogLevelError)}
	ctx.Config = NewDefaultConfig()
	ctx.Config.SiteDirectory = siteDir

	if err := InitializeContext(ctx); err != nil {
		t.Fatalf("InitializeContext() error = %v", err)
	}

	if ctx.Config.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090 from site.yaml", ctx.Config.Server.Port)
	}
	if ctx.Catalog.Len() != 1 {
		t.Errorf("Catalog size = %d", ctx.Catalog.Len())
	}
	if len(ctx.Authors.Authors) != 1 {
		t.Errorf("Authors = %+v", ctx.Authors)
	}
	if ctx.Repository == nil || ctx.Assembler == nil || ctx.Health == nil {
		t.Error("Expected repository, assembler and health checker to be built")
	}

	// The search index is built at startup
	if ctx.Index == nil {
		t.Fatal("Expected a search index")
	}
	ids, err := ctx.Index.Query("text", 10)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(ids) != 1 || ids[0] != "a" {
		t.Errorf("Expected indexed item [a], got %v", ids)
	}
}

func TestInitializeContextDegradesGracefully(t *testing.T) {
	// No site.yaml, no structure.json, no authors.yaml: the process still
	// boots with defaults and an empty catalog.
	siteDir := NewTestSiteBuilder(t).Build(t)

	ctx := &Context{Logger: NewLogger(LogLevelError)}
	ctx.Config = NewDefaultConfig()
	ctx.Config.SiteDirectory = siteDir

	if err := InitializeContext(ctx); err != nil {
		t.Fatalf("InitializeContext() should degrade, got error: %v", err)
	}
	if ctx.Catalog.Len() != 0 {
		t.Errorf("Expected empty catalog, got %d entries", ctx.Catalog.Len())
	}
	if data := ctx.Assembler.HomeView(); len(data.Groups) != 0 {
		t.Errorf("Expected empty home page, got %d groups", len(data.Groups))
	}
}
