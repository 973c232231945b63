package core

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// TestSiteBuilder assembles a throwaway site directory for tests
type TestSiteBuilder struct {
	dir        string
	structure  string
	siteYaml   string
	authors    string
	contents   map[string]string
	templates  map[string]string
	staticDirs bool
}

// NewTestSiteBuilder creates a builder rooted in a fresh temp directory
func NewTestSiteBuilder(t *testing.T) *TestSiteBuilder {
	t.Helper()
	return &TestSiteBuilder{
		dir:       t.TempDir(),
		contents:  make(map[string]string),
		templates: make(map[string]string),
	}
}

// WithStructure sets the raw content of config/structure.json
func (b *TestSiteBuilder) WithStructure(structure string) *TestSiteBuilder {
	b.structure = structure
	return b
}

// WithSiteYaml sets the raw content of config/site.yaml
func (b *TestSiteBuilder) WithSiteYaml(yaml string) *TestSiteBuilder {
	b.siteYaml = yaml
	return b
}

// WithAuthors sets the raw content of config/authors.yaml
func (b *TestSiteBuilder) WithAuthors(yaml string) *TestSiteBuilder {
	b.authors = yaml
	return b
}

// WithContent adds one markdown content file under contents/
func (b *TestSiteBuilder) WithContent(id, raw string) *TestSiteBuilder {
	b.contents[id+".md"] = raw
	return b
}

// WithTemplate adds one HTML template under templates/
func (b *TestSiteBuilder) WithTemplate(name, raw string) *TestSiteBuilder {
	b.templates[name] = raw
	return b
}

// WithDefaultTemplates adds a minimal template for every page the router
// renders.
func (b *TestSiteBuilder) WithDefaultTemplates() *TestSiteBuilder {
	pages := map[string]string{
		"index.html":          `home: {{ .TotalGuides }} guides`,
		"category.html":       `category: {{ .Category.Title }}`,
		"detail.html":         `detail: {{ .Item.Title }} {{ .Content }}`,
		"search_results.html": `search: {{ .ResultsCount }} for {{ .Query }}`,
		"about.html":          `about`,
		"privacy.html":        `privacy`,
		"error.html":          `error: {{ .Status }}`,
	}
	for name, raw := range pages {
		if _, exists := b.templates[name]; !exists {
			b.templates[name] = raw
		}
	}
	return b
}

// WithStaticAssets creates the static directory with robots.txt, ads.txt
// and the site logo
func (b *TestSiteBuilder) WithStaticAssets() *TestSiteBuilder {
	b.staticDirs = true
	return b
}

// Build writes the site to disk and returns its root directory
func (b *TestSiteBuilder) Build(t *testing.T) string {
	t.Helper()

	mkdir := func(parts ...string) string {
		dir := filepath.Join(append([]string{b.dir}, parts...)...)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
		return dir
	}
	write := func(path, content string) {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}

	configDir := mkdir("config")
	if b.siteYaml != "" {
		write(filepath.Join(configDir, "site.yaml"), b.siteYaml)
	}
	if b.structure != "" {
		write(filepath.Join(configDir, "structure.json"), b.structure)
	}
	if b.authors != "" {
		write(filepath.Join(configDir, "authors.yaml"), b.authors)
	}

	contentsDir := mkdir("contents")
	for name, raw := range b.contents {
		write(filepath.Join(contentsDir, name), raw)
	}

	if len(b.templates) > 0 {
		templatesDir := mkdir("templates")
		for name, raw := range b.templates {
			write(filepath.Join(templatesDir, name), raw)
		}
	}

	if b.staticDirs {
		staticDir := mkdir("static")
		write(filepath.Join(staticDir, "robots.txt"), "User-agent: *\nAllow: /\n")
		write(filepath.Join(staticDir, "ads.txt"), "placeholder\n")
		write(filepath.Join(staticDir, "logo.png"), "\x89PNG\r\n\x1a\n")
	}

	return b.dir
}

// testContentFile renders a well-formed content file with a JSON metadata
// block for the given fields.
func testContentFile(title, category, description string) string {
	return fmt.Sprintf(`---json
{
  "title": "%s",
  "category": "%s",
  "meta_description": "%s"
}
---

## %s

Body text for %s.
`, title, category, description, title, title)
}
