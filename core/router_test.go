package core

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestServer(t *testing.T) (*Context, http.Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	siteDir := NewTestSiteBuilder(t).
		WithStructure(`{"categories": [{"slug": "eng", "title": "Engineering"}]}`).
		WithContent("backend-engineer",
			testContentFile("Backend Engineer", "eng", "About backends")).
		WithContent("ux-designer",
			testContentFile("UX Designer", "design", "About design")).
		WithDefaultTemplates().
		WithStaticAssets().
		Build(t)

	ctx := &Context{Logger: NewLogger(LogLevelError)}
	ctx.Config = NewDefaultConfig()
	ctx.Config.SiteDirectory = siteDir

	if err := InitializeContext(ctx); err != nil {
		t.Fatalf("InitializeContext() error = %v", err)
	}

	router, err := InitializeRouter(ctx)
	if err != nil {
		t.Fatalf("InitializeRouter() error = %v", err)
	}
	return ctx, router
}

func doRequest(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestRouterHome(t *testing.T) {
	_, router := newTestServer(t)

	w := doRequest(t, router, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("GET / status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "2 guides") {
		t.Errorf("Expected guide count in home page, got %q", w.Body.String())
	}
}

func TestRouterCategory(t *testing.T) {
	_, router := newTestServer(t)

	w := doRequest(t, router, "/category/eng")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /category/eng status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Engineering") {
		t.Errorf("Expected category title, got %q", w.Body.String())
	}

	w = doRequest(t, router, "/category/unknown")
	if w.Code != http.StatusNotFound {
		t.Errorf("GET /category/unknown status = %d, want 404", w.Code)
	}
}

func TestRouterDetail(t *testing.T) {
	_, router := newTestServer(t)

	w := doRequest(t, router, "/career/backend-engineer")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /career/backend-engineer status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Backend Engineer") {
		t.Errorf("Expected item title, got %q", w.Body.String())
	}
}

func TestRouterDetailNotFound(t *testing.T) {
	_, router := newTestServer(t)

	// A missing id is a 404, never a server error
	w := doRequest(t, router, "/career/nonexistent")
	if w.Code != http.StatusNotFound {
		t.Errorf("GET /career/nonexistent status = %d, want 404", w.Code)
	}
}

func TestRouterSearch(t *testing.T) {
	_, router := newTestServer(t)

	w := doRequest(t, router, "/search?q=backend")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /search status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "1 for backend") {
		t.Errorf("Expected one search result, got %q", w.Body.String())
	}

	// Empty query yields zero results, not all items
	w = doRequest(t, router, "/search?q=")
	if !strings.Contains(w.Body.String(), "0 for") {
		t.Errorf("Expected empty result set, got %q", w.Body.String())
	}
}

func TestRouterSitemap(t *testing.T) {
	_, router := newTestServer(t)

	w := doRequest(t, router, "/sitemap.xml")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /sitemap.xml status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/xml") {
		t.Errorf("Content-Type = %q, want application/xml", ct)
	}
	if !strings.Contains(w.Body.String(), "<urlset") {
		t.Error("Expected a urlset document")
	}
}

func TestRouterStaticPassthrough(t *testing.T) {
	_, router := newTestServer(t)

	w := doRequest(t, router, "/robots.txt")
	if w.Code != http.StatusOK {
		t.Errorf("GET /robots.txt status = %d", w.Code)
	}

	w = doRequest(t, router, "/ads.txt")
	if w.Code != http.StatusOK {
		t.Errorf("GET /ads.txt status = %d", w.Code)
	}

	w = doRequest(t, router, "/favicon.ico")
	if w.Code != http.StatusOK {
		t.Errorf("GET /favicon.ico status = %d", w.Code)
	}
}

func TestRouterStaticPages(t *testing.T) {
	_, router := newTestServer(t)

	for _, path := range []string{"/about", "/privacy"} {
		w := doRequest(t, router, path)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s status = %d", path, w.Code)
		}
	}
}

func TestRouterHealthz(t *testing.T) {
	_, router := newTestServer(t)

	w := doRequest(t, router, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /healthz status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("Expected healthy status, got %q", w.Body.String())
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	_, router := newTestServer(t)

	w := doRequest(t, router, "/no/such/page")
	if w.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", w.Code)
	}
}
