package core

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// searchRateLimit is the per-client budget for the search endpoint
const searchRateLimit = 60

// InitializeRouter creates and configures the gin router with all routes of
// the site: the page views, the SEO endpoints and the static passthroughs.
func InitializeRouter(ctx *Context) (*gin.Engine, error) {
	router := gin.New()

	// Default middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeaders())

	// Page templates
	pattern := filepath.Join(ctx.Config.TemplateDir(), "*.html")
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return nil, errors.New("no page templates found in " + ctx.Config.TemplateDir())
	}
	router.LoadHTMLGlob(pattern)

	// Page views
	router.GET("/", homeHandler(ctx))
	router.GET("/category/:slug", categoryHandler(ctx))
	router.GET("/career/:id", detailHandler(ctx))
	router.GET("/search", NewRateLimiter(searchRateLimit).Middleware(), searchHandler(ctx))
	router.GET("/about", staticPageHandler(ctx, "about.html"))
	router.GET("/privacy", staticPageHandler(ctx, "privacy.html"))

	// SEO endpoints
	router.GET("/sitemap.xml", sitemapHandler(ctx))
	router.StaticFile("/ads.txt", filepath.Join(ctx.Config.StaticDir(), "ads.txt"))
	router.StaticFile("/robots.txt", filepath.Join(ctx.Config.StaticDir(), "robots.txt"))
	router.StaticFile("/favicon.ico", filepath.Join(ctx.Config.StaticDir(), "logo.png"))

	// Static assets
	router.Static("/static", ctx.Config.StaticDir())

	// Operational endpoints
	router.GET("/healthz", ctx.Health.Handler())

	router.NoRoute(func(c *gin.Context) {
		renderNotFound(c, ctx)
	})

	return router, nil
}

// baseVars returns the template variables shared by every page
func baseVars(ctx *Context) gin.H {
	return gin.H{
		"SiteTitle":       ctx.Config.Server.Title,
		"SiteDescription": ctx.Config.Server.Description,
		"Favicon":         ctx.Config.Images.Favicon,
	}
}

func renderNotFound(c *gin.Context, ctx *Context) {
	vars := baseVars(ctx)
	vars["Status"] = http.StatusNotFound
	vars["Message"] = "Page not found"
	c.HTML(http.StatusNotFound, "error.html", vars)
}

func renderServerError(c *gin.Context, ctx *Context) {
	vars := baseVars(ctx)
	vars["Status"] = http.StatusInternalServerError
	vars["Message"] = "Internal server error"
	c.HTML(http.StatusInternalServerError, "error.html", vars)
}

func homeHandler(ctx *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := ctx.Assembler.HomeView()

		vars := baseVars(ctx)
		vars["Groups"] = data.Groups
		vars["TotalGuides"] = data.TotalGuides
		vars["LastUpdated"] = data.LastUpdated
		c.HTML(http.StatusOK, "index.html", vars)
	}
}

func categoryHandler(ctx *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := ctx.Assembler.CategoryView(c.Param("slug"))
		if err != nil {
			renderNotFound(c, ctx)
			return
		}

		vars := baseVars(ctx)
		vars["Category"] = data.Category
		vars["Items"] = data.Items
		c.HTML(http.StatusOK, "category.html", vars)
	}
}

func detailHandler(ctx *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := ctx.Assembler.DetailView(c.Param("id"))
		if err != nil {
			// A bad or unknown id is a normal 404, not a server error
			if errors.Is(err, ErrItemNotFound) || errors.Is(err, ErrInvalidItemID) {
				renderNotFound(c, ctx)
				return
			}
			ctx.Logger.Error("detail view failed for %s: %v", c.Param("id"), err)
			renderServerError(c, ctx)
			return
		}

		vars := baseVars(ctx)
		vars["Item"] = data.Item
		vars["Content"] = data.ContentHTML
		vars["CategoryTitle"] = data.CategoryTitle
		vars["HeroImage"] = data.HeroImage
		vars["RelatedJobs"] = data.Related
		c.HTML(http.StatusOK, "detail.html", vars)
	}
}

func searchHandler(ctx *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := ctx.Assembler.SearchView(c.Query("q"))

		vars := baseVars(ctx)
		vars["Query"] = data.Query
		vars["Items"] = data.Items
		vars["ResultsCount"] = data.Count
		c.HTML(http.StatusOK, "search_results.html", vars)
	}
}

func staticPageHandler(ctx *Context, template string) gin.HandlerFunc {
	return func(c *gin.Context) {
		vars := baseVars(ctx)
		vars["Authors"] = ctx.Authors.Authors
		c.HTML(http.StatusOK, template, vars)
	}
}

// sitemapHandler is the one place where a render failure propagates to the
// client: a broken sitemap has SEO impact worth alerting on.
func sitemapHandler(ctx *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := ctx.Assembler.Sitemap()
		if err != nil {
			ctx.Logger.Error("sitemap rendering failed: %v", err)
			c.String(http.StatusInternalServerError, "sitemap unavailable")
			return
		}
		c.Data(http.StatusOK, "application/xml", body)
	}
}
