package core

import (
	"bytes"
	"html/template"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

// Assembler combines repository and catalog results into page-ready data
// structures. It owns the markdown renderer; bodies are rendered only for
// detail views, never for listings.
type Assembler struct {
	repo     *Repository
	catalog  *Catalog
	config   *Config
	logger   *Logger
	markdown goldmark.Markdown
}

// NewAssembler creates a view assembler.
func NewAssembler(repo *Repository, catalog *Catalog, config *Config, logger *Logger) *Assembler {
	if logger == nil {
		logger = DefaultLogger()
	}

	markdown := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			highlighting.NewHighlighting(
				highlighting.WithStyle("monokai"),
				highlighting.WithFormatOptions(
					chromahtml.WithLineNumbers(true),
				),
			),
		),
	)

	return &Assembler{
		repo:     repo,
		catalog:  catalog,
		config:   config,
		logger:   logger,
		markdown: markdown,
	}
}

// CategoryGroup is one home-page section: a category plus its items.
type CategoryGroup struct {
	Category Category
	Items    []ContentItem
}

// HomeData is the page data for the home view.
type HomeData struct {
	Groups      []CategoryGroup
	TotalGuides int
	LastUpdated string
}

// CategoryData is the page data for one category view.
type CategoryData struct {
	Category Category
	Items    []ContentItem
}

// DetailData is the page data for one guide detail view.
type DetailData struct {
	Item          ContentItem
	ContentHTML   template.HTML
	CategoryTitle string
	HeroImage     string
	Related       []RelatedItem
}

// SearchData is the page data for the search results view.
type SearchData struct {
	Query string
	Items []ContentItem
	Count int
}

// HomeView groups all items under their categories and adds the site-wide
// stats. Categories without items are left out of the groups.
func (a *Assembler) HomeView() HomeData {
	var groups []CategoryGroup
	for _, cat := range a.catalog.Categories() {
		items := a.repo.ListByCategory(cat.Slug)
		if len(items) == 0 {
			continue
		}
		groups = append(groups, CategoryGroup{Category: cat, Items: items})
	}

	total, lastUpdated := a.repo.Stats()
	return HomeData{
		Groups:      groups,
		TotalGuides: total,
		LastUpdated: lastUpdated,
	}
}

// CategoryView returns the category details and its items.
// An unknown slug yields ErrCategoryNotFound.
func (a *Assembler) CategoryView(slug string) (CategoryData, error) {
	cat, ok := a.catalog.GetCategoryDetails(slug)
	if !ok {
		return CategoryData{}, ErrCategoryNotFound
	}

	return CategoryData{
		Category: cat,
		Items:    a.repo.ListByCategory(slug),
	}, nil
}

// DetailView assembles one guide page: rendered body, resolved category
// title, hero image fallback chain and related guides.
func (a *Assembler) DetailView(id string) (DetailData, error) {
	item, err := a.repo.GetItem(id)
	if err != nil {
		return DetailData{}, err
	}

	var html bytes.Buffer
	if err := a.markdown.Convert([]byte(item.Body), &html); err != nil {
		return DetailData{}, NewRenderError("detail", err)
	}

	return DetailData{
		Item:          item,
		ContentHTML:   template.HTML(html.String()),
		CategoryTitle: a.catalog.CategoryTitle(item.Category),
		HeroImage:     a.heroImage(&item),
		Related:       a.relatedItems(&item),
	}, nil
}

// heroImage resolves the hero with a three-level fallback chain: explicit
// hero image, non-placeholder thumbnail, then the configured default hero.
func (a *Assembler) heroImage(item *ContentItem) string {
	if item.HeroImage != "" {
		return item.HeroImage
	}
	if item.HasOwnThumbnail(a.config.Images.PlaceholderImage) {
		return item.Thumbnail
	}
	return a.config.Images.DefaultHeroImage
}

// relatedItems resolves the related_jobs ids against the repository.
// Unresolvable ids are dropped without failing the page.
func (a *Assembler) relatedItems(item *ContentItem) []RelatedItem {
	var related []RelatedItem
	for _, rid := range item.RelatedJobs {
		r, err := a.repo.GetItem(rid)
		if err != nil {
			a.logger.Debug("dropping unresolved related id %q on %s", rid, item.ID)
			continue
		}
		related = append(related, r.Related())
	}
	return related
}

// SearchView runs a repository search for the query.
func (a *Assembler) SearchView(query string) SearchData {
	items := a.repo.Search(query)
	return SearchData{
		Query: query,
		Items: items,
		Count: len(items),
	}
}
