package core

import (
	"encoding/json"
	"os"
	"strings"
)

// Category is one entry of the static category catalog.
type Category struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Image    string `json:"image"`
	HasImage bool   `json:"-"`
}

// Catalog holds the static list of categories loaded once at startup. It is
// immutable after construction and safe for unsynchronized concurrent reads.
type Catalog struct {
	categories []Category
}

// structureFile mirrors the on-disk shape of config/structure.json
type structureFile struct {
	Categories []Category `json:"categories"`
}

// LoadCatalog reads the category catalog asset. A missing or malformed asset
// degrades to an empty catalog with an operator warning; the site must still
// boot and render an empty home page.
func LoadCatalog(path, placeholder string, logger *Logger) *Catalog {
	if logger == nil {
		logger = DefaultLogger()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("category catalog unavailable, starting with empty catalog: %v",
			NewCatalogError(path, err))
		return &Catalog{}
	}

	var structure structureFile
	if err := json.Unmarshal(data, &structure); err != nil {
		logger.Warn("category catalog malformed, starting with empty catalog: %v",
			NewCatalogError(path, err))
		return &Catalog{}
	}

	categories := make([]Category, 0, len(structure.Categories))
	for _, cat := range structure.Categories {
		// Only an explicit, non-placeholder image counts as "has image"
		cat.HasImage = cat.Image != "" && !strings.Contains(cat.Image, "placeholder.jpg")
		if !cat.HasImage {
			cat.Image = placeholder
		}
		categories = append(categories, cat)
	}

	return &Catalog{categories: categories}
}

// NewCatalog builds a catalog from an in-memory category list. Used by tests
// and by callers that already resolved the asset themselves.
func NewCatalog(categories []Category) *Catalog {
	return &Catalog{categories: categories}
}

// Categories returns all categories in catalog order.
func (c *Catalog) Categories() []Category {
	return c.categories
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	return len(c.categories)
}

// GetCategoryDetails looks up a category by slug. The catalog holds tens of
// entries at most, so a linear scan is fine.
func (c *Catalog) GetCategoryDetails(slug string) (Category, bool) {
	for _, cat := range c.categories {
		if cat.Slug == slug {
			return cat, true
		}
	}
	return Category{}, false
}

// CategoryTitle resolves the display title for a category slug. Unknown
// slugs degrade to a capitalized form of the slug so a detail page never
// fails on a dangling category reference; an empty slug falls back to the
// generic site section name.
func (c *Catalog) CategoryTitle(slug string) string {
	if cat, ok := c.GetCategoryDetails(slug); ok {
		return cat.Title
	}
	if slug == "" {
		return "Career Guide"
	}
	return capitalizeSlug(slug)
}

// capitalizeSlug turns "data-science" into "Data Science"
func capitalizeSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
