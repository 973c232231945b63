package core

import (
	"fmt"
	"strings"
)

// ContentItem is one career-guide article: the normalized metadata of a
// single markdown file plus its raw body. The ID is derived from the file
// name and is never stored inside the metadata block itself.
type ContentItem struct {
	ID              string
	Title           string
	MetaDescription string
	Category        string
	Thumbnail       string
	HeroImage       string
	Keywords        []string
	Tags            []string
	RelatedJobs     []string
	Body            string
}

// RelatedItem is the view-only projection used for "related guides" links.
type RelatedItem struct {
	ID          string
	Title       string
	Description string
	Thumbnail   string
}

// NewContentItem builds a fully-defaulted ContentItem from a parsed metadata
// mapping. All fallback logic lives here so the views never have to fill in
// missing fields themselves. The defaults are applied in memory only and are
// never written back to the source file.
func NewContentItem(id string, metadata map[string]interface{}, body string, placeholder string) ContentItem {
	item := ContentItem{
		ID:              id,
		Title:           stringField(metadata, "title"),
		MetaDescription: stringField(metadata, "meta_description"),
		Category:        stringField(metadata, "category"),
		Thumbnail:       stringField(metadata, "thumbnail"),
		HeroImage:       stringField(metadata, "hero_image"),
		Keywords:        stringSliceField(metadata, "keywords"),
		Tags:            stringSliceField(metadata, "tags"),
		RelatedJobs:     stringSliceField(metadata, "related_jobs"),
		Body:            body,
	}

	// Replace a missing or known-bogus thumbnail with the placeholder
	if item.Thumbnail == "" || strings.Contains(item.Thumbnail, "placeholder.jpg") {
		item.Thumbnail = placeholder
	}

	return item
}

// HasOwnThumbnail reports whether the item carries an explicit thumbnail
// rather than the substituted placeholder.
func (item *ContentItem) HasOwnThumbnail(placeholder string) bool {
	return item.Thumbnail != "" && item.Thumbnail != placeholder
}

// Related projects the item into the shape used by related-guide links.
func (item *ContentItem) Related() RelatedItem {
	title := item.Title
	if title == "" {
		title = item.ID
	}
	description := item.MetaDescription
	if description == "" {
		description = "Career guide"
	}
	return RelatedItem{
		ID:          item.ID,
		Title:       title,
		Description: description,
		Thumbnail:   item.Thumbnail,
	}
}

// stringField fetches a string value from a dynamic metadata mapping;
// missing keys and non-string values yield the empty string.
func stringField(metadata map[string]interface{}, key string) string {
	if v, ok := metadata[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// stringSliceField fetches a list of strings from a dynamic metadata mapping.
// JSON decodes lists as []interface{}, so each element is converted
// individually; non-list values yield nil.
func stringSliceField(metadata map[string]interface{}, key string) []string {
	v, ok := metadata[key]
	if !ok {
		return nil
	}

	switch t := v.(type) {
	case []string:
		return t
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, elem := range t {
			if s, ok := elem.(string); ok {
				out = append(out, s)
			} else {
				out = append(out, fmt.Sprint(elem))
			}
		}
		return out
	default:
		return nil
	}
}
