package core

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Repository answers all content queries from the flat-file content
// directory. Files are enumerated in sorted filename order so that every
// listing operation is deterministic for an identical input set. Parsed
// items are cached per id; the cache is invalidated by the content watcher
// when a file changes on disk.
type Repository struct {
	contentDir  string
	placeholder string
	logger      *Logger
	index       *SearchIndex

	mu    sync.RWMutex
	cache map[string]ContentItem
}

// NewRepository creates a repository over the given content directory.
func NewRepository(contentDir, placeholder string, logger *Logger) *Repository {
	if logger == nil {
		logger = DefaultLogger()
	}
	return &Repository{
		contentDir:  contentDir,
		placeholder: placeholder,
		logger:      logger,
		cache:       make(map[string]ContentItem),
	}
}

// SetSearchIndex attaches the full-text body index used as a search fallback.
func (r *Repository) SetSearchIndex(index *SearchIndex) {
	r.index = index
}

// ContentDir returns the directory the repository reads from.
func (r *Repository) ContentDir() string {
	return r.contentDir
}

// isValidItemID rejects ids that could escape the content directory
func isValidItemID(id string) bool {
	if id == "" {
		return false
	}
	if strings.ContainsAny(id, "/\\") {
		return false
	}
	if strings.Contains(id, "..") {
		return false
	}
	return true
}

// GetItem resolves an id to its content file, parses it, and returns the
// normalized item. A missing file is a normal outcome and yields
// ErrItemNotFound, not a logged server error.
func (r *Repository) GetItem(id string) (ContentItem, error) {
	if !isValidItemID(id) {
		return ContentItem{}, NewRepositoryError("get", id, ErrInvalidItemID)
	}

	r.mu.RLock()
	item, ok := r.cache[id]
	r.mu.RUnlock()
	if ok {
		return item, nil
	}

	path := filepath.Join(r.contentDir, id+".md")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ContentItem{}, ErrItemNotFound
		}
		return ContentItem{}, NewRepositoryError("read", path, err)
	}

	metadata, body := ParseContent(raw)
	item = NewContentItem(id, metadata, body, r.placeholder)

	r.mu.Lock()
	r.cache[id] = item
	r.mu.Unlock()

	return item, nil
}

// Invalidate drops the cached entry for an id. Called by the content watcher
// when the underlying file changes.
func (r *Repository) Invalidate(id string) {
	r.mu.Lock()
	delete(r.cache, id)
	r.mu.Unlock()
}

// InvalidateAll drops every cached entry.
func (r *Repository) InvalidateAll() {
	r.mu.Lock()
	r.cache = make(map[string]ContentItem)
	r.mu.Unlock()
}

// ListAllIDs enumerates the ids of all content files in sorted filename
// order. A missing content directory yields an empty list.
func (r *Repository) ListAllIDs() []string {
	entries, err := os.ReadDir(r.contentDir)
	if err != nil {
		r.logger.Warn("failed to read content directory %s: %v", r.contentDir, err)
		return nil
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".md"))
	}

	// os.ReadDir sorts by filename, but keep the guarantee explicit
	sort.Strings(ids)
	return ids
}

// ListAll returns every content item in sorted filename order. A file that
// cannot be read is logged and skipped; enumeration continues.
func (r *Repository) ListAll() []ContentItem {
	ids := r.ListAllIDs()
	items := make([]ContentItem, 0, len(ids))
	for _, id := range ids {
		item, err := r.GetItem(id)
		if err != nil {
			r.logger.Warn("skipping unreadable content file %s: %v", id, err)
			continue
		}
		items = append(items, item)
	}
	return items
}

// ListByCategory returns the items whose category matches the given slug,
// in sorted filename order.
func (r *Repository) ListByCategory(slug string) []ContentItem {
	var items []ContentItem
	for _, item := range r.ListAll() {
		if item.Category == slug {
			items = append(items, item)
		}
	}
	return items
}

// Search performs a case-insensitive substring match of the query against
// item title and meta description, in enumeration order, deduplicated by id.
// An empty query yields an empty result set. When the metadata fields match
// nothing, the full-text body index (if attached) supplies fallback results.
func (r *Repository) Search(query string) []ContentItem {
	if query == "" {
		return nil
	}

	q := strings.ToLower(query)
	seen := make(map[string]bool)
	var results []ContentItem

	all := r.ListAll()
	for _, item := range all {
		if seen[item.ID] {
			continue
		}
		if strings.Contains(strings.ToLower(item.Title), q) ||
			strings.Contains(strings.ToLower(item.MetaDescription), q) {
			seen[item.ID] = true
			results = append(results, item)
		}
	}

	if len(results) > 0 || r.index == nil {
		return results
	}

	// Fall back to the body-text index, keeping enumeration order
	ids, err := r.index.Query(query, len(all))
	if err != nil {
		r.logger.Warn("body search fallback failed for %q: %v", query, err)
		return results
	}
	matched := make(map[string]bool, len(ids))
	for _, id := range ids {
		matched[id] = true
	}
	for _, item := range all {
		if matched[item.ID] && !seen[item.ID] {
			seen[item.ID] = true
			results = append(results, item)
		}
	}
	return results
}

// ModTime returns the last-modification time of the content file for an id.
func (r *Repository) ModTime(id string) (time.Time, error) {
	if !isValidItemID(id) {
		return time.Time{}, NewRepositoryError("stat", id, ErrInvalidItemID)
	}
	info, err := os.Stat(filepath.Join(r.contentDir, id+".md"))
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, ErrItemNotFound
		}
		return time.Time{}, NewRepositoryError("stat", id, err)
	}
	return info.ModTime(), nil
}

// Stats returns the site-wide counters shown on the home page: the number of
// guides and the date of the most recent content change. With no content
// files the date falls back to "now".
func (r *Repository) Stats() (int, string) {
	ids := r.ListAllIDs()
	lastUpdated := time.Now()

	var latest time.Time
	for _, id := range ids {
		if mt, err := r.ModTime(id); err == nil && mt.After(latest) {
			latest = mt
		}
	}
	if !latest.IsZero() {
		lastUpdated = latest
	}

	return len(ids), lastUpdated.Format("2006-01-02")
}

// Reindex rebuilds the full-text body index from all content files. The
// parse cache is dropped first so the rebuild reflects the files on disk,
// not whatever was cached before.
func (r *Repository) Reindex() error {
	if r.index == nil {
		return ErrIndexNotReady
	}
	r.InvalidateAll()
	for _, item := range r.ListAll() {
		if err := r.index.Index(item); err != nil {
			r.logger.Warn("failed to index %s: %v", item.ID, err)
		}
	}
	return nil
}
