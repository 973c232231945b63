package core

import (
	"sync"

	"github.com/blevesearch/bleve/v2"
)

// indexedItem is the document shape stored in the full-text index.
type indexedItem struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Category string `json:"category"`
}

// SearchIndex is an in-memory full-text index over article bodies. It backs
// the search fallback for queries that match no title or description, and is
// kept current by the content watcher.
type SearchIndex struct {
	mu    sync.RWMutex
	index bleve.Index
}

// NewSearchIndex creates an empty in-memory index.
func NewSearchIndex() (*SearchIndex, error) {
	mapping := bleve.NewIndexMapping()
	index, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return nil, err
	}
	return &SearchIndex{index: index}, nil
}

// Index adds or replaces one item in the index.
func (si *SearchIndex) Index(item ContentItem) error {
	si.mu.Lock()
	defer si.mu.Unlock()

	return si.index.Index(item.ID, indexedItem{
		Title:    item.Title,
		Body:     item.Body,
		Category: item.Category,
	})
}

// Remove deletes one item from the index.
func (si *SearchIndex) Remove(id string) error {
	si.mu.Lock()
	defer si.mu.Unlock()
	return si.index.Delete(id)
}

// Query returns the ids of items whose indexed text matches the query,
// best match first.
func (si *SearchIndex) Query(query string, limit int) ([]string, error) {
	si.mu.RLock()
	defer si.mu.RUnlock()

	request := bleve.NewSearchRequest(bleve.NewMatchQuery(query))
	if limit > 0 {
		request.Size = limit
	}

	results, err := si.index.Search(request)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(results.Hits))
	for _, hit := range results.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

// Close releases the index.
func (si *SearchIndex) Close() error {
	si.mu.Lock()
	defer si.mu.Unlock()
	return si.index.Close()
}
