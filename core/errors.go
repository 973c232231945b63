package core

import (
	"errors"
	"fmt"
)

// Error types for better error handling
var (
	// Repository errors
	ErrItemNotFound    = errors.New("content item not found")
	ErrContentDirEmpty = errors.New("content directory has no content files")
	ErrInvalidItemID   = errors.New("invalid content item id")

	// Catalog errors
	ErrCategoryNotFound = errors.New("category not found")
	ErrCatalogMissing   = errors.New("category catalog missing")

	// Search errors
	ErrIndexNotReady = errors.New("search index not ready")

	// Configuration errors
	ErrInvalidPort       = errors.New("port must be between 1 and 65535")
	ErrInvalidHostname   = errors.New("hostname is invalid")
	ErrEmptyDirectory    = errors.New("directory cannot be empty")
	ErrDirectoryNotExist = errors.New("directory does not exist")
	ErrInvalidPath       = errors.New("path contains invalid characters")
	ErrMissingOutput     = errors.New("output directory is required")
	ErrConfigNotFound    = errors.New("configuration file not found")
	ErrInvalidYAML       = errors.New("invalid YAML configuration")

	// Sitemap errors
	ErrSitemapRender = errors.New("sitemap rendering failed")
)

// RepositoryError wraps content repository related errors
type RepositoryError struct {
	Op   string
	Path string
	Err  error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError creates a new RepositoryError
func NewRepositoryError(op, path string, err error) *RepositoryError {
	return &RepositoryError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// CatalogError wraps category catalog related errors
type CatalogError struct {
	Path string
	Err  error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog %s: %v", e.Path, e.Err)
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

// NewCatalogError creates a new CatalogError
func NewCatalogError(path string, err error) *CatalogError {
	return &CatalogError{
		Path: path,
		Err:  err,
	}
}

// RenderError wraps view rendering related errors
type RenderError struct {
	View string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.View, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// NewRenderError creates a new RenderError
func NewRenderError(view string, err error) *RenderError {
	return &RenderError{
		View: view,
		Err:  err,
	}
}
