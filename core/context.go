package core

import (
	"errors"
	"path/filepath"
)

// Context carries the process-wide state: immutable configuration and the
// catalog loaded once at startup, plus the repository, index and assembler
// built from them. Everything is constructed explicitly here and injected;
// there are no module-level globals.
type Context struct {
	Config     Config
	Logger     *Logger
	Catalog    *Catalog
	Authors    Authors
	Repository *Repository
	Index      *SearchIndex
	Assembler  *Assembler
	Watcher    *ContentWatcher
	Health     *HealthChecker
}

// InitializeContext loads the configuration assets and builds the
// repository, search index and view assembler.
func InitializeContext(ctx *Context) error {
	if ctx.Logger == nil {
		ctx.Logger = NewLogger(LogLevelInfo)
	}

	// read site.yaml; a missing file keeps the compiled-in defaults
	configFilePath := filepath.Join(ctx.Config.SiteDirectory, "config", "site.yaml")
	if err := ReadConfigYaml(&ctx.Config, configFilePath); err != nil {
		if !errors.Is(err, ErrConfigNotFound) {
			return err
		}
		ctx.Logger.Warn("no site.yaml found, using default configuration")
	}

	// read structure.json; degrades to an empty catalog
	ctx.Catalog = LoadCatalog(ctx.Config.StructureFile(),
		ctx.Config.Images.PlaceholderImage, ctx.Logger)

	// read authors.yaml; the About page degrades without it
	authors, err := ReadAuthorsYaml(ctx.Config.AuthorsFile())
	if err != nil {
		ctx.Logger.Warn("no authors configured: %v", err)
	} else {
		ctx.Authors = authors
	}

	ctx.Repository = NewRepository(ctx.Config.ContentDir(),
		ctx.Config.Images.PlaceholderImage, ctx.Logger)

	// The body-text index is an enhancement; search still works without it
	index, err := NewSearchIndex()
	if err != nil {
		ctx.Logger.Warn("search index unavailable: %v", err)
	} else {
		ctx.Index = index
		ctx.Repository.SetSearchIndex(index)
		if err := ctx.Repository.Reindex(); err != nil {
			ctx.Logger.Warn("initial indexing failed: %v", err)
		}
	}

	ctx.Assembler = NewAssembler(ctx.Repository, ctx.Catalog, &ctx.Config, ctx.Logger)

	ctx.Health = NewHealthChecker()
	RegisterDefaultHealthChecks(ctx)

	return nil
}
