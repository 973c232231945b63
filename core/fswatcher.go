package core

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ContentWatcher watches the content directory and keeps the repository
// cache and the full-text index in sync with the files on disk. Requests
// never mutate shared state themselves; this goroutine is the only writer.
type ContentWatcher struct {
	mu      sync.RWMutex
	repo    *Repository
	index   *SearchIndex
	logger  *Logger
	watcher *fsnotify.Watcher
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewContentWatcher creates a watcher over the repository's content
// directory. Call Start to begin receiving events.
func NewContentWatcher(repo *Repository, index *SearchIndex, logger *Logger) (*ContentWatcher, error) {
	if logger == nil {
		logger = DefaultLogger()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(repo.ContentDir()); err != nil {
		watcher.Close()
		return nil, err
	}

	return &ContentWatcher{
		repo:    repo,
		index:   index,
		logger:  logger,
		watcher: watcher,
	}, nil
}

// Start launches the event loop.
func (cw *ContentWatcher) Start() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.running {
		return nil
	}

	cw.ctx, cw.cancel = context.WithCancel(context.Background())
	cw.running = true

	cw.wg.Add(1)
	go cw.loop()

	return nil
}

// Close stops the event loop and releases the underlying watcher.
func (cw *ContentWatcher) Close() error {
	cw.mu.Lock()
	if !cw.running {
		cw.mu.Unlock()
		return cw.watcher.Close()
	}
	cw.running = false
	cw.cancel()
	cw.mu.Unlock()

	cw.wg.Wait()
	return cw.watcher.Close()
}

func (cw *ContentWatcher) loop() {
	defer cw.wg.Done()

	for {
		select {
		case <-cw.ctx.Done():
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			cw.handleEvent(event)

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Warn("content watcher error: %v", err)
		}
	}
}

// handleEvent invalidates the cached item for the changed file and updates
// the full-text index to match.
func (cw *ContentWatcher) handleEvent(event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if !strings.HasSuffix(name, ".md") {
		return
	}
	id := strings.TrimSuffix(name, ".md")

	switch {
	case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
		cw.repo.Invalidate(id)
		if cw.index != nil {
			if item, err := cw.repo.GetItem(id); err == nil {
				if err := cw.index.Index(item); err != nil {
					cw.logger.Warn("failed to reindex %s: %v", id, err)
				}
			}
		}
		cw.logger.Debug("content updated: %s", id)

	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		cw.repo.Invalidate(id)
		if cw.index != nil {
			if err := cw.index.Remove(id); err != nil {
				cw.logger.Debug("failed to remove %s from index: %v", id, err)
			}
		}
		cw.logger.Debug("content removed: %s", id)
	}
}
