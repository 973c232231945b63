package cmd

import (
	"log"
	"strconv"

	"careersite/core"
)

func Run(ctx *core.Context) {
	// The watcher keeps the parse cache and the search index in sync with
	// the content files on disk
	watcher, err := core.NewContentWatcher(ctx.Repository, ctx.Index, ctx.Logger)
	if err != nil {
		ctx.Logger.Warn("content watcher unavailable, caches will not refresh: %v", err)
	} else {
		if err := watcher.Start(); err != nil {
			ctx.Logger.Warn("failed to start content watcher: %v", err)
		}
		ctx.Watcher = watcher
		defer watcher.Close()
	}

	// Set up the routes
	router, err := core.InitializeRouter(ctx)
	if err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	// Then run the server
	err = router.Run(":" + strconv.Itoa(ctx.Config.Server.Port))
	if err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
