package main

import (
	"log"

	"careersite/cmd"
	"careersite/core"
)

func main() {
	var err error
	var ctx core.Context

	// parse command line arguments
	ctx.Config, err = core.ParseCommandLineArguments()
	if err != nil {
		return
	}

	// If requested, print the version and leave
	if ctx.Config.Mode == "version" {
		cmd.Version()
		return
	}

	// Now read the configuration assets and build the content pipeline
	err = core.InitializeContext(&ctx)
	if err != nil {
		log.Fatalf("Failed to initialize context: %v", err)
	}

	// If requested, dump the normalized content and derived views to a
	// directory (the directory can then be compared to a "golden" set of
	// files, and any deviation is a bug)
	if ctx.Config.Mode == "dump" {
		cmd.Dump(&ctx)
		return
	}

	// From here on we assume that we run the server
	cmd.Run(&ctx)
}
