package cmd

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"careersite/core"
)

// Dump writes every normalized content item, the category catalog and the
// sitemap to the output directory. The output is deterministic for a fixed
// content tree, so it can be compared against a "golden" set of files and
// any deviation is a bug.
func Dump(ctx *core.Context) {
	outDir := ctx.Config.OutDirectory
	err := os.Mkdir(outDir, 0755)
	if err != nil {
		log.Fatalf("Failed to create directory %s: %v", outDir, err)
	}

	// One JSON document per content item, fully normalized
	itemsDir := filepath.Join(outDir, "items")
	if err := os.Mkdir(itemsDir, 0755); err != nil {
		log.Fatalf("Failed to mkdir %s: %v", itemsDir, err)
	}

	for _, item := range ctx.Repository.ListAll() {
		data, err := json.MarshalIndent(&item, "", "  ")
		if err != nil {
			log.Fatalf("Failed to marshal item %s: %v", item.ID, err)
		}

		outPath := filepath.Join(itemsDir, item.ID+".json")
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			log.Fatalf("Failed to create %s: %v", outPath, err)
		}
	}

	// The catalog as loaded (placeholder fallbacks applied)
	catalogJson, err := json.MarshalIndent(ctx.Catalog.Categories(), "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal catalog: %v", err)
	}
	outPath := filepath.Join(outDir, "catalog.json")
	if err := os.WriteFile(outPath, catalogJson, 0644); err != nil {
		log.Fatalf("Failed to create %s: %v", outPath, err)
	}

	// The generated sitemap
	sitemap, err := ctx.Assembler.Sitemap()
	if err != nil {
		log.Fatalf("Failed to render sitemap: %v", err)
	}
	outPath = filepath.Join(outDir, "sitemap.xml")
	if err := os.WriteFile(outPath, sitemap, 0644); err != nil {
		log.Fatalf("Failed to create %s: %v", outPath, err)
	}
}
