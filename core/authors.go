package core

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Authors lists the people shown on the About page.
type Authors struct {
	FilePath string
	Authors  []Author `yaml:"authors"`
}

type Author struct {
	Name     string `yaml:"name"`
	FullName string `yaml:"fullname"`
	Email    string `yaml:"email"`
}

// ReadAuthorsYaml reads and parses the authors asset.
func ReadAuthorsYaml(path string) (Authors, error) {
	var authors Authors
	authors.FilePath = path

	// Read the file
	data, err := os.ReadFile(path)
	if err != nil {
		return Authors{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	// Parse the YAML file
	if err := yaml.Unmarshal(data, &authors); err != nil {
		return Authors{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// Check if the authors list is empty
	if len(authors.Authors) == 0 {
		return Authors{}, fmt.Errorf("no authors found in %s", path)
	}

	// Return the parsed data
	return authors, nil
}
