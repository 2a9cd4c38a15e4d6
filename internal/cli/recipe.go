package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Recipe is a reusable set of edits and output options stored as YAML:
//
//	urls:
//	  - https://example.com/
//	set:
//	  - scheme=https
//	append:
//	  - path=v2
//	redirect: /landing
//	get: "{host}{path}"
//	urldecode: true
//
// Command-line flags are applied after the recipe. Options that may only be
// given once (url_file, redirect, get) conflict when both set them.
type Recipe struct {
	// URLs are input URLs, processed before the ones on the command line.
	URLs []string `yaml:"urls,omitempty"`

	// URLFile names a file ("-" for stdin) with one URL per line.
	URLFile string `yaml:"url_file,omitempty"`

	// Set holds "component=value" edits, like --set.
	Set []string `yaml:"set,omitempty"`

	// Append holds "path=..." and "query=..." edits, like --append.
	Append []string `yaml:"append,omitempty"`

	// Redirect is resolved against every input URL, like --redirect.
	Redirect string `yaml:"redirect,omitempty"`

	// Get is an output template, like --get.
	Get string `yaml:"get,omitempty"`

	// URLDecode decodes output values, like --urldecode.
	URLDecode bool `yaml:"urldecode,omitempty"`

	// JSON selects JSON output, like --json.
	JSON bool `yaml:"json,omitempty"`
}

// LoadRecipe reads and parses a recipe file.
// Returns an error if the file doesn't exist, is malformed or contains
// unknown fields (typos like "apend:"). An empty file is an empty recipe.
func LoadRecipe(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe file: %w", err)
	}

	var recipe Recipe
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&recipe); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &recipe, nil
}
