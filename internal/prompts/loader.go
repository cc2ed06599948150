// Package prompts embeds the LLM prompt templates and provides keyed access
// to them. Each JSON file holds a flat map of key -> prompt text; files are
// parsed once and held for the life of the process.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var templateFS embed.FS

var (
	mu     sync.Mutex
	parsed = map[string]map[string]string{}
)

// Get returns the prompt stored under key in the named file. The filename is
// relative to the package (e.g. "tailoring.json").
func Get(filename, key string) (string, error) {
	table, err := load(filename)
	if err != nil {
		return "", err
	}
	prompt, ok := table[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet is Get for prompts the pipeline cannot run without; a missing
// prompt is a packaging bug, so it panics.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format substitutes {{.Key}} placeholders with values from data. Unmatched
// placeholders are left in place.
func Format(template string, data map[string]string) string {
	out := template
	for key, value := range data {
		out = strings.ReplaceAll(out, "{{."+key+"}}", value)
	}
	return out
}

// List returns every prompt key present in the named file.
func List(filename string) ([]string, error) {
	table, err := load(filename)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	return keys, nil
}

// ClearCache drops every parsed file. Only tests need this.
func ClearCache() {
	mu.Lock()
	parsed = map[string]map[string]string{}
	mu.Unlock()
}

func load(filename string) (map[string]string, error) {
	mu.Lock()
	defer mu.Unlock()

	if table, ok := parsed[filename]; ok {
		return table, nil
	}

	data, err := templateFS.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var table map[string]string
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}
	parsed[filename] = table
	return table, nil
}
