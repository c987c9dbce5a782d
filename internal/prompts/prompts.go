// Package prompts embeds the default LLM prompt templates.
//
// Templates use text/template syntax. User-editable copies are written to the
// prompt directory by the file prompt store; these embedded versions are the
// fallback when a user file is missing or unreadable.
package prompts

import (
	"embed"
	"sort"
	"strings"
)

// FS contains all prompt templates embedded at compile time.
//
//go:embed templates/*.tmpl
var FS embed.FS

// Default returns the embedded template for a prompt name.
func Default(name string) (string, bool) {
	data, err := FS.ReadFile("templates/" + name + ".tmpl")
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}

// Names returns the names of all embedded templates, sorted.
func Names() []string {
	entries, err := FS.ReadDir("templates")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".tmpl"))
	}
	sort.Strings(names)
	return names
}
