// Package styles maps tone presets to the greeting and closing wrapped around a proposal.
package styles

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/proposal-customizer/internal/types"
)

// Built-in style names.
const (
	Friendly = "friendly"
	Formal   = "formal"
	Concise  = "concise"
)

// builtin holds the default style table. Friendly is the default.
var builtin = map[string]types.StyleTemplate{
	Friendly: {Greeting: "Hi there,", Closing: "Looking forward to collaborating!"},
	Formal:   {Greeting: "Hello,", Closing: "Kind regards,"},
	Concise:  {Greeting: "Hi,", Closing: "Regards,"},
}

var defaultRegistry = mustRegistry(builtin, Friendly)

// Registry is an immutable lookup from style name to template.
// Unknown names resolve to the default template, so lookups never fail.
type Registry struct {
	templates   map[string]types.StyleTemplate
	defaultName string
}

// NewRegistry copies templates into a new Registry. The default must be present and
// every template needs a non-empty greeting and closing.
func NewRegistry(templates map[string]types.StyleTemplate, defaultName string) (*Registry, error) {
	if _, ok := templates[defaultName]; !ok {
		return nil, fmt.Errorf("default style %q is not defined", defaultName)
	}

	copied := make(map[string]types.StyleTemplate, len(templates))
	for name, tmpl := range templates {
		if strings.TrimSpace(tmpl.Greeting) == "" || strings.TrimSpace(tmpl.Closing) == "" {
			return nil, fmt.Errorf("style %q must have a greeting and a closing", name)
		}
		copied[name] = tmpl
	}

	return &Registry{templates: copied, defaultName: defaultName}, nil
}

// Default returns the built-in registry (friendly, formal, concise; friendly is the default).
func Default() *Registry {
	return defaultRegistry
}

// Template returns the template for style, or the default template for unknown styles.
func (r *Registry) Template(style string) types.StyleTemplate {
	if tmpl, ok := r.templates[style]; ok {
		return tmpl
	}
	return r.templates[r.defaultName]
}

// Greeting returns the greeting line for style.
func (r *Registry) Greeting(style string) string {
	return r.Template(style).Greeting
}

// Closing returns the closing line for style.
func (r *Registry) Closing(style string) string {
	return r.Template(style).Closing
}

// Has reports whether style is registered.
func (r *Registry) Has(style string) bool {
	_, ok := r.templates[style]
	return ok
}

// DefaultName returns the name unknown styles resolve to.
func (r *Registry) DefaultName() string {
	return r.defaultName
}

// Names returns all registered style names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func mustRegistry(templates map[string]types.StyleTemplate, defaultName string) *Registry {
	r, err := NewRegistry(templates, defaultName)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in styles: %v", err))
	}
	return r
}
