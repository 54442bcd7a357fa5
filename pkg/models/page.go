package models

import "strings"

// Page describes one route of the site and the content it is built from.
type Page struct {
	Name         string       `json:"name"`
	Path         string       `json:"path"`
	Template     string       `json:"template"`
	ItemPath     string       `json:"item_path,omitempty"` // link prefix for items of list pages
	Dependencies []Dependency `json:"dependencies"`
}

// Dependency is one piece of content a page needs.
type Dependency struct {
	// Name is the slot the resolved content is exposed under in templates.
	Name string `json:"name"`
	// Query is the content query key; empty means catalog-only content.
	Query string `json:"query,omitempty"`
	// Fallback is the catalog key. It may contain {param} placeholders that
	// are filled from route params, which makes the entry record-specific.
	Fallback string `json:"fallback"`
	// Params are static query parameters.
	Params map[string]any `json:"params,omitempty"`
	// Bind maps query parameter names to route parameter names.
	Bind map[string]string `json:"bind,omitempty"`
	// Required pages are not found when no record exists for them.
	Required bool `json:"required,omitempty"`
}

// RouteParams returns the names of the route parameters in Path.
func (p Page) RouteParams() []string {
	var names []string
	for _, seg := range splitPath(p.Path) {
		if len(seg) > 1 && (seg[0] == ':' || seg[0] == '*') {
			names = append(names, seg[1:])
		}
	}
	return names
}

// Static reports whether the page has no route parameters.
func (p Page) Static() bool {
	return len(p.RouteParams()) == 0
}

// URL fills the route parameters of Path.
func (p Page) URL(params map[string]string) string {
	segs := splitPath(p.Path)
	if len(segs) == 0 {
		return "/"
	}
	for i, seg := range segs {
		if len(seg) > 1 && (seg[0] == ':' || seg[0] == '*') {
			segs[i] = params[seg[1:]]
		}
	}
	return "/" + strings.Join(segs, "/")
}

func splitPath(p string) []string {
	var segs []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}
