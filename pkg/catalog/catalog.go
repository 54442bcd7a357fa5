// Package catalog holds the static fallback content rendered whenever the
// CMS has nothing (or nothing usable) for a page. Entries are embedded at
// build time, loaded once and never modified afterwards.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/IannnnnW/ambso-site/pkg/content"
)

//go:embed data
var embedded embed.FS

// Catalog maps content keys to fallback entries. A key is the entry's path
// below the catalog root without extension, e.g. "about" or
// "program-category/clinical".
type Catalog struct {
	entries map[string]content.Value
}

var (
	defaultCatalog *Catalog
	defaultErr     error
	defaultOnce    sync.Once
)

// Default returns the embedded catalog, loading it on first use.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load(embedded, "data")
	})
	return defaultCatalog, defaultErr
}

// Load reads every YAML, TOML, JSON and Markdown file below root.
func Load(fsys fs.FS, root string) (*Catalog, error) {
	entries := make(map[string]content.Value)

	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		format := formatOf(d.Name())
		if format == "" {
			return nil
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
		key := strings.TrimSuffix(rel, path.Ext(rel))
		if _, dup := entries[key]; dup {
			return fmt.Errorf("catalog: duplicate entry %q (%s)", key, p)
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		v, err := Decode(data, format)
		if err != nil {
			return fmt.Errorf("catalog: %s: %w", p, err)
		}
		entries[key] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Catalog{entries: entries}, nil
}

// New builds a catalog from in-memory entries.
func New(entries map[string]content.Value) *Catalog {
	copied := make(map[string]content.Value, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return &Catalog{entries: copied}
}

func (c *Catalog) Get(key string) (content.Value, bool) {
	if c == nil {
		return content.Null(), false
	}
	v, ok := c.entries[key]
	return v, ok
}

func (c *Catalog) Keys() []string {
	if c == nil {
		return nil
	}
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}
