package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/IannnnnW/ambso-site/pkg/models"
	"github.com/IannnnnW/ambso-site/pkg/services"
)

// slugQueries lists the queries that enumerate records for each
// parameterised page.
var slugQueries = map[string]string{
	"news-article":     "news-slugs",
	"team-member":      "team-slugs",
	"research-study":   "research-slugs",
	"program":          "program-slugs",
	"program-category": "program-categories",
}

// ExportResult lists the files written by Export, relative to its output
// directory.
type ExportResult struct {
	Written []string
	Skipped []string
}

// Export renders every page to dir as static HTML. Parameterised pages are
// enumerated through f and through record-specific catalog entries.
func (s *Site) Export(ctx context.Context, f services.ContentFetcher, dir string) (*ExportResult, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	res := &ExportResult{}

	for _, p := range services.Pages() {
		for _, params := range s.exportParams(ctx, f, p) {
			out := p.URL(params)
			err := s.exportPage(ctx, dir, indexFile(out), p, params)
			switch {
			case errors.Is(err, services.ErrNotFound):
				s.log.Warn("export skipped missing record", "page", p.Name, "path", out)
				res.Skipped = append(res.Skipped, out)
			case err != nil:
				return res, fmt.Errorf("export %s: %w", out, err)
			default:
				res.Written = append(res.Written, indexFile(out))
			}
		}
	}

	if err := s.exportPage(ctx, dir, "404.html", services.NotFoundPage, nil); err != nil {
		return res, fmt.Errorf("export 404: %w", err)
	}
	res.Written = append(res.Written, "404.html")

	s.log.Info("export finished", "dir", dir, "written", len(res.Written), "skipped", len(res.Skipped))
	return res, nil
}

func (s *Site) exportPage(ctx context.Context, dir, file string, p models.Page, params map[string]string) error {
	target := safeJoin(dir, file)
	if target == "" {
		return fmt.Errorf("unsafe output path %q", file)
	}

	assembled, err := s.assembler.Assemble(ctx, p, params)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, p.Template, s.viewData(assembled)); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	return os.WriteFile(target, buf.Bytes(), 0644)
}

// exportParams returns one param set per record of p. Static pages get a
// single nil set.
func (s *Site) exportParams(ctx context.Context, f services.ContentFetcher, p models.Page) []map[string]string {
	names := p.RouteParams()
	if len(names) == 0 {
		return []map[string]string{nil}
	}

	seen := make(map[string]bool)
	var out []map[string]string
	add := func(params map[string]string) {
		key := make([]string, 0, len(names))
		for _, n := range names {
			if params[n] == "" {
				return
			}
			key = append(key, params[n])
		}
		k := strings.Join(key, "/")
		if !seen[k] {
			seen[k] = true
			out = append(out, params)
		}
	}

	if q, ok := slugQueries[p.Name]; ok && f != nil {
		items := f.Fetch(ctx, q, nil)
		for _, item := range items.Items() {
			add(itemParams(names, item.Interface()))
		}
	}

	// record-specific catalog entries, e.g. program-category/{category}
	for _, dep := range p.Dependencies {
		prefix, param, ok := strings.Cut(dep.Fallback, "{")
		if !ok || len(names) != 1 {
			continue
		}
		param = strings.TrimSuffix(param, "}")
		for _, key := range s.assembler.Catalog().Keys() {
			if rest, found := strings.CutPrefix(key, prefix); found && !strings.Contains(rest, "/") {
				add(map[string]string{param: rest})
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return p.URL(out[i]) < p.URL(out[j])
	})
	return out
}

// itemParams maps a slug listing item to route params. A lone param falls
// back to the item's slug.
func itemParams(names []string, item any) map[string]string {
	m, _ := item.(map[string]any)
	params := make(map[string]string, len(names))
	for _, n := range names {
		if v, ok := m[n].(string); ok {
			params[n] = v
		}
	}
	if len(names) == 1 && params[names[0]] == "" {
		params[names[0]] = slugOf(item)
	}
	return params
}

func indexFile(urlPath string) string {
	p := strings.Trim(urlPath, "/")
	if p == "" {
		return "index.html"
	}
	return p + "/index.html"
}

func safeJoin(root, target string) string {
	cleanTarget := filepath.Clean(target)
	if strings.Contains(target, "..") || filepath.IsAbs(cleanTarget) {
		return ""
	}
	return filepath.Join(root, cleanTarget)
}
