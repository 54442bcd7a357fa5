package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/IannnnnW/ambso-site/pkg/catalog"
	"github.com/IannnnnW/ambso-site/pkg/content"
	"github.com/IannnnnW/ambso-site/pkg/logger"
	"github.com/IannnnnW/ambso-site/pkg/models"
	"golang.org/x/sync/errgroup"
)

// ErrNotFound means a page's required record exists neither in the CMS nor
// in the fallback catalog.
var ErrNotFound = errors.New("content not found")

// ContentFetcher is satisfied by *Fetcher.
type ContentFetcher interface {
	Fetch(ctx context.Context, key string, params map[string]any) content.Value
}

// Source tells where a resolved dependency came from.
type Source string

const (
	SourceCMS      Source = "cms"      // CMS document, no fallback entry
	SourceMerged   Source = "merged"   // CMS document merged into its fallback
	SourceFallback Source = "fallback" // CMS had nothing, fallback only
	SourceStatic   Source = "static"   // catalog-only dependency
)

// Assembled is a page with every dependency resolved.
type Assembled struct {
	Page    models.Page
	Params  map[string]string
	Content map[string]content.Value
	Sources map[string]Source
}

// Data returns the resolved content as plain values for templates.
func (a *Assembled) Data() map[string]any {
	out := make(map[string]any, len(a.Content))
	for name, v := range a.Content {
		out[name] = v.Interface()
	}
	return out
}

type Assembler struct {
	fetcher     ContentFetcher
	catalog     *catalog.Catalog
	concurrency int
	log         *logger.Logger
}

func NewAssembler(f ContentFetcher, c *catalog.Catalog, concurrency int, log *logger.Logger) *Assembler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Assembler{
		fetcher:     f,
		catalog:     c,
		concurrency: concurrency,
		log:         log.With("service", "PageAssembler"),
	}
}

func (a *Assembler) Catalog() *catalog.Catalog { return a.catalog }

// Assemble fetches every dependency of page concurrently, waits for all of
// them and resolves each against its fallback entry.
func (a *Assembler) Assemble(ctx context.Context, page models.Page, params map[string]string) (*Assembled, error) {
	deps := page.Dependencies
	remotes := make([]content.Value, len(deps))

	var g errgroup.Group
	if a.concurrency > 0 {
		g.SetLimit(a.concurrency)
	}
	for i, dep := range deps {
		if dep.Query == "" || a.fetcher == nil {
			continue
		}
		i, dep := i, dep
		g.Go(func() error {
			remotes[i] = a.fetcher.Fetch(ctx, dep.Query, queryParams(dep, params))
			return nil
		})
	}
	// fetches fail open, so there is no error to collect
	_ = g.Wait()

	out := &Assembled{
		Page:    page,
		Params:  params,
		Content: make(map[string]content.Value, len(deps)),
		Sources: make(map[string]Source, len(deps)),
	}
	for i, dep := range deps {
		resolved, source, err := a.resolve(dep, remotes[i], params)
		if err != nil {
			return nil, fmt.Errorf("page %s: %s: %w", page.Name, dep.Name, err)
		}
		out.Content[dep.Name] = resolved
		out.Sources[dep.Name] = source
	}

	a.log.Debug("page assembled", "page", page.Name, "sources", out.Sources)
	return out, nil
}

func (a *Assembler) resolve(dep models.Dependency, remote content.Value, params map[string]string) (content.Value, Source, error) {
	key, specific := expandKey(dep.Fallback, params)
	fallback, found := a.catalog.Get(key)

	if remote.IsNull() && dep.Required && (!specific || !found) {
		return content.Null(), "", ErrNotFound
	}
	if !found && !specific && dep.Fallback != "" {
		return content.Null(), "", fmt.Errorf("fallback entry %q missing from catalog", key)
	}

	resolved := content.Resolve(remote, fallback)
	switch {
	case dep.Query == "":
		return resolved, SourceStatic, nil
	case remote.IsNull():
		return resolved, SourceFallback, nil
	case !found:
		return resolved, SourceCMS, nil
	}
	return resolved, SourceMerged, nil
}

// expandKey fills {param} placeholders; specific reports whether any were
// present.
func expandKey(key string, params map[string]string) (string, bool) {
	if !strings.Contains(key, "{") {
		return key, false
	}
	pairs := make([]string, 0, len(params)*2)
	for k, v := range params {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(key), true
}

func queryParams(dep models.Dependency, params map[string]string) map[string]any {
	if len(dep.Params) == 0 && len(dep.Bind) == 0 {
		return nil
	}
	out := make(map[string]any, len(dep.Params)+len(dep.Bind))
	for k, v := range dep.Params {
		out[k] = v
	}
	for name, routeParam := range dep.Bind {
		out[name] = params[routeParam]
	}
	return out
}
