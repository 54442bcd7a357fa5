package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/IannnnnW/ambso-site/pkg/catalog"
	"github.com/IannnnnW/ambso-site/pkg/content"
	"github.com/IannnnnW/ambso-site/pkg/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fetchFunc func(ctx context.Context, key string, params map[string]any) content.Value

func (f fetchFunc) Fetch(ctx context.Context, key string, params map[string]any) content.Value {
	return f(ctx, key, params)
}

func testCatalog() *catalog.Catalog {
	return catalog.New(map[string]content.Value{
		"settings": content.NewNode(content.Fields{"siteName": content.String("AMBSO")}),
		"about": content.NewNode(content.Fields{
			"hero": content.NewNode(content.Fields{
				"title":       content.String("Welcome"),
				"description": content.String("Default description"),
			}),
		}),
		"records/article":  content.NewNode(content.Fields{"title": content.String(""), "tags": content.Sequence()}),
		"category/known":   content.NewNode(content.Fields{"title": content.String("Known Category")}),
		"collections/news": content.Sequence(),
	})
}

func TestAssembleMergesEachDependency(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := fetchFunc(func(_ context.Context, key string, _ map[string]any) content.Value {
		switch key {
		case "about":
			return content.NewNode(content.Fields{
				"hero": content.NewNode(content.Fields{"title": content.String("About AMBSO")}),
			})
		case "news":
			return content.Sequence(content.NewNode(content.Fields{"title": content.String("Launch")}))
		}
		return content.Null()
	})
	a := NewAssembler(f, testCatalog(), 4, nil)

	page := models.Page{Name: "about", Dependencies: []models.Dependency{
		{Name: "settings", Query: "settings", Fallback: "settings"},
		{Name: "content", Query: "about", Fallback: "about"},
		{Name: "news", Query: "news", Fallback: "collections/news"},
		{Name: "static", Fallback: "settings"},
	}}

	res, err := a.Assemble(context.Background(), page, nil)
	require.NoError(t, err)

	want := map[string]any{"title": "About AMBSO", "description": "Default description"}
	assert.Empty(t, cmp.Diff(want, res.Data()["content"].(map[string]any)["hero"]))
	assert.Equal(t, 1, res.Content["news"].Len())
	assert.Equal(t, "AMBSO", res.Content["settings"].Get("siteName").Interface())

	assert.Equal(t, map[string]Source{
		"settings": SourceFallback,
		"content":  SourceMerged,
		"news":     SourceMerged,
		"static":   SourceStatic,
	}, res.Sources)
}

func TestAssembleAboutWhenCMSThrows(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := newStubQuerier()
	q.errs["Q-about"] = errors.New("sanity: status 503")
	q.errs["Q-settings"] = errors.New("sanity: status 503")
	f := NewFetcher(q, map[string]string{"about": "Q-about", "settings": "Q-settings"}, time.Second, nil)

	cat := testCatalog()
	a := NewAssembler(f, cat, 0, nil)
	res, err := a.Assemble(context.Background(), models.Page{Name: "about", Dependencies: []models.Dependency{
		{Name: "settings", Query: "settings", Fallback: "settings"},
		{Name: "content", Query: "about", Fallback: "about"},
	}}, nil)
	require.NoError(t, err)

	about, _ := cat.Get("about")
	assert.True(t, content.Equal(about, res.Content["content"]))
	assert.Equal(t, SourceFallback, res.Sources["content"])
}

func TestAssembleFetchesConcurrentlyAndIsolatesFailures(t *testing.T) {
	defer goleak.VerifyNone(t)

	var inFlight, peak int32
	release := make(chan struct{})
	var once sync.Once

	f := fetchFunc(func(ctx context.Context, key string, _ map[string]any) content.Value {
		n := atomic.AddInt32(&inFlight, 1)
		defer atomic.AddInt32(&inFlight, -1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		if n == 3 {
			once.Do(func() { close(release) })
		}
		select {
		case <-release:
		case <-time.After(2 * time.Second):
		}
		if key == "about" {
			// a failed fetch surfaces as absence
			return content.Null()
		}
		return content.NewNode(content.Fields{"siteName": content.String("From CMS")})
	})

	a := NewAssembler(f, testCatalog(), 8, nil)
	res, err := a.Assemble(context.Background(), models.Page{Name: "p", Dependencies: []models.Dependency{
		{Name: "a", Query: "settings", Fallback: "settings"},
		{Name: "b", Query: "about", Fallback: "about"},
		{Name: "c", Query: "settings", Fallback: "settings"},
	}}, nil)
	require.NoError(t, err)

	assert.EqualValues(t, 3, atomic.LoadInt32(&peak), "fetches should overlap")
	assert.Equal(t, "From CMS", res.Content["a"].Get("siteName").Interface())
	assert.Equal(t, "From CMS", res.Content["c"].Get("siteName").Interface())
	assert.Equal(t, "Welcome", res.Content["b"].Path("hero", "title").Interface())
}

func TestAssembleRespectsConcurrencyLimit(t *testing.T) {
	defer goleak.VerifyNone(t)

	var inFlight, peak int32
	f := fetchFunc(func(_ context.Context, _ string, _ map[string]any) content.Value {
		n := atomic.AddInt32(&inFlight, 1)
		if n > atomic.LoadInt32(&peak) {
			atomic.StoreInt32(&peak, n)
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return content.Null()
	})

	deps := make([]models.Dependency, 6)
	for i := range deps {
		deps[i] = models.Dependency{Name: string(rune('a' + i)), Query: "settings", Fallback: "settings"}
	}
	_, err := NewAssembler(f, testCatalog(), 1, nil).Assemble(context.Background(), models.Page{Name: "p", Dependencies: deps}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&peak))
}

func TestAssembleRequiredRecords(t *testing.T) {
	nothing := fetchFunc(func(context.Context, string, map[string]any) content.Value { return content.Null() })
	a := NewAssembler(nothing, testCatalog(), 0, nil)

	article := models.Page{Name: "article", Dependencies: []models.Dependency{
		{Name: "record", Query: "article", Fallback: "records/article", Bind: map[string]string{"slug": "slug"}, Required: true},
	}}
	_, err := a.Assemble(context.Background(), article, map[string]string{"slug": "missing"})
	assert.ErrorIs(t, err, ErrNotFound)

	category := models.Page{Name: "category", Dependencies: []models.Dependency{
		{Name: "record", Query: "category", Fallback: "category/{category}", Required: true},
	}}
	res, err := a.Assemble(context.Background(), category, map[string]string{"category": "known"})
	require.NoError(t, err)
	assert.Equal(t, "Known Category", res.Content["record"].Get("title").Interface())

	_, err = a.Assemble(context.Background(), category, map[string]string{"category": "unknown"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssembleRecordFromCMSOnly(t *testing.T) {
	f := fetchFunc(func(_ context.Context, _ string, params map[string]any) content.Value {
		return content.NewNode(content.Fields{"title": content.String("Category " + params["slug"].(string))})
	})
	a := NewAssembler(f, testCatalog(), 0, nil)

	res, err := a.Assemble(context.Background(), models.Page{Name: "category", Dependencies: []models.Dependency{
		{Name: "record", Query: "category", Fallback: "category/{category}", Bind: map[string]string{"slug": "category"}, Required: true},
	}}, map[string]string{"category": "new"})
	require.NoError(t, err)
	assert.Equal(t, "Category new", res.Content["record"].Get("title").Interface())
	assert.Equal(t, SourceCMS, res.Sources["record"])
}

func TestAssembleMissingFallbackIsConfigError(t *testing.T) {
	a := NewAssembler(nil, testCatalog(), 0, nil)
	_, err := a.Assemble(context.Background(), models.Page{Name: "p", Dependencies: []models.Dependency{
		{Name: "x", Query: "x", Fallback: "does-not-exist"},
	}}, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "does-not-exist")
}

func TestQueryParams(t *testing.T) {
	dep := models.Dependency{
		Params: map[string]any{"status": "active"},
		Bind:   map[string]string{"categorySlug": "category"},
	}
	got := queryParams(dep, map[string]string{"category": "clinical", "other": "ignored"})
	assert.Equal(t, map[string]any{"status": "active", "categorySlug": "clinical"}, got)
	assert.Nil(t, queryParams(models.Dependency{}, map[string]string{"slug": "x"}))
}

func TestRegistryFallbacksExistInDefaultCatalog(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	for _, p := range append(Pages(), NotFoundPage) {
		for _, dep := range p.Dependencies {
			if _, specific := expandKey(dep.Fallback, nil); specific {
				continue
			}
			_, ok := cat.Get(dep.Fallback)
			assert.True(t, ok, "page %s dependency %s: fallback %q", p.Name, dep.Name, dep.Fallback)
			if dep.Query != "" {
				_, ok := Queries[dep.Query]
				assert.True(t, ok, "page %s dependency %s: query %q", p.Name, dep.Name, dep.Query)
			}
		}
	}
}

func TestEveryPageRendersWithoutCMS(t *testing.T) {
	defer goleak.VerifyNone(t)

	cat, err := catalog.Default()
	require.NoError(t, err)
	a := NewAssembler(NewFetcher(nil, Queries, time.Second, nil), cat, 4, nil)

	for _, p := range Pages() {
		if !p.Static() {
			continue
		}
		res, err := a.Assemble(context.Background(), p, nil)
		require.NoError(t, err, p.Name)
		for _, dep := range p.Dependencies {
			assert.False(t, res.Content[dep.Name].IsNull(), "%s.%s", p.Name, dep.Name)
		}
	}

	_, ok := FindPage("about")
	assert.True(t, ok)
	_, ok = FindPage("nope")
	assert.False(t, ok)
}
