package content

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(kv ...any) Value {
	fields := Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		fields[kv[i].(string)] = kv[i+1].(Value)
	}
	return NewNode(fields)
}

func strs(items ...string) Value {
	vals := make([]Value, len(items))
	for i, s := range items {
		vals[i] = String(s)
	}
	return Sequence(vals...)
}

func TestResolveNullOnlyFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		remote   Value
		fallback Value
		want     Value
	}{
		{"null keeps default", Null(), String("default"), String("default")},
		{"false overrides true", Bool(false), Bool(true), Bool(false)},
		{"zero overrides five", Number(0), Number(5), Number(0)},
		{"empty string overrides", String(""), String("default"), String("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(node("x", tt.remote), node("x", tt.fallback))
			assert.True(t, Equal(tt.want, got.Get("x")), "got %v", got.Get("x").Interface())
		})
	}
}

func TestResolveAbsentRemoteReturnsFallback(t *testing.T) {
	fallback := node(
		"hero", node("title", String("Welcome"), "description", String("Desc")),
		"items", strs("a", "b"),
	)

	got := Resolve(Null(), fallback)
	assert.True(t, Equal(fallback, got))

	var zero Value
	got = Resolve(zero, fallback)
	assert.True(t, Equal(fallback, got))
}

func TestResolveReplacesSequencesWholesale(t *testing.T) {
	got := Resolve(node("items", Sequence()), node("items", strs("a", "b")))
	items := got.Get("items")
	require.True(t, items.IsSequence())
	assert.Equal(t, 0, items.Len())

	members := Sequence(
		node("name", String("A"), "role", String("Director")),
		node("name", String("B"), "role", String("Manager")),
	)
	partial := Sequence(node("name", String("A")))
	got = Resolve(node("members", partial), node("members", members))
	assert.Empty(t, cmp.Diff(partial.Interface(), got.Get("members").Interface()))
}

func TestResolveRecursesIntoNodes(t *testing.T) {
	got := Resolve(
		node("hero", node("title", String("T"))),
		node("hero", node("title", String("D"), "description", String("Desc"))),
	)
	want := map[string]any{"title": "T", "description": "Desc"}
	assert.Empty(t, cmp.Diff(want, got.Get("hero").Interface()))
}

func TestResolveKeepsRemoteOnlyKeys(t *testing.T) {
	got := Resolve(node("x", Number(1), "y", Number(2)), node("x", Number(0)))
	want := map[string]any{"x": float64(1), "y": float64(2)}
	assert.Empty(t, cmp.Diff(want, got.Interface()))
}

func TestResolveDropsNullRemoteOnlyKeys(t *testing.T) {
	got := Resolve(node("x", Number(1), "ghost", Null()), node("x", Number(0)))
	assert.False(t, got.Has("ghost"))
}

func TestResolveNullFallbackFieldActsAsMissing(t *testing.T) {
	remote := node("cta", node("text", String("Donate"), "link", Null()))

	explicit := Resolve(remote, node("cta", Null()))
	missing := Resolve(remote, node())

	assert.Empty(t, cmp.Diff(missing.Interface(), explicit.Interface()))
	cta := explicit.Get("cta")
	assert.True(t, cta.Has("link"), "remote-only subtrees pass through unchanged")
	assert.True(t, cta.Get("link").IsNull())
}

func TestResolveShapeMismatchPrefersRemote(t *testing.T) {
	got := Resolve(
		node("a", String("flat"), "b", node("nested", Bool(true)), "c", strs("x")),
		node("a", node("title", String("t")), "b", String("scalar"), "c", node("k", String("v"))),
	)
	assert.Equal(t, "flat", got.Get("a").Interface())
	assert.Equal(t, map[string]any{"nested": true}, got.Get("b").Interface())
	assert.Equal(t, []any{"x"}, got.Get("c").Interface())
}

func TestResolveTopLevelMismatch(t *testing.T) {
	got := Resolve(strs("a"), node("x", String("d")))
	assert.True(t, got.IsSequence())

	got = Resolve(Sequence(), strs("a", "b"))
	assert.True(t, got.IsSequence())
	assert.Equal(t, 0, got.Len())
}

func TestResolveDoesNotMutateInputs(t *testing.T) {
	remote := node(
		"hero", node("title", String("T"), "extra", Number(3)),
		"items", strs("r"),
		"skip", Null(),
	)
	fallback := node(
		"hero", node("title", String("D"), "description", String("Desc")),
		"items", strs("a", "b"),
		"skip", String("kept"),
	)
	remoteBefore := remote.Interface()
	fallbackBefore := fallback.Interface()

	_ = Resolve(remote, fallback)

	assert.Empty(t, cmp.Diff(remoteBefore, remote.Interface()))
	assert.Empty(t, cmp.Diff(fallbackBefore, fallback.Interface()))
}

func TestResolveAboutFallbackIsComplete(t *testing.T) {
	fallback := node(
		"hero", node("title", String("Welcome to AMBSO"), "description", String("Intro")),
		"coreValues", node(
			"sectionTitle", String("Our Core Values"),
			"values", Sequence(node("title", String("Integrity"), "description", String("Ethics"))),
		),
		"videoSection", node("title", String("Learn More"), "videoUrl", String("https://example.org/v")),
	)
	remote := node(
		"hero", node("title", String("About Us"), "description", Null()),
		"coreValues", node("sectionTitle", String("")),
	)

	got := Resolve(remote, fallback)

	assert.Equal(t, "About Us", got.Path("hero", "title").Interface())
	assert.Equal(t, "Intro", got.Path("hero", "description").Interface())
	assert.Equal(t, "", got.Path("coreValues", "sectionTitle").Interface())
	assert.Equal(t, 1, got.Path("coreValues", "values").Len())
	assertComplete(t, fallback, got)
}

// randomValue builds trees biased towards nodes so merges recurse.
func randomValue(r *rand.Rand, depth int) Value {
	n := r.Intn(8)
	if depth <= 0 && n >= 5 {
		n = r.Intn(5)
	}
	switch n {
	case 0:
		return Null()
	case 1:
		return String(fmt.Sprintf("s%d", r.Intn(3)))
	case 2:
		return Number(float64(r.Intn(3)))
	case 3:
		return Bool(r.Intn(2) == 0)
	case 4:
		return String("")
	case 5:
		items := make([]Value, r.Intn(3))
		for i := range items {
			items[i] = randomValue(r, depth-1)
		}
		return Sequence(items...)
	default:
		fields := Fields{}
		for i := 0; i < r.Intn(4)+1; i++ {
			fields[fmt.Sprintf("k%d", r.Intn(5))] = randomValue(r, depth-1)
		}
		return NewNode(fields)
	}
}

func randomNode(r *rand.Rand, depth int) Value {
	for {
		if v := randomValue(r, depth); v.IsNode() {
			return v
		}
	}
}

func assertComplete(t *testing.T, fallback, got Value) {
	t.Helper()
	for _, k := range fallback.Keys() {
		field, ok := got.Lookup(k)
		if !assert.True(t, ok, "missing key %q", k) {
			continue
		}
		if fallback.Get(k).IsNull() {
			continue
		}
		assert.False(t, field.IsNull(), "key %q resolved to null", k)
		if fallback.Get(k).IsNode() && field.IsNode() {
			assertComplete(t, fallback.Get(k), field)
		}
	}
}

func TestResolveProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		fallback := randomNode(r, 3)
		var remote Value
		if r.Intn(5) > 0 {
			remote = randomNode(r, 3)
		}
		fallbackBefore := fallback.Interface()
		remoteBefore := remote.Interface()

		once := Resolve(remote, fallback)
		twice := Resolve(once, fallback)

		require.True(t, Equal(once, twice), "not idempotent:\n%s", cmp.Diff(once.Interface(), twice.Interface()))
		assertComplete(t, fallback, once)
		require.Empty(t, cmp.Diff(fallbackBefore, fallback.Interface()))
		require.Empty(t, cmp.Diff(remoteBefore, remote.Interface()))
	}
}
