package invoke

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// arrayContainer implements Container over a plain map for testing.
type arrayContainer struct {
	entries map[string]any
	failOn  string
}

func newArrayContainer(entries map[string]any) *arrayContainer {
	return &arrayContainer{entries: entries}
}

func (c *arrayContainer) Get(key string) (any, error) {
	if key == c.failOn {
		return nil, errors.New("container is broken")
	}
	v, ok := c.entries[key]
	if !ok {
		return nil, &NotFoundError{Key: key}
	}
	return v, nil
}

func (c *arrayContainer) Has(key string) bool {
	if key == c.failOn {
		return true
	}
	_, ok := c.entries[key]
	return ok
}

type service struct {
	Foo string
}

func describe(t *testing.T, fn any, params ...Param) []Parameter {
	t.Helper()
	c := Func(fn, params...)
	require.NoError(t, c.Err())
	return c.Parameters()
}

func TestPositionalResolver(t *testing.T) {
	params := describe(t, func(a, b string) {}, Names("a", "b")...)
	candidates := Positional("first")

	delta, err := PositionalResolver{}.Resolve(params, candidates, Resolved{})
	require.NoError(t, err)
	assert.Equal(t, Resolved{0: "first"}, delta)

	delta, err = PositionalResolver{}.Resolve(params, candidates, Resolved{0: "kept"})
	require.NoError(t, err)
	assert.Empty(t, delta)
}

func TestPositionalResolver_Variadic(t *testing.T) {
	params := describe(t, func(sep string, parts ...string) {}, Names("sep", "parts")...)

	tests := []struct {
		name       string
		candidates *Candidates
		expected   Resolved
	}{
		{"trailing values are collected", Positional(":", "a", "b", "c"), Resolved{0: ":", 1: []any{"a", "b", "c"}}},
		{"single value is kept as is", Positional(":", []string{"a", "b"}), Resolved{0: ":", 1: []string{"a", "b"}}},
		{"no trailing value", Positional(":"), Resolved{0: ":"}},
		{"gap before the values", NewCandidates().SetPosition(0, ":").SetPosition(3, "d"), Resolved{0: ":", 1: []any{"d"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta, err := PositionalResolver{}.Resolve(params, tt.candidates, Resolved{})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, delta)
		})
	}
}

func TestNameResolver(t *testing.T) {
	params := describe(t, func(name string, other string) {}, Name("name"))
	candidates := NewCandidates().SetName("name", "john").SetName("arg1", "ignored")

	delta, err := NameResolver{}.Resolve(params, candidates, Resolved{})
	require.NoError(t, err)
	assert.Equal(t, Resolved{0: "john"}, delta, "unnamed parameters are never bound by name")
}

func TestHyphenatedNameResolver(t *testing.T) {
	tests := []struct {
		name      string
		paramName string
		candidate string
		bound     bool
	}{
		{"lowercase parameter", "firstname", "first-name", true},
		{"mixed case parameter", "firstName", "first-name", true},
		{"option with two hyphens", "yellLouder", "yell-louder", true},
		{"unrelated name", "lastName", "first-name", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := describe(t, func(string) {}, Name(tt.paramName))
			candidates := NewCandidates().SetName(tt.candidate, "john")

			delta, err := HyphenatedNameResolver{}.Resolve(params, candidates, Resolved{})
			require.NoError(t, err)
			if tt.bound {
				assert.Equal(t, Resolved{0: "john"}, delta)
			} else {
				assert.Empty(t, delta)
			}
		})
	}
}

func TestHyphenatedNameResolver_AmbiguousParameters(t *testing.T) {
	params := describe(t, func(a, b string) {}, Name("dryRun"), Name("dryrun"))
	candidates := NewCandidates().SetName("dry-run", "yes")

	delta, err := HyphenatedNameResolver{}.Resolve(params, candidates, Resolved{})
	require.NoError(t, err)
	assert.Empty(t, delta)
}

func TestHyphenatedNameResolver_FirstCandidateWins(t *testing.T) {
	params := describe(t, func(string) {}, Name("dryRun"))
	candidates := NewCandidates().SetName("dry-run", "first").SetName("DRY-RUN", "second")

	delta, err := HyphenatedNameResolver{}.Resolve(params, candidates, Resolved{})
	require.NoError(t, err)
	assert.Equal(t, Resolved{0: "first"}, delta)
}

func TestTypedCandidateResolver(t *testing.T) {
	var buf strings.Builder
	svc := &service{Foo: "hello"}

	params := describe(t, func(s *service, w io.Writer, name string) {}, Names("s", "w", "name")...)
	candidates := NewCandidates().Provide(svc).Provide(&buf).SetName("name", "john")

	delta, err := TypedCandidateResolver{}.Resolve(params, candidates, Resolved{})
	require.NoError(t, err)
	assert.Same(t, svc, delta[0])
	assert.Same(t, &buf, delta[1], "interfaces are satisfied by assignable candidates")
	assert.False(t, delta.Has(2), "builtin types are not declared types")
}

func TestContainerResolvers(t *testing.T) {
	byType := &service{Foo: "by type"}
	byName := &service{Foo: "by name"}
	container := newArrayContainer(map[string]any{
		TypeKeyOf[*service](): byType,
		"param":               byName,
		"nothing":             nil,
	})

	params := describe(t, func(param *service, nothing any) {}, Names("param", "nothing")...)

	delta, err := ContainerTypeResolver{Container: container}.Resolve(params, NewCandidates(), Resolved{})
	require.NoError(t, err)
	assert.Equal(t, Resolved{0: byType}, delta)

	delta, err = ContainerNameResolver{Container: container}.Resolve(params, NewCandidates(), Resolved{})
	require.NoError(t, err)
	assert.Equal(t, Resolved{0: byName, 1: nil}, delta, "a present nil entry is a value")
}

func TestContainerResolvers_PropagateContainerFailures(t *testing.T) {
	container := newArrayContainer(map[string]any{})
	container.failOn = "param"

	params := describe(t, func(any) {}, Name("param"))
	_, err := ContainerNameResolver{Container: container}.Resolve(params, NewCandidates(), Resolved{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "container is broken")
}

func TestDefaultValueResolver(t *testing.T) {
	params := describe(t, func(a, b int) {}, Default("times", 15), Name("other"))

	delta, err := DefaultValueResolver{}.Resolve(params, NewCandidates(), Resolved{})
	require.NoError(t, err)
	assert.Equal(t, Resolved{0: 15}, delta)
}

func TestChain_Precedence(t *testing.T) {
	byType := &service{Foo: "hello"}
	byName := &service{Foo: "nope!"}
	container := newArrayContainer(map[string]any{
		TypeKeyOf[*service](): byType,
		"param":               byName,
	})

	t.Run("explicit values outrank the container", func(t *testing.T) {
		explicit := &service{Foo: "explicit"}
		params := describe(t, func(*service) {}, Name("param"))
		chain := DefaultChain(container, true, true)

		resolved, err := chain.Resolve(params, NewCandidates().SetName("param", explicit))
		require.NoError(t, err)
		assert.Same(t, explicit, resolved[0])
	})

	t.Run("type hints outrank parameter names", func(t *testing.T) {
		params := describe(t, func(*service) {}, Name("param"))
		chain := DefaultChain(container, true, true)

		resolved, err := chain.Resolve(params, NewCandidates())
		require.NoError(t, err)
		assert.Same(t, byType, resolved[0])
	})

	t.Run("container outranks defaults", func(t *testing.T) {
		params := describe(t, func(any) {}, Default("param", "default"))
		chain := DefaultChain(container, false, true)

		resolved, err := chain.Resolve(params, NewCandidates())
		require.NoError(t, err)
		assert.Same(t, byName, resolved[0])
	})

	t.Run("disabled injection leaves the container alone", func(t *testing.T) {
		params := describe(t, func(any) {}, Default("param", "default"))
		chain := DefaultChain(container, false, false)

		resolved, err := chain.Resolve(params, NewCandidates())
		require.NoError(t, err)
		assert.Equal(t, "default", resolved[0])
	})

	t.Run("exact name outranks hyphenated name", func(t *testing.T) {
		params := describe(t, func(string) {}, Name("dryRun"))
		chain := DefaultChain(nil, false, false)

		resolved, err := chain.Resolve(params, NewCandidates().SetName("dry-run", "hyphen").SetName("dryRun", "exact"))
		require.NoError(t, err)
		assert.Equal(t, "exact", resolved[0])
	})
}

// overwritingResolver tries to rebind every position.
type overwritingResolver struct{}

func (overwritingResolver) Name() string { return "overwriting" }

func (overwritingResolver) Resolve(params []Parameter, _ *Candidates, _ Resolved) (Resolved, error) {
	delta := Resolved{}
	for _, p := range params {
		delta[p.Position] = "overwritten"
	}
	return delta, nil
}

func TestChain_FirstWriterWins(t *testing.T) {
	params := describe(t, func(a, b string) {}, Names("a", "b")...)
	chain := Chain{NameResolver{}, overwritingResolver{}}

	resolved, err := chain.Resolve(params, NewCandidates().SetName("a", "first"))
	require.NoError(t, err)
	assert.Equal(t, Resolved{0: "first", 1: "overwritten"}, resolved)
}

func TestDefaultChain_Composition(t *testing.T) {
	names := func(chain Chain) []string {
		out := make([]string, len(chain))
		for i, r := range chain {
			out[i] = r.Name()
		}
		return out
	}

	assert.Equal(t, []string{"positional", "name", "hyphenated", "typed", "default"}, names(DefaultChain(nil, true, true)))

	container := newArrayContainer(nil)
	assert.Equal(t,
		[]string{"positional", "name", "hyphenated", "typed", "container-type", "container-name", "default"},
		names(DefaultChain(container, true, true)))
	assert.Equal(t,
		[]string{"positional", "name", "hyphenated", "typed", "container-name", "default"},
		names(DefaultChain(container, false, true)))
}

func TestParameter_DeclaredType(t *testing.T) {
	params := describe(t, func(*service, service, io.Writer, string, any, []string) {})

	tests := []struct {
		position int
		key      string
		declared bool
	}{
		{0, "*invoke.service", true},
		{1, "invoke.service", true},
		{2, "io.Writer", true},
		{3, "", false},
		{4, "", false},
		{5, "", false},
	}

	for _, tt := range tests {
		key, declared := params[tt.position].DeclaredType()
		assert.Equal(t, tt.declared, declared, "position %d", tt.position)
		assert.Equal(t, tt.key, key, "position %d", tt.position)
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, "firstname", NormalizeName("first-name"))
	assert.Equal(t, "firstname", NormalizeName("firstName"))
	assert.Equal(t, "dry-run", HyphenateName("dryRun"))
	assert.Equal(t, "yell-louder-now", HyphenateName("yellLouderNow"))
	assert.Equal(t, "name", HyphenateName("name"))
	assert.Equal(t, "*invoke.service", TypeKey(reflect.TypeOf(&service{})))
}
