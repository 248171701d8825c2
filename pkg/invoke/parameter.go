// Package invoke binds named, typed and positional values to the parameters
// of arbitrary Go functions.
//
// A handler is described once by its Parameter list (position, name, type and
// optional default). A Chain of resolvers then decides, for every call, which
// value from a Candidates bag goes to which parameter:
//
//  1. positional candidates
//  2. candidates with the exact parameter name
//  3. candidates whose hyphen-stripped, lower-cased name matches
//  4. candidates registered under the parameter's type
//  5. container entries keyed by the parameter's type (opt-in)
//  6. container entries keyed by the parameter's name (opt-in)
//  7. the parameter's default value
//
// A position filled by an earlier resolver is never revisited, so explicit
// values outrank container values, which outrank defaults.
package invoke

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// Parameter describes one parameter of a handler function.
// Parameters are computed once when the handler is described and are
// read-only afterwards.
type Parameter struct {
	// Position is the zero-based index in the function signature.
	Position int
	// Name is the name the parameter answers to. Go does not expose
	// parameter names through reflection, so names are declared with
	// Name or Default when describing the handler. Undeclared names
	// read "arg<N>".
	Name string
	// Type is the Go type of the parameter. For variadic parameters it is
	// the slice type.
	Type reflect.Type
	// Variadic is true for the final "...T" parameter of a variadic function.
	Variadic bool
	// HasDefault tells whether Default holds a declared default value.
	HasDefault bool
	Default    any

	named bool
}

// Named reports whether the parameter name was declared explicitly.
// Unnamed parameters are only bound by position or by type.
func (p Parameter) Named() bool {
	return p.named
}

// DeclaredType returns the identifier of the parameter's declared type.
// Only named types from a package (possibly behind a pointer) and non-empty
// interfaces count as declared; builtin types such as string, int or any do not.
func (p Parameter) DeclaredType() (string, bool) {
	if p.Type == nil || !isDeclaredType(p.Type) {
		return "", false
	}
	return TypeKey(p.Type), true
}

func (p Parameter) String() string {
	return fmt.Sprintf("$%s", p.Name)
}

// Param declares the name, and optionally the default value, of a handler
// parameter. Params are matched to function parameters in order.
type Param struct {
	name       string
	def        any
	hasDefault bool
}

// Name declares a parameter name without default.
func Name(name string) Param {
	return Param{name: name}
}

// Default declares a parameter name together with its default value.
func Default(name string, value any) Param {
	return Param{name: name, def: value, hasDefault: true}
}

// Names declares several parameter names at once.
func Names(names ...string) []Param {
	params := make([]Param, len(names))
	for i, name := range names {
		params[i] = Name(name)
	}
	return params
}

// TypeKey returns the identifier used to look up values of type t in a
// Candidates bag or a container. It is the type's Go syntax, e.g.
// "*console.Input" or "context.Context".
func TypeKey(t reflect.Type) string {
	return t.String()
}

// TypeKeyOf returns the TypeKey of T.
func TypeKeyOf[T any]() string {
	return TypeKey(reflect.TypeFor[T]())
}

func isDeclaredType(t reflect.Type) bool {
	base := t
	for base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	if base.Kind() == reflect.Interface {
		return base.NumMethod() > 0
	}
	return base.PkgPath() != ""
}

// reflectParameters computes the Parameter list of the function type fnType.
func reflectParameters(fnType reflect.Type, params []Param) ([]Parameter, error) {
	if fnType.Kind() != reflect.Func {
		return nil, fmt.Errorf("expected a function, got %s", fnType)
	}
	if len(params) > fnType.NumIn() {
		return nil, fmt.Errorf("%d parameter names declared for a function with %d parameters", len(params), fnType.NumIn())
	}

	seen := make(map[string]bool, len(params))
	result := make([]Parameter, fnType.NumIn())
	for i := range fnType.NumIn() {
		parameter := Parameter{
			Position: i,
			Name:     fmt.Sprintf("arg%d", i),
			Type:     fnType.In(i),
			Variadic: fnType.IsVariadic() && i == fnType.NumIn()-1,
		}
		if i < len(params) && params[i].name != "" {
			name := params[i].name
			if seen[name] {
				return nil, fmt.Errorf("parameter name %q declared twice", name)
			}
			seen[name] = true
			parameter.Name = name
			parameter.named = true
			parameter.HasDefault = params[i].hasDefault
			parameter.Default = params[i].def
		}
		result[i] = parameter
	}
	return result, nil
}

// NormalizeName lower-cases name and removes its hyphens, so that "first-name",
// "firstName" and "firstname" all normalize to "firstname".
func NormalizeName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "-", ""))
}

// HyphenateName converts a camelCase name to its hyphenated form:
// "dryRun" becomes "dry-run".
func HyphenateName(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
