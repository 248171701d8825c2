package invoke

import (
	"fmt"
	"reflect"
)

// Resolved maps parameter positions to the values bound to them.
type Resolved map[int]any

// Has reports whether position is already bound.
func (r Resolved) Has(position int) bool {
	_, ok := r[position]
	return ok
}

// merge returns a new map holding r plus the positions of delta that r does
// not bind yet.
func (r Resolved) merge(delta Resolved) Resolved {
	out := make(Resolved, len(r)+len(delta))
	for position, v := range r {
		out[position] = v
	}
	for position, v := range delta {
		if _, exists := out[position]; !exists {
			out[position] = v
		}
	}
	return out
}

// Resolver binds candidate values to parameters. Resolve returns only the
// bindings it adds; positions already present in resolved must be left alone.
type Resolver interface {
	Name() string
	Resolve(params []Parameter, candidates *Candidates, resolved Resolved) (Resolved, error)
}

// Chain applies resolvers in order. Earlier resolvers take precedence.
type Chain []Resolver

// Resolve folds every resolver of the chain over an empty binding.
func (c Chain) Resolve(params []Parameter, candidates *Candidates) (Resolved, error) {
	acc, _, err := c.resolve(params, candidates)
	return acc, err
}

// resolve is Resolve that also records which resolver bound each position.
func (c Chain) resolve(params []Parameter, candidates *Candidates) (Resolved, map[int]string, error) {
	if candidates == nil {
		candidates = NewCandidates()
	}
	acc := Resolved{}
	origin := make(map[int]string)
	for _, resolver := range c {
		if len(acc) == len(params) {
			break
		}
		delta, err := resolver.Resolve(params, candidates, acc)
		if err != nil {
			return nil, nil, fmt.Errorf("%s resolver: %w", resolver.Name(), err)
		}
		for position := range delta {
			if !acc.Has(position) {
				origin[position] = resolver.Name()
			}
		}
		acc = acc.merge(delta)
	}
	return acc, origin, nil
}

// DefaultChain returns the resolver chain for the given container settings.
// Container resolvers are only included when container is not nil and the
// matching injection mode is enabled.
func DefaultChain(container Container, byType, byName bool) Chain {
	chain := Chain{
		PositionalResolver{},
		NameResolver{},
		HyphenatedNameResolver{},
		TypedCandidateResolver{},
	}
	if container != nil && byType {
		chain = append(chain, ContainerTypeResolver{Container: container})
	}
	if container != nil && byName {
		chain = append(chain, ContainerNameResolver{Container: container})
	}
	return append(chain, DefaultValueResolver{})
}

// PositionalResolver binds candidates stored by position. A variadic
// parameter collects every positional candidate from its own position on.
type PositionalResolver struct{}

// Name implements Resolver.
func (PositionalResolver) Name() string { return "positional" }

// Resolve implements Resolver.
func (PositionalResolver) Resolve(params []Parameter, candidates *Candidates, resolved Resolved) (Resolved, error) {
	delta := Resolved{}
	for _, p := range params {
		if resolved.Has(p.Position) {
			continue
		}
		if p.Variadic {
			if v, ok := variadicCandidates(p.Position, candidates); ok {
				delta[p.Position] = v
			}
			continue
		}
		if v, ok := candidates.Position(p.Position); ok {
			delta[p.Position] = v
		}
	}
	return delta, nil
}

// variadicCandidates returns the positional candidates at or after from. A
// single candidate at from is returned as is so that a slice is spread.
func variadicCandidates(from int, candidates *Candidates) (any, bool) {
	var (
		values []any
		first  = -1
	)
	for _, position := range candidates.Positions() {
		if position < from {
			continue
		}
		if first < 0 {
			first = position
		}
		v, _ := candidates.Position(position)
		values = append(values, v)
	}

	switch {
	case len(values) == 0:
		return nil, false
	case len(values) == 1 && first == from:
		return values[0], true
	}
	return values, true
}

// NameResolver binds candidates whose name equals the parameter name.
type NameResolver struct{}

// Name implements Resolver.
func (NameResolver) Name() string { return "name" }

// Resolve implements Resolver.
func (NameResolver) Resolve(params []Parameter, candidates *Candidates, resolved Resolved) (Resolved, error) {
	delta := Resolved{}
	for _, p := range params {
		if !p.Named() || resolved.Has(p.Position) {
			continue
		}
		if v, ok := candidates.Name(p.Name); ok {
			delta[p.Position] = v
		}
	}
	return delta, nil
}

// HyphenatedNameResolver binds candidates whose normalized name matches the
// normalized parameter name, so "--dry-run" reaches a parameter "dryRun".
// Parameter names that collide once normalized are ignored.
type HyphenatedNameResolver struct{}

// Name implements Resolver.
func (HyphenatedNameResolver) Name() string { return "hyphenated" }

// Resolve implements Resolver.
func (HyphenatedNameResolver) Resolve(params []Parameter, candidates *Candidates, resolved Resolved) (Resolved, error) {
	positions := make(map[string][]int)
	for _, p := range params {
		if p.Named() {
			key := NormalizeName(p.Name)
			positions[key] = append(positions[key], p.Position)
		}
	}

	delta := Resolved{}
	for _, name := range candidates.Names() {
		matches := positions[NormalizeName(name)]
		if len(matches) != 1 {
			continue
		}
		position := matches[0]
		if resolved.Has(position) || delta.Has(position) {
			continue
		}
		v, _ := candidates.Name(name)
		delta[position] = v
	}
	return delta, nil
}

// TypedCandidateResolver binds candidates stored by type identifier. A
// parameter first takes the candidate stored under its own type; failing that,
// the first candidate assignable to the parameter type.
type TypedCandidateResolver struct{}

// Name implements Resolver.
func (TypedCandidateResolver) Name() string { return "typed" }

// Resolve implements Resolver.
func (TypedCandidateResolver) Resolve(params []Parameter, candidates *Candidates, resolved Resolved) (Resolved, error) {
	delta := Resolved{}
	for _, p := range params {
		if resolved.Has(p.Position) {
			continue
		}
		key, declared := p.DeclaredType()
		if !declared {
			continue
		}
		if v, ok := candidates.Type(key); ok {
			delta[p.Position] = v
			continue
		}
		for _, candidateKey := range candidates.Types() {
			v, _ := candidates.Type(candidateKey)
			if v != nil && reflect.TypeOf(v).AssignableTo(p.Type) {
				delta[p.Position] = v
				break
			}
		}
	}
	return delta, nil
}

// ContainerTypeResolver binds container entries stored under the parameter's
// declared type identifier.
type ContainerTypeResolver struct {
	Container Container
}

// Name implements Resolver.
func (ContainerTypeResolver) Name() string { return "container-type" }

// Resolve implements Resolver.
func (r ContainerTypeResolver) Resolve(params []Parameter, _ *Candidates, resolved Resolved) (Resolved, error) {
	delta := Resolved{}
	for _, p := range params {
		if resolved.Has(p.Position) {
			continue
		}
		key, declared := p.DeclaredType()
		if !declared {
			continue
		}
		v, found, err := lookup(r.Container, key)
		if err != nil {
			return nil, fmt.Errorf("looking up %q: %w", key, err)
		}
		if found {
			delta[p.Position] = v
		}
	}
	return delta, nil
}

// ContainerNameResolver binds container entries stored under the parameter name.
type ContainerNameResolver struct {
	Container Container
}

// Name implements Resolver.
func (ContainerNameResolver) Name() string { return "container-name" }

// Resolve implements Resolver.
func (r ContainerNameResolver) Resolve(params []Parameter, _ *Candidates, resolved Resolved) (Resolved, error) {
	delta := Resolved{}
	for _, p := range params {
		if !p.Named() || resolved.Has(p.Position) {
			continue
		}
		v, found, err := lookup(r.Container, p.Name)
		if err != nil {
			return nil, fmt.Errorf("looking up %q: %w", p.Name, err)
		}
		if found {
			delta[p.Position] = v
		}
	}
	return delta, nil
}

// DefaultValueResolver binds declared default values.
type DefaultValueResolver struct{}

// Name implements Resolver.
func (DefaultValueResolver) Name() string { return "default" }

// Resolve implements Resolver.
func (DefaultValueResolver) Resolve(params []Parameter, _ *Candidates, resolved Resolved) (Resolved, error) {
	delta := Resolved{}
	for _, p := range params {
		if p.HasDefault && !resolved.Has(p.Position) {
			delta[p.Position] = p.Default
		}
	}
	return delta, nil
}
