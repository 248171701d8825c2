package invoke

import (
	"reflect"
	"sort"
)

// Candidates is the bag of values available to bind a single call. Values are
// keyed by parameter position, by name or by type identifier. Within a key
// space a later write replaces an earlier one; iteration follows the order in
// which keys were first added.
//
// A Candidates bag belongs to exactly one call and must not be shared between
// nested invocations.
type Candidates struct {
	positional map[int]any
	names      []string
	named      map[string]any
	types      []string
	typed      map[string]any
}

// NewCandidates creates an empty bag.
func NewCandidates() *Candidates {
	return &Candidates{
		positional: make(map[int]any),
		named:      make(map[string]any),
		typed:      make(map[string]any),
	}
}

// Positional creates a bag holding values at positions 0..n-1.
func Positional(values ...any) *Candidates {
	c := NewCandidates()
	for i, v := range values {
		c.SetPosition(i, v)
	}
	return c
}

// SetPosition stores value for the parameter at position.
func (c *Candidates) SetPosition(position int, value any) *Candidates {
	c.positional[position] = value
	return c
}

// SetName stores value under name.
func (c *Candidates) SetName(name string, value any) *Candidates {
	if _, exists := c.named[name]; !exists {
		c.names = append(c.names, name)
	}
	c.named[name] = value
	return c
}

// SetType stores value under the type identifier key.
func (c *Candidates) SetType(key string, value any) *Candidates {
	if _, exists := c.typed[key]; !exists {
		c.types = append(c.types, key)
	}
	c.typed[key] = value
	return c
}

// Provide stores value under the identifier of its dynamic type.
func (c *Candidates) Provide(value any) *Candidates {
	if value == nil {
		return c
	}
	return c.SetType(TypeKey(reflect.TypeOf(value)), value)
}

// ProvideAs stores value under the identifier of T, typically an interface
// type the value satisfies.
func ProvideAs[T any](c *Candidates, value T) *Candidates {
	return c.SetType(TypeKeyOf[T](), value)
}

// Position returns the value stored for position.
func (c *Candidates) Position(position int) (any, bool) {
	v, ok := c.positional[position]
	return v, ok
}

// Positions returns the positions holding a value, in ascending order.
func (c *Candidates) Positions() []int {
	positions := make([]int, 0, len(c.positional))
	for position := range c.positional {
		positions = append(positions, position)
	}
	sort.Ints(positions)
	return positions
}

// Name returns the value stored under name.
func (c *Candidates) Name(name string) (any, bool) {
	v, ok := c.named[name]
	return v, ok
}

// Type returns the value stored under the type identifier key.
func (c *Candidates) Type(key string) (any, bool) {
	v, ok := c.typed[key]
	return v, ok
}

// Names returns the named keys in insertion order.
func (c *Candidates) Names() []string {
	return append([]string(nil), c.names...)
}

// Types returns the type keys in insertion order.
func (c *Candidates) Types() []string {
	return append([]string(nil), c.types...)
}

// Merge copies every entry of other into c, other's values winning.
func (c *Candidates) Merge(other *Candidates) *Candidates {
	if other == nil {
		return c
	}
	for position, v := range other.positional {
		c.SetPosition(position, v)
	}
	for _, name := range other.names {
		c.SetName(name, other.named[name])
	}
	for _, key := range other.types {
		c.SetType(key, other.typed[key])
	}
	return c
}
