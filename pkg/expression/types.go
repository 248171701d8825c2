// Package expression defines the command expression types for cmdwire.
// An expression such as "greet name [--yell] [-t|--times=]" declares a command
// name followed by its positional arguments and its options.
package expression

import "strings"

// ArgumentMode defines how many values a positional argument accepts and
// whether it must be present.
type ArgumentMode int

const (
	// ArgumentRequired is a single value that must be given: "name".
	ArgumentRequired ArgumentMode = iota
	// ArgumentOptional is a single value that may be omitted: "[name]".
	ArgumentOptional
	// ArgumentVariadicAny collects zero or more values: "[names]*".
	ArgumentVariadicAny
	// ArgumentVariadicAtLeastOne collects one or more values: "names*".
	ArgumentVariadicAtLeastOne
)

// String returns a human-readable representation of the ArgumentMode.
func (m ArgumentMode) String() string {
	switch m {
	case ArgumentRequired:
		return "required"
	case ArgumentOptional:
		return "optional"
	case ArgumentVariadicAny:
		return "variadic"
	case ArgumentVariadicAtLeastOne:
		return "variadic-required"
	default:
		return "unknown"
	}
}

// MarshalText encodes the mode by name in JSON and YAML descriptions.
func (m ArgumentMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// IsRequired reports whether at least one value must be given.
func (m ArgumentMode) IsRequired() bool {
	return m == ArgumentRequired || m == ArgumentVariadicAtLeastOne
}

// IsVariadic reports whether the argument collects a sequence of values.
func (m ArgumentMode) IsVariadic() bool {
	return m == ArgumentVariadicAny || m == ArgumentVariadicAtLeastOne
}

// OptionMode defines whether an option takes a value.
type OptionMode int

const (
	// OptionFlag is a boolean switch without value: "[--yell]".
	OptionFlag OptionMode = iota
	// OptionValueRequired takes exactly one value: "[--times=]".
	OptionValueRequired
	// OptionValueRequiredMulti is repeatable and collects values: "[--dir=]*".
	OptionValueRequiredMulti
)

// String returns a human-readable representation of the OptionMode.
func (m OptionMode) String() string {
	switch m {
	case OptionFlag:
		return "flag"
	case OptionValueRequired:
		return "value"
	case OptionValueRequiredMulti:
		return "multi-value"
	default:
		return "unknown"
	}
}

// MarshalText encodes the mode by name in JSON and YAML descriptions.
func (m OptionMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// AcceptsValue reports whether the option takes a value on the command line.
func (m OptionMode) AcceptsValue() bool {
	return m != OptionFlag
}

// IsArray reports whether the option collects repeated values.
func (m OptionMode) IsArray() bool {
	return m == OptionValueRequiredMulti
}

// ArgumentSpec describes a single positional argument.
type ArgumentSpec struct {
	Name       string       `json:"name" yaml:"name"`
	Mode       ArgumentMode `json:"mode" yaml:"mode"`
	Default    any          `json:"default,omitempty" yaml:"default,omitempty"`
	HasDefault bool         `json:"-" yaml:"-"`
}

// OptionSpec describes a single option. Name never carries leading dashes.
type OptionSpec struct {
	Name       string     `json:"name" yaml:"name"`
	Shortcut   string     `json:"shortcut,omitempty" yaml:"shortcut,omitempty"`
	Mode       OptionMode `json:"mode" yaml:"mode"`
	Default    any        `json:"default,omitempty" yaml:"default,omitempty"`
	HasDefault bool       `json:"-" yaml:"-"`
}

// CommandSpec is the compiled form of an expression. It is created once per
// Parse call and never modified afterwards.
type CommandSpec struct {
	Name      string
	Arguments []ArgumentSpec
	Options   []OptionSpec
}

// Namespace returns the part of the command name before the last ':'.
// It returns an empty string for names without a namespace.
func (s *CommandSpec) Namespace() string {
	i := strings.LastIndex(s.Name, ":")
	if i < 0 {
		return ""
	}
	return s.Name[:i]
}

// Argument looks up an argument by name.
func (s *CommandSpec) Argument(name string) (ArgumentSpec, bool) {
	for _, arg := range s.Arguments {
		if arg.Name == name {
			return arg, true
		}
	}
	return ArgumentSpec{}, false
}

// Option looks up an option by name.
func (s *CommandSpec) Option(name string) (OptionSpec, bool) {
	for _, opt := range s.Options {
		if opt.Name == name {
			return opt, true
		}
	}
	return OptionSpec{}, false
}
