package console

import (
	"fmt"
	"reflect"
	"strings"

	"cmdwire/pkg/expression"
)

// Argument is a positional argument of a command definition.
type Argument struct {
	expression.ArgumentSpec `yaml:",inline"`
	Description string `json:"description" yaml:"description"`
}

// Option is a named option of a command definition.
type Option struct {
	expression.OptionSpec `yaml:",inline"`
	Description string `json:"description" yaml:"description"`
}

// Definition is the live, mutable form of a compiled expression: the
// arguments and options a command accepts together with their descriptions
// and defaults.
type Definition struct {
	name      string
	arguments []*Argument
	options   []*Option
}

// NewDefinition builds a definition from a compiled expression.
func NewDefinition(spec *expression.CommandSpec) *Definition {
	d := &Definition{name: spec.Name}
	for _, arg := range spec.Arguments {
		d.arguments = append(d.arguments, &Argument{ArgumentSpec: arg})
	}
	for _, opt := range spec.Options {
		d.options = append(d.options, &Option{OptionSpec: opt})
	}
	return d
}

// Arguments returns the arguments in declaration order.
func (d *Definition) Arguments() []*Argument {
	return d.arguments
}

// Options returns the options in declaration order.
func (d *Definition) Options() []*Option {
	return d.options
}

// Argument returns the argument called name, or nil.
func (d *Definition) Argument(name string) *Argument {
	for _, arg := range d.arguments {
		if arg.Name == name {
			return arg
		}
	}
	return nil
}

// Option returns the option called name, or nil.
func (d *Definition) Option(name string) *Option {
	for _, opt := range d.options {
		if opt.Name == name {
			return opt
		}
	}
	return nil
}

// SetDefault sets the default value of the argument or option addressed by
// key. A key starting with "--" addresses an option; a bare key addresses an
// argument first, then an option.
func (d *Definition) SetDefault(key string, value any) error {
	return d.SetDefaults(map[string]any{key: value})
}

// SetDefaults sets several defaults at once. Every key is checked before any
// default is set, so a failing key leaves the definition unchanged.
func (d *Definition) SetDefaults(defaults map[string]any) error {
	setters := make([]func(), 0, len(defaults))
	for _, key := range sortedKeys(defaults) {
		value := defaults[key]
		arg, opt := d.lookup(key)
		switch {
		case arg != nil:
			if err := arg.checkDefault(value); err != nil {
				return err
			}
			setters = append(setters, func() { arg.Default, arg.HasDefault = value, true })
		case opt != nil:
			if err := opt.checkDefault(value); err != nil {
				return err
			}
			setters = append(setters, func() { opt.Default, opt.HasDefault = value, true })
		default:
			return &UnknownDefaultTargetError{Name: key}
		}
	}
	for _, set := range setters {
		set()
	}
	return nil
}

// SetDescription sets the description of the argument or option addressed by
// key, with the same addressing rules as SetDefault.
func (d *Definition) SetDescription(key, description string) error {
	arg, opt := d.lookup(key)
	switch {
	case arg != nil:
		arg.Description = description
	case opt != nil:
		opt.Description = description
	default:
		return &UnknownDescriptionTargetError{Name: key}
	}
	return nil
}

func (d *Definition) lookup(key string) (*Argument, *Option) {
	if name, isOption := strings.CutPrefix(key, "--"); isOption {
		return nil, d.Option(name)
	}
	if arg := d.Argument(key); arg != nil {
		return arg, nil
	}
	return nil, d.Option(key)
}

// Synopsis returns the one-line usage of the command, e.g.
// "greet [--yell] [--] [<name>]".
func (d *Definition) Synopsis() string {
	parts := []string{d.name}
	for _, opt := range d.options {
		parts = append(parts, "["+opt.usage()+"]")
	}
	if len(d.options) > 0 && len(d.arguments) > 0 {
		parts = append(parts, "[--]")
	}
	for _, arg := range d.arguments {
		parts = append(parts, arg.usage())
	}
	return strings.Join(parts, " ")
}

func (a *Argument) usage() string {
	element := "<" + a.Name + ">"
	switch a.Mode {
	case expression.ArgumentOptional:
		return "[" + element + "]"
	case expression.ArgumentVariadicAny:
		return "[" + element + "...]"
	case expression.ArgumentVariadicAtLeastOne:
		return element + "..."
	default:
		return element
	}
}

func (a *Argument) checkDefault(value any) error {
	if a.Mode.IsRequired() {
		return &InvalidDefaultError{Name: a.Name, Reason: "required arguments cannot have a default"}
	}
	if a.Mode.IsVariadic() && !isList(value) {
		return &InvalidDefaultError{Name: a.Name, Reason: "the default of a variadic argument must be a list"}
	}
	return nil
}

func (o *Option) usage() string {
	var b strings.Builder
	if o.Shortcut != "" {
		b.WriteString("-" + o.Shortcut + "|")
	}
	b.WriteString("--" + o.Name)
	if o.Mode.AcceptsValue() {
		b.WriteString("=" + strings.ToUpper(o.Name))
	}
	return b.String()
}

func (o *Option) checkDefault(value any) error {
	if o.Mode == expression.OptionFlag {
		return &InvalidDefaultError{Name: "--" + o.Name, Reason: "flags cannot have a default"}
	}
	if o.Mode.IsArray() && !isList(value) {
		return &InvalidDefaultError{Name: "--" + o.Name, Reason: "the default of a repeatable option must be a list"}
	}
	return nil
}

// defaultString renders a default value for help output.
func defaultString(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

func isList(value any) bool {
	if value == nil {
		return false
	}
	kind := reflect.TypeOf(value).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}
