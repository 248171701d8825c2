package expression

import (
	"fmt"
	"strings"

	"cmdwire/internal/logger"
)

// Parse compiles an expression into a CommandSpec.
//
// Tokens are separated by whitespace. The first token is the command name,
// every following token is either an option (it starts with "[-") or a
// positional argument:
//
//	name          required argument
//	[name]        optional argument
//	[name]*       optional variadic argument
//	name*         required variadic argument
//	[--name]      flag
//	[--name=]     option with a value
//	[--name=]*    repeatable option with a value
//	[-n|--name…]  any of the option forms with a shortcut
func Parse(expr string) (*CommandSpec, error) {
	tokens := strings.Fields(expr)
	if len(tokens) == 0 {
		return nil, ErrEmptyExpression
	}

	spec := &CommandSpec{Name: tokens[0]}

	for _, token := range tokens[1:] {
		if strings.HasPrefix(token, "--") {
			return nil, &MalformedOptionError{Token: token}
		}

		if isOption(token) {
			opt := parseOption(token)
			if err := spec.addOption(opt); err != nil {
				return nil, err
			}
			continue
		}

		if err := spec.addArgument(parseArgument(token)); err != nil {
			return nil, err
		}
	}

	logger.Debug("Expression compiled", "command", spec.Name, "arguments", len(spec.Arguments), "options", len(spec.Options))
	return spec, nil
}

// MustParse is like Parse but panics if the expression cannot be compiled.
func MustParse(expr string) *CommandSpec {
	spec, err := Parse(expr)
	if err != nil {
		panic(fmt.Sprintf("expression.MustParse(%q): %v", expr, err))
	}
	return spec
}

func isOption(token string) bool {
	return strings.HasPrefix(token, "[-")
}

func parseArgument(token string) ArgumentSpec {
	switch {
	case strings.HasSuffix(token, "]*"):
		return ArgumentSpec{Name: strings.Trim(token, "[]*"), Mode: ArgumentVariadicAny}
	case strings.HasSuffix(token, "*"):
		return ArgumentSpec{Name: strings.Trim(token, "*"), Mode: ArgumentVariadicAtLeastOne}
	case strings.HasPrefix(token, "["):
		return ArgumentSpec{Name: strings.Trim(token, "[]"), Mode: ArgumentOptional}
	default:
		return ArgumentSpec{Name: token, Mode: ArgumentRequired}
	}
}

func parseOption(token string) OptionSpec {
	token = strings.Trim(token, "[]")

	var shortcut string
	if left, right, found := strings.Cut(token, "|"); found {
		shortcut = strings.TrimLeft(left, "-")
		token = right
	}

	name := strings.TrimLeft(token, "-")

	switch {
	case strings.HasSuffix(token, "=]*"):
		return OptionSpec{Name: strings.TrimSuffix(name, "=]*"), Shortcut: shortcut, Mode: OptionValueRequiredMulti}
	case strings.HasSuffix(token, "="):
		return OptionSpec{Name: strings.TrimRight(name, "="), Shortcut: shortcut, Mode: OptionValueRequired}
	default:
		return OptionSpec{Name: name, Shortcut: shortcut, Mode: OptionFlag}
	}
}

// addArgument appends an argument while keeping the ordering rules: nothing
// after a variadic argument and no required argument after an optional one.
func (s *CommandSpec) addArgument(arg ArgumentSpec) error {
	if arg.Name == "" {
		return fmt.Errorf("an argument name cannot be empty")
	}
	if err := checkName("argument", arg.Name); err != nil {
		return err
	}
	if _, exists := s.Argument(arg.Name); exists {
		return fmt.Errorf("an argument with name %q already exists", arg.Name)
	}
	if n := len(s.Arguments); n > 0 {
		last := s.Arguments[n-1]
		if last.Mode.IsVariadic() {
			return fmt.Errorf("cannot add argument %q after the variadic argument %q", arg.Name, last.Name)
		}
		if arg.Mode.IsRequired() && !last.Mode.IsRequired() {
			return fmt.Errorf("cannot add the required argument %q after the optional argument %q", arg.Name, last.Name)
		}
	}
	s.Arguments = append(s.Arguments, arg)
	return nil
}

func (s *CommandSpec) addOption(opt OptionSpec) error {
	if opt.Name == "" {
		return fmt.Errorf("an option name cannot be empty")
	}
	if err := checkName("option", opt.Name); err != nil {
		return err
	}
	if opt.Shortcut != "" {
		if err := checkName("shortcut", opt.Shortcut); err != nil {
			return err
		}
	}
	for _, existing := range s.Options {
		if existing.Name == opt.Name {
			return fmt.Errorf("an option named %q already exists", opt.Name)
		}
		if opt.Shortcut != "" && existing.Shortcut == opt.Shortcut {
			return fmt.Errorf("an option with shortcut %q already exists", opt.Shortcut)
		}
	}
	s.Options = append(s.Options, opt)
	return nil
}

// structural holds the characters of the expression syntax. Names may
// contain hyphens but not start with one.
const structural = "[]*=|"

func checkName(kind, name string) error {
	if strings.ContainsAny(name, structural) || strings.HasPrefix(name, "-") {
		return fmt.Errorf("invalid %s name %q: names cannot contain %q or start with '-'", kind, name, structural)
	}
	return nil
}
