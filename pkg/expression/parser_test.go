package expression

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		expected *CommandSpec
	}{
		{
			name:     "command name only",
			expr:     "greet",
			expected: &CommandSpec{Name: "greet"},
		},
		{
			name:     "command name with namespace",
			expr:     "demo:greet",
			expected: &CommandSpec{Name: "demo:greet"},
		},
		{
			name: "required arguments",
			expr: "greet firstname lastname",
			expected: &CommandSpec{
				Name: "greet",
				Arguments: []ArgumentSpec{
					{Name: "firstname", Mode: ArgumentRequired},
					{Name: "lastname", Mode: ArgumentRequired},
				},
			},
		},
		{
			name: "optional arguments",
			expr: "greet [firstname] [lastname]",
			expected: &CommandSpec{
				Name: "greet",
				Arguments: []ArgumentSpec{
					{Name: "firstname", Mode: ArgumentOptional},
					{Name: "lastname", Mode: ArgumentOptional},
				},
			},
		},
		{
			name: "optional variadic argument",
			expr: "greet [names]*",
			expected: &CommandSpec{
				Name:      "greet",
				Arguments: []ArgumentSpec{{Name: "names", Mode: ArgumentVariadicAny}},
			},
		},
		{
			name: "required variadic argument",
			expr: "greet names*",
			expected: &CommandSpec{
				Name:      "greet",
				Arguments: []ArgumentSpec{{Name: "names", Mode: ArgumentVariadicAtLeastOne}},
			},
		},
		{
			name: "flag",
			expr: "greet [--yell]",
			expected: &CommandSpec{
				Name:    "greet",
				Options: []OptionSpec{{Name: "yell", Mode: OptionFlag}},
			},
		},
		{
			name: "option with value",
			expr: "greet [--iterations=]",
			expected: &CommandSpec{
				Name:    "greet",
				Options: []OptionSpec{{Name: "iterations", Mode: OptionValueRequired}},
			},
		},
		{
			name: "repeatable option",
			expr: "greet [--name=]*",
			expected: &CommandSpec{
				Name:    "greet",
				Options: []OptionSpec{{Name: "name", Mode: OptionValueRequiredMulti}},
			},
		},
		{
			name: "options with shortcuts",
			expr: "greet [-y|--yell] [-it|--iterations=] [-n|--name=]*",
			expected: &CommandSpec{
				Name: "greet",
				Options: []OptionSpec{
					{Name: "yell", Shortcut: "y", Mode: OptionFlag},
					{Name: "iterations", Shortcut: "it", Mode: OptionValueRequired},
					{Name: "name", Shortcut: "n", Mode: OptionValueRequiredMulti},
				},
			},
		},
		{
			name: "hyphenated names",
			expr: "greet first-name [--yell-louder]",
			expected: &CommandSpec{
				Name:      "greet",
				Arguments: []ArgumentSpec{{Name: "first-name", Mode: ArgumentRequired}},
				Options:   []OptionSpec{{Name: "yell-louder", Mode: OptionFlag}},
			},
		},
		{
			name: "extra whitespace is collapsed",
			expr: "  greet   name\t[--yell]  ",
			expected: &CommandSpec{
				Name:      "greet",
				Arguments: []ArgumentSpec{{Name: "name", Mode: ArgumentRequired}},
				Options:   []OptionSpec{{Name: "yell", Mode: OptionFlag}},
			},
		},
		{
			name: "arguments and options interleaved",
			expr: "greet [name] [--yell] [names]*",
			expected: &CommandSpec{
				Name: "greet",
				Arguments: []ArgumentSpec{
					{Name: "name", Mode: ArgumentOptional},
					{Name: "names", Mode: ArgumentVariadicAny},
				},
				Options: []OptionSpec{{Name: "yell", Mode: OptionFlag}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Parse(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, spec)
		})
	}
}

func TestParse_EmptyExpression(t *testing.T) {
	for _, expr := range []string{"", "   ", "\t\n"} {
		_, err := Parse(expr)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrEmptyExpression))
		assert.Equal(t, "The expression was empty", err.Error())
	}
}

func TestParse_OptionWithoutBrackets(t *testing.T) {
	_, err := Parse("greet --yell")
	require.Error(t, err)

	var malformed *MalformedOptionError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "--yell", malformed.Token)
	assert.Equal(t, "An option must be enclosed by brackets: [--option]", err.Error())
}

func TestParse_InvalidArgumentOrder(t *testing.T) {
	tests := []struct {
		name   string
		expr   string
		errMsg string
	}{
		{
			name:   "argument after variadic",
			expr:   "greet [names]* other",
			errMsg: "after the variadic argument",
		},
		{
			name:   "required after optional",
			expr:   "greet [first] last",
			errMsg: "after the optional argument",
		},
		{
			name:   "duplicate argument",
			expr:   "greet name name",
			errMsg: "already exists",
		},
		{
			name:   "duplicate option",
			expr:   "greet [--yell] [--yell=]",
			errMsg: "already exists",
		},
		{
			name:   "star inside optional argument",
			expr:   "greet [name*]",
			errMsg: `invalid argument name "name*"`,
		},
		{
			name:   "equals inside flag",
			expr:   "greet [--na=me]",
			errMsg: `invalid option name "na=me"`,
		},
		{
			name:   "bracket inside argument",
			expr:   "greet na]me",
			errMsg: `invalid argument name "na]me"`,
		},
		{
			name:   "argument starting with a dash",
			expr:   "greet -name",
			errMsg: `invalid argument name "-name"`,
		},
		{
			name:   "structural shortcut",
			expr:   "greet [-y=|--yell]",
			errMsg: `invalid shortcut name "y="`,
		},
		{
			name:   "duplicate shortcut",
			expr:   "greet [-y|--yell] [-y|--yes]",
			errMsg: "shortcut",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.expr)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestMustParse(t *testing.T) {
	assert.NotPanics(t, func() { MustParse("greet [name]") })
	assert.Panics(t, func() { MustParse("") })
}

func TestCommandSpec_Lookups(t *testing.T) {
	spec := MustParse("demo:greet name [--yell]")

	assert.Equal(t, "demo", spec.Namespace())
	assert.Equal(t, "", MustParse("greet").Namespace())

	arg, ok := spec.Argument("name")
	assert.True(t, ok)
	assert.Equal(t, ArgumentRequired, arg.Mode)

	_, ok = spec.Argument("yell")
	assert.False(t, ok)

	opt, ok := spec.Option("yell")
	assert.True(t, ok)
	assert.Equal(t, OptionFlag, opt.Mode)
}

func TestModes(t *testing.T) {
	assert.True(t, ArgumentRequired.IsRequired())
	assert.True(t, ArgumentVariadicAtLeastOne.IsRequired())
	assert.False(t, ArgumentOptional.IsRequired())
	assert.True(t, ArgumentVariadicAny.IsVariadic())
	assert.False(t, ArgumentRequired.IsVariadic())

	assert.False(t, OptionFlag.AcceptsValue())
	assert.True(t, OptionValueRequired.AcceptsValue())
	assert.True(t, OptionValueRequiredMulti.IsArray())

	assert.Equal(t, "variadic", ArgumentVariadicAny.String())
	assert.Equal(t, "multi-value", OptionValueRequiredMulti.String())
}
