package console

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"cmdwire/internal/version"
	"cmdwire/pkg/expression"
	"cmdwire/pkg/output"
)

// NotEnoughArgumentsError is returned when required arguments are missing
// from the command line.
type NotEnoughArgumentsError struct {
	Missing []string
}

func (e *NotEnoughArgumentsError) Error() string {
	return fmt.Sprintf("Not enough arguments (missing: %q).", strings.Join(e.Missing, ", "))
}

// TooManyArgumentsError is returned when the command line holds more
// arguments than the command accepts.
type TooManyArgumentsError struct {
	Command  string
	Expected []string
	Got      []string
}

func (e *TooManyArgumentsError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("No arguments expected for %q command, got %q.", e.Command, e.Got[0])
	}
	quoted := make([]string, len(e.Expected))
	for i, name := range e.Expected {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	return fmt.Sprintf("Too many arguments, expected arguments %s.", strings.Join(quoted, " "))
}

// runState carries the exit code of the command out of cobra.
type runState struct {
	exitCode int
}

// buildRoot creates a fresh cobra tree for one run. Every run gets its own
// tree so that flag values never leak between nested runs.
func (a *Application) buildRoot(printer *output.Printer) (*cobra.Command, *runState) {
	state := &runState{}
	root := &cobra.Command{
		Use:               a.name,
		Version:           a.version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}
	root.SetOut(printer)
	root.SetErr(printer)
	root.SetVersionTemplate(version.Format(a.name, a.version) + "\n")

	for _, cmd := range a.All() {
		root.AddCommand(a.cobraCommand(cmd, printer, state))
	}
	return root, state
}

func (a *Application) cobraCommand(cmd *Command, printer *output.Printer, state *runState) *cobra.Command {
	cc := &cobra.Command{
		Use:     cmd.definition.Synopsis(),
		Aliases: cmd.Aliases(),
		Short:   cmd.description,
		Long:    cmd.help,
		Hidden:  cmd.hidden,
		Args:    argumentValidator(cmd),
		RunE: func(cc *cobra.Command, args []string) error {
			input, err := bindInput(cmd, cc.Flags(), args)
			if err != nil {
				return err
			}
			code, err := a.dispatch(cc.Context(), cmd, input, printer)
			state.exitCode = code
			return err
		},
	}
	registerFlags(cc.Flags(), cmd.definition)
	return cc
}

// argumentValidator checks the argument count against the definition.
func argumentValidator(cmd *Command) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		arguments := cmd.definition.Arguments()

		var missing []string
		for i, arg := range arguments {
			if arg.Mode.IsRequired() && i >= len(args) {
				missing = append(missing, arg.Name)
			}
		}
		if len(missing) > 0 {
			return &NotEnoughArgumentsError{Missing: missing}
		}

		variadic := len(arguments) > 0 && arguments[len(arguments)-1].Mode.IsVariadic()
		if !variadic && len(args) > len(arguments) {
			expected := make([]string, len(arguments))
			for i, arg := range arguments {
				expected[i] = arg.Name
			}
			return &TooManyArgumentsError{Command: cmd.name, Expected: expected, Got: args[len(arguments):]}
		}
		return nil
	}
}

// registerFlags declares one pflag flag per option. pflag shorthands are a
// single character, so longer shortcuts become hidden long flags sharing the
// option's value.
func registerFlags(fs *pflag.FlagSet, def *Definition) {
	for _, opt := range def.Options() {
		shorthand := ""
		if len(opt.Shortcut) == 1 {
			shorthand = opt.Shortcut
		}

		switch opt.Mode {
		case expression.OptionFlag:
			fs.BoolP(opt.Name, shorthand, false, opt.Description)
		case expression.OptionValueRequired:
			fs.StringP(opt.Name, shorthand, defaultString(opt.Default), opt.Description)
		case expression.OptionValueRequiredMulti:
			fs.StringArrayP(opt.Name, shorthand, cast.ToStringSlice(opt.Default), opt.Description)
		}

		if len(opt.Shortcut) > 1 && fs.Lookup(opt.Shortcut) == nil {
			flag := fs.Lookup(opt.Name)
			fs.AddFlag(&pflag.Flag{
				Name:        opt.Shortcut,
				Usage:       "alias of --" + opt.Name,
				Value:       flag.Value,
				DefValue:    flag.DefValue,
				NoOptDefVal: flag.NoOptDefVal,
				Hidden:      true,
			})
		}
	}
}

// bindInput collects argument and option values. Values that are not on the
// command line come from the definition defaults.
func bindInput(cmd *Command, fs *pflag.FlagSet, args []string) (*Input, error) {
	in := newInput(cmd.name)

	for i, arg := range cmd.definition.Arguments() {
		switch {
		case arg.Mode.IsVariadic() && i < len(args):
			in.setArgument(arg.Name, append([]string(nil), args[i:]...))
		case arg.Mode.IsVariadic() && !arg.HasDefault:
			in.setArgument(arg.Name, []string{})
		case i < len(args):
			in.setArgument(arg.Name, args[i])
		default:
			in.setArgument(arg.Name, arg.Default)
		}
	}

	for _, opt := range cmd.definition.Options() {
		changed := fs.Changed(opt.Name) || (len(opt.Shortcut) > 1 && fs.Changed(opt.Shortcut))

		var (
			value any
			err   error
		)
		switch {
		case changed:
			value, err = flagValue(fs, opt)
		case opt.HasDefault:
			value = opt.Default
		case opt.Mode == expression.OptionFlag:
			value = false
		case opt.Mode.IsArray():
			value = []string{}
		}
		if err != nil {
			return nil, fmt.Errorf("reading option --%s: %w", opt.Name, err)
		}
		in.setOption(opt.Name, value)
	}
	return in, nil
}

func flagValue(fs *pflag.FlagSet, opt *Option) (any, error) {
	switch opt.Mode {
	case expression.OptionFlag:
		return fs.GetBool(opt.Name)
	case expression.OptionValueRequiredMulti:
		return fs.GetStringArray(opt.Name)
	default:
		return fs.GetString(opt.Name)
	}
}
