package console

// Input holds the argument and option values bound for one command run.
// Arguments left out on the command line hold their default, nil for single
// values or an empty list for variadic ones. Options left out hold their
// default, false for flags, nil for single values or an empty list for
// repeatable ones.
type Input struct {
	command   string
	argNames  []string
	arguments map[string]any
	optNames  []string
	options   map[string]any
}

func newInput(command string) *Input {
	return &Input{
		command:   command,
		arguments: make(map[string]any),
		options:   make(map[string]any),
	}
}

func (in *Input) setArgument(name string, value any) {
	if _, exists := in.arguments[name]; !exists {
		in.argNames = append(in.argNames, name)
	}
	in.arguments[name] = value
}

func (in *Input) setOption(name string, value any) {
	if _, exists := in.options[name]; !exists {
		in.optNames = append(in.optNames, name)
	}
	in.options[name] = value
}

// Command returns the name of the command being run.
func (in *Input) Command() string {
	return in.command
}

// Argument returns the value of the argument called name.
func (in *Input) Argument(name string) any {
	return in.arguments[name]
}

// Option returns the value of the option called name.
func (in *Input) Option(name string) any {
	return in.options[name]
}

// HasArgument reports whether the command defines the argument.
func (in *Input) HasArgument(name string) bool {
	_, ok := in.arguments[name]
	return ok
}

// HasOption reports whether the command defines the option.
func (in *Input) HasOption(name string) bool {
	_, ok := in.options[name]
	return ok
}

// Arguments returns a copy of every argument value.
func (in *Input) Arguments() map[string]any {
	out := make(map[string]any, len(in.arguments))
	for k, v := range in.arguments {
		out[k] = v
	}
	return out
}

// Options returns a copy of every option value.
func (in *Input) Options() map[string]any {
	out := make(map[string]any, len(in.options))
	for k, v := range in.options {
		out[k] = v
	}
	return out
}
