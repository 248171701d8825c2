// Package console builds command-line applications from expressions such as
// "greet [name] [--yell]" and plain Go functions. Arguments and options are
// parsed by cobra and pflag, then bound to the handler parameters by the
// invoke resolver chain.
package console

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"

	"cmdwire/internal/logger"
	"cmdwire/internal/version"
	"cmdwire/pkg/expression"
	"cmdwire/pkg/invoke"
	"cmdwire/pkg/output"
)

const listCommandName = "list"

// Application is a registry of commands and the pipeline that runs them.
// Commands are registered up front; Run and RunCommand only read the
// registry and may be nested.
type Application struct {
	name    string
	version string

	mu             sync.RWMutex
	commands       map[string]*Command
	invoker        *invoke.Invoker
	defaultCommand string

	logger *log.Logger
}

// Option is a functional option for configuring Application instances.
type Option func(*Application)

// WithLogger sets the logger used for dispatch traces.
func WithLogger(l *log.Logger) Option {
	return func(a *Application) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithInvoker sets the invoker that resolves and calls handlers.
func WithInvoker(i *invoke.Invoker) Option {
	return func(a *Application) {
		if i != nil {
			a.invoker = i
		}
	}
}

// New creates an application with the built-in list command as its default
// command. Semantic versions are normalized; an empty version reads UNKNOWN.
func New(name, appVersion string, options ...Option) *Application {
	if name == "" {
		name = version.Unknown
	}
	a := &Application{
		name:           name,
		version:        appVersion,
		commands:       make(map[string]*Command),
		defaultCommand: listCommandName,
	}
	for _, opt := range options {
		opt(a)
	}
	if a.logger == nil {
		a.logger = logger.NewStyledLogger("Console")
	}
	if a.invoker == nil {
		a.invoker = invoke.New()
	}
	if normalized, err := version.Normalize(appVersion); err == nil {
		a.version = normalized
	} else {
		a.logger.Warn("Application version is not a semantic version", "version", appVersion)
	}

	a.registerListCommand()
	return a
}

// Name returns the application name.
func (a *Application) Name() string {
	return a.name
}

// Version returns the application version.
func (a *Application) Version() string {
	return a.version
}

// Command registers a command. expr declares the name, arguments and options;
// handler is anything invoke.AsHandler accepts and params declare the names
// and defaults of a plain function's parameters. Parameter defaults that
// match an argument or option become its default value.
//
// Registering a name again replaces the previous command.
func (a *Application) Command(expr string, handler any, params ...invoke.Param) (*Command, error) {
	spec, err := expression.Parse(expr)
	if err != nil {
		return nil, err
	}
	h, err := invoke.AsHandler(handler, params...)
	if err != nil {
		return nil, err
	}

	invoker := a.Invoker()
	if err := invoker.Check(h); err != nil {
		return nil, err
	}

	def := NewDefinition(spec)
	// Handlers stored in a container may only become resolvable later.
	if callable, err := invoker.Callable(h); err == nil {
		applyInferredDefaults(def, InferDefaults(def, callable.Parameters()))
	}

	cmd := &Command{
		name:       spec.Name,
		definition: def,
		handler:    h,
	}

	a.mu.Lock()
	a.commands[cmd.name] = cmd
	a.mu.Unlock()

	a.logger.Debug("Command registered", "command", cmd.name, "handler", h.Identifier())
	return cmd, nil
}

// MustCommand is like Command but panics on error.
func (a *Application) MustCommand(expr string, handler any, params ...invoke.Param) *Command {
	cmd, err := a.Command(expr, handler, params...)
	if err != nil {
		panic(err)
	}
	return cmd
}

// Get returns the command called name or having name as an alias.
func (a *Application) Get(name string) (*Command, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if cmd, ok := a.commands[name]; ok {
		return cmd, nil
	}
	for _, cmd := range a.commands {
		if cmd.answersTo(name) {
			return cmd, nil
		}
	}
	return nil, &CommandNotFoundError{Name: name}
}

// Has reports whether a command or alias called name exists.
func (a *Application) Has(name string) bool {
	_, err := a.Get(name)
	return err == nil
}

// All returns every command sorted by name.
func (a *Application) All() []*Command {
	a.mu.RLock()
	defer a.mu.RUnlock()

	commands := make([]*Command, 0, len(a.commands))
	for _, cmd := range a.commands {
		commands = append(commands, cmd)
	}
	sort.Slice(commands, func(i, j int) bool {
		return commands[i].name < commands[j].name
	})
	return commands
}

// Defaults sets default values on the command called name.
func (a *Application) Defaults(name string, defaults map[string]any) error {
	cmd, err := a.Get(name)
	if err != nil {
		return err
	}
	return cmd.Defaults(defaults)
}

// Descriptions sets the descriptions of the command called name.
func (a *Application) Descriptions(name, description string, targets map[string]string) error {
	cmd, err := a.Get(name)
	if err != nil {
		return err
	}
	return cmd.Descriptions(description, targets)
}

// UseContainer configures the container handlers and their parameters are
// resolved from. Container entries are injected by parameter type when
// injectByType is set and by parameter name when injectByName is set.
func (a *Application) UseContainer(c invoke.Container, injectByType, injectByName bool) {
	options := []invoke.Option{invoke.WithContainer(c)}
	if injectByType {
		options = append(options, invoke.InjectByType())
	}
	if injectByName {
		options = append(options, invoke.InjectByName())
	}
	a.SetInvoker(invoke.New(options...))
}

// SetInvoker replaces the invoker.
func (a *Application) SetInvoker(i *invoke.Invoker) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.invoker = i
}

// Invoker returns the invoker.
func (a *Application) Invoker() *invoke.Invoker {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.invoker
}

// SetDefaultCommand sets the command run when the command line does not
// start with a command name, which turns the application into a single
// command application.
func (a *Application) SetDefaultCommand(name string) *Application {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.defaultCommand = name
	return a
}

// Run runs the command named by args[0] and returns its exit code: the
// integer returned by the handler, 0 when it returns none, 1 on error or the
// code of an ExitError. Output goes to out; a nil out discards it.
func (a *Application) Run(ctx context.Context, args []string, out io.Writer) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	args, err := a.withCommandName(args)
	if err != nil {
		return exitCodeOf(err), err
	}

	printer := output.ForWriter(out)
	root, state := a.buildRoot(printer)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		return exitCodeOf(err), err
	}
	return state.exitCode, nil
}

// RunCommand runs a command line such as `greet "John Doe" --yell`. Handlers
// call it to run other commands, passing their own context and output.
func (a *Application) RunCommand(ctx context.Context, line string, out io.Writer) (int, error) {
	args, err := shellquote.Split(line)
	if err != nil {
		return 1, fmt.Errorf("parsing command line %q: %w", line, err)
	}
	return a.Run(ctx, args, out)
}

// withCommandName prepends the default command when args do not start with
// a command name.
func (a *Application) withCommandName(args []string) ([]string, error) {
	a.mu.RLock()
	defaultCommand := a.defaultCommand
	a.mu.RUnlock()

	if len(args) == 0 {
		if !a.Has(defaultCommand) {
			return nil, &CommandNotFoundError{Name: defaultCommand}
		}
		return []string{defaultCommand}, nil
	}

	first := args[0]
	switch {
	case isRootFlag(first), first == "help", a.Has(first):
		return args, nil
	case strings.HasPrefix(first, "-"), defaultCommand != listCommandName:
		if !a.Has(defaultCommand) {
			return nil, &CommandNotFoundError{Name: defaultCommand}
		}
		return append([]string{defaultCommand}, args...), nil
	}
	return nil, &CommandNotFoundError{Name: first}
}

func isRootFlag(arg string) bool {
	switch arg {
	case "-h", "--help", "-v", "--version":
		return true
	}
	return false
}

type depthKey struct{}

func depthOf(ctx context.Context) int {
	depth, _ := ctx.Value(depthKey{}).(int)
	return depth
}

// dispatch resolves the parameters of the command handler and calls it.
// Resolution failures are wrapped in CommandInvocationError; errors returned
// by the handler are returned as is.
func (a *Application) dispatch(ctx context.Context, cmd *Command, input *Input, printer *output.Printer) (int, error) {
	depth := depthOf(ctx) + 1
	ctx = context.WithValue(ctx, depthKey{}, depth)
	id := uuid.NewString()
	a.logger.Debug("Dispatching command", "command", cmd.name, "invocation", id, "depth", depth)

	invoker := a.Invoker()
	callable, err := invoker.Callable(cmd.handler)
	if err != nil {
		return 1, &CommandInvocationError{Command: cmd.name, Err: err}
	}
	args, err := invoker.Arguments(callable, a.candidates(ctx, input, printer))
	if err != nil {
		return 1, &CommandInvocationError{Command: cmd.name, Err: err}
	}

	result, err := callable.Call(args)
	if err != nil {
		a.logger.Debug("Command failed", "command", cmd.name, "invocation", id, "error", err)
		return exitCodeOf(err), err
	}
	a.logger.Debug("Command finished", "command", cmd.name, "invocation", id, "exit", result.ExitCode)
	return result.ExitCode, nil
}

// candidates builds the values a handler can ask for: the input, the output
// and the application by name and by type, the context by type, then every
// argument and option by name. Hyphenated names are also exposed normalized.
func (a *Application) candidates(ctx context.Context, input *Input, printer *output.Printer) *invoke.Candidates {
	c := invoke.NewCandidates()
	c.SetName("input", input).Provide(input)
	c.SetName("output", printer).Provide(printer)
	c.SetName("app", a).Provide(a)
	invoke.ProvideAs[context.Context](c, ctx)

	set := func(name string, value any) {
		c.SetName(name, value)
		if strings.Contains(name, "-") {
			c.SetName(invoke.NormalizeName(name), value)
		}
	}
	for _, name := range input.argNames {
		set(name, input.arguments[name])
	}
	for _, name := range input.optNames {
		set(name, input.options[name])
	}
	return c
}
