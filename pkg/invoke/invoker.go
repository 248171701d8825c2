package invoke

import (
	"reflect"

	"github.com/charmbracelet/log"

	"cmdwire/internal/logger"
)

var errorType = reflect.TypeFor[error]()

// Result is the outcome of a successful call.
type Result struct {
	// Values holds every non-error return value.
	Values []any
	// Value is the first non-error return value, nil when there is none.
	Value any
	// ExitCode is Value when Value is an integer, 0 otherwise.
	ExitCode int
}

// Invoker resolves handler references and calls them with values bound by
// its resolver chain. An Invoker holds no per-call state and can be used for
// nested calls.
type Invoker struct {
	container    Container
	injectByType bool
	injectByName bool
	chain        Chain
	logger       *log.Logger
}

// Option is a functional option for configuring Invoker instances.
type Option func(*Invoker)

// WithContainer configures the container used to resolve KeyRef and
// TypeMethodRef handlers and, when enabled, to inject parameters.
func WithContainer(container Container) Option {
	return func(i *Invoker) {
		i.container = container
	}
}

// InjectByType enables injecting container entries keyed by parameter type.
func InjectByType() Option {
	return func(i *Invoker) {
		i.injectByType = true
	}
}

// InjectByName enables injecting container entries keyed by parameter name.
func InjectByName() Option {
	return func(i *Invoker) {
		i.injectByName = true
	}
}

// WithResolvers replaces the default resolver chain.
func WithResolvers(resolvers ...Resolver) Option {
	return func(i *Invoker) {
		i.chain = Chain(resolvers)
	}
}

// WithLogger sets the logger used for resolution traces.
func WithLogger(l *log.Logger) Option {
	return func(i *Invoker) {
		if l != nil {
			i.logger = l
		}
	}
}

// New creates an Invoker. Without options it resolves from candidates and
// defaults only.
func New(options ...Option) *Invoker {
	i := &Invoker{}
	for _, opt := range options {
		opt(i)
	}
	if i.logger == nil {
		i.logger = logger.NewStyledLogger("Invoker")
	}
	if i.chain == nil {
		i.chain = DefaultChain(i.container, i.injectByType, i.injectByName)
	}
	return i
}

// Container returns the configured container, or nil.
func (i *Invoker) Container() Container {
	return i.container
}

// Chain returns the resolver chain.
func (i *Invoker) Chain() Chain {
	return append(Chain(nil), i.chain...)
}

// Check validates a handler before it is ever called. It reports description
// errors of functions and methods referenced through their type that no
// container can provide a receiver for.
func (i *Invoker) Check(h Handler) error {
	switch h := h.(type) {
	case *Callable:
		return h.Err()
	case TypeMethodRef:
		return h.check(i.container)
	}
	return nil
}

// Callable resolves a handler reference to a Callable.
func (i *Invoker) Callable(h Handler) (*Callable, error) {
	return h.callable(i.container)
}

// Arguments resolves every parameter of c from candidates and converts the
// bound values to the parameter types. Unbound variadic parameters receive an
// empty slice; any other unbound parameter fails with UnresolvedParameterError.
func (i *Invoker) Arguments(c *Callable, candidates *Candidates) ([]reflect.Value, error) {
	resolved, origin, err := i.chain.resolve(c.params, candidates)
	if err != nil {
		return nil, err
	}

	args := make([]reflect.Value, len(c.params))
	for _, p := range c.params {
		value, ok := resolved[p.Position]
		if !ok {
			if p.Variadic {
				args[p.Position] = reflect.Zero(p.Type)
				continue
			}
			return nil, &UnresolvedParameterError{Position: p.Position, Name: p.Name}
		}
		arg, err := Coerce(value, p.Type)
		if err != nil {
			return nil, &ConversionError{Position: p.Position, Name: p.Name, Type: p.Type, Value: value, Err: err}
		}
		args[p.Position] = arg
		i.logger.Debug("Parameter resolved", "callable", c.name, "parameter", p.Name, "position", p.Position, "resolver", origin[p.Position])
	}
	return args, nil
}

// Call resolves h, binds its parameters from candidates and calls it.
// h may be anything AsHandler accepts. A non-nil trailing error returned by
// the handler is returned as is.
func (i *Invoker) Call(h any, candidates *Candidates) (Result, error) {
	handler, err := AsHandler(h)
	if err != nil {
		return Result{}, err
	}
	c, err := i.Callable(handler)
	if err != nil {
		return Result{}, err
	}
	args, err := i.Arguments(c, candidates)
	if err != nil {
		return Result{}, err
	}
	return c.Call(args)
}

// Call calls the function with already resolved arguments.
func (c *Callable) Call(args []reflect.Value) (Result, error) {
	var outs []reflect.Value
	if c.fn.Type().IsVariadic() {
		outs = c.fn.CallSlice(args)
	} else {
		outs = c.fn.Call(args)
	}

	fnType := c.fn.Type()
	if n := len(outs); n > 0 && fnType.Out(n-1) == errorType {
		last := outs[n-1]
		outs = outs[:n-1]
		if !last.IsNil() {
			return resultOf(outs), last.Interface().(error)
		}
	}
	return resultOf(outs), nil
}

func resultOf(outs []reflect.Value) Result {
	result := Result{Values: make([]any, len(outs))}
	for i, out := range outs {
		result.Values[i] = out.Interface()
	}
	if len(result.Values) > 0 {
		result.Value = result.Values[0]
		result.ExitCode = exitCode(outs[0])
	}
	return result
}

func exitCode(v reflect.Value) int {
	if v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(v.Uint())
	default:
		return 0
	}
}
