package invoke

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Handler is a reference to something that can be called: a described
// function (*Callable), a container key (KeyRef), a bound method (MethodRef)
// or a method named on a type (TypeMethodRef).
type Handler interface {
	// Identifier names the handler in error messages.
	Identifier() string
	callable(container Container) (*Callable, error)
}

// Callable is a function together with its reflected parameter list.
type Callable struct {
	fn     reflect.Value
	params []Parameter
	name   string
	err    error
}

// Func describes fn as a handler. params declare the names and defaults of
// fn's parameters, in order; parameters without a declaration stay unnamed.
// A description error (fn is not a function, too many names) is kept and
// reported by Err and when the handler is called.
func Func(fn any, params ...Param) *Callable {
	value := reflect.ValueOf(fn)
	c := &Callable{fn: value}
	if fn == nil || value.Kind() != reflect.Func {
		c.name = fmt.Sprintf("%v", fn)
		c.err = &NotCallableError{Identifier: c.name}
		return c
	}
	c.name = funcName(value)
	c.params, c.err = reflectParameters(value.Type(), params)
	if c.err != nil {
		c.err = fmt.Errorf("describing %s: %w", c.name, c.err)
	}
	return c
}

// Parameters returns the reflected parameter list.
func (c *Callable) Parameters() []Parameter {
	out := make([]Parameter, len(c.params))
	copy(out, c.params)
	return out
}

// Err returns the error found while describing the function, if any.
func (c *Callable) Err() error {
	return c.err
}

// Identifier implements Handler.
func (c *Callable) Identifier() string {
	return c.name
}

func (c *Callable) callable(Container) (*Callable, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c, nil
}

// KeyRef is a handler stored in a container under Key.
type KeyRef struct {
	Key string
}

// Key references a handler stored in the container under id.
func Key(id string) KeyRef {
	return KeyRef{Key: id}
}

// Identifier implements Handler.
func (k KeyRef) Identifier() string {
	return k.Key
}

func (k KeyRef) callable(container Container) (*Callable, error) {
	entry, found, err := lookup(container, k.Key)
	if err != nil {
		return nil, fmt.Errorf("resolving handler %q: %w", k.Key, err)
	}
	if !found {
		return nil, &NotCallableError{Identifier: k.Key}
	}

	switch entry := entry.(type) {
	case KeyRef:
		// Keys pointing to keys would allow cycles.
		return nil, &NotCallableError{Identifier: k.Key}
	case Handler:
		return entry.callable(container)
	}

	value := reflect.ValueOf(entry)
	if entry == nil || value.Kind() != reflect.Func {
		return nil, &NotCallableError{Identifier: k.Key}
	}
	return Func(entry).callable(container)
}

// MethodRef is a method bound to a receiver instance.
type MethodRef struct {
	Receiver any
	Method   string
	Params   []Param
}

// Method references the method named method of receiver.
func Method(receiver any, method string, params ...Param) MethodRef {
	return MethodRef{Receiver: receiver, Method: method, Params: params}
}

// Identifier implements Handler.
func (m MethodRef) Identifier() string {
	return fmt.Sprintf("%T.%s", m.Receiver, m.Method)
}

func (m MethodRef) callable(Container) (*Callable, error) {
	return boundMethod(reflect.ValueOf(m.Receiver), m.Method, m.Params, m.Identifier())
}

// TypeMethodRef is a method named on a type. The receiver is looked up in
// the container under the type's TypeKey when the handler is called.
type TypeMethodRef struct {
	Type   reflect.Type
	Method string
	Params []Param
}

// TypeMethod references the method named method of type t.
func TypeMethod(t reflect.Type, method string, params ...Param) TypeMethodRef {
	return TypeMethodRef{Type: t, Method: method, Params: params}
}

// Identifier implements Handler.
func (m TypeMethodRef) Identifier() string {
	return fmt.Sprintf("['%s', '%s']", typeName(m.Type), m.Method)
}

// check reports the static call error when no container can provide the
// receiver of an instance method.
func (m TypeMethodRef) check(container Container) error {
	if container != nil || m.Type == nil {
		return nil
	}
	if _, ok := m.Type.MethodByName(m.Method); ok {
		return &StaticCallError{Type: typeName(m.Type), Method: m.Method}
	}
	if m.Type.Kind() != reflect.Pointer {
		if _, ok := reflect.PointerTo(m.Type).MethodByName(m.Method); ok {
			return &StaticCallError{Type: typeName(m.Type), Method: m.Method}
		}
	}
	return nil
}

func (m TypeMethodRef) callable(container Container) (*Callable, error) {
	if err := m.check(container); err != nil {
		return nil, err
	}
	if m.Type == nil || container == nil {
		return nil, &NotCallableError{Identifier: m.Identifier()}
	}
	key := TypeKey(m.Type)
	receiver, found, err := lookup(container, key)
	if err != nil {
		return nil, fmt.Errorf("resolving receiver %q: %w", key, err)
	}
	if !found {
		return nil, &NotCallableError{Identifier: m.Identifier()}
	}
	return boundMethod(reflect.ValueOf(receiver), m.Method, m.Params, m.Identifier())
}

// AsHandler converts h to a Handler. Functions are described with Func,
// strings are container keys.
func AsHandler(h any, params ...Param) (Handler, error) {
	switch h := h.(type) {
	case nil:
		return nil, &NotCallableError{Identifier: "<nil>"}
	case *Callable:
		if len(params) > 0 {
			return nil, fmt.Errorf("parameters cannot be declared again for an already described handler %s", h.Identifier())
		}
		return h, nil
	case MethodRef:
		if len(params) > 0 {
			h.Params = params
		}
		return h, nil
	case TypeMethodRef:
		if len(params) > 0 {
			h.Params = params
		}
		return h, nil
	case Handler:
		return h, nil
	case string:
		return Key(h), nil
	}

	if reflect.ValueOf(h).Kind() == reflect.Func {
		return Func(h, params...), nil
	}
	return nil, &NotCallableError{Identifier: fmt.Sprintf("%v", h)}
}

func boundMethod(receiver reflect.Value, method string, params []Param, identifier string) (*Callable, error) {
	if !receiver.IsValid() {
		return nil, &NotCallableError{Identifier: identifier}
	}
	fn := receiver.MethodByName(method)
	if !fn.IsValid() {
		return nil, &NotCallableError{Identifier: identifier}
	}
	described, err := reflectParameters(fn.Type(), params)
	if err != nil {
		return nil, fmt.Errorf("describing %s: %w", identifier, err)
	}
	return &Callable{fn: fn, params: described, name: identifier}, nil
}

func funcName(fn reflect.Value) string {
	if f := runtime.FuncForPC(fn.Pointer()); f != nil {
		return f.Name()
	}
	return fn.Type().String()
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return strings.TrimPrefix(t.String(), "*")
}
