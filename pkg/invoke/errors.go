package invoke

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNotFound is returned (possibly wrapped) by Container.Get when no entry
// exists for the key. A present entry holding nil is not an error.
var ErrNotFound = errors.New("entry not found")

// NotFoundError reports a missing container entry. It matches ErrNotFound
// with errors.Is.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no entry found for %q", e.Key)
}

// Is makes NotFoundError match ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsNotFound reports whether err signals a missing container entry.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// UnresolvedParameterError is returned when no resolver produced a value for
// a parameter that has no default.
type UnresolvedParameterError struct {
	// Position is zero-based; the message counts parameters from one.
	Position int
	Name     string
}

func (e *UnresolvedParameterError) Error() string {
	return fmt.Sprintf("Unable to invoke the callable because no value was given for parameter %d ($%s)", e.Position+1, e.Name)
}

// NotCallableError is returned when a handler reference does not lead to
// anything that can be called.
type NotCallableError struct {
	Identifier string
}

func (e *NotCallableError) Error() string {
	return fmt.Sprintf("'%s' is not a callable", e.Identifier)
}

// StaticCallError is returned when a method is referenced through its type
// while no container is configured to provide an instance.
type StaticCallError struct {
	Type   string
	Method string
}

func (e *StaticCallError) Error() string {
	return fmt.Sprintf("['%s', '%s'] is not a callable because '%s' is a static method. Either use [new %s(), '%s'] or configure a dependency injection container that supports autowiring.",
		e.Type, e.Method, e.Method, e.Type, e.Method)
}

// ConversionError is returned when a resolved value cannot be converted to
// the type of the parameter it was bound to.
type ConversionError struct {
	Position int
	Name     string
	Type     reflect.Type
	Value    any
	Err      error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("Unable to invoke the callable because the value %#v given for parameter %d ($%s) cannot be used as %s: %v",
		e.Value, e.Position+1, e.Name, e.Type, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
