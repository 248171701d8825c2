package console

import (
	"errors"
	"fmt"
)

// CommandInvocationError reports that a command handler could not be called
// because its handler or one of its parameters could not be resolved.
type CommandInvocationError struct {
	Command string
	Err     error
}

func (e *CommandInvocationError) Error() string {
	return fmt.Sprintf("Impossible to call the '%s' command: %v", e.Command, e.Err)
}

func (e *CommandInvocationError) Unwrap() error {
	return e.Err
}

// CommandNotFoundError is returned when no command or alias has the name.
type CommandNotFoundError struct {
	Name string
}

func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("Command %q is not defined.", e.Name)
}

// UnknownDefaultTargetError is returned when an explicit default names
// neither an argument nor an option of the command.
type UnknownDefaultTargetError struct {
	Name string
}

func (e *UnknownDefaultTargetError) Error() string {
	return fmt.Sprintf("Unable to set default for [%s]. It does not exist as an argument or option.", e.Name)
}

// UnknownDescriptionTargetError is returned when a description names neither
// an argument nor an option of the command.
type UnknownDescriptionTargetError struct {
	Name string
}

func (e *UnknownDescriptionTargetError) Error() string {
	return fmt.Sprintf("Unable to set description for [%s]. It does not exist as an argument or option.", e.Name)
}

// InvalidDefaultError is returned when a default value does not fit the mode
// of its argument or option.
type InvalidDefaultError struct {
	Name   string
	Reason string
}

func (e *InvalidDefaultError) Error() string {
	return fmt.Sprintf("Cannot set a default value for [%s]: %s.", e.Name, e.Reason)
}

// ExitError lets a handler fail with a specific exit code.
type ExitError struct {
	Code int
	Err  error
}

// Exit returns an ExitError carrying code and err.
func Exit(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeOf returns the exit code for a failed run.
func exitCodeOf(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
