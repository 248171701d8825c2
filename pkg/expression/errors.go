package expression

import "errors"

// ErrEmptyExpression is returned by Parse when the expression holds no token.
var ErrEmptyExpression = errors.New("The expression was empty") //nolint:staticcheck // message is part of the public contract

// MalformedOptionError is returned by Parse when an option is written
// without the surrounding brackets, e.g. "greet --yell".
type MalformedOptionError struct {
	Token string
}

func (e *MalformedOptionError) Error() string {
	return "An option must be enclosed by brackets: [--option]"
}
