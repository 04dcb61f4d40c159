package minutes

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a session-level failure.
type ErrorKind string

const (
	ErrConfiguration ErrorKind = "configuration"
	ErrDeviceAccess  ErrorKind = "device_access"
	ErrAuth          ErrorKind = "auth"
	ErrGeneration    ErrorKind = "generation"
	ErrDerivative    ErrorKind = "derivative"
	ErrEmptyInput    ErrorKind = "empty_input"
)

// Error is the single error type surfaced to the session. Derivative
// failures carry the feature kind that was requested.
type Error struct {
	Kind    ErrorKind
	Feature FeatureKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a classified error wrapping an optional cause.
func NewError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NewDerivativeError tags a derivative failure with the requested feature.
func NewDerivativeError(feature FeatureKind, err error) *Error {
	return &Error{
		Kind:    ErrDerivative,
		Feature: feature,
		Message: fmt.Sprintf("failed to generate %s", feature),
		Err:     err,
	}
}

// KindOf extracts the classification from any error, defaulting unclassified
// errors to ErrGeneration.
func KindOf(err error) ErrorKind {
	var me *Error
	if errors.As(err, &me) {
		return me.Kind
	}
	return ErrGeneration
}
