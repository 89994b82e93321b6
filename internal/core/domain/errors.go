package domain

import (
	"errors"
	"strings"
)

var (
	ErrGithubUserNotFound = errors.New("no github profile found")
	ErrUpstream           = errors.New("upstream service unavailable")
)

// FieldError describes one rejected input field.
type FieldError struct {
	Param string `json:"param,omitempty"`
	Msg   string `json:"msg"`
}

// ValidationError carries every violated field, not only the first.
type ValidationError struct {
	Errors []FieldError
}

func NewValidationError(errs ...FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Msg)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// AuthErrorKind distinguishes a missing credential from a rejected one.
type AuthErrorKind int

const (
	AuthMissing AuthErrorKind = iota
	AuthInvalid
)

// AuthError is returned by token verification.
type AuthError struct {
	Kind AuthErrorKind
	Err  error
}

func (e *AuthError) Error() string {
	if e.Kind == AuthMissing {
		return "No token, authorization denied"
	}
	return "Token is not valid"
}

func (e *AuthError) Unwrap() error { return e.Err }
