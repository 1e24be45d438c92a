// Package apperrors defines the failure taxonomy of a single classification
// run and how it maps onto the process exit contract.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind is the category of a failure.
type Kind string

const (
	// KindArgument indicates the image path argument is missing.
	KindArgument Kind = "argument"
	// KindDecode indicates the image path is missing, unreadable or not an image.
	KindDecode Kind = "decode"
	// KindClassifier indicates the model failed to load or to run.
	KindClassifier Kind = "classifier"
	// KindEmptyResult indicates the classifier returned no candidates.
	KindEmptyResult Kind = "empty_result"
	// KindConfig indicates invalid configuration.
	KindConfig Kind = "config"
)

// Error is a categorized failure with an optional underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same Kind, so sentinels like ErrEmptyResult
// work with errors.Is regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Cause == nil
}

// ErrEmptyResult is returned when a classifier produces zero candidates.
var ErrEmptyResult = &Error{Kind: KindEmptyResult}

func ArgumentError(message string) *Error {
	return &Error{Kind: KindArgument, Message: message}
}

func DecodeError(message string, cause error) *Error {
	return &Error{Kind: KindDecode, Message: message, Cause: cause}
}

func ClassifierError(message string, cause error) *Error {
	return &Error{Kind: KindClassifier, Message: message, Cause: cause}
}

func EmptyResultError() *Error {
	return &Error{Kind: KindEmptyResult, Message: "classifier returned no results"}
}

func ConfigError(message string, cause error) *Error {
	return &Error{Kind: KindConfig, Message: message, Cause: cause}
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// ExitCode maps an error to the process exit status: 0 on success, 1 for
// every failure kind.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
