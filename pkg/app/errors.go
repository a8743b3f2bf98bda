package app

import (
	"errors"
	"fmt"
	"runtime"
)

// Error codes reported by the dispatch pipeline.
const (
	// CodeConfigurationInvalid indicates the parameter spec references a raw
	// argument the grammar does not declare, or the grammar rejected argv.
	CodeConfigurationInvalid = "CONFIGURATION_INVALID"

	// CodeTaskNotProvided indicates no boolean raw argument is true.
	CodeTaskNotProvided = "TASK_NOT_PROVIDED"

	// CodeTaskNotImplemented indicates the selected id has no registered task.
	CodeTaskNotImplemented = "TASK_NOT_IMPLEMENTED"

	// CodeTaskNotDefined indicates an explicitly requested id is not registered.
	CodeTaskNotDefined = "TASK_NOT_DEFINED"

	// CodeTaskExecutionFailed indicates the task's Run returned an error or
	// panicked.
	CodeTaskExecutionFailed = "TASK_EXECUTION_FAILED"
)

// Sentinels for errors.Is.
var (
	ErrConfigurationInvalid = &Error{Code: CodeConfigurationInvalid}
	ErrTaskNotProvided      = &Error{Code: CodeTaskNotProvided}
	ErrTaskNotImplemented   = &Error{Code: CodeTaskNotImplemented}
	ErrTaskNotDefined       = &Error{Code: CodeTaskNotDefined}
	ErrTaskExecutionFailed  = &Error{Code: CodeTaskExecutionFailed}
)

// Error is a fatal dispatch failure.
type Error struct {
	// Code is one of the Code* constants.
	Code string

	// Message is what gets logged outside debug mode.
	Message string

	// Cause is the underlying error, if any.
	Cause error

	// File and Line locate the implementation that failed.
	File string
	Line int
}

// Error returns the message alone so that user facing output carries no
// code prefix.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches a target error code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Detail renders the message followed by the implementation type and
// location, as logged in debug mode.
func (e *Error) Detail() string {
	typ := fmt.Sprintf("%T", e)
	if e.Cause != nil {
		typ = fmt.Sprintf("%T", e.Cause)
	}
	if e.File == "" {
		return fmt.Sprintf("%s\n%s", e.Message, typ)
	}
	return fmt.Sprintf("%s\n%s at %s:%d", e.Message, typ, e.File, e.Line)
}

// newError creates an Error located at its caller.
func newError(code, message string, cause error) *Error {
	e := &Error{Code: code, Message: message, Cause: cause}
	if _, file, line, ok := runtime.Caller(1); ok {
		e.File = file
		e.Line = line
	}
	return e
}

// describe renders err for the error log.
func describe(err error, debug bool) string {
	if !debug {
		return err.Error()
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Detail()
	}
	return fmt.Sprintf("%s\n%T", err.Error(), err)
}
