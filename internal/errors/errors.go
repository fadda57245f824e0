package errors

import (
	"errors"
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates a miswired call: an unknown attribute, ability,
	// module, effect kind or node key
	CodeInvalidArgument Code = "invalid_argument"

	// CodeValidation indicates a bonus of the wrong numeric kind for an attribute
	CodeValidation Code = "validation"

	// CodeFailedPrecondition indicates a skill tree node whose prerequisites are not learned
	CodeFailedPrecondition Code = "failed_precondition"

	// CodeOutOfRange indicates a selection outside the offered choices
	CodeOutOfRange Code = "out_of_range"

	// CodeResourceExhausted indicates a generator ran out of distinct candidates
	CodeResourceExhausted Code = "resource_exhausted"

	// CodeUnimplemented indicates a declared but unimplemented kind
	CodeUnimplemented Code = "unimplemented"

	// CodeNotFound indicates a requested resource was not found
	CodeNotFound Code = "not_found"

	// CodeAlreadyExists indicates an attempt to create a resource that already exists
	CodeAlreadyExists Code = "already_exists"

	// CodeInternal indicates internal system error
	CodeInternal Code = "internal"
)

// Error represents an application error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context, keeping the code of a wrapped *Error
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var simErr *Error
	if errors.As(err, &simErr) {
		return &Error{
			Code:    simErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(simErr.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// Validationf creates a formatted validation error
func Validationf(format string, args ...any) *Error {
	return Newf(CodeValidation, format, args...)
}

// FailedPreconditionf creates a formatted failed precondition error
func FailedPreconditionf(format string, args ...any) *Error {
	return Newf(CodeFailedPrecondition, format, args...)
}

// OutOfRangef creates a formatted out of range error
func OutOfRangef(format string, args ...any) *Error {
	return Newf(CodeOutOfRange, format, args...)
}

// Unimplementedf creates a formatted unimplemented error
func Unimplementedf(format string, args ...any) *Error {
	return Newf(CodeUnimplemented, format, args...)
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// AlreadyExistsf creates a formatted already exists error
func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// Internalf creates a formatted internal error
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// ResourceExhaustedf creates a formatted resource exhausted error
func ResourceExhaustedf(format string, args ...any) *Error {
	return Newf(CodeResourceExhausted, format, args...)
}

// UnknownKey creates the invalid-key fault for a lookup of got among known.
// When a known key is close enough to got, it is suggested in the message and
// stored under the "suggestion" meta key.
func UnknownKey(kind, got string, known []string) *Error {
	err := InvalidArgumentf("unknown %s %q", kind, got).
		WithMeta("kind", kind).
		WithMeta("key", got)

	if suggestion := Suggest(got, known); suggestion != "" {
		err.Message = fmt.Sprintf("%s, did you mean %q?", err.Message, suggestion)
		err.WithMeta("suggestion", suggestion)
	}
	return err
}

// Suggest returns the known key closest to got by edit distance, or "" if none is close.
func Suggest(got string, known []string) string {
	if got == "" || len(known) == 0 {
		return ""
	}

	sorted := append([]string(nil), known...)
	sort.Strings(sorted)

	best := ""
	bestDist := -1
	for _, cand := range sorted {
		dist := levenshtein.ComputeDistance(got, cand)
		if dist > SuggestLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best
}

// SuggestLimit is the largest edit distance accepted for a key of the given length.
func SuggestLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var simErr *Error
	if errors.As(err, &simErr) {
		return simErr.Code == code
	}
	return false
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return Is(err, CodeInvalidArgument)
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return Is(err, CodeValidation)
}

// IsFailedPrecondition checks if the error is a failed precondition error
func IsFailedPrecondition(err error) bool {
	return Is(err, CodeFailedPrecondition)
}

// IsOutOfRange checks if the error is an out of range error
func IsOutOfRange(err error) bool {
	return Is(err, CodeOutOfRange)
}

// IsUnimplemented checks if the error is an unimplemented error
func IsUnimplemented(err error) bool {
	return Is(err, CodeUnimplemented)
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// GetCode returns the error code
func GetCode(err error) Code {
	var simErr *Error
	if errors.As(err, &simErr) {
		return simErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the error metadata
func GetMeta(err error) map[string]any {
	var simErr *Error
	if errors.As(err, &simErr) {
		return simErr.Meta
	}
	return nil
}

func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
