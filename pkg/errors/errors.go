package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies an application error so the tool dispatch layer can decide
// how a failure crosses the text-only boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindStorage
	KindTransport
	KindMalformedInput
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage"
	case KindTransport:
		return "transport"
	case KindMalformedInput:
		return "malformed_input"
	default:
		return "internal"
	}
}

// AppError represents an application error
type AppError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error constructors
func NotFound(message string, err error) *AppError {
	return &AppError{Kind: KindNotFound, Message: message, Err: err}
}

func NotFoundf(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Storage(message string, err error) *AppError {
	return &AppError{Kind: KindStorage, Message: message, Err: err}
}

func Transport(message string, err error) *AppError {
	return &AppError{Kind: KindTransport, Message: message, Err: err}
}

func MalformedInput(message string, err error) *AppError {
	return &AppError{Kind: KindMalformedInput, Message: message, Err: err}
}

func Internal(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "internal error", Err: err}
}

// KindOf walks the error chain and reports the kind of the first AppError
// found, or KindInternal for plain errors.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether the error chain contains an AppError of kind k.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// MessageOf returns the application-level message of the first AppError in
// the chain, falling back to the plain error text.
func MessageOf(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
