package reimbursement

import (
	"errors"
	"fmt"
)

// Kind classifies domain failures. The core has exactly two: bad request
// data and business-rule denial. Both translate to HTTP 400 at the boundary.
type Kind int

const (
	KindInvalidInput Kind = iota + 1
	KindUnauthorized
)

// Error is a domain failure with a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// NewInvalidInput builds an invalid-input error.
func NewInvalidInput(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// NewUnauthorized builds a business-rule denial error.
func NewUnauthorized(format string, args ...interface{}) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsInvalidInput reports whether err is an invalid-input domain error.
func IsInvalidInput(err error) bool { return kindOf(err) == KindInvalidInput }

// IsUnauthorized reports whether err is an authorization denial.
func IsUnauthorized(err error) bool { return kindOf(err) == KindUnauthorized }
