// Package errors provides the error taxonomy for product-related operations.
package errors

import (
	"errors"
	"net/http"
)

// ErrProductNotFound is returned by the store when no product exists with the given ID.
var ErrProductNotFound = errors.New("product not found")

// Kind labels a failure in the response body.
type Kind string

const (
	KindUnauthorized Kind = "Unauthorized"
	KindValidation   Kind = "ValidationError"
	KindNotFound     Kind = "NotFoundError"
	KindInternal     Kind = "InternalServerError"

	KindMethodNotAllowed Kind = "MethodNotAllowed"
	KindPayloadTooLarge  Kind = "PayloadTooLarge"
)

// Error is a request-terminal failure carrying the HTTP status, the kind label
// and the client-facing message. Label, when set, replaces the kind in the
// response body. Err keeps the underlying cause for logging.
type Error struct {
	Kind    Kind
	Label   string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Unauthorized reports a missing or incorrect credential. Clients match on the
// error field, so the message doubles as the label.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Label: message, Status: http.StatusUnauthorized, Message: message}
}

// Validation reports a malformed or incomplete request body.
func Validation(message string, cause error) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: message, Err: cause}
}

// NotFound reports a reference to a product that does not exist.
func NotFound(message string, cause error) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: message, Err: cause}
}

// Internal reports an unexpected failure. The message is safe to show to clients.
func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: message, Err: cause}
}

// MethodNotAllowed reports a known path requested with an unsupported method.
func MethodNotAllowed(message string) *Error {
	return &Error{Kind: KindMethodNotAllowed, Status: http.StatusMethodNotAllowed, Message: message}
}

// PayloadTooLarge reports a request body over the configured limit.
func PayloadTooLarge(message string, cause error) *Error {
	return &Error{Kind: KindPayloadTooLarge, Status: http.StatusRequestEntityTooLarge, Message: message, Err: cause}
}
