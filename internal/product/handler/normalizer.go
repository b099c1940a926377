package handler

import (
	"errors"
	"net/http"

	producterrors "github.com/abgdnv/catalog/internal/product/errors"
)

const msgSomethingWentWrong = "Something went wrong"

// ErrorBody is the JSON shape of every failed response.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Normalize turns any error into a response. Typed errors keep their status, label and
// message; everything else becomes an opaque 500.
func Normalize(err error) *Response {
	var appErr *producterrors.Error
	if !errors.As(err, &appErr) {
		return &Response{
			Status: http.StatusInternalServerError,
			Body:   ErrorBody{Error: string(producterrors.KindInternal), Message: msgSomethingWentWrong},
		}
	}

	status := appErr.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	label := appErr.Label
	if label == "" {
		label = string(appErr.Kind)
	}
	if label == "" {
		label = string(producterrors.KindInternal)
	}
	message := appErr.Message
	if message == "" {
		message = msgSomethingWentWrong
	}
	return &Response{Status: status, Body: ErrorBody{Error: label, Message: message}}
}
