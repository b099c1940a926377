package handler

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	producterrors "github.com/abgdnv/catalog/internal/product/errors"
	"github.com/abgdnv/catalog/internal/product/service"
	"github.com/go-playground/validator/v10"
)

const (
	msgInvalidAPIKey  = "Unauthorized: Invalid API key"
	msgFieldsRequired = "All product fields are required"
	msgInvalidBody    = "Invalid request body"
	msgBodyTooLarge   = "Request body too large"
)

// AuthGate admits a request only when header carries exactly apiKey.
// An empty apiKey admits nothing.
func AuthGate(header, apiKey string) Stage {
	expected := []byte(apiKey)
	return func(_ context.Context, req *Request) (*Request, error) {
		provided := []byte(req.Header.Get(header))
		if len(expected) == 0 || subtle.ConstantTimeCompare(provided, expected) != 1 {
			return nil, producterrors.Unauthorized(msgInvalidAPIKey)
		}
		return req, nil
	}
}

// ValidationGate decodes the body into a service.ProductInput, checks that every
// field is present and attaches the input to the request.
func ValidationGate(validate *validator.Validate, logger *slog.Logger) Stage {
	return func(ctx context.Context, req *Request) (*Request, error) {
		if req.bodyErr != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(req.bodyErr, &maxBytesErr) {
				return nil, producterrors.PayloadTooLarge(msgBodyTooLarge, req.bodyErr)
			}
			return nil, producterrors.Validation(msgInvalidBody, req.bodyErr)
		}

		var input service.ProductInput
		if body := bytes.TrimSpace(req.Body); len(body) > 0 {
			if err := json.Unmarshal(body, &input); err != nil {
				return nil, producterrors.Validation(msgInvalidBody, err)
			}
		}

		if err := validate.Struct(input); err != nil {
			var validationErrors validator.ValidationErrors
			if errors.As(err, &validationErrors) {
				failed := make(map[string]string, len(validationErrors))
				for _, fieldErr := range validationErrors {
					failed[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
				}
				logger.WarnContext(ctx, "Validation errors occurred", "errors", failed)
			}
			return nil, producterrors.Validation(msgFieldsRequired, err)
		}

		req.Input = &input
		return req, nil
	}
}
