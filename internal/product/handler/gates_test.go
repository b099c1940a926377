package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	producterrors "github.com/abgdnv/catalog/internal/product/errors"
	"github.com/abgdnv/catalog/internal/product/service"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthGate(t *testing.T) {
	testCases := []struct {
		name      string
		apiKey    string
		header    http.Header
		expectErr bool
	}{
		{name: "matching key", apiKey: "secret", header: http.Header{"X-Api-Key": {"secret"}}},
		{name: "missing header", apiKey: "secret", header: http.Header{}, expectErr: true},
		{name: "wrong key", apiKey: "secret", header: http.Header{"X-Api-Key": {"wrong"}}, expectErr: true},
		{name: "prefix of key", apiKey: "secret", header: http.Header{"X-Api-Key": {"secre"}}, expectErr: true},
		{name: "empty configured key admits nothing", apiKey: "", header: http.Header{"X-Api-Key": {""}}, expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			gate := AuthGate("X-API-Key", tc.apiKey)
			req := &Request{Header: tc.header}

			// when
			got, err := gate(context.Background(), req)

			// then
			if !tc.expectErr {
				require.NoError(t, err)
				assert.Same(t, req, got)
				return
			}
			var appErr *producterrors.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, producterrors.KindUnauthorized, appErr.Kind)
			assert.Equal(t, "Unauthorized: Invalid API key", appErr.Message)
			assert.Equal(t, "Unauthorized: Invalid API key", appErr.Label)
		})
	}
}

func TestValidationGate(t *testing.T) {
	testCases := []struct {
		name            string
		body            string
		bodyErr         error
		expectedMessage string
		expectedKind    producterrors.Kind
	}{
		{name: "complete", body: `{"name":"Pen","description":"Blue","price":2.5,"category":"office","inStock":true}`},
		{name: "zero price and not in stock", body: `{"name":"Pen","description":"Blue","price":0,"category":"office","inStock":false}`},
		{name: "missing name", body: `{"description":"Blue","price":2.5,"category":"office","inStock":true}`, expectedKind: producterrors.KindValidation, expectedMessage: msgFieldsRequired},
		{name: "empty description", body: `{"name":"Pen","description":"","price":2.5,"category":"office","inStock":true}`, expectedKind: producterrors.KindValidation, expectedMessage: msgFieldsRequired},
		{name: "missing price", body: `{"name":"Pen","description":"Blue","category":"office","inStock":true}`, expectedKind: producterrors.KindValidation, expectedMessage: msgFieldsRequired},
		{name: "null price", body: `{"name":"Pen","description":"Blue","price":null,"category":"office","inStock":true}`, expectedKind: producterrors.KindValidation, expectedMessage: msgFieldsRequired},
		{name: "missing category", body: `{"name":"Pen","description":"Blue","price":2.5,"inStock":true}`, expectedKind: producterrors.KindValidation, expectedMessage: msgFieldsRequired},
		{name: "missing inStock", body: `{"name":"Pen","description":"Blue","price":2.5,"category":"office"}`, expectedKind: producterrors.KindValidation, expectedMessage: msgFieldsRequired},
		{name: "empty body", body: ``, expectedKind: producterrors.KindValidation, expectedMessage: msgFieldsRequired},
		{name: "empty object", body: `{}`, expectedKind: producterrors.KindValidation, expectedMessage: msgFieldsRequired},
		{name: "malformed json", body: `{"name":`, expectedKind: producterrors.KindValidation, expectedMessage: msgInvalidBody},
		{name: "wrong type", body: `{"name":"Pen","description":"Blue","price":"cheap","category":"office","inStock":true}`, expectedKind: producterrors.KindValidation, expectedMessage: msgInvalidBody},
		{name: "body too large", bodyErr: &http.MaxBytesError{Limit: 1}, expectedKind: producterrors.KindPayloadTooLarge, expectedMessage: msgBodyTooLarge},
		{name: "body read failure", bodyErr: errors.New("connection reset"), expectedKind: producterrors.KindValidation, expectedMessage: msgInvalidBody},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			gate := ValidationGate(validator.New(), discardLogger())
			req := &Request{Body: []byte(tc.body), bodyErr: tc.bodyErr}

			// when
			got, err := gate(context.Background(), req)

			// then
			if tc.expectedKind == "" {
				require.NoError(t, err)
				input, ok := got.Input.(*service.ProductInput)
				require.True(t, ok)
				assert.Equal(t, "Pen", input.Name)
				require.NotNil(t, input.Price)
				require.NotNil(t, input.InStock)
				return
			}
			var appErr *producterrors.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tc.expectedKind, appErr.Kind)
			assert.Equal(t, tc.expectedMessage, appErr.Message)
			assert.Nil(t, req.Input)
		})
	}
}
