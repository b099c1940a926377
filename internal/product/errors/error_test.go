package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Error_Constructors(t *testing.T) {
	cause := errors.New("boom")
	testCases := []struct {
		name           string
		err            *Error
		expectedKind   Kind
		expectedStatus int
	}{
		{name: "unauthorized", err: Unauthorized("nope"), expectedKind: KindUnauthorized, expectedStatus: http.StatusUnauthorized},
		{name: "validation", err: Validation("bad", nil), expectedKind: KindValidation, expectedStatus: http.StatusBadRequest},
		{name: "not found", err: NotFound("missing", ErrProductNotFound), expectedKind: KindNotFound, expectedStatus: http.StatusNotFound},
		{name: "internal", err: Internal("oops", cause), expectedKind: KindInternal, expectedStatus: http.StatusInternalServerError},
		{name: "method not allowed", err: MethodNotAllowed("no"), expectedKind: KindMethodNotAllowed, expectedStatus: http.StatusMethodNotAllowed},
		{name: "payload too large", err: PayloadTooLarge("big", cause), expectedKind: KindPayloadTooLarge, expectedStatus: http.StatusRequestEntityTooLarge},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedKind, tc.err.Kind)
			assert.Equal(t, tc.expectedStatus, tc.err.Status)
		})
	}
}

func Test_Error_Unwrap(t *testing.T) {
	// given
	wrapped := fmt.Errorf("handler: %w", NotFound("Product not found", ErrProductNotFound))

	// when
	var appErr *Error
	ok := errors.As(wrapped, &appErr)

	// then
	assert.True(t, ok)
	assert.Equal(t, "Product not found", appErr.Message)
	assert.ErrorIs(t, wrapped, ErrProductNotFound)
	assert.Equal(t, "NotFoundError: Product not found: product not found", appErr.Error())
}
