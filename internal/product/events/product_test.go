package events

import (
	"testing"
	"time"

	"github.com/abgdnv/catalog/internal/platform/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductEvents(t *testing.T) {
	change := ProductChange{
		ProductID:  "1",
		Name:       "Laptop",
		Category:   "electronics",
		OccurredAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	expectedPayload := `{"product_id":"1","name":"Laptop","category":"electronics","occurred_at":"2024-05-01T12:00:00Z"}`

	testCases := []struct {
		name            string
		event           messaging.Event
		expectedSubject string
	}{
		{name: "created", event: ProductCreated{change}, expectedSubject: "products.created"},
		{name: "updated", event: ProductUpdated{change}, expectedSubject: "products.updated"},
		{name: "deleted", event: ProductDeleted{change}, expectedSubject: "products.deleted"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			payload, err := tc.event.Payload()

			require.NoError(t, err)
			assert.Equal(t, tc.expectedSubject, tc.event.Subject())
			assert.JSONEq(t, expectedPayload, string(payload))
		})
	}
}
