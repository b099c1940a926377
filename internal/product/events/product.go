// Package events defines the domain events emitted after product mutations.
package events

import (
	"encoding/json"
	"time"

	"github.com/abgdnv/catalog/internal/platform/messaging"
)

// ProductChange is the payload shared by every product event.
type ProductChange struct {
	ProductID  string    `json:"product_id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ProductCreated struct {
	ProductChange
}

func (e ProductCreated) Subject() string {
	return messaging.ProductsCreatedSubject
}

func (e ProductCreated) Payload() ([]byte, error) {
	return json.Marshal(e.ProductChange)
}

type ProductUpdated struct {
	ProductChange
}

func (e ProductUpdated) Subject() string {
	return messaging.ProductsUpdatedSubject
}

func (e ProductUpdated) Payload() ([]byte, error) {
	return json.Marshal(e.ProductChange)
}

type ProductDeleted struct {
	ProductChange
}

func (e ProductDeleted) Subject() string {
	return messaging.ProductsDeletedSubject
}

func (e ProductDeleted) Payload() ([]byte, error) {
	return json.Marshal(e.ProductChange)
}
