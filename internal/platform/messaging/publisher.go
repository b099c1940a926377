// Package messaging defines the event publishing abstraction used by the domain services.
package messaging

import (
	"context"
)

const (
	// ProductsStream is the JetStream stream capturing every product subject.
	ProductsStream   = "PRODUCTS"
	ProductsSubjects = "products.>"

	ProductsCreatedSubject = "products.created"
	ProductsUpdatedSubject = "products.updated"
	ProductsDeletedSubject = "products.deleted"
)

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event. Used when event publishing is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error {
	return nil
}
