package store

import (
	"context"
	"slices"
	"sync"

	"github.com/abgdnv/catalog/internal/product/errors"
	"github.com/google/uuid"
)

// inMemory implements ProductStore using an ordered slice guarded by a mutex.
type inMemory struct {
	mu       sync.RWMutex
	products []Product
	newID    func() string
}

// Option configures the in-memory store.
type Option func(*inMemory)

// WithIDGenerator replaces the UUID generator used for new products.
func WithIDGenerator(fn func() string) Option {
	return func(s *inMemory) {
		s.newID = fn
	}
}

// NewInMemoryStore creates a new instance of ProductStore holding a copy of the given seed products.
func NewInMemoryStore(seed []Product, opts ...Option) ProductStore {
	s := &inMemory{
		products: slices.Clone(seed),
		newID:    uuid.NewString,
	}
	if s.products == nil {
		s.products = []Product{}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindAll retrieves all products.
func (s *inMemory) FindAll(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.products), nil
}

// FindByID retrieves a product by its ID.
func (s *inMemory) FindByID(_ context.Context, id string) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, errors.ErrProductNotFound
	}
	p := s.products[i]
	return &p, nil
}

// Create creates a new product and returns it.
func (s *inMemory) Create(_ context.Context, fields Fields) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := fields.toProduct(s.newID())
	s.products = append(s.products, product)

	return &product, nil
}

// Update overwrites the business fields of a product in place.
func (s *inMemory) Update(_ context.Context, id string, fields Fields) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, errors.ErrProductNotFound
	}
	s.products[i] = fields.toProduct(id)
	p := s.products[i]
	return &p, nil
}

// DeleteByID deletes a product by its ID.
func (s *inMemory) DeleteByID(_ context.Context, id string) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, errors.ErrProductNotFound
	}
	removed := s.products[i]
	s.products = slices.Delete(s.products, i, i+1)
	return &removed, nil
}

// indexOf returns the position of the product with the given ID or -1. Callers must hold the lock.
func (s *inMemory) indexOf(id string) int {
	return slices.IndexFunc(s.products, func(p Product) bool {
		return p.ID == id
	})
}

func (f Fields) toProduct(id string) Product {
	return Product{
		ID:          id,
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		Category:    f.Category,
		InStock:     f.InStock,
	}
}
