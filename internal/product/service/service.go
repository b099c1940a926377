// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abgdnv/catalog/internal/platform/messaging"
	"github.com/abgdnv/catalog/internal/product/events"
	"github.com/abgdnv/catalog/internal/product/query"
	"github.com/abgdnv/catalog/internal/product/store"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// List returns the filtered, paginated view of the catalog.
	List(ctx context.Context, params query.Params) (*ListResult, error)

	// Stats returns the number of products per category.
	Stats(ctx context.Context) (*StatsDto, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id string) (*ProductDto, error)

	// Create adds a new product to the catalog.
	Create(ctx context.Context, input ProductInput) (*ProductDto, error)

	// Update replaces all fields of an existing product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id string, input ProductInput) (*ProductDto, error)

	// DeleteByID removes a product by its ID and returns the removed product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id string) (*ProductDto, error)
}

// service implements ProductService and provides methods to manage products.
type service struct {
	repository store.ProductStore
	publisher  messaging.Publisher
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new instance of ProductService with the provided repository.
// Product changes are announced through publisher.
func NewService(repo store.ProductStore, publisher messaging.Publisher, logger *slog.Logger) ProductService {
	return &service{
		repository: repo,
		publisher:  publisher,
		logger:     logger.With("component", "service"),
		now:        time.Now,
	}
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	InStock     bool    `json:"inStock"`
}

// ProductInput is the body accepted by create and update. Price and InStock are pointers
// so that a present zero value can be told apart from an absent field. A JSON null counts as absent.
type ProductInput struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	InStock     *bool    `json:"inStock" validate:"required"`
}

// ListResult is one page of the catalog.
type ListResult struct {
	Total    int          `json:"total"`
	Page     int          `json:"page"`
	Limit    int          `json:"limit"`
	Products []ProductDto `json:"products"`
}

// StatsDto holds the per-category aggregation.
type StatsDto struct {
	CountByCategory map[string]int `json:"countByCategory"`
}

// List applies the query parameters to a snapshot of the catalog.
func (s *service) List(ctx context.Context, params query.Params) (*ListResult, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	result := query.Apply(products, params)

	productDTOs := make([]ProductDto, len(result.Products))
	for i := range result.Products {
		productDTOs[i] = *toDto(&result.Products[i])
	}

	return &ListResult{
		Total:    result.Total,
		Page:     result.Page,
		Limit:    result.Limit,
		Products: productDTOs,
	}, nil
}

// Stats counts products per category.
func (s *service) Stats(ctx context.Context) (*StatsDto, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return &StatsDto{CountByCategory: query.CountByCategory(products)}, nil
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
func (s *service) FindByID(ctx context.Context, id string) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}

	return toDto(product), nil
}

// Create creates a new product and returns it as a ProductDto.
func (s *service) Create(ctx context.Context, input ProductInput) (*ProductDto, error) {
	p, err := s.repository.Create(ctx, toFields(input))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	s.publish(ctx, events.ProductCreated{ProductChange: s.change(p)})

	return toDto(p), nil
}

// Update replaces the product fields and returns the updated product.
func (s *service) Update(ctx context.Context, id string, input ProductInput) (*ProductDto, error) {
	p, err := s.repository.Update(ctx, id, toFields(input))
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", id, err)
	}
	s.publish(ctx, events.ProductUpdated{ProductChange: s.change(p)})

	return toDto(p), nil
}

// DeleteByID deletes a product by its ID.
func (s *service) DeleteByID(ctx context.Context, id string) (*ProductDto, error) {
	p, err := s.repository.DeleteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete product with ID %s: %w", id, err)
	}
	s.publish(ctx, events.ProductDeleted{ProductChange: s.change(p)})

	return toDto(p), nil
}

// publish announces a change. The store has already been modified at this point,
// so a failure is logged and swallowed.
func (s *service) publish(ctx context.Context, event messaging.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish product event", "subject", event.Subject(), "error", err)
	}
}

func (s *service) change(p *store.Product) events.ProductChange {
	return events.ProductChange{
		ProductID:  p.ID,
		Name:       p.Name,
		Category:   p.Category,
		OccurredAt: s.now().UTC(),
	}
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		InStock:     product.InStock,
	}
}

func toFields(input ProductInput) store.Fields {
	fields := store.Fields{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
	}
	if input.Price != nil {
		fields.Price = *input.Price
	}
	if input.InStock != nil {
		fields.InStock = *input.InStock
	}
	return fields
}
