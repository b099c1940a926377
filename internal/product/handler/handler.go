// Package handler provides HTTP handlers for product-related operations.
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/abgdnv/catalog/internal/platform/web"
	producterrors "github.com/abgdnv/catalog/internal/product/errors"
	"github.com/abgdnv/catalog/internal/product/query"
	"github.com/abgdnv/catalog/internal/product/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const (
	msgProductNotFound  = "Product not found"
	msgProductDeleted   = "Product deleted"
	msgRouteNotFound    = "Route not found"
	msgMethodNotAllowed = "Method not allowed"
)

// Options configures the product API.
type Options struct {
	// AuthHeader is the request header carrying the API key.
	AuthHeader string
	// APIKey is the shared secret every product route requires.
	APIKey string
	// Prefix is the path under which the product routes are mounted, e.g. "/api".
	Prefix string
	// MaxBodyBytes caps the size of request bodies.
	MaxBodyBytes int64
}

// API serves the product routes.
type API struct {
	service      service.ProductService
	validate     *validator.Validate
	logger       *slog.Logger
	opts         Options
	auth         Stage
	validateBody Stage
}

// DeleteResult is the body returned after a product has been removed.
type DeleteResult struct {
	Message string              `json:"message"`
	Product *service.ProductDto `json:"product"`
}

// NewAPI creates a new product API with the provided service.
func NewAPI(service service.ProductService, opts Options, logger *slog.Logger) *API {
	validate := validator.New()
	logger = logger.With("component", "api")
	return &API{
		service:      service,
		validate:     validate,
		logger:       logger,
		opts:         opts,
		auth:         AuthGate(opts.AuthHeader, opts.APIKey),
		validateBody: ValidationGate(validate, logger),
	}
}

// RegisterRoutes mounts the product routes and the unauthenticated service routes on r.
func (a *API) RegisterRoutes(r chi.Router) {
	// set before Route so the sub-router inherits them
	r.NotFound(a.NotFound)
	r.MethodNotAllowed(a.MethodNotAllowed)

	r.Get("/", a.serve(NewPipeline(a.root)))
	r.Get("/healthz", a.serve(NewPipeline(a.healthCheck)))

	r.Route(a.opts.Prefix+"/products", func(r chi.Router) {
		r.Get("/", a.serve(NewPipeline(a.list, a.auth)))
		r.Post("/", a.serve(NewPipeline(a.create, a.auth, a.validateBody)))
		// static segment registered ahead of the {id} pattern
		r.Get("/stats", a.serve(NewPipeline(a.stats, a.auth)))
		r.Get("/{id}", a.serve(NewPipeline(a.findByID, a.auth)))
		r.Put("/{id}", a.serve(NewPipeline(a.update, a.auth, a.validateBody)))
		r.Delete("/{id}", a.serve(NewPipeline(a.deleteByID, a.auth)))
	})
}

// NotFound answers requests for paths no route matches.
func (a *API) NotFound(w http.ResponseWriter, r *http.Request) {
	a.fail(w, r, producterrors.NotFound(msgRouteNotFound, nil))
}

// MethodNotAllowed answers requests for known paths with an unsupported method.
func (a *API) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	a.fail(w, r, producterrors.MethodNotAllowed(msgMethodNotAllowed))
}

// RespondPanic renders the response for a request whose handler panicked.
func (a *API) RespondPanic(w http.ResponseWriter, r *http.Request) {
	a.write(w, Normalize(errors.New("handler panicked")))
}

// serve adapts a pipeline to an http.HandlerFunc.
func (a *API) serve(p Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := p.Execute(r.Context(), a.newRequest(w, r))
		if err != nil {
			a.fail(w, r, err)
			return
		}
		a.write(w, resp)
	}
}

func (a *API) newRequest(w http.ResponseWriter, r *http.Request) *Request {
	req := &Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header,
		Params: map[string]string{},
		Query:  r.URL.Query(),
	}
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			req.Params[key] = rctx.URLParams.Values[i]
		}
	}
	if r.Body != nil {
		body := r.Body
		if a.opts.MaxBodyBytes > 0 {
			body = http.MaxBytesReader(w, r.Body, a.opts.MaxBodyBytes)
		}
		req.Body, req.bodyErr = io.ReadAll(body)
	}
	return req
}

// fail normalizes err, logs it and writes the error response.
func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	resp := Normalize(err)
	if resp.Status >= http.StatusInternalServerError {
		a.logger.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		a.logger.WarnContext(r.Context(), "Request rejected", "method", r.Method, "path", r.URL.Path, "status", resp.Status, "error", err)
	}
	a.write(w, resp)
}

func (a *API) write(w http.ResponseWriter, resp *Response) {
	if text, ok := resp.Body.(string); ok {
		web.RespondText(w, resp.Status, text)
		return
	}
	web.RespondJSON(w, a.logger, resp.Status, resp.Body)
}

func (a *API) root(_ context.Context, _ *Request) (*Response, error) {
	return &Response{Status: http.StatusOK, Body: "Hello World"}, nil
}

// healthCheck is a simple health check endpoint.
func (a *API) healthCheck(_ context.Context, _ *Request) (*Response, error) {
	return &Response{Status: http.StatusOK}, nil
}

func (a *API) list(ctx context.Context, req *Request) (*Response, error) {
	params := query.ParseParams(req.Query)
	a.logger.DebugContext(ctx, "Received request to list products",
		"category", params.Category, "search", params.Search, "page", params.Page, "limit", params.Limit)
	result, err := a.service.List(ctx, params)
	if err != nil {
		return nil, producterrors.Internal(msgSomethingWentWrong, err)
	}
	return &Response{Status: http.StatusOK, Body: result}, nil
}

func (a *API) stats(ctx context.Context, _ *Request) (*Response, error) {
	stats, err := a.service.Stats(ctx)
	if err != nil {
		return nil, producterrors.Internal(msgSomethingWentWrong, err)
	}
	return &Response{Status: http.StatusOK, Body: stats}, nil
}

func (a *API) findByID(ctx context.Context, req *Request) (*Response, error) {
	found, err := a.service.FindByID(ctx, req.Param("id"))
	if err != nil {
		return nil, mapServiceError(err)
	}
	return &Response{Status: http.StatusOK, Body: found}, nil
}

func (a *API) create(ctx context.Context, req *Request) (*Response, error) {
	input, err := productInput(req)
	if err != nil {
		return nil, err
	}
	created, err := a.service.Create(ctx, *input)
	if err != nil {
		return nil, mapServiceError(err)
	}
	a.logger.InfoContext(ctx, "Product created successfully", "ID", created.ID, "Name", created.Name)
	return &Response{Status: http.StatusCreated, Body: created}, nil
}

func (a *API) update(ctx context.Context, req *Request) (*Response, error) {
	input, err := productInput(req)
	if err != nil {
		return nil, err
	}
	updated, err := a.service.Update(ctx, req.Param("id"), *input)
	if err != nil {
		return nil, mapServiceError(err)
	}
	a.logger.InfoContext(ctx, "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	return &Response{Status: http.StatusOK, Body: updated}, nil
}

func (a *API) deleteByID(ctx context.Context, req *Request) (*Response, error) {
	deleted, err := a.service.DeleteByID(ctx, req.Param("id"))
	if err != nil {
		return nil, mapServiceError(err)
	}
	a.logger.InfoContext(ctx, "Product deleted successfully", "ID", deleted.ID)
	return &Response{Status: http.StatusOK, Body: DeleteResult{Message: msgProductDeleted, Product: deleted}}, nil
}

// productInput returns the body attached by the validation gate.
func productInput(req *Request) (*service.ProductInput, error) {
	input, ok := req.Input.(*service.ProductInput)
	if !ok || input == nil {
		return nil, producterrors.Internal(msgSomethingWentWrong, errors.New("request input missing"))
	}
	return input, nil
}

func mapServiceError(err error) error {
	if errors.Is(err, producterrors.ErrProductNotFound) {
		return producterrors.NotFound(msgProductNotFound, err)
	}
	return producterrors.Internal(msgSomethingWentWrong, err)
}
