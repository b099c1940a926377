// Package app contains the application setup for the ProductService.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/catalog/internal/config"
	"github.com/abgdnv/catalog/internal/platform/messaging"
	"github.com/abgdnv/catalog/internal/platform/nats"
	"github.com/abgdnv/catalog/internal/platform/server"
	"github.com/abgdnv/catalog/internal/product/handler"
	"github.com/abgdnv/catalog/internal/product/service"
	"github.com/abgdnv/catalog/internal/product/store"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName identifies the product service in health checks, traces and config.
const ServiceName = "product"

type Dependencies struct {
	ProductService service.ProductService
	Logger         *slog.Logger
}

// SetupDependencies wires the product service over repo. Product changes are sent to publisher.
func SetupDependencies(repo store.ProductStore, publisher messaging.Publisher, logger *slog.Logger) *Dependencies {
	return &Dependencies{
		ProductService: service.NewService(repo, publisher, logger),
		Logger:         logger,
	}
}

// SetupPublisher returns the event publisher selected by cfg and a function releasing its resources.
// With events disabled every event is dropped.
func SetupPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (messaging.Publisher, func(), error) {
	if !cfg.Events.Enabled {
		logger.Info("Event publishing is disabled")
		return messaging.NopPublisher{}, func() {}, nil
	}
	nc, err := nats.NewClient(cfg.Events.NATS.Url, cfg.Events.NATS.Timeout)
	if err != nil {
		return nil, nil, err
	}
	js, err := nats.NewJetStreamContext(nc)
	if err != nil {
		return nil, nil, err
	}
	if err := nats.EnsureStream(ctx, js, messaging.ProductsStream, messaging.ProductsSubjects); err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("failed to set up event publishing: %w", err)
	}
	logger.Info("Publishing product events", "stream", messaging.ProductsStream)
	publisher := messaging.NewBreakerPublisher(nats.NewPublisher(js), cfg.Events.CircuitBreaker, logger)
	return publisher, func() { _ = nc.Drain() }, nil
}

// SetupHttpHandler builds the router with the middleware chain and the product routes.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies, cfg *config.Config) http.Handler {
	pApi := handler.NewAPI(deps.ProductService, handler.Options{
		AuthHeader:   cfg.Auth.Header,
		APIKey:       cfg.Auth.APIKey,
		Prefix:       cfg.API.Prefix,
		MaxBodyBytes: cfg.API.MaxBodyBytes,
	}, deps.Logger)

	mux := server.NewChiRouter(deps.Logger, pApi.RespondPanic)
	pApi.RegisterRoutes(mux)

	if cfg.Telemetry.Enabled {
		return otelhttp.NewHandler(mux, ServiceName)
	}
	return mux
}

// SetupHttpServer creates and configures an HTTP server for the ProductService application.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	return server.NewHTTPServer(server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}, SetupHttpHandler(deps, cfg), deps.Logger)
}

// SetupGrpcServer initializes the gRPC server exposing the standard health service.
// The returned health server reports the product service as serving.
func SetupGrpcServer(deps *Dependencies, cfg *config.Config) (*grpc.Server, *health.Server) {
	healthServer := health.NewServer()
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	grpcServer := server.NewGRPCServer(deps.Logger, cfg.GRPC.ReflectionEnabled, func(s *grpc.Server) {
		healthpb.RegisterHealthServer(s, healthServer)
	})
	return grpcServer, healthServer
}
