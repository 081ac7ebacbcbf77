package services

import (
	"context"
	"fmt"
	"net/http"

	"cloud.google.com/go/spanner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/light-bringer/catalog-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-service/internal/app/product/queries/get_product"
	"github.com/light-bringer/catalog-service/internal/app/product/queries/search_products"
	"github.com/light-bringer/catalog-service/internal/app/product/repo"
	"github.com/light-bringer/catalog-service/internal/config"
	"github.com/light-bringer/catalog-service/internal/metrics"
	"github.com/light-bringer/catalog-service/internal/pkg/logger"
	httptransport "github.com/light-bringer/catalog-service/internal/transport/http"
	"github.com/light-bringer/catalog-service/internal/transport/http/product"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient  *spanner.Client
	Metrics        *metrics.Metrics
	ProductHandler *product.Handler
	Router         http.Handler
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg config.Config) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.SpannerDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	opts, err := Wire(repo.NewReadModel(spannerClient), cfg, prometheus.NewRegistry(), logger.L())
	if err != nil {
		spannerClient.Close()
		return nil, err
	}
	opts.SpannerClient = spannerClient
	return opts, nil
}

// Wire builds the query and transport layers on top of readModel.
func Wire(readModel contracts.ReadModel, cfg config.Config, reg *prometheus.Registry, base *zap.Logger) (*ServiceOptions, error) {
	// 2. Metrics, with process and runtime collectors alongside the service ones
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("failed to register go collector: %w", err)
	}
	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("failed to register process collector: %w", err)
	}
	m, err := metrics.New(reg)
	if err != nil {
		return nil, err
	}

	// 3. Queries
	searchQuery := search_products.NewQuery(readModel, m)
	getProductQuery := get_product.NewQuery(readModel)

	// 4. HTTP
	productHandler := product.NewHandler(searchQuery, getProductQuery, cfg.SearchTimeout)

	return &ServiceOptions{
		Metrics:        m,
		ProductHandler: productHandler,
		Router:         httptransport.NewRouter(productHandler, m, base),
	}, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
