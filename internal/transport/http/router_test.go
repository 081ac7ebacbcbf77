package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/light-bringer/catalog-service/internal/app/product/queries/get_product"
	"github.com/light-bringer/catalog-service/internal/app/product/queries/search_products"
	"github.com/light-bringer/catalog-service/internal/metrics"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-service/internal/seed"
	"github.com/light-bringer/catalog-service/internal/transport/http/product"
	"github.com/light-bringer/catalog-service/tests/testutil"
)

func newTestRouter(t *testing.T) (http.Handler, *observer.ObservedLogs) {
	t.Helper()

	products, err := seed.Products(clock.System())
	require.NoError(t, err)
	catalog := testutil.NewMemoryCatalog(products...)

	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)

	handler := product.NewHandler(search_products.NewQuery(catalog, m), get_product.NewQuery(catalog), time.Second)

	core, logs := observer.New(zapcore.InfoLevel)
	return NewRouter(handler, m, zap.New(core)), logs
}

func TestRouter_Health(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRouter_MetricsExposeSearches(t *testing.T) {
	r, _ := newTestRouter(t)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products?size=5", nil))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `catalog_search_total{result="ok"} 1`)
	// labelled by route pattern, not raw URL
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="/products`)
	assert.NotContains(t, rec.Body.String(), `size=5`)
}

func TestRequestLogger_ScopesRequestID(t *testing.T) {
	r, logs := newTestRouter(t)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/1", nil))

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.NotEmpty(t, fields["request_id"])
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/products/1", fields["path"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
}

func TestRouter_UnknownRoute(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
