package search_products

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/catalog-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-service/internal/metrics"
	"github.com/light-bringer/catalog-service/internal/pkg/logger"
	"github.com/light-bringer/catalog-service/internal/pkg/ordering"
	"github.com/light-bringer/catalog-service/internal/pkg/pagination"
)

// Request contains the search filter and the page to return.
type Request struct {
	Filter contracts.SearchFilter
	Page   pagination.Request
}

// Recorder receives one observation per search.
type Recorder interface {
	ObserveSearch(result string, d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveSearch(string, time.Duration) {}

// Query handles the product search use case.
type Query struct {
	readModel contracts.ReadModel
	recorder  Recorder
}

// NewQuery creates a new search query. A nil recorder records nothing.
func NewQuery(readModel contracts.ReadModel, recorder Recorder) *Query {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Query{
		readModel: readModel,
		recorder:  recorder,
	}
}

// Execute returns one page of products matching the filter, each with its
// full category set, in the order of the page request's sort keys.
//
// The page query and the hydration run in one read-only snapshot. Any store
// failure fails the whole search; no partial page is returned.
func (q *Query) Execute(ctx context.Context, req *Request) (*pagination.Page[*contracts.ProductDTO], error) {
	start := time.Now()
	page, err := q.execute(ctx, req)
	q.recorder.ObserveSearch(resultOf(err), time.Since(start))

	log := logger.From(ctx).Named("search_products")
	switch {
	case err == nil:
		log.Debug("search completed",
			zap.String("name", req.Filter.Name()),
			zap.Int("page", req.Page.Page),
			zap.Int("size", req.Page.Size),
			zap.Int("returned", page.NumberOfElements()),
			logger.Total(page.TotalElements),
			logger.Duration(time.Since(start)),
		)
	case errors.Is(err, domain.ErrConsistency):
		log.Error("search result inconsistent", logger.Err(err))
	case errors.Is(err, domain.ErrStoreUnavailable):
		log.Warn("search failed", logger.Err(err))
	}

	return page, err
}

func (q *Query) execute(ctx context.Context, req *Request) (*pagination.Page[*contracts.ProductDTO], error) {
	if err := validate(req.Page); err != nil {
		return nil, err
	}

	if req.Filter.MatchesNothing() {
		empty := pagination.Empty[*contracts.ProductDTO](req.Page)
		return &empty, nil
	}

	var result pagination.Page[*contracts.ProductDTO]
	err := q.readModel.Snapshot(ctx, func(ctx context.Context, reader contracts.SearchReader) error {
		refs, err := reader.FindIDPage(ctx, req.Filter, req.Page)
		if err != nil {
			return err
		}
		if refs.IsEmpty() {
			result = pagination.Assemble([]*contracts.ProductDTO{}, refs)
			return nil
		}

		ids := make([]int64, len(refs.Content))
		for i, ref := range refs.Content {
			ids[i] = ref.ID
		}

		dtos, err := reader.FindWithCategories(ctx, ids)
		if err != nil {
			return err
		}

		ordered, err := ordering.Reorder(ids, dtos, contracts.DTOID)
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrConsistency, err)
		}

		result = pagination.Assemble(ordered, refs)
		return nil
	})
	if err != nil {
		return nil, classify(ctx, err)
	}

	return &result, nil
}

func validate(page pagination.Request) error {
	if err := page.Validate(); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidPageRequest, err)
	}
	for _, o := range page.Sort {
		if !contracts.IsSortableProperty(o.Property) {
			return fmt.Errorf("%w: cannot sort by %q", domain.ErrInvalidPageRequest, o.Property)
		}
	}
	return nil
}

// classify makes sure a cancelled or expired search surfaces as a store fault.
func classify(ctx context.Context, err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) || errors.Is(err, domain.ErrConsistency) || domain.IsValidation(err) {
		return err
	}
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return err
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case domain.IsValidation(err):
		return metrics.ResultInvalid
	case errors.Is(err, domain.ErrConsistency):
		return metrics.ResultInconsistent
	default:
		return metrics.ResultUnavailable
	}
}
