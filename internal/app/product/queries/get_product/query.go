package get_product

import (
	"context"
	"fmt"

	"github.com/light-bringer/catalog-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-service/internal/app/product/domain"
)

// Request contains the product ID to retrieve.
type Request struct {
	ProductID int64
}

// Query handles the get product query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new get product query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves a product by ID with its categories.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ProductDTO, error) {
	if req.ProductID <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrProductNotFound, req.ProductID)
	}
	return q.readModel.GetProductByID(ctx, req.ProductID)
}
