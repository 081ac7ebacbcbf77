package contracts

import (
	"context"
	"time"

	"github.com/light-bringer/catalog-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-service/internal/pkg/pagination"
)

// ProductRef is the lightweight projection returned by the identifier page query.
type ProductRef struct {
	ID   int64
	Name string
}

// RefID returns the reference's product id.
func RefID(r ProductRef) int64 { return r.ID }

// ProductDTO is a data transfer object for product queries.
type ProductDTO struct {
	ProductID   int64
	Name        string
	Description string
	Price       *domain.Price
	ImgURL      string
	Date        time.Time
	Categories  []domain.Category // ordered by id
}

// DTOID returns the DTO's product id.
func DTOID(d *ProductDTO) int64 { return d.ProductID }

// Sortable properties accepted by the search.
const (
	SortByID    = "id"
	SortByName  = "name"
	SortByPrice = "price"
	SortByDate  = "date"
)

// IsSortableProperty reports whether the search can order by property.
func IsSortableProperty(property string) bool {
	switch property {
	case SortByID, SortByName, SortByPrice, SortByDate:
		return true
	default:
		return false
	}
}

// DefaultSort is applied when a page request carries no sort keys.
func DefaultSort() []pagination.Order {
	return []pagination.Order{{Property: SortByName, Direction: pagination.Asc}}
}

// SearchReader runs the two round trips of a product search.
// Implementations bound to a snapshot observe one consistent read timestamp.
type SearchReader interface {
	// FindIDPage returns one page of distinct product references matching
	// filter, ordered by page's sort keys, with the total number of distinct
	// matches.
	FindIDPage(ctx context.Context, filter SearchFilter, page pagination.Request) (pagination.Page[ProductRef], error)

	// FindWithCategories hydrates the given products with their categories
	// in one round trip. The result is unordered; every id must resolve.
	FindWithCategories(ctx context.Context, ids []int64) ([]*ProductDTO, error)
}

// ReadModel defines the interface for product read operations.
type ReadModel interface {
	// GetProductByID hydrates a single product, or returns ErrProductNotFound.
	GetProductByID(ctx context.Context, productID int64) (*ProductDTO, error)

	// Snapshot calls fn with a reader bound to a single read-only snapshot.
	Snapshot(ctx context.Context, fn func(ctx context.Context, reader SearchReader) error) error
}
