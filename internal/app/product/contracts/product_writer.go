package contracts

import (
	"cloud.google.com/go/spanner"

	"github.com/light-bringer/catalog-service/internal/app/product/domain"
)

// ProductWriter builds mutations for catalog writes.
// Writers return mutations, they don't apply them; callers collect them
// into a committer.CommitPlan.
type ProductWriter interface {
	// InsertMuts writes the product row and replaces its category links.
	InsertMuts(product *domain.Product) []*spanner.Mutation

	// ReplaceCategoriesMuts drops every category link of the product and
	// links it to categoryIDs instead.
	ReplaceCategoriesMuts(productID int64, categoryIDs []int64) []*spanner.Mutation

	// CategoryInsertMut writes a category row.
	CategoryInsertMut(category domain.Category) *spanner.Mutation
}
