package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/light-bringer/catalog-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-service/internal/models/m_category"
	"github.com/light-bringer/catalog-service/internal/models/m_product"
	"github.com/light-bringer/catalog-service/internal/models/m_product_category"
)

// ProductWriter implements contracts.ProductWriter for Spanner.
type ProductWriter struct {
	products   *m_product.Model
	categories *m_category.Model
	links      *m_product_category.Model
}

// NewProductWriter creates a new ProductWriter.
func NewProductWriter() contracts.ProductWriter {
	return &ProductWriter{
		products:   m_product.NewModel(),
		categories: m_category.NewModel(),
		links:      m_product_category.NewModel(),
	}
}

// InsertMuts creates the mutations for writing a product and its category links.
func (w *ProductWriter) InsertMuts(product *domain.Product) []*spanner.Mutation {
	muts := []*spanner.Mutation{w.products.InsertMut(domainToData(product))}
	return append(muts, w.ReplaceCategoriesMuts(product.ID(), product.Categories().IDs())...)
}

// ReplaceCategoriesMuts deletes the product's whole link key range, then
// inserts the new links. Mutations in one commit apply in order.
func (w *ProductWriter) ReplaceCategoriesMuts(productID int64, categoryIDs []int64) []*spanner.Mutation {
	muts := make([]*spanner.Mutation, 0, len(categoryIDs)+1)
	muts = append(muts, w.links.DeleteAllForProductMut(productID))
	for _, categoryID := range categoryIDs {
		muts = append(muts, w.links.InsertMut(productID, categoryID))
	}
	return muts
}

// CategoryInsertMut creates a mutation for writing a category.
func (w *ProductWriter) CategoryInsertMut(category domain.Category) *spanner.Mutation {
	return w.categories.InsertMut(&m_category.Data{
		CategoryID: category.ID,
		Name:       category.Name,
	})
}

// domainToData converts a domain Product to database Data.
func domainToData(product *domain.Product) *m_product.Data {
	return &m_product.Data{
		ProductID:   product.ID(),
		Name:        product.Name(),
		Description: spanner.NullString{StringVal: product.Description(), Valid: product.Description() != ""},
		Price:       *product.Price().Rat(),
		ImgURL:      product.ImgURL(),
		ListedAt:    product.Date(),
	}
}
