// Package m_product_category maps the product/category association table,
// interleaved in products.
package m_product_category

import "cloud.google.com/go/spanner"

const (
	TableName = "product_categories"

	ProductID  = "product_id"
	CategoryID = "category_id"
)

// Model provides a facade for type-safe operations on the association table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut links a product to a category.
func (m *Model) InsertMut(productID, categoryID int64) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{ProductID, CategoryID},
		[]interface{}{productID, categoryID},
	)
}

// DeleteAllForProductMut removes every association row of a product by
// deleting its key prefix.
func (m *Model) DeleteAllForProductMut(productID int64) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{productID}.AsPrefix())
}
