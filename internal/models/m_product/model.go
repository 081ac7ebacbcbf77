package m_product

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the products table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting or overwriting a product row.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		AllColumns(),
		[]interface{}{
			data.ProductID,
			data.Name,
			data.Description,
			data.Price,
			data.ImgURL,
			data.ListedAt,
		},
	)
}
