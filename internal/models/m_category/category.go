// Package m_category maps the categories table.
package m_category

import "cloud.google.com/go/spanner"

const (
	TableName = "categories"

	CategoryID = "category_id"
	Name       = "name"
)

// Data represents the database model for the categories table.
type Data struct {
	CategoryID int64  `spanner:"category_id"`
	Name       string `spanner:"name"`
}

// Model provides a facade for type-safe operations on the categories table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting or overwriting a category.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{CategoryID, Name},
		[]interface{}{data.CategoryID, data.Name},
	)
}
