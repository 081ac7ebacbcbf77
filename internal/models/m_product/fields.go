package m_product

// Field name constants for the products table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "products"

	ProductID   = "product_id"
	Name        = "name"
	Description = "description"
	Price       = "price"
	ImgURL      = "img_url"
	ListedAt    = "listed_at"
)

// AllColumns lists every column in table order.
func AllColumns() []string {
	return []string{ProductID, Name, Description, Price, ImgURL, ListedAt}
}
