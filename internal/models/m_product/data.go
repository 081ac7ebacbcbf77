package m_product

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the products table.
type Data struct {
	ProductID   int64              `spanner:"product_id"`
	Name        string             `spanner:"name"`
	Description spanner.NullString `spanner:"description"`
	Price       big.Rat            `spanner:"price"`
	ImgURL      string             `spanner:"img_url"`
	ListedAt    time.Time          `spanner:"listed_at"`
}
