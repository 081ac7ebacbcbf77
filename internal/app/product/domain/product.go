package domain

import (
	"strings"
	"time"
)

// Product is a catalog entry with a many-to-many set of categories.
// Identity is the persistent id; the category set is replaced wholesale.
type Product struct {
	id          int64
	name        string
	description string
	price       *Price
	imgURL      string
	date        time.Time
	categories  CategorySet
}

// NewProduct creates a new Product.
func NewProduct(id int64, name, description string, price *Price, imgURL string, date time.Time, categories ...Category) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}

	if price == nil {
		return nil, ErrInvalidPrice
	}

	for _, c := range categories {
		if c.ID <= 0 {
			return nil, ErrInvalidCategory
		}
	}

	return &Product{
		id:          id,
		name:        name,
		description: description,
		price:       price,
		imgURL:      imgURL,
		date:        date,
		categories:  NewCategorySet(categories...),
	}, nil
}

// ID returns the product ID.
func (p *Product) ID() int64 { return p.id }

// Name returns the product name.
func (p *Product) Name() string { return p.name }

// Description returns the product description.
func (p *Product) Description() string { return p.description }

// Price returns the product price.
func (p *Product) Price() *Price { return p.price }

// ImgURL returns the product image reference.
func (p *Product) ImgURL() string { return p.imgURL }

// Date returns the listing date.
func (p *Product) Date() time.Time { return p.date }

// Categories returns the product's category set.
func (p *Product) Categories() CategorySet { return p.categories }

// ReplaceCategories swaps the whole category set.
func (p *Product) ReplaceCategories(categories ...Category) error {
	for _, c := range categories {
		if c.ID <= 0 {
			return ErrInvalidCategory
		}
	}
	p.categories = NewCategorySet(categories...)
	return nil
}
