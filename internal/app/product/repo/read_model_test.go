package repo

import (
	"context"
	"fmt"
	"math/big"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/catalog-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-service/internal/pkg/pagination"
)

var listedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestIDPageQuery_NoCategoryRestriction(t *testing.T) {
	b, err := idPageQuery(contracts.AnyCategory("PC"), pagination.NewRequest(0, 12))
	require.NoError(t, err)

	stmt := b.Build()
	assert.Equal(t, "SELECT p.product_id, p.name FROM products p"+
		" WHERE LOWER(p.name) LIKE @p0"+
		" ORDER BY p.name ASC, p.product_id ASC"+
		" LIMIT @limit", stmt.SQL)
	assert.Equal(t, "%pc%", stmt.Params["p0"])
	assert.Equal(t, int64(12), stmt.Params["limit"])
	assert.NotContains(t, stmt.SQL, "product_categories")
}

func TestIDPageQuery_CategorySemiJoin(t *testing.T) {
	filter, err := contracts.InCategories("", 3, 1)
	require.NoError(t, err)

	b, err := idPageQuery(filter, pagination.NewRequest(2, 10))
	require.NoError(t, err)

	stmt := b.Build()
	assert.Equal(t, "SELECT p.product_id, p.name FROM products p"+
		" WHERE LOWER(p.name) LIKE @p0"+
		" AND EXISTS (SELECT 1 FROM product_categories pc WHERE pc.product_id = p.product_id AND pc.category_id IN UNNEST(@p1))"+
		" ORDER BY p.name ASC, p.product_id ASC"+
		" LIMIT @limit OFFSET @offset", stmt.SQL)
	assert.Equal(t, []int64{1, 3}, stmt.Params["p1"])
	assert.Equal(t, int64(20), stmt.Params["offset"])

	countStmt := b.Count().Build()
	assert.Equal(t, "SELECT COUNT(*) FROM products p"+
		" WHERE LOWER(p.name) LIKE @p0"+
		" AND EXISTS (SELECT 1 FROM product_categories pc WHERE pc.product_id = p.product_id AND pc.category_id IN UNNEST(@p1))", countStmt.SQL)
}

func TestIDPageQuery_Sort(t *testing.T) {
	t.Run("maps properties and appends tie-break", func(t *testing.T) {
		req := pagination.NewRequest(0, 5,
			pagination.Order{Property: contracts.SortByPrice, Direction: pagination.Desc},
			pagination.Order{Property: contracts.SortByDate, Direction: pagination.Asc},
		)
		b, err := idPageQuery(contracts.AnyCategory(""), req)
		require.NoError(t, err)
		assert.Contains(t, b.Build().SQL, "ORDER BY p.price DESC, p.listed_at ASC, p.product_id ASC")
	})

	t.Run("explicit id sort skips tie-break", func(t *testing.T) {
		req := pagination.NewRequest(0, 5, pagination.Order{Property: contracts.SortByID, Direction: pagination.Desc})
		b, err := idPageQuery(contracts.AnyCategory(""), req)
		require.NoError(t, err)
		assert.Contains(t, b.Build().SQL, "ORDER BY p.product_id DESC LIMIT")
	})

	t.Run("unknown property", func(t *testing.T) {
		req := pagination.NewRequest(0, 5, pagination.Order{Property: "description"})
		_, err := idPageQuery(contracts.AnyCategory(""), req)
		assert.ErrorIs(t, err, domain.ErrInvalidPageRequest)
	})
}

func TestHydrateQuery(t *testing.T) {
	stmt := hydrateQuery([]int64{4, 2})

	assert.Equal(t, "SELECT p.product_id, p.name, p.description, p.price, p.img_url, p.listed_at, c.category_id, c.name AS category_name"+
		" FROM products p"+
		" LEFT JOIN product_categories pc ON pc.product_id = p.product_id"+
		" LEFT JOIN categories c ON c.category_id = pc.category_id"+
		" WHERE p.product_id IN UNNEST(@p0)", stmt.SQL)
	assert.Equal(t, []int64{4, 2}, stmt.Params["p0"])
}

func hydrationRow(t *testing.T, productID int64, name, price string, categoryID *int64, categoryName string) *spanner.Row {
	t.Helper()

	rat, ok := new(big.Rat).SetString(price)
	require.True(t, ok)

	catID := spanner.NullInt64{}
	catName := spanner.NullString{}
	if categoryID != nil {
		catID = spanner.NullInt64{Int64: *categoryID, Valid: true}
		catName = spanner.NullString{StringVal: categoryName, Valid: true}
	}

	row, err := spanner.NewRow(
		[]string{"product_id", "name", "description", "price", "img_url", "listed_at", "category_id", "category_name"},
		[]interface{}{productID, name, spanner.NullString{StringVal: name + " description", Valid: true}, *rat, "https://img/" + name, listedAt, catID, catName},
	)
	require.NoError(t, err)
	return row
}

func ptr(v int64) *int64 { return &v }

func TestFolder_CollapsesFanOut(t *testing.T) {
	var f folder
	rows := []*spanner.Row{
		hydrationRow(t, 2, "Smart TV", "2190.00", ptr(2), "Eletrônicos"),
		hydrationRow(t, 1, "Macbook Pro", "1250.00", ptr(3), "Computadores"),
		hydrationRow(t, 2, "Smart TV", "2190.00", ptr(3), "Computadores"),
		hydrationRow(t, 2, "Smart TV", "2190.00", ptr(2), "Eletrônicos"),
		hydrationRow(t, 5, "Rails for Dummies", "100.99", nil, ""),
	}
	for _, row := range rows {
		require.NoError(t, f.add(row))
	}

	dtos := f.result()
	require.Len(t, dtos, 3)

	byID := make(map[int64]*contracts.ProductDTO)
	for _, d := range dtos {
		byID[d.ProductID] = d
	}

	tv := byID[2]
	require.NotNil(t, tv)
	assert.Equal(t, "Smart TV", tv.Name)
	assert.Equal(t, "Smart TV description", tv.Description)
	assert.Equal(t, "2190.00", tv.Price.String())
	assert.Equal(t, listedAt, tv.Date)
	assert.Equal(t, []domain.Category{{ID: 2, Name: "Eletrônicos"}, {ID: 3, Name: "Computadores"}}, tv.Categories)

	assert.Equal(t, []domain.Category{{ID: 3, Name: "Computadores"}}, byID[1].Categories)

	// Products without categories hydrate with an empty set
	require.NotNil(t, byID[5])
	assert.NotNil(t, byID[5].Categories)
	assert.Empty(t, byID[5].Categories)
}

func TestFolder_RejectsNonPositivePrice(t *testing.T) {
	var f folder
	err := f.add(hydrationRow(t, 1, "Broken", "0", nil, ""))
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestHydrate_EmptyInputSkipsRoundTrip(t *testing.T) {
	// A nil querier would panic if a round trip were attempted
	dtos, err := hydrate(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, dtos)
}

func TestFindIDPage_EmptyCategorySetSkipsRoundTrip(t *testing.T) {
	filter, err := contracts.InCategories("")
	require.NoError(t, err)

	r := &SearchRepo{}
	page, err := r.FindIDPage(context.Background(), filter, pagination.NewRequest(0, 12))
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.Equal(t, int64(0), page.TotalElements)
	assert.Equal(t, 12, page.Size)
}

func TestStoreError(t *testing.T) {
	t.Run("wraps store faults", func(t *testing.T) {
		cause := status.Error(codes.DeadlineExceeded, "deadline exceeded")
		err := storeError("query product page", cause)

		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "query product page")
	})

	t.Run("bad stored prices are consistency faults", func(t *testing.T) {
		err := storeError("hydrate products", fmt.Errorf("product 1: %w", domain.ErrInvalidPrice))

		assert.ErrorIs(t, err, domain.ErrConsistency)
		assert.NotErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestProductWriter_Mutations(t *testing.T) {
	w := NewProductWriter()

	tv, err := domain.NewProduct(2, "Smart TV", "", domain.MustPrice("2190.00"), "https://img/tv", listedAt,
		domain.Category{ID: 2, Name: "Eletrônicos"},
		domain.Category{ID: 3, Name: "Computadores"},
	)
	require.NoError(t, err)

	// product row, link range delete, one insert per category
	muts := w.InsertMuts(tv)
	assert.Len(t, muts, 4)
	for _, m := range muts {
		assert.NotNil(t, m)
	}

	assert.Len(t, w.ReplaceCategoriesMuts(2, nil), 1)
	assert.Len(t, w.ReplaceCategoriesMuts(2, []int64{1, 2, 3}), 4)
	assert.NotNil(t, w.CategoryInsertMut(domain.Category{ID: 1, Name: "Livros"}))
}

func TestDomainToData(t *testing.T) {
	p, err := domain.NewProduct(7, "PC Gamer", "", domain.MustPrice("1200.00"), "https://img/pc", listedAt)
	require.NoError(t, err)

	data := domainToData(p)
	assert.Equal(t, int64(7), data.ProductID)
	assert.False(t, data.Description.Valid)
	assert.Equal(t, "1200.00", data.Price.FloatString(2))
	assert.Equal(t, listedAt, data.ListedAt)
}
