package get_product

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-service/internal/seed"
	"github.com/light-bringer/catalog-service/tests/testutil"
)

func TestQuery_Execute(t *testing.T) {
	products, err := seed.Products(clock.Fixed(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	catalog := testutil.NewMemoryCatalog(products...)
	q := NewQuery(catalog)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		dto, err := q.Execute(ctx, &Request{ProductID: 3})
		require.NoError(t, err)

		assert.Equal(t, "Macbook Pro", dto.Name)
		assert.Equal(t, "1250.00", dto.Price.String())
		assert.Equal(t, []domain.Category{
			{ID: seed.Electronics, Name: "Eletrônicos"},
			{ID: seed.Computers, Name: "Computadores"},
		}, dto.Categories)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := q.Execute(ctx, &Request{ProductID: 999})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("non-positive id never reaches the store", func(t *testing.T) {
		before := catalog.Stats()
		_, err := q.Execute(ctx, &Request{ProductID: 0})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		assert.Equal(t, before, catalog.Stats())
	})
}
