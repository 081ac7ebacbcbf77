package testutil

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-service/internal/app/product/repo"
	"github.com/light-bringer/catalog-service/internal/models/m_product"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-service/internal/pkg/committer"
	"github.com/light-bringer/catalog-service/internal/seed"
)

// SeedEpoch is the listing clock used by SeedCatalog.
var SeedEpoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// SeedCatalog writes the reference catalog and returns its products.
func SeedCatalog(t *testing.T, client *spanner.Client) []*domain.Product {
	t.Helper()

	products, err := seed.Products(clock.Fixed(SeedEpoch))
	require.NoError(t, err, "invalid seed catalog")

	plan := seed.Plan(repo.NewProductWriter(), seed.Categories(), products)
	err = committer.NewCommitter(client).Apply(context.Background(), plan)
	require.NoError(t, err, "failed to seed catalog")

	return products
}

// CreateTestProduct writes product, and any of its categories not yet stored.
func CreateTestProduct(t *testing.T, client *spanner.Client, product *domain.Product) {
	t.Helper()

	writer := repo.NewProductWriter()
	plan := committer.NewPlan()
	for _, c := range product.Categories().Slice() {
		plan.Add(writer.CategoryInsertMut(c))
	}
	plan.AddMultiple(writer.InsertMuts(product))

	err := committer.NewCommitter(client).Apply(context.Background(), plan)
	require.NoError(t, err, "failed to create test product")
}

// DeleteTestProduct removes a product; its links go with it.
func DeleteTestProduct(t *testing.T, client *spanner.Client, productID int64) {
	t.Helper()

	_, err := client.Apply(context.Background(), []*spanner.Mutation{
		spanner.Delete(m_product.TableName, spanner.Key{productID}),
	})
	require.NoError(t, err, "failed to delete test product")
}
