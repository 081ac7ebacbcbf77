package repo

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/catalog-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-service/internal/models/m_category"
	"github.com/light-bringer/catalog-service/internal/models/m_product"
	"github.com/light-bringer/catalog-service/internal/models/m_product_category"
	"github.com/light-bringer/catalog-service/internal/pkg/ordering"
	"github.com/light-bringer/catalog-service/internal/pkg/pagination"
	"github.com/light-bringer/catalog-service/internal/pkg/query"
)

// querier is satisfied by both single-use and multi-use read-only transactions.
type querier interface {
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

// ReadModelImpl implements ReadModel for Spanner.
type ReadModelImpl struct {
	client *spanner.Client
}

// NewReadModel creates a new ReadModel implementation.
func NewReadModel(client *spanner.Client) contracts.ReadModel {
	return &ReadModelImpl{
		client: client,
	}
}

// GetProductByID hydrates a single product with its categories.
func (rm *ReadModelImpl) GetProductByID(ctx context.Context, productID int64) (*contracts.ProductDTO, error) {
	dtos, err := hydrate(ctx, rm.client.Single(), []int64{productID})
	if err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrProductNotFound, productID)
	}
	return dtos[0], nil
}

// Snapshot runs fn against one multi-use read-only transaction, so the page
// query, the count and the hydration all read at the same timestamp.
func (rm *ReadModelImpl) Snapshot(ctx context.Context, fn func(context.Context, contracts.SearchReader) error) error {
	txn := rm.client.ReadOnlyTransaction()
	defer txn.Close()

	return fn(ctx, &SearchRepo{q: txn})
}

// SearchRepo implements contracts.SearchReader over a read-only transaction.
type SearchRepo struct {
	q querier
}

// FindIDPage selects one page of distinct product references.
func (r *SearchRepo) FindIDPage(ctx context.Context, filter contracts.SearchFilter, page pagination.Request) (pagination.Page[contracts.ProductRef], error) {
	if filter.MatchesNothing() {
		return pagination.Empty[contracts.ProductRef](page), nil
	}

	base, err := idPageQuery(filter, page)
	if err != nil {
		return pagination.Page[contracts.ProductRef]{}, err
	}

	refs := make([]contracts.ProductRef, 0, page.Size)
	err = each(ctx, r.q, base.Build(), func(row *spanner.Row) error {
		var ref contracts.ProductRef
		if err := row.Columns(&ref.ID, &ref.Name); err != nil {
			return fmt.Errorf("failed to parse product ref: %w", err)
		}
		refs = append(refs, ref)
		return nil
	})
	if err != nil {
		return pagination.Page[contracts.ProductRef]{}, storeError("query product page", err)
	}

	total, _, err := pagination.ResolveTotal(page, len(refs), func() (int64, error) {
		return count(ctx, r.q, base.Count().Build())
	})
	if err != nil {
		return pagination.Page[contracts.ProductRef]{}, storeError("count products", err)
	}

	return pagination.NewPage(refs, page, total), nil
}

// FindWithCategories hydrates ids in one round trip. Every id must resolve.
func (r *SearchRepo) FindWithCategories(ctx context.Context, ids []int64) ([]*contracts.ProductDTO, error) {
	dtos, err := hydrate(ctx, r.q, ids)
	if err != nil {
		return nil, err
	}

	found, err := ordering.Index(dtos, contracts.DTOID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConsistency, err)
	}
	var missing []int64
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: products %v vanished before hydration", domain.ErrConsistency, missing)
	}

	return dtos, nil
}

// sortColumns maps public sort properties onto columns.
var sortColumns = map[string]string{
	contracts.SortByID:    "p." + m_product.ProductID,
	contracts.SortByName:  "p." + m_product.Name,
	contracts.SortByPrice: "p." + m_product.Price,
	contracts.SortByDate:  "p." + m_product.ListedAt,
}

// idPageQuery builds the identifier page query. The category restriction is
// a correlated EXISTS, so a product in several allowed categories still
// yields one row and COUNT(*) over the same predicate counts distinct products.
func idPageQuery(filter contracts.SearchFilter, page pagination.Request) (*query.Builder, error) {
	b := query.From(m_product.TableName+" p").
		Select("p."+m_product.ProductID, "p."+m_product.Name).
		Where(query.ContainsFold("p."+m_product.Name, filter.Name()))

	if ids, restricted := filter.CategoryIDs(); restricted {
		b = b.Where(query.Exists(
			query.From(m_product_category.TableName+" pc").
				Where(query.EqColumn("pc."+m_product_category.ProductID, "p."+m_product.ProductID)).
				Where(query.InUnnest("pc."+m_product_category.CategoryID, ids)),
		))
	}

	tieBroken := false
	for _, o := range page.SortOr(contracts.DefaultSort()...) {
		column, ok := sortColumns[o.Property]
		if !ok {
			return nil, fmt.Errorf("%w: cannot sort by %q", domain.ErrInvalidPageRequest, o.Property)
		}
		if o.Property == contracts.SortByID {
			tieBroken = true
		}
		b = b.OrderBy(column, direction(o.Direction))
	}
	if !tieBroken {
		b = b.OrderBy("p."+m_product.ProductID, query.Asc)
	}

	return b.Limit(int64(page.Size)).Offset(page.Offset()), nil
}

func direction(d pagination.Direction) query.Direction {
	if d == pagination.Desc {
		return query.Desc
	}
	return query.Asc
}

// hydrateQuery fans out one row per (product, category) pair, or a single
// row with NULL category columns for a product without categories.
func hydrateQuery(ids []int64) spanner.Statement {
	return query.From(m_product.TableName+" p").
		Select(
			"p."+m_product.ProductID,
			"p."+m_product.Name,
			"p."+m_product.Description,
			"p."+m_product.Price,
			"p."+m_product.ImgURL,
			"p."+m_product.ListedAt,
			"c."+m_category.CategoryID,
			"c."+m_category.Name+" AS category_name",
		).
		LeftJoin(m_product_category.TableName+" pc", "pc."+m_product_category.ProductID+" = p."+m_product.ProductID).
		LeftJoin(m_category.TableName+" c", "c."+m_category.CategoryID+" = pc."+m_product_category.CategoryID).
		Where(query.InUnnest("p."+m_product.ProductID, ids)).
		Build()
}

func hydrate(ctx context.Context, q querier, ids []int64) ([]*contracts.ProductDTO, error) {
	if len(ids) == 0 {
		return []*contracts.ProductDTO{}, nil
	}

	var f folder
	if err := each(ctx, q, hydrateQuery(ids), f.add); err != nil {
		return nil, storeError("hydrate products", err)
	}
	return f.result(), nil
}

// folder collapses fanned-out hydration rows into one DTO per product.
type folder struct {
	byID       map[int64]*contracts.ProductDTO
	categories map[int64]*domain.CategorySet
	order      []int64
}

func (f *folder) add(row *spanner.Row) error {
	var (
		productID    int64
		name         string
		description  spanner.NullString
		price        big.Rat
		imgURL       string
		listedAt     time.Time
		categoryID   spanner.NullInt64
		categoryName spanner.NullString
	)
	if err := row.Columns(&productID, &name, &description, &price, &imgURL, &listedAt, &categoryID, &categoryName); err != nil {
		return fmt.Errorf("failed to parse product row: %w", err)
	}

	if f.byID == nil {
		f.byID = make(map[int64]*contracts.ProductDTO)
		f.categories = make(map[int64]*domain.CategorySet)
	}

	if _, seen := f.byID[productID]; !seen {
		p, err := domain.NewPriceFromRat(&price)
		if err != nil {
			return fmt.Errorf("product %d: %w", productID, err)
		}
		f.byID[productID] = &contracts.ProductDTO{
			ProductID:   productID,
			Name:        name,
			Description: description.StringVal,
			Price:       p,
			ImgURL:      imgURL,
			Date:        listedAt,
		}
		f.categories[productID] = &domain.CategorySet{}
		f.order = append(f.order, productID)
	}

	if categoryID.Valid {
		f.categories[productID].Add(domain.Category{ID: categoryID.Int64, Name: categoryName.StringVal})
	}
	return nil
}

func (f *folder) result() []*contracts.ProductDTO {
	out := make([]*contracts.ProductDTO, 0, len(f.order))
	for _, id := range f.order {
		dto := f.byID[id]
		dto.Categories = f.categories[id].Slice()
		out = append(out, dto)
	}
	return out
}

func each(ctx context.Context, q querier, stmt spanner.Statement, fn func(*spanner.Row) error) error {
	iter := q.Query(ctx, stmt)
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(row); err != nil {
			return err
		}
	}
}

func count(ctx context.Context, q querier, stmt spanner.Statement) (int64, error) {
	var total int64
	err := each(ctx, q, stmt, func(row *spanner.Row) error {
		return row.Column(0, &total)
	})
	return total, err
}

// storeError marks a failed round trip as a store fault. A stored price that
// fails domain validation is a consistency fault instead.
func storeError(op string, err error) error {
	if errors.Is(err, domain.ErrInvalidPrice) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrConsistency, err)
	}
	return fmt.Errorf("%s (%s): %w: %w", op, spanner.ErrCode(err), domain.ErrStoreUnavailable, err)
}
