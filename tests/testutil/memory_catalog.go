package testutil

import (
	"cmp"
	"context"
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"sync"

	"github.com/light-bringer/catalog-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-service/internal/pkg/pagination"
)

// CatalogStats counts the round trips a MemoryCatalog served.
type CatalogStats struct {
	Snapshots   int
	PageQueries int
	Counts      int
	Hydrations  int
}

// MemoryCatalog is an in-memory contracts.ReadModel. Hydration output is
// shuffled so callers cannot rely on it being ordered.
type MemoryCatalog struct {
	mu       sync.Mutex
	products map[int64]*domain.Product
	rng      *rand.Rand
	dropped  map[int64]bool
	err      error
	block    bool
	stats    CatalogStats
}

// NewMemoryCatalog creates a catalog holding products.
func NewMemoryCatalog(products ...*domain.Product) *MemoryCatalog {
	m := &MemoryCatalog{
		products: make(map[int64]*domain.Product, len(products)),
		rng:      rand.New(rand.NewSource(42)),
		dropped:  make(map[int64]bool),
	}
	for _, p := range products {
		m.products[p.ID()] = p
	}
	return m
}

// DropOnHydrate makes the hydration skip ids, as if they were deleted
// between the two round trips.
func (m *MemoryCatalog) DropOnHydrate(ids ...int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		m.dropped[id] = true
	}
}

// FailWith makes every round trip return err.
func (m *MemoryCatalog) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// BlockUntilCancelled makes every round trip wait for its context to end.
func (m *MemoryCatalog) BlockUntilCancelled() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.block = true
}

// Stats returns the round trips served so far.
func (m *MemoryCatalog) Stats() CatalogStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// GetProductByID implements contracts.ReadModel.
func (m *MemoryCatalog) GetProductByID(ctx context.Context, productID int64) (*contracts.ProductDTO, error) {
	if err := m.roundTrip(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.products[productID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrProductNotFound, productID)
	}
	return ToDTO(p), nil
}

// Snapshot implements contracts.ReadModel.
func (m *MemoryCatalog) Snapshot(ctx context.Context, fn func(context.Context, contracts.SearchReader) error) error {
	m.mu.Lock()
	m.stats.Snapshots++
	m.mu.Unlock()
	return fn(ctx, m)
}

// FindIDPage implements contracts.SearchReader.
func (m *MemoryCatalog) FindIDPage(ctx context.Context, filter contracts.SearchFilter, page pagination.Request) (pagination.Page[contracts.ProductRef], error) {
	if err := m.roundTrip(ctx); err != nil {
		return pagination.Page[contracts.ProductRef]{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.PageQueries++

	needle := strings.ToLower(filter.Name())
	allowed, restricted := filter.CategoryIDs()

	var matches []*domain.Product
	for _, p := range m.products {
		if !strings.Contains(strings.ToLower(p.Name()), needle) {
			continue
		}
		if restricted && !slices.ContainsFunc(allowed, p.Categories().Contains) {
			continue
		}
		matches = append(matches, p)
	}

	orders := page.SortOr(contracts.DefaultSort()...)
	slices.SortFunc(matches, func(a, b *domain.Product) int {
		for _, o := range orders {
			c := compareBy(o.Property, a, b)
			if o.Direction == pagination.Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return cmp.Compare(a.ID(), b.ID())
	})

	start := min(page.Offset(), int64(len(matches)))
	end := min(start+int64(page.Size), int64(len(matches)))
	refs := make([]contracts.ProductRef, 0, end-start)
	for _, p := range matches[start:end] {
		refs = append(refs, contracts.ProductRef{ID: p.ID(), Name: p.Name()})
	}

	total, _, err := pagination.ResolveTotal(page, len(refs), func() (int64, error) {
		m.stats.Counts++
		return int64(len(matches)), nil
	})
	if err != nil {
		return pagination.Page[contracts.ProductRef]{}, err
	}
	return pagination.NewPage(refs, page, total), nil
}

// FindWithCategories implements contracts.SearchReader. Unlike the Spanner
// reader it does not check that every id resolved.
func (m *MemoryCatalog) FindWithCategories(ctx context.Context, ids []int64) ([]*contracts.ProductDTO, error) {
	if err := m.roundTrip(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Hydrations++

	out := make([]*contracts.ProductDTO, 0, len(ids))
	for _, id := range ids {
		p, ok := m.products[id]
		if !ok || m.dropped[id] {
			continue
		}
		out = append(out, ToDTO(p))
	}
	m.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out, nil
}

func (m *MemoryCatalog) roundTrip(ctx context.Context) error {
	m.mu.Lock()
	err, block := m.err, m.block
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, ctx.Err())
	}
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, ctx.Err())
	}
	return nil
}

func compareBy(property string, a, b *domain.Product) int {
	switch property {
	case contracts.SortByName:
		return strings.Compare(a.Name(), b.Name())
	case contracts.SortByPrice:
		return a.Price().Rat().Cmp(b.Price().Rat())
	case contracts.SortByDate:
		return a.Date().Compare(b.Date())
	default:
		return cmp.Compare(a.ID(), b.ID())
	}
}

// ToDTO converts a domain product into the read model's DTO.
func ToDTO(p *domain.Product) *contracts.ProductDTO {
	return &contracts.ProductDTO{
		ProductID:   p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price(),
		ImgURL:      p.ImgURL(),
		Date:        p.Date(),
		Categories:  p.Categories().Slice(),
	}
}
