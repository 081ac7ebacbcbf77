package contracts

import (
	"fmt"
	"slices"

	"github.com/light-bringer/catalog-service/internal/app/product/domain"
)

// SearchFilter selects products by a case-insensitive name substring and an
// optional category restriction. An empty name matches every product.
//
// The category restriction is explicit: AnyCategory places none, while
// InCategories restricts to products in at least one of the given
// categories. InCategories with no ids matches nothing.
type SearchFilter struct {
	name        string
	categoryIDs []int64
	restricted  bool
}

// AnyCategory returns a filter with no category restriction.
func AnyCategory(name string) SearchFilter {
	return SearchFilter{name: name}
}

// InCategories returns a filter restricted to the given categories.
// Duplicate ids collapse; non-positive ids are rejected.
func InCategories(name string, ids ...int64) (SearchFilter, error) {
	set := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return SearchFilter{}, fmt.Errorf("%w: category id %d", domain.ErrInvalidCategoryFilter, id)
		}
		set = append(set, id)
	}
	slices.Sort(set)
	set = slices.Compact(set)

	return SearchFilter{name: name, categoryIDs: set, restricted: true}, nil
}

// Name returns the name substring.
func (f SearchFilter) Name() string { return f.name }

// CategoryIDs returns the allowed category ids in ascending order, and false
// when the filter has no category restriction.
func (f SearchFilter) CategoryIDs() ([]int64, bool) {
	if !f.restricted {
		return nil, false
	}
	return slices.Clone(f.categoryIDs), true
}

// MatchesNothing reports whether the filter is restricted to an empty
// category set.
func (f SearchFilter) MatchesNothing() bool {
	return f.restricted && len(f.categoryIDs) == 0
}
