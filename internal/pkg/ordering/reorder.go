// Package ordering restores a known key order onto an unordered result set.
package ordering

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingItem is returned when a key in the target order has no item.
	ErrMissingItem = errors.New("no item for key")
	// ErrDuplicateItem is returned when two items share a key.
	ErrDuplicateItem = errors.New("duplicate item for key")
)

// Index builds a key -> item lookup in one pass over items.
func Index[K comparable, T any](items []T, key func(T) K) (map[K]T, error) {
	index := make(map[K]T, len(items))
	for _, item := range items {
		k := key(item)
		if _, ok := index[k]; ok {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateItem, k)
		}
		index[k] = item
	}
	return index, nil
}

// Reorder returns items arranged in the order of keys in order. The result
// has exactly len(order) elements. Every key must resolve to an item; all
// unresolved keys are reported together in the error.
// Runs in O(len(order) + len(items)).
func Reorder[K comparable, T any](order []K, items []T, key func(T) K) ([]T, error) {
	index, err := Index(items, key)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(order))
	var missing []K
	for _, k := range order {
		item, ok := index[k]
		if !ok {
			missing = append(missing, k)
			continue
		}
		out = append(out, item)
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrMissingItem, missing)
	}
	return out, nil
}
