package domain

import (
	"fmt"
	"slices"
)

// Category is referenced by products, never owned by them.
type Category struct {
	ID   int64
	Name string
}

// NewCategory validates and creates a Category.
func NewCategory(id int64, name string) (Category, error) {
	if id <= 0 {
		return Category{}, fmt.Errorf("%w: %d", ErrInvalidCategory, id)
	}
	if name == "" {
		return Category{}, ErrEmptyName
	}
	return Category{ID: id, Name: name}, nil
}

// CategorySet is an unordered set of categories keyed by persistent id.
// Two categories with the same id are the same entry regardless of name.
// The zero value is ready to use.
type CategorySet struct {
	byID map[int64]Category
}

// NewCategorySet creates a set from the given categories, dropping duplicates.
func NewCategorySet(categories ...Category) CategorySet {
	var s CategorySet
	for _, c := range categories {
		s.Add(c)
	}
	return s
}

// Add inserts c and reports whether it was not already present.
func (s *CategorySet) Add(c Category) bool {
	if s.byID == nil {
		s.byID = make(map[int64]Category)
	}
	if _, ok := s.byID[c.ID]; ok {
		return false
	}
	s.byID[c.ID] = c
	return true
}

// Contains reports whether a category with the given id is in the set.
func (s CategorySet) Contains(id int64) bool {
	_, ok := s.byID[id]
	return ok
}

// Len returns the number of categories.
func (s CategorySet) Len() int {
	return len(s.byID)
}

// IDs returns the category ids in ascending order.
func (s CategorySet) IDs() []int64 {
	ids := make([]int64, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Slice returns the categories ordered by id, for stable output.
func (s CategorySet) Slice() []Category {
	out := make([]Category, 0, len(s.byID))
	for _, id := range s.IDs() {
		out = append(out, s.byID[id])
	}
	return out
}
