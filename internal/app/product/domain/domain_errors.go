package domain

import "errors"

// Domain errors as sentinel values
var (
	// Product errors
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyName       = errors.New("product name cannot be empty")
	ErrInvalidPrice    = errors.New("product price must be positive")
	ErrInvalidCategory = errors.New("category id must be positive")

	// Search errors
	ErrInvalidPageRequest    = errors.New("invalid page request")
	ErrInvalidCategoryFilter = errors.New("invalid category filter")

	// ErrConsistency marks an identifier selected by the page query that
	// could not be resolved afterwards. It is an internal fault, never a
	// user-facing not-found.
	ErrConsistency = errors.New("product search result is inconsistent")

	// ErrStoreUnavailable wraps any failed or timed out store round trip.
	ErrStoreUnavailable = errors.New("product store unavailable")
)

// IsValidation reports whether err is a client-side validation fault.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidPageRequest) ||
		errors.Is(err, ErrInvalidCategoryFilter) ||
		errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidCategory)
}
