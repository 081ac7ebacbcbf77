// Package pagination models offset page requests and the pages they produce.
package pagination

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultSize is used when a caller does not ask for a page size.
	DefaultSize = 20
	// MaxSize caps the page size a caller may request.
	MaxSize = 100
)

// Direction represents a sort direction.
type Direction int

const (
	// Asc represents ascending order.
	Asc Direction = iota
	// Desc represents descending order.
	Desc
)

// ParseDirection accepts "asc" or "desc" in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	default:
		return Asc, fmt.Errorf("unknown sort direction %q", s)
	}
}

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// Order is a single sort key.
type Order struct {
	Property  string    `validate:"required"`
	Direction Direction `validate:"oneof=0 1"`
}

// Request is a zero-based offset page request with ordered sort keys.
type Request struct {
	Page int     `validate:"gte=0"`
	Size int     `validate:"gt=0,lte=100"`
	Sort []Order `validate:"dive"`
}

// NewRequest creates a page request.
func NewRequest(page, size int, sort ...Order) Request {
	return Request{Page: page, Size: size, Sort: sort}
}

// Offset returns the number of rows to skip.
func (r Request) Offset() int64 {
	return int64(r.Page) * int64(r.Size)
}

// SortOr returns the requested sort keys, or fallback when none were given.
func (r Request) SortOr(fallback ...Order) []Order {
	if len(r.Sort) == 0 {
		return fallback
	}
	return r.Sort
}

var validate = validator.New()

// Validate checks the page index, page size, and sort keys. The page index
// must also keep Offset within int64.
func (r Request) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		if int64(r.Page) > math.MaxInt64/int64(r.Size) {
			return fmt.Errorf("page %d is out of range for size %d", r.Page, r.Size)
		}
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s %s", strings.ToLower(fe.Field()), friendlyMessage(fe)))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	default:
		return "is invalid"
	}
}
