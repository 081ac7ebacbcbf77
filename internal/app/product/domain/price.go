package domain

import (
	"fmt"
	"math/big"
)

// Price is a positive decimal amount stored as a rational number to avoid
// floating-point drift. Spanner NUMERIC columns decode directly into big.Rat.
type Price struct {
	rat *big.Rat
}

// NewPrice creates a Price from numerator and denominator.
// Example: NewPrice(249900, 100) represents 2499.00
func NewPrice(numerator, denominator int64) (*Price, error) {
	if denominator == 0 {
		return nil, fmt.Errorf("denominator cannot be zero")
	}
	return NewPriceFromRat(big.NewRat(numerator, denominator))
}

// NewPriceFromRat creates a Price from a big.Rat. The value is copied.
func NewPriceFromRat(rat *big.Rat) (*Price, error) {
	if rat == nil || rat.Sign() <= 0 {
		return nil, ErrInvalidPrice
	}
	return &Price{rat: new(big.Rat).Set(rat)}, nil
}

// MustPrice parses a decimal string such as "2499.90" and panics on failure.
// Intended for seed data and tests.
func MustPrice(s string) *Price {
	rat, ok := new(big.Rat).SetString(s)
	if !ok {
		panic(fmt.Sprintf("invalid price literal %q", s))
	}
	p, err := NewPriceFromRat(rat)
	if err != nil {
		panic(err)
	}
	return p
}

// Rat returns a copy of the underlying rational value.
func (p *Price) Rat() *big.Rat {
	return new(big.Rat).Set(p.rat)
}

// Equals returns true if both prices hold the same value.
func (p *Price) Equals(other *Price) bool {
	return p.rat.Cmp(other.rat) == 0
}

// Float64 returns an approximate float64 representation (for display only).
func (p *Price) Float64() float64 {
	f, _ := p.rat.Float64()
	return f
}

// String returns the price with two decimal places.
func (p *Price) String() string {
	return p.rat.FloatString(2)
}
