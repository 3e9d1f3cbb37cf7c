// Package ratmat provides dense matrices of exact rationals.
//
// The simplex engine only talks to the Matrix interface, so any type that
// offers row access and elementary row operations with exact semantics can
// stand in for *Dense.
package ratmat

import (
	"math/big"

	"github.com/pkg/errors"
)

var (
	ErrShape           = errors.New("ratmat: dimension mismatch")
	ErrIndexOutOfRange = errors.New("ratmat: index out of range")
	ErrZeroLength      = errors.New("ratmat: zero length in matrix dimension")
	ErrDivByZero       = errors.New("ratmat: division by zero")
	ErrBadRational     = errors.New("ratmat: malformed rational")
)

// Matrix is the set of operations the tableau needs from its storage.
// Values handed out by At and Row are copies; mutating them does not
// change the matrix.
type Matrix interface {
	Dims() (r, c int)
	At(i, j int) *big.Rat
	// Sign reports the sign of element (i, j) without copying it.
	Sign(i, j int) int
	Set(i, j int, v *big.Rat)
	Row(i int) []*big.Rat

	// ScaleRow multiplies row i by k.
	ScaleRow(i int, k *big.Rat)
	// DivRow divides row i by d. d must be non-zero.
	DivRow(i int, d *big.Rat)
	// AddScaledRow adds k times row src to row dst.
	AddScaledRow(dst, src int, k *big.Rat)
}

// ParseRat parses an integer, decimal ("-1.25", "3e2") or fraction ("2/3").
func ParseRat(s string) (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, errors.Wrapf(ErrBadRational, "%q", s)
	}
	return r, nil
}

// Int returns n as a rational.
func Int(n int64) *big.Rat {
	return new(big.Rat).SetInt64(n)
}

// Rats converts integers to rationals. It is mostly useful for literals.
func Rats(ns ...int64) []*big.Rat {
	out := make([]*big.Rat, len(ns))
	for i, n := range ns {
		out[i] = Int(n)
	}
	return out
}
