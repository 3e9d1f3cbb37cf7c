package ratmat

import (
	"math/big"

	"gonum.org/v1/gonum/mat"
)

// Dense is a row-major dense matrix of rationals.
type Dense struct {
	rows, cols int
	data       []big.Rat
}

var _ Matrix = (*Dense)(nil)

// NewDense creates a new r×c Dense. If data is nil the matrix is zero,
// otherwise data must hold r*c values in row-major order; they are copied.
// NewDense panics on non-positive dimensions or a data length mismatch.
func NewDense(r, c int, data []*big.Rat) *Dense {
	if r <= 0 || c <= 0 {
		panic(ErrZeroLength)
	}
	if data != nil && len(data) != r*c {
		panic(ErrShape)
	}
	d := &Dense{rows: r, cols: c, data: make([]big.Rat, r*c)}
	for i, v := range data {
		if v != nil {
			d.data[i].Set(v)
		}
	}
	return d
}

// Identity returns the n×n identity matrix.
func Identity(n int) *Dense {
	d := NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		d.data[i*n+i].SetInt64(1)
	}
	return d
}

func (d *Dense) Dims() (r, c int) { return d.rows, d.cols }

func (d *Dense) at(i, j int) *big.Rat {
	if i < 0 || i >= d.rows || j < 0 || j >= d.cols {
		panic(ErrIndexOutOfRange)
	}
	return &d.data[i*d.cols+j]
}

func (d *Dense) row(i int) []big.Rat {
	if i < 0 || i >= d.rows {
		panic(ErrIndexOutOfRange)
	}
	return d.data[i*d.cols : (i+1)*d.cols]
}

func (d *Dense) At(i, j int) *big.Rat {
	return new(big.Rat).Set(d.at(i, j))
}

func (d *Dense) Set(i, j int, v *big.Rat) {
	d.at(i, j).Set(v)
}

func (d *Dense) Sign(i, j int) int {
	return d.at(i, j).Sign()
}

func (d *Dense) Row(i int) []*big.Rat {
	src := d.row(i)
	out := make([]*big.Rat, len(src))
	for j := range src {
		out[j] = new(big.Rat).Set(&src[j])
	}
	return out
}

// SetRow overwrites row i with v.
func (d *Dense) SetRow(i int, v []*big.Rat) {
	dst := d.row(i)
	if len(v) != len(dst) {
		panic(ErrShape)
	}
	for j := range dst {
		dst[j].Set(v[j])
	}
}

func (d *Dense) ScaleRow(i int, k *big.Rat) {
	r := d.row(i)
	for j := range r {
		r[j].Mul(&r[j], k)
	}
}

func (d *Dense) DivRow(i int, div *big.Rat) {
	if div.Sign() == 0 {
		panic(ErrDivByZero)
	}
	d.ScaleRow(i, new(big.Rat).Inv(div))
}

func (d *Dense) AddScaledRow(dst, src int, k *big.Rat) {
	to, from := d.row(dst), d.row(src)
	var tmp big.Rat
	for j := range to {
		tmp.Mul(k, &from[j])
		to[j].Add(&to[j], &tmp)
	}
}

// Clone returns a deep copy of m as a *Dense.
func Clone(m Matrix) *Dense {
	r, c := m.Dims()
	d := NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		d.SetRow(i, m.Row(i))
	}
	return d
}

// Equal reports whether a and b have the same shape and elements.
func Equal(a, b Matrix) bool {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return false
	}
	for i := 0; i < ar; i++ {
		ra, rb := a.Row(i), b.Row(i)
		for j := range ra {
			if ra[j].Cmp(rb[j]) != 0 {
				return false
			}
		}
	}
	return true
}

// Float returns a float64 approximation of m. It is meant for display and
// for comparisons against floating point solvers, never for pivoting.
func Float(m Matrix) *mat.Dense {
	r, c := m.Dims()
	f := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j, v := range m.Row(i) {
			x, _ := v.Float64()
			f.Set(i, j, x)
		}
	}
	return f
}
