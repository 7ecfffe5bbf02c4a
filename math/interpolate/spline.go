/*package interpolate provides cubic splines through tabulated curves, such as
encircled energy profiles.
*/
package interpolate

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/telescope/math/calc"
)

type splineCoeff struct {
	a, b, c, d float64
}

// Spline represents a 1D natural cubic spline which can be used to
// interpolate between points.
type Spline struct {
	xs, ys, y2s []float64
	coeffs      []splineCoeff

	incr bool
	// Usually the input data is uniform. This is our estimate of the point
	// spacing.
	dx float64
}

// NewSpline creates a spline based off a table of x and y values. The values
// must be strictly increasing or strictly decreasing in x, and there must be
// at least three of them.
func NewSpline(xs, ys []float64) *Spline {
	if len(xs) != len(ys) {
		panic(fmt.Sprintf("Table given to NewSpline() has len(xs) = %d "+
			"but len(ys) = %d.", len(xs), len(ys)))
	} else if len(xs) < 3 {
		panic(fmt.Sprintf("Table given to NewSpline() has "+
			"length of %d.", len(xs)))
	}

	sp := new(Spline)
	sp.y2s = make([]float64, len(xs))
	sp.coeffs = make([]splineCoeff, len(xs)-1)
	sp.xs, sp.ys = xs, ys
	sp.Init(xs, ys)

	return sp
}

// Init reinitializes a spline to use a new sequence of points without doing
// any additional heap allocations. |xs| and |ys| must be the same as the
// previous point set.
func (sp *Spline) Init(xs, ys []float64) {
	if len(xs) != len(sp.xs) || len(ys) != len(sp.ys) {
		panic("Length of input arrays do not equal internal spline arrays.")
	}
	sp.xs, sp.ys = xs, ys

	sp.incr = xs[0] < xs[1]
	for i := 0; i < len(xs)-1; i++ {
		if (xs[i+1] > xs[i]) != sp.incr || xs[i+1] == xs[i] {
			panic("Table given to NewSpline() not strictly sorted.")
		}
	}

	sp.dx = (xs[len(xs)-1] - xs[0]) / float64(len(xs)-1)
	sp.calcY2s()
	sp.calcCoeffs()
}

// Range returns the first and last x values of the table.
func (sp *Spline) Range() (lo, hi float64) {
	return sp.xs[0], sp.xs[len(sp.xs)-1]
}

// Eval computes the value of the spline at the given point.
//
// x must be within the range of x values given to NewSpline().
func (sp *Spline) Eval(x float64) float64 {
	if x == sp.xs[0] { return sp.ys[0] }
	if x == sp.xs[len(sp.xs)-1] { return sp.ys[len(sp.ys)-1] }

	i := sp.bsearch(x)
	dx := x - sp.xs[i]
	a, b, c, d := sp.coeffs[i].a, sp.coeffs[i].b, sp.coeffs[i].c, sp.coeffs[i].d
	return a*dx*dx*dx + b*dx*dx + c*dx + d
}

// EvalAll evaluates the spline at every point in xs. An optional output
// slice can be supplied to prevent heap allocations.
func (sp *Spline) EvalAll(xs []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}

	for i := range xs {
		out[0][i] = sp.Eval(xs[i])
	}

	return out[0]
}

// Deriv computes the derivative of spline at the given point to the
// specified order.
//
// x must be within the range of x values given to NewSpline().
func (sp *Spline) Deriv(x float64, order int) float64 {
	i := sp.bsearch(x)
	dx := x - sp.xs[i]
	a, b, c, d := sp.coeffs[i].a, sp.coeffs[i].b, sp.coeffs[i].c, sp.coeffs[i].d
	switch order {
	case 0:
		return a*dx*dx*dx + b*dx*dx + c*dx + d
	case 1:
		return 3*a*dx*dx + 2*b*dx + c
	case 2:
		return 6*a*dx + 2*b
	case 3:
		return 6 * a
	default:
		return 0
	}
}

// Solve returns the x at which the spline is equal to y. The first interval
// of the table which brackets y is searched, so for non-monotonic tables the
// solution closest to the start of the table is returned. An error is
// returned if no table interval brackets y.
func (sp *Spline) Solve(y float64) (float64, error) {
	for i := 0; i < len(sp.xs)-1; i++ {
		lo, hi := sp.ys[i]-y, sp.ys[i+1]-y
		if lo == 0 { return sp.xs[i], nil }
		if lo*hi > 0 { continue }

		f := func(x float64) float64 { return sp.Eval(x) - y }
		tol := 1e-12 * math.Max(math.Abs(sp.xs[i]), math.Abs(sp.xs[i+1]))
		return calc.FindRoot(f, sp.xs[i], sp.xs[i+1], tol)
	}
	return math.NaN(), fmt.Errorf(
		"interpolate: value %g is never reached by the spline table", y,
	)
}

// bsearch returns the the index of the largest element in xs which is smaller
// than x.
func (sp *Spline) bsearch(x float64) int {
	if (x < sp.xs[0]) == sp.incr && x != sp.xs[0] ||
		(x > sp.xs[len(sp.xs)-1]) == sp.incr && x != sp.xs[len(sp.xs)-1] {
		panic(fmt.Sprintf("Point %g out of Spline bounds [%g, %g].",
			x, sp.xs[0], sp.xs[len(sp.xs)-1]))
	}

	// Guess under the assumption of uniform spacing.
	guess := int((x - sp.xs[0]) / sp.dx)
	if guess >= 0 && guess < len(sp.xs)-1 &&
		(sp.xs[guess] <= x == sp.incr) &&
		(sp.xs[guess+1] >= x == sp.incr) {

		return guess
	}

	// Binary search.
	lo, hi := 0, len(sp.xs)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if sp.incr == (x >= sp.xs[mid]) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// calcY2s computes the second derivative at every point in the table given
// in NewSpline. The boundaries are set to zero (a natural spline).
func (sp *Spline) calcY2s() {
	n := len(sp.xs)
	as, bs := make([]float64, n-2), make([]float64, n-2)
	cs, rs := make([]float64, n-2), make([]float64, n-2)
	sp.y2s[0], sp.y2s[n-1] = 0, 0

	xs, ys := sp.xs, sp.ys
	for i := range rs {
		// j indexes into xs and ys.
		j := i + 1

		as[i] = (xs[j] - xs[j-1]) / 6
		bs[i] = (xs[j+1] - xs[j-1]) / 3
		cs[i] = (xs[j+1] - xs[j]) / 6
		rs[i] = ((ys[j+1] - ys[j]) / (xs[j+1] - xs[j])) -
			((ys[j] - ys[j-1]) / (xs[j] - xs[j-1]))
	}

	TriDiagAt(as, bs, cs, rs, sp.y2s[1:n-1])
}

func (sp *Spline) calcCoeffs() {
	coeffs, xs, ys, y2s := sp.coeffs, sp.xs, sp.ys, sp.y2s
	for i := range sp.coeffs {
		dx := xs[i+1] - xs[i]
		coeffs[i].a = (-y2s[i]/6 + y2s[i+1]/6) / dx
		coeffs[i].b = y2s[i] / 2
		coeffs[i].c = (ys[i+1]-ys[i])/dx + dx*(-y2s[i]/3-y2s[i+1]/6)
		coeffs[i].d = ys[i]
	}
}

// TriDiagAt solves the system of equations
//
// | b0 c0 ..    |   | out0 |   | r0 |
// | a1 b1 c1 .. |   | out1 |   | r1 |
// | ..          | * | ..   | = | .. |
// | ..    an bn |   | outn |   | rn |
//
// For out0 .. outn in place in the given slice.
func TriDiagAt(as, bs, cs, rs, out []float64) {
	if len(as) != len(bs) || len(as) != len(cs) ||
		len(as) != len(out) || len(as) != len(rs) {

		panic("Length of arugments to TriDiagAt are unequal.")
	}

	tmp := make([]float64, len(as))

	beta := bs[0]
	if beta == 0 {
		panic("TriDiagAt cannot solve given system.")
	}
	out[0] = rs[0] / beta

	for i := 1; i < len(out); i++ {
		tmp[i] = cs[i-1] / beta
		beta = bs[i] - as[i]*tmp[i]
		if beta == 0 {
			panic("TriDiagAt cannot solve given system")
		}
		out[i] = (rs[i] - as[i]*out[i-1]) / beta
	}

	for i := len(out) - 2; i >= 0; i-- {
		out[i] -= tmp[i+1] * out[i+1]
	}
}
