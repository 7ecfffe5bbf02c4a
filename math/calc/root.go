package calc

import (
	"errors"
	"fmt"
	"math"
)

// ErrNotBracketed is returned by FindRoot when f(lo) and f(hi) have the same
// sign.
var ErrNotBracketed = errors.New("calc: root not bracketed")

const (
	rootMaxIter = 200
	rootEps     = 2.220446049250313e-16
)

// FindRoot locates a zero of f in [lo, hi] to within tol using the
// Brent-Dekker method. f(lo) and f(hi) must have opposite signs (or one of
// them must be zero).
func FindRoot(f func(float64) float64, lo, hi, tol float64) (float64, error) {
	a, b := lo, hi
	fa, fb := f(a), f(b)
	if fa == 0 { return a, nil }
	if fb == 0 { return b, nil }
	if fa*fb > 0 {
		return math.NaN(), fmt.Errorf(
			"%w: f(%g) = %g, f(%g) = %g", ErrNotBracketed, lo, fa, hi, fb,
		)
	}

	c, fc := a, fa
	d, e := b-a, b-a
	for i := 0; i < rootMaxIter; i++ {
		if fb*fc > 0 {
			c, fc = a, fa
			d, e = b-a, b-a
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol1 := 2*rootEps*math.Abs(b) + tol/2
		xm := (c - b) / 2
		if math.Abs(xm) <= tol1 || fb == 0 { return b, nil }

		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			var p, q float64
			s := fb / fa
			if a != c && fa != fc {
				// Inverse quadratic interpolation.
				r, t := fb/fc, fa/fc
				p = s * (2*xm*r*(r-t) - (b-a)*(t-1))
				q = (r - 1) * (t - 1) * (s - 1)
			} else {
				// Secant.
				p = 2 * xm * s
				q = 1 - s
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)

			if 2*p < math.Min(3*xm*q-math.Abs(tol1*q), math.Abs(e*q)) {
				e, d = d, p/q
			} else {
				d, e = xm, xm
			}
		} else {
			d, e = xm, xm
		}

		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		fb = f(b)
	}

	return b, fmt.Errorf(
		"%w: root search exceeded %d iterations", ErrNonConvergence, rootMaxIter,
	)
}
