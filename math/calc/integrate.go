package calc

import (
	"container/heap"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// ErrNonConvergence is returned when an adaptive integration cannot reach its
// requested tolerance within its panel budget.
var ErrNonConvergence = errors.New("calc: integration did not converge")

const (
	// DefaultAbsTol and DefaultRelTol are the tolerances used by Integrate and
	// Integrate2D unless overridden with Tolerance.
	DefaultAbsTol = 1e-10
	DefaultRelTol = 1e-6
	// DefaultMaxPanels is the largest number of panels a single 1D
	// integration may split its interval into.
	DefaultMaxPanels = 2000
	// DefaultPoints is the number of Gauss-Legendre nodes in a coarse panel
	// estimate. The fine estimate uses twice as many.
	DefaultPoints = 10
)

type integrateParams struct {
	absTol, relTol float64
	maxPanels      int
	points         int
}

type internalIntegrateOption func(*integrateParams)

// IntegrateOption configures a call to Integrate or Integrate2D.
type IntegrateOption internalIntegrateOption

// Tolerance sets the absolute and relative error targets. Integration stops
// once the estimated error is below max(abs, rel*|result|).
func Tolerance(abs, rel float64) IntegrateOption {
	return func(p *integrateParams) { p.absTol, p.relTol = abs, rel }
}

// MaxPanels sets the panel budget of each 1D integration.
func MaxPanels(n int) IntegrateOption {
	return func(p *integrateParams) { p.maxPanels = n }
}

// Points sets the number of Gauss-Legendre nodes in the coarse panel rule.
func Points(n int) IntegrateOption {
	return func(p *integrateParams) { p.points = n }
}

func (p *integrateParams) loadOptions(opts []IntegrateOption) {
	p.absTol, p.relTol = DefaultAbsTol, DefaultRelTol
	p.maxPanels, p.points = DefaultMaxPanels, DefaultPoints
	for _, opt := range opts { opt(p) }

	if p.maxPanels < 1 {
		panic(fmt.Sprintf("MaxPanels set to %d.", p.maxPanels))
	} else if p.points < 1 {
		panic(fmt.Sprintf("Points set to %d.", p.points))
	} else if p.absTol < 0 || p.relTol < 0 {
		panic("Negative integration tolerance.")
	}
}

// panel is a subinterval together with its integral and error estimates.
type panel struct {
	lo, hi   float64
	val, err float64
}

// panelHeap is a max-heap on panel error.
type panelHeap []panel

func (h panelHeap) Len() int            { return len(h) }
func (h panelHeap) Less(i, j int) bool  { return h[i].err > h[j].err }
func (h panelHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *panelHeap) Push(x interface{}) { *h = append(*h, x.(panel)) }
func (h *panelHeap) Pop() interface{} {
	old := *h
	n := len(old)
	p := old[n-1]
	*h = old[:n-1]
	return p
}

func (p *integrateParams) newPanel(f func(float64) float64, lo, hi float64) panel {
	coarse := quad.Fixed(f, lo, hi, p.points, quad.Legendre{}, 0)
	fine := quad.Fixed(f, lo, hi, 2*p.points, quad.Legendre{}, 0)
	return panel{lo: lo, hi: hi, val: fine, err: math.Abs(fine - coarse)}
}

// Integrate computes the integral of f over [lo, hi] with globally adaptive
// Gauss-Legendre quadrature: the panel with the largest error estimate is
// bisected until the summed error falls below the tolerance.
//
// If the panel budget is exhausted first, the best estimate is returned along
// with an error wrapping ErrNonConvergence.
func Integrate(
	f func(float64) float64, lo, hi float64, opts ...IntegrateOption,
) (float64, error) {
	p := &integrateParams{}
	p.loadOptions(opts)
	return p.integrate(f, lo, hi)
}

func (p *integrateParams) integrate(
	f func(float64) float64, lo, hi float64,
) (float64, error) {
	if lo == hi { return 0, nil }
	if hi < lo {
		val, err := p.integrate(f, hi, lo)
		return -val, err
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return math.NaN(), fmt.Errorf(
			"calc: integration bounds [%g, %g] are not finite", lo, hi,
		)
	}

	h := &panelHeap{p.newPanel(f, lo, hi)}
	val, errSum := (*h)[0].val, (*h)[0].err

	for h.Len() < p.maxPanels {
		if math.IsNaN(val) {
			return val, fmt.Errorf(
				"%w: integrand is NaN on [%g, %g]", ErrNonConvergence, lo, hi,
			)
		}
		if errSum <= math.Max(p.absTol, p.relTol*math.Abs(val)) {
			return val, nil
		}

		worst := heap.Pop(h).(panel)
		mid := worst.lo + (worst.hi-worst.lo)/2
		if mid <= worst.lo || mid >= worst.hi {
			// The panel can't be split any further in floating point.
			heap.Push(h, worst)
			break
		}
		left, right := p.newPanel(f, worst.lo, mid), p.newPanel(f, mid, worst.hi)
		heap.Push(h, left)
		heap.Push(h, right)

		// Resum rather than update in place to keep rounding from piling up.
		val, errSum = 0, 0
		for _, pn := range *h {
			val += pn.val
			errSum += pn.err
		}
	}

	if errSum <= math.Max(p.absTol, p.relTol*math.Abs(val)) {
		return val, nil
	}
	return val, fmt.Errorf(
		"%w: estimated error %.3g on [%g, %g] after %d panels",
		ErrNonConvergence, errSum, lo, hi, h.Len(),
	)
}

// Integrate2D computes the integral of f over the rectangle
// [xlo, xhi] x [ylo, yhi] as an iterated adaptive integral: the outer
// integration over y calls an adaptive integration over x for every node.
// The inner integrals are held to a tolerance ten times tighter than the
// outer one.
func Integrate2D(
	f func(x, y float64) float64, xlo, xhi, ylo, yhi float64,
	opts ...IntegrateOption,
) (float64, error) {
	outer := &integrateParams{}
	outer.loadOptions(opts)
	inner := *outer
	inner.absTol, inner.relTol = outer.absTol/10, outer.relTol/10

	var innerErr error
	g := func(y float64) float64 {
		if innerErr != nil { return 0 }
		val, err := inner.integrate(
			func(x float64) float64 { return f(x, y) }, xlo, xhi,
		)
		if err != nil {
			innerErr = fmt.Errorf("inner integral at y = %g: %w", y, err)
		}
		return val
	}

	val, err := outer.integrate(g, ylo, yhi)
	if innerErr != nil { return val, innerErr }
	return val, err
}
