package aperture

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/telescope/math/calc"
)

const (
	// fwhmScanStep is the step, in units of 1/D, used to bracket the half
	// maximum of the PSF before refining it.
	fwhmScanStep = 0.05
	fwhmScanMax  = 10.0
)

// Airy is the diffraction-limited response of an Aperture: the (obstructed)
// Airy pattern.
type Airy struct {
	ap *Aperture
}

// NewAiry returns the Airy response of ap.
func NewAiry(ap *Aperture) *Airy { return &Airy{ap} }

// Aperture returns the aperture the response was built from.
func (a *Airy) Aperture() *Aperture { return a.ap }

// OTF returns the autocorrelation of the annular pupil at separation r,
// divided by its collecting area. It falls to zero at r = D.
func (a *Airy) OTF(r float64) float64 {
	r = math.Abs(r)
	R, e := a.ap.Radius(), a.ap.obstructionRatio
	if r >= 2*R { return 0 }

	auto := lensArea(r, R, R)
	if e > 0 {
		auto += lensArea(r, e*R, e*R) - 2*lensArea(r, R, e*R)
	}
	return auto / a.ap.Area()
}

// OTFs is OTF applied to each element of rs.
func (a *Airy) OTFs(rs []float64) []float64 {
	out := make([]float64, len(rs))
	for i := range rs { out[i] = a.OTF(rs[i]) }
	return out
}

// PSF returns |A(f)|^2 / area, where A is the transform of the annulus. This
// peaks at PSF(0) = area and integrates to one over the frequency plane.
func (a *Airy) PSF(f float64) float64 {
	amp := a.ap.annulusTransform(f)
	return amp * amp / a.ap.Area()
}

// PSFs is PSF applied to each element of fs.
func (a *Airy) PSFs(fs []float64) []float64 {
	out := make([]float64, len(fs))
	for i := range fs { out[i] = a.PSF(fs[i]) }
	return out
}

// FullWidthHalfMax returns twice the frequency at which the PSF first drops
// to half its peak.
func (a *Airy) FullWidthHalfMax() (float64, error) {
	d := a.ap.diameter
	half := a.PSF(0) / 2
	g := func(f float64) float64 { return a.PSF(f) - half }

	lo := 0.0
	for hi := fwhmScanStep / d; hi <= fwhmScanMax/d; hi += fwhmScanStep / d {
		if g(hi) <= 0 {
			f, err := calc.FindRoot(g, lo, hi, 1e-12/d)
			if err != nil {
				return math.NaN(), fmt.Errorf("aperture: FWHM: %w", err)
			}
			return 2 * f, nil
		}
		lo = hi
	}

	return math.NaN(), fmt.Errorf(
		"aperture: FWHM: PSF does not reach half maximum within %g/D: %w",
		fwhmScanMax, calc.ErrNonConvergence,
	)
}

// lensArea returns the area of the overlap of two disks with radii r1 and r2
// whose centers are d apart.
func lensArea(d, r1, r2 float64) float64 {
	if r1 <= 0 || r2 <= 0 || d >= r1+r2 { return 0 }
	if d <= math.Abs(r1-r2) {
		rMin := math.Min(r1, r2)
		return math.Pi * rMin * rMin
	}

	aco := func(x float64) float64 {
		return math.Acos(math.Max(-1, math.Min(1, x)))
	}
	alpha := aco((d*d + r1*r1 - r2*r2) / (2 * d * r1))
	beta := aco((d*d + r2*r2 - r1*r1) / (2 * d * r2))
	kite := math.Sqrt(math.Max(0,
		(-d+r1+r2)*(d+r1-r2)*(d-r1+r2)*(d+r1+r2)))
	return r1*r1*alpha + r2*r2*beta - kite/2
}
