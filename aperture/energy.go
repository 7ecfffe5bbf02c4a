package aperture

import (
	"fmt"
	"math"
	"strings"

	"github.com/phil-mansfield/telescope/math/calc"
)

// Trap is the shape of the region energy is collected in.
type Trap int

const (
	Circle Trap = iota
	Square
)

func (t Trap) String() string {
	switch t {
	case Circle: return "circle"
	case Square: return "square"
	}
	return fmt.Sprintf("Trap(%d)", int(t))
}

// ParseTrap converts "circle" or "square" into a Trap.
func ParseTrap(s string) (Trap, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "circle": return Circle, nil
	case "square": return Square, nil
	}
	return -1, fmt.Errorf("%w: unrecognized trap '%s'", ErrInvalidArgument, s)
}

// Domain selects whether entrapped energy is integrated from the PSF or the
// OTF of a response.
type Domain int

const (
	PSF Domain = iota
	OTF
)

func (d Domain) String() string {
	switch d {
	case PSF: return "psf"
	case OTF: return "otf"
	}
	return fmt.Sprintf("Domain(%d)", int(d))
}

// ParseDomain converts "psf" or "otf" into a Domain.
func ParseDomain(s string) (Domain, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "psf": return PSF, nil
	case "otf": return OTF, nil
	}
	return -1, fmt.Errorf("%w: unrecognized domain '%s'", ErrInvalidArgument, s)
}

// EntrappedEnergy integrates resp over a circle of radius halfSize or a
// square of half-width halfSize, centered on the PSF peak. halfSize is in the
// units of the PSF's argument.
//
// In the OTF domain the integral is carried out in the pupil plane against
// the transform of the trap, with the radial integration stopping at the
// aperture diameter.
//
// Circle traps use adaptive 1D quadrature and square traps use iterated
// adaptive 2D quadrature. Integration failures wrap calc.ErrNonConvergence.
func (ap *Aperture) EntrappedEnergy(
	resp OpticalResponse, halfSize float64, trap Trap, domain Domain,
	opts ...calc.IntegrateOption,
) (float64, error) {
	if trap != Circle && trap != Square {
		return math.NaN(), fmt.Errorf("%w: unrecognized trap %s",
			ErrInvalidArgument, trap)
	} else if domain != PSF && domain != OTF {
		return math.NaN(), fmt.Errorf("%w: unrecognized domain %s",
			ErrInvalidArgument, domain)
	} else if !(halfSize >= 0) || math.IsInf(halfSize, 0) {
		return math.NaN(), fmt.Errorf("%w: trap half-size %g",
			ErrInvalidArgument, halfSize)
	}

	var (
		val float64
		err error
	)
	h, d := halfSize, ap.diameter

	switch {
	case domain == PSF && trap == Circle:
		f := func(r float64) float64 { return r * resp.PSF(r) }
		val, err = calc.Integrate(f, 0, h, opts...)
		val *= 2 * math.Pi

	case domain == PSF && trap == Square:
		f := func(x, y float64) float64 { return resp.PSF(math.Hypot(x, y)) }
		val, err = calc.Integrate2D(f, 0, h, 0, h, opts...)
		val *= 4

	case domain == OTF && trap == Circle:
		f := func(r float64) float64 {
			return r * resp.OTF(r) * calc.Jinc(2*math.Pi*h*r)
		}
		val, err = calc.Integrate(f, 0, d, opts...)
		val *= 2 * math.Pi * math.Pi * h * h

	case domain == OTF && trap == Square:
		// The kernel has the symmetry of the square, so only the first
		// quadrant of angles is integrated.
		a := 2 * h
		f := func(r, theta float64) float64 {
			return r * resp.OTF(r) *
				calc.Sinc(math.Pi*r*math.Cos(theta)*a) *
				calc.Sinc(math.Pi*r*math.Sin(theta)*a)
		}
		val, err = calc.Integrate2D(f, 0, d, 0, math.Pi/2, opts...)
		val *= 4 * a * a
	}

	if err != nil {
		return val, fmt.Errorf("aperture: %s energy in a %s trap of half-size %g: %w",
			domain, trap, halfSize, err)
	}
	return val, nil
}
