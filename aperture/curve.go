package aperture

import (
	"fmt"

	"github.com/phil-mansfield/telescope/math/calc"
	"github.com/phil-mansfield/telescope/math/interpolate"
)

// EnergyCurve is entrapped energy tabulated against trap half-size, with a
// spline through the table.
type EnergyCurve struct {
	Trap   Trap
	Domain Domain

	radii, energies []float64
	sp              *interpolate.Spline
}

// EnergyCurve computes the entrapped energy at every half-size in radii,
// which must contain at least three strictly increasing values.
func (ap *Aperture) EnergyCurve(
	resp OpticalResponse, radii []float64, trap Trap, domain Domain,
	opts ...calc.IntegrateOption,
) (*EnergyCurve, error) {
	if len(radii) < 3 {
		return nil, fmt.Errorf("%w: energy curve needs at least 3 radii, got %d",
			ErrInvalidArgument, len(radii))
	}
	for i := 1; i < len(radii); i++ {
		if !(radii[i] > radii[i-1]) {
			return nil, fmt.Errorf("%w: energy curve radii not increasing "+
				"at index %d", ErrInvalidArgument, i)
		}
	}

	c := &EnergyCurve{
		Trap: trap, Domain: domain,
		radii:    append([]float64(nil), radii...),
		energies: make([]float64, len(radii)),
	}
	for i, r := range c.radii {
		var err error
		c.energies[i], err = ap.EntrappedEnergy(resp, r, trap, domain, opts...)
		if err != nil { return nil, err }
	}
	c.sp = interpolate.NewSpline(c.radii, c.energies)

	return c, nil
}

// Radii returns the tabulated half-sizes.
func (c *EnergyCurve) Radii() []float64 { return c.radii }

// Energies returns the tabulated entrapped energies.
func (c *EnergyCurve) Energies() []float64 { return c.energies }

// Energy interpolates the entrapped energy at half-size r, which must lie
// within the tabulated range.
func (c *EnergyCurve) Energy(r float64) (float64, error) {
	lo, hi := c.sp.Range()
	if !(r >= lo && r <= hi) {
		return 0, fmt.Errorf("%w: half-size %g outside tabulated range "+
			"[%g, %g]", ErrInvalidArgument, r, lo, hi)
	}
	return c.sp.Eval(r), nil
}

// RadiusAt returns the smallest tabulated half-size at which the curve
// reaches the given energy, e.g. 0.5 for the half-energy radius.
func (c *EnergyCurve) RadiusAt(energy float64) (float64, error) {
	r, err := c.sp.Solve(energy)
	if err != nil {
		return r, fmt.Errorf("%w: %s", ErrInvalidArgument, err.Error())
	}
	return r, nil
}
