/*package aperture models the pupil of a telescope and the diffraction-limited
optics which follow from it: the Fourier transform of an annular aperture and
the energy a point spread function deposits inside circular and square traps.

Concrete optical models plug in through the OpticalResponse interface. Airy is
the reference model for a clear or centrally obstructed circular pupil.
*/
package aperture

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Aperture is a circular telescope pupil with an optional central
// obstruction. Its geometry is fixed at construction; only the pupil override
// can change afterwards.
type Aperture struct {
	diameter          float64
	obstructionRatio  float64
	conjugationHeight float64
	focalDistance     float64
	fieldOfView       float64
	resolution        int
	units             Units

	mu       sync.RWMutex
	state    PupilState
	override *mat.Dense
}

// New creates an Aperture of the given diameter using DefaultUnits. All
// parameter errors wrap ErrInvalidParameter.
func New(diameter float64, config Config) (*Aperture, error) {
	return NewWithUnits(diameter, config, DefaultUnits)
}

// NewWithUnits is New with explicit angular conversion factors.
func NewWithUnits(diameter float64, config Config, units Units) (*Aperture, error) {
	if err := config.validate(diameter, units); err != nil {
		return nil, err
	}

	ap := &Aperture{
		diameter:          diameter,
		obstructionRatio:  config.ObstructionRatio,
		conjugationHeight: config.ConjugationHeight,
		focalDistance:     config.FocalDistance,
		fieldOfView:       config.fieldOfView(units),
		resolution:        config.Resolution,
		units:             units,
		state:             PupilComputed,
	}
	if ap.focalDistance == 0 { ap.focalDistance = math.Inf(1) }

	return ap, nil
}

// Diameter returns the diameter of the aperture.
func (ap *Aperture) Diameter() float64 { return ap.diameter }

// ObstructionRatio returns the obstruction diameter as a fraction of the
// aperture diameter.
func (ap *Aperture) ObstructionRatio() float64 { return ap.obstructionRatio }

// ConjugationHeight returns the altitude the pupil is conjugated to.
func (ap *Aperture) ConjugationHeight() float64 { return ap.conjugationHeight }

// FocalDistance returns the focal distance. It is +Inf for afocal systems.
func (ap *Aperture) FocalDistance() float64 { return ap.focalDistance }

// FieldOfView returns the field of view in radians.
func (ap *Aperture) FieldOfView() float64 { return ap.fieldOfView }

// Resolution returns the width of the raster pupil in pixels, or zero.
func (ap *Aperture) Resolution() int { return ap.resolution }

// Radius returns half the diameter.
func (ap *Aperture) Radius() float64 { return ap.diameter / 2 }

// Area returns the collecting area of the annulus.
func (ap *Aperture) Area() float64 {
	r, e := ap.Radius(), ap.obstructionRatio
	return math.Pi * r * r * (1 - e*e)
}

// DiameterAt returns the diameter of the beam footprint at a height above the
// pupil, widened by the field of view.
func (ap *Aperture) DiameterAt(height float64) float64 {
	return ap.diameter + 2*height*math.Tan(ap.fieldOfView/2)
}

// DiametersAt is DiameterAt applied to each height.
func (ap *Aperture) DiametersAt(heights []float64) []float64 {
	out := make([]float64, len(heights))
	for i, h := range heights { out[i] = ap.DiameterAt(h) }
	return out
}

// String returns a one-line summary of the aperture.
func (ap *Aperture) String() string {
	tokens := []string{fmt.Sprintf(
		"%.2fm diameter with %.1f%% central obstruction and %.2fm^2 "+
			"collecting area", ap.diameter, 100*ap.obstructionRatio, ap.Area(),
	)}
	if ap.fieldOfView != 0 {
		tokens = append(tokens, fmt.Sprintf("%.2f arcsec field of view",
			ap.fieldOfView/ap.units.RadiansPerArcsec))
	}
	if ap.resolution > 0 {
		tokens = append(tokens, fmt.Sprintf("%d pixel pupil", ap.resolution))
	}
	return strings.Join(tokens, ", ")
}
