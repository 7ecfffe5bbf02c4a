package aperture

import (
	"errors"
	"fmt"
	"math"
)

// Units holds the angular conversion factors used to turn field-of-view
// options into radians.
type Units struct {
	RadiansPerArcsec float64
	RadiansPerArcmin float64
}

// DefaultUnits are the standard astronomical conversion factors.
var DefaultUnits = Units{
	RadiansPerArcsec: math.Pi / (180 * 3600),
	RadiansPerArcmin: math.Pi / (180 * 60),
}

// Config contains the optional parameters of an Aperture. The zero value is
// an unobstructed, on-axis, afocal aperture with no raster pupil.
type Config struct {
	// ObstructionRatio is the diameter of the central obstruction as a
	// fraction of the aperture diameter. It must be in [0, 1).
	ObstructionRatio float64
	// ConjugationHeight is the altitude the pupil is conjugated to.
	ConjugationHeight float64
	// FocalDistance is the distance to focus. Zero is treated as +Inf.
	FocalDistance float64
	// At most one of FieldOfViewInArcsec and FieldOfViewInArcmin may be
	// set. If neither is, the field of view is zero.
	FieldOfViewInArcsec *float64
	FieldOfViewInArcmin *float64
	// Resolution is the width of the raster pupil in pixels. Zero means
	// that no raster pupil is computed.
	Resolution int
}

// Float returns a pointer to x. It's a convenience for filling in the
// optional fields of Config.
func Float(x float64) *float64 { return &x }

// validate checks every parameter and reports all of the problems it finds.
func (c *Config) validate(diameter float64, units Units) error {
	var errs []error
	bad := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("%w: %s",
			ErrInvalidParameter, fmt.Sprintf(format, args...)))
	}

	if !(diameter > 0) || math.IsInf(diameter, 0) {
		bad("diameter is %g, but must be positive and finite", diameter)
	}
	if !(c.ObstructionRatio >= 0 && c.ObstructionRatio < 1) {
		bad("obstruction ratio is %g, but must be in [0, 1)",
			c.ObstructionRatio)
	}
	if math.IsNaN(c.ConjugationHeight) || math.IsInf(c.ConjugationHeight, 0) {
		bad("conjugation height is %g", c.ConjugationHeight)
	}
	if math.IsNaN(c.FocalDistance) || c.FocalDistance < 0 {
		bad("focal distance is %g, but must be positive", c.FocalDistance)
	}
	if c.FieldOfViewInArcsec != nil && c.FieldOfViewInArcmin != nil {
		bad("field of view given in both arcseconds (%g) and arcminutes (%g)",
			*c.FieldOfViewInArcsec, *c.FieldOfViewInArcmin)
	}
	for _, fov := range []*float64{c.FieldOfViewInArcsec, c.FieldOfViewInArcmin} {
		if fov != nil && (!(*fov >= 0) || math.IsInf(*fov, 0)) {
			bad("field of view is %g, but must be non-negative and finite", *fov)
		}
	}
	if c.Resolution < 0 {
		bad("resolution is %d pixels", c.Resolution)
	}
	if !(units.RadiansPerArcsec > 0) || !(units.RadiansPerArcmin > 0) {
		bad("angular units (%g rad/arcsec, %g rad/arcmin) must be positive",
			units.RadiansPerArcsec, units.RadiansPerArcmin)
	}

	return errors.Join(errs...)
}

// fieldOfView returns the field of view in radians. It must only be called
// after validate.
func (c *Config) fieldOfView(units Units) float64 {
	switch {
	case c.FieldOfViewInArcsec != nil:
		return *c.FieldOfViewInArcsec * units.RadiansPerArcsec
	case c.FieldOfViewInArcmin != nil:
		return *c.FieldOfViewInArcmin * units.RadiansPerArcmin
	}
	return 0
}
