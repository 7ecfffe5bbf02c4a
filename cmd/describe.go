package cmd

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/telescope/aperture"
	"github.com/phil-mansfield/telescope/logging"
	"github.com/phil-mansfield/telescope/parse"
)

// DescribeConfig summarizes a telescope: its geometry, the width of its PSF
// and the radii which contain given fractions of its light.
type DescribeConfig struct {
	wavelength float64
	heights    []float64
	levels     []float64
	trap       string
	domain     string
	points     int64
}

var _ Mode = &DescribeConfig{}

func (config *DescribeConfig) ExampleConfig() string {
	return `[describe.config]

#####################
## Optional Fields ##
#####################

# Wavelength in meters used to convert spatial frequencies into angles on the
# sky. Defaults to 550 nm.
Wavelength = 5.5e-7

# Heights in meters at which the diameter of the beam footprint is reported.
Heights = 0, 1000, 10000

# Fractions of the total energy whose enclosing radii are reported.
Levels = 0.5, 0.8, 0.9

# Shape of the region the energy is trapped in and the domain the integral is
# carried out in.
# Supported Traps: circle, square
# Supported Domains: psf, otf
Trap = circle
Domain = psf

# Number of radii the energy curve is tabulated at.
Points = 64`
}

func (config *DescribeConfig) ReadConfig(fname string, flags []string) error {
	vars := parse.NewConfigVars("describe.config")
	vars.Float(&config.wavelength, "Wavelength", 5.5e-7)
	vars.Floats(&config.heights, "Heights", []float64{})
	vars.Floats(&config.levels, "Levels", []float64{0.5, 0.8})
	vars.String(&config.trap, "Trap", "circle")
	vars.String(&config.domain, "Domain", "psf")
	vars.Int(&config.points, "Points", 64)

	if err := readModeConfig(fname, flags, vars); err != nil { return err }
	return config.validate()
}

func (config *DescribeConfig) validate() error {
	if !(config.wavelength > 0) {
		return fmt.Errorf("The variable 'Wavelength' was set to %g.",
			config.wavelength)
	} else if config.points < 3 {
		return fmt.Errorf("The variable 'Points' was set to %d, but at "+
			"least 3 are needed.", config.points)
	}
	for i, level := range config.levels {
		if !(level > 0 && level < 1) {
			return fmt.Errorf("Item %d of variable 'Levels' is set to %g, "+
				"which isn't between 0 and 1.", i, level)
		}
	}
	if _, err := aperture.ParseTrap(config.trap); err != nil {
		return fmt.Errorf("The variable 'Trap' is set to '%s', which I "+
			"don't recognize.", config.trap)
	}
	if _, err := aperture.ParseDomain(config.domain); err != nil {
		return fmt.Errorf("The variable 'Domain' is set to '%s', which I "+
			"don't recognize.", config.domain)
	}
	return nil
}

func (config *DescribeConfig) Run(
	tConfig *TelescopeConfig, stdin []string,
) ([]string, error) {
	banner("describe")
	timer := logging.StartTimer("describe")
	defer timer.Stop()

	ap, err := tConfig.Aperture()
	if err != nil { return nil, err }
	resp := tConfig.Response(ap)

	lines := []string{
		fmt.Sprintf("# %s", ap),
		fmt.Sprintf("# Pupil: %s", ap.PupilState()),
	}

	fwhm, err := resp.FullWidthHalfMax()
	if err != nil { return nil, err }
	lines = append(lines, fmt.Sprintf("FWHM = %.6g m^-1 = %.6g arcsec",
		fwhm, arcsec(fwhm, config.wavelength)))

	diameters := ap.DiametersAt(config.heights)
	for i := range config.heights {
		lines = append(lines, fmt.Sprintf("D(%g m) = %.6g m",
			config.heights[i], diameters[i]))
	}

	if len(config.levels) == 0 { return lines, nil }

	trap, _ := aperture.ParseTrap(config.trap)
	domain, _ := aperture.ParseDomain(config.domain)

	// Levels past the end of the curve are reported as lower limits.
	radii := floats.Span(make([]float64, config.points), fwhm/20, 10*fwhm)
	curve, err := ap.EnergyCurve(resp, radii, trap, domain)
	if err != nil { return nil, err }

	for _, level := range config.levels {
		r, err := curve.RadiusAt(level)
		if err != nil {
			lines = append(lines, fmt.Sprintf("R(%g%%, %s) > %.6g m^-1",
				100*level, trap, radii[len(radii)-1]))
			continue
		}
		lines = append(lines, fmt.Sprintf(
			"R(%g%%, %s) = %.6g m^-1 = %.6g arcsec",
			100*level, trap, r, arcsec(r, config.wavelength),
		))
	}

	return lines, nil
}

// arcsec converts a spatial frequency in the pupil plane into an angle on the
// sky.
func arcsec(freq, wavelength float64) float64 {
	return freq * wavelength / aperture.DefaultUnits.RadiansPerArcsec
}
