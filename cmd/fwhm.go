package cmd

import (
	"fmt"

	"github.com/phil-mansfield/telescope/cmd/catalog"
	"github.com/phil-mansfield/telescope/parse"
)

// FWHMConfig prints the full width at half maximum of the telescope's PSF.
type FWHMConfig struct {
	wavelengths []float64
}

var _ Mode = &FWHMConfig{}

func (config *FWHMConfig) ExampleConfig() string {
	return `[fwhm.config]

#####################
## Optional Fields ##
#####################

# Wavelengths in meters at which the FWHM is also given in arcseconds. If
# empty, only the width in spatial frequency is printed.
Wavelengths = 4.5e-7, 5.5e-7, 6.5e-7`
}

func (config *FWHMConfig) ReadConfig(fname string, flags []string) error {
	vars := parse.NewConfigVars("fwhm.config")
	vars.Floats(&config.wavelengths, "Wavelengths", []float64{})

	if err := readModeConfig(fname, flags, vars); err != nil { return err }

	for i, w := range config.wavelengths {
		if !(w > 0) {
			return fmt.Errorf("Item %d of variable 'Wavelengths' is set "+
				"to %g.", i, w)
		}
	}
	return nil
}

func (config *FWHMConfig) Run(
	tConfig *TelescopeConfig, stdin []string,
) ([]string, error) {
	banner("fwhm")

	ap, err := tConfig.Aperture()
	if err != nil { return nil, err }
	fwhm, err := tConfig.Response(ap).FullWidthHalfMax()
	if err != nil { return nil, err }

	if len(config.wavelengths) == 0 {
		return []string{fmt.Sprintf("%.8g", fwhm)}, nil
	}

	widths := make([]float64, len(config.wavelengths))
	angles := make([]float64, len(config.wavelengths))
	for i, w := range config.wavelengths {
		widths[i] = fwhm
		angles[i] = arcsec(fwhm, w)
	}

	lines := []string{
		catalog.CommentString(
			[]string{"lambda [m]", "FWHM [m^-1]", "FWHM [arcsec]"},
			[]int{0, 1, 2}, []int{1, 1, 1},
		),
	}
	return append(lines, catalog.FormatCols(
		[][]float64{config.wavelengths, widths, angles}, []int{0, 1, 2},
	)...), nil
}
