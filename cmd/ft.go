package cmd

import (
	"fmt"

	"github.com/phil-mansfield/telescope/cmd/catalog"
	"github.com/phil-mansfield/telescope/logging"
	"github.com/phil-mansfield/telescope/parse"
)

// FTConfig evaluates the normalized Fourier transform of the pupil at the
// frequencies given on stdin.
type FTConfig struct {
	column  int64
	sampled bool
	padding int64
}

var _ Mode = &FTConfig{}

func (config *FTConfig) ExampleConfig() string {
	return `[ft.config]

#####################
## Optional Fields ##
#####################

# Column of stdin which contains spatial frequencies in units of m^-1.
Column = 0

# If Sampled is true, stdin is ignored and the transform is instead computed
# with an FFT of the pupil raster, which must exist. The raster is zero padded
# to Padding times its width.
Sampled = false
Padding = 8`
}

func (config *FTConfig) ReadConfig(fname string, flags []string) error {
	vars := parse.NewConfigVars("ft.config")
	vars.Int(&config.column, "Column", 0)
	vars.Bool(&config.sampled, "Sampled", false)
	vars.Int(&config.padding, "Padding", 8)

	if err := readModeConfig(fname, flags, vars); err != nil { return err }

	if config.column < 0 {
		return fmt.Errorf("The variable 'Column' was set to %d.",
			config.column)
	} else if config.padding < 1 {
		return fmt.Errorf("The variable 'Padding' was set to %d.",
			config.padding)
	}
	return nil
}

func (config *FTConfig) Run(
	tConfig *TelescopeConfig, stdin []string,
) ([]string, error) {
	banner("ft")
	timer := logging.StartTimer("ft")
	defer timer.Stop()

	ap, err := tConfig.Aperture()
	if err != nil { return nil, err }

	var freqs, values []float64
	if config.sampled {
		freqs, values, err = ap.SampledTransform(int(config.padding))
		if err != nil { return nil, err }
	} else {
		cols, err := catalog.ParseCols(stdin, []int{int(config.column)})
		if err != nil { return nil, err }
		freqs = cols[0]
		if len(freqs) == 0 { return nil, fmt.Errorf("No input frequencies.") }
		values = ap.FourierTransform(freqs)
	}

	lines := []string{
		catalog.CommentString([]string{"f [m^-1]", "FT(f)"},
			[]int{0, 1}, []int{1, 1}),
	}
	return append(lines, catalog.FormatCols(
		[][]float64{freqs, values}, []int{0, 1},
	)...), nil
}
