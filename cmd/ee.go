package cmd

import (
	"fmt"
	"runtime"

	"github.com/phil-mansfield/telescope/aperture"
	"github.com/phil-mansfield/telescope/cmd/catalog"
	"github.com/phil-mansfield/telescope/logging"
	"github.com/phil-mansfield/telescope/math/calc"
	"github.com/phil-mansfield/telescope/parse"
)

// EEConfig computes the entrapped energy at the half-sizes given on stdin.
type EEConfig struct {
	column         int64
	traps          []string
	domain         string
	absTol, relTol float64
	maxPanels      int64
	density        bool
	threads        int64
}

var _ Mode = &EEConfig{}

func (config *EEConfig) ExampleConfig() string {
	return `[ee.config]

#####################
## Optional Fields ##
#####################

# Column of stdin which contains trap half-sizes in units of m^-1. Each trap
# gets one output column.
Column = 0

# Traps and the domain the integrals are carried out in.
# Supported Traps: circle, square
# Supported Domains: psf, otf
Traps = circle, square
Domain = psf

# Tolerances and panel budget of the adaptive quadrature. Integration stops
# once the estimated error is below max(AbsTol, RelTol*|EE|).
AbsTol = 1e-10
RelTol = 1e-6
MaxPanels = 2000

# If Density is true, dEE/dr is written after each trap's energy column. The
# half-sizes should then be evenly spaced and there must be at least three.
Density = false

# Number of threads used. If 0 or negative, every CPU is used.
Threads = 0`
}

func (config *EEConfig) ReadConfig(fname string, flags []string) error {
	vars := parse.NewConfigVars("ee.config")
	vars.Int(&config.column, "Column", 0)
	vars.Strings(&config.traps, "Traps", []string{"circle"})
	vars.String(&config.domain, "Domain", "psf")
	vars.Float(&config.absTol, "AbsTol", calc.DefaultAbsTol)
	vars.Float(&config.relTol, "RelTol", calc.DefaultRelTol)
	vars.Int(&config.maxPanels, "MaxPanels", calc.DefaultMaxPanels)
	vars.Bool(&config.density, "Density", false)
	vars.Int(&config.threads, "Threads", 0)

	if err := readModeConfig(fname, flags, vars); err != nil { return err }
	return config.validate()
}

func (config *EEConfig) validate() error {
	if config.column < 0 {
		return fmt.Errorf("The variable 'Column' was set to %d.",
			config.column)
	} else if len(config.traps) == 0 {
		return fmt.Errorf("The variable 'Traps' is empty.")
	} else if config.absTol < 0 || config.relTol < 0 {
		return fmt.Errorf("The tolerances were set to AbsTol = %g and "+
			"RelTol = %g.", config.absTol, config.relTol)
	} else if config.maxPanels < 1 {
		return fmt.Errorf("The variable 'MaxPanels' was set to %d.",
			config.maxPanels)
	}

	for i, name := range config.traps {
		if _, err := aperture.ParseTrap(name); err != nil {
			return fmt.Errorf("Item %d of variable 'Traps' is set to '%s', "+
				"which I don't recognize.", i, name)
		}
	}
	if _, err := aperture.ParseDomain(config.domain); err != nil {
		return fmt.Errorf("The variable 'Domain' is set to '%s', which I "+
			"don't recognize.", config.domain)
	}
	return nil
}

func (config *EEConfig) Run(
	tConfig *TelescopeConfig, stdin []string,
) ([]string, error) {
	banner("ee")
	timer := logging.StartTimer("ee")
	defer timer.Stop()

	cols, err := catalog.ParseCols(stdin, []int{int(config.column)})
	if err != nil { return nil, err }
	radii := cols[0]
	if len(radii) == 0 {
		return nil, fmt.Errorf("No input half-sizes.")
	} else if config.density && len(radii) < 3 {
		return nil, fmt.Errorf("Density needs at least 3 half-sizes, but "+
			"I was given %d.", len(radii))
	}

	ap, err := tConfig.Aperture()
	if err != nil { return nil, err }
	resp := tConfig.Response(ap)
	domain, _ := aperture.ParseDomain(config.domain)
	opts := []calc.IntegrateOption{
		calc.Tolerance(config.absTol, config.relTol),
		calc.MaxPanels(int(config.maxPanels)),
	}

	names := []string{"r [m^-1]"}
	outCols := [][]float64{radii}
	for _, name := range config.traps {
		trap, _ := aperture.ParseTrap(name)
		ee, err := entrappedEnergies(
			ap, resp, radii, trap, domain, config.threads, opts,
		)
		if err != nil { return nil, err }

		names = append(names, fmt.Sprintf("EE(%s, %s)", trap, domain))
		outCols = append(outCols, ee)
		if config.density {
			names = append(names, fmt.Sprintf("dEE/dr(%s, %s)", trap, domain))
			outCols = append(outCols, calc.Deriv(radii, ee, 2))
		}
	}

	order, sizes := make([]int, len(outCols)), make([]int, len(outCols))
	for i := range order { order[i], sizes[i] = i, 1 }

	lines := []string{catalog.CommentString(names, order, sizes)}
	return append(lines, catalog.FormatCols(outCols, order)...), nil
}

// entrappedEnergies splits the half-sizes between workers, with the last
// worker running on the calling goroutine.
func entrappedEnergies(
	ap *aperture.Aperture, resp aperture.OpticalResponse, radii []float64,
	trap aperture.Trap, domain aperture.Domain, threads int64,
	opts []calc.IntegrateOption,
) ([]float64, error) {
	cpu := runtime.NumCPU()
	if threads > 0 { cpu = int(threads) }
	workers := cpu
	if workers > len(radii) { workers = len(radii) }

	out := make([]float64, len(radii))
	errChan := make(chan error, workers)
	for i := 0; i < workers-1; i++ {
		go entrappedEnergiesChan(
			ap, resp, radii, trap, domain, opts, i, workers, out, errChan,
		)
	}
	entrappedEnergiesChan(
		ap, resp, radii, trap, domain, opts,
		workers-1, workers, out, errChan,
	)

	var err error
	for i := 0; i < workers; i++ {
		if workerErr := <-errChan; workerErr != nil && err == nil {
			err = workerErr
		}
	}
	return out, err
}

func entrappedEnergiesChan(
	ap *aperture.Aperture, resp aperture.OpticalResponse, radii []float64,
	trap aperture.Trap, domain aperture.Domain, opts []calc.IntegrateOption,
	offset, workers int, out []float64, errChan chan error,
) {
	for i := offset; i < len(radii); i += workers {
		var err error
		out[i], err = ap.EntrappedEnergy(resp, radii[i], trap, domain, opts...)
		if err != nil {
			errChan <- fmt.Errorf("Half-size %g: %w", radii[i], err)
			return
		}
	}
	errChan <- nil
}
