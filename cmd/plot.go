package cmd

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/phil-mansfield/telescope/aperture"
	"github.com/phil-mansfield/telescope/logging"
	"github.com/phil-mansfield/telescope/parse"
)

// PlotConfig draws entrapped energy curves to an image file.
type PlotConfig struct {
	output        string
	rMin, rMax    float64
	points        int64
	traps         []string
	domain        string
	logScale      bool
	width, height float64
}

var _ Mode = &PlotConfig{}

func (config *PlotConfig) ExampleConfig() string {
	return `[plot.config]

#####################
## Optional Fields ##
#####################

# File the plot is written to. The format is set by the extension, e.g. .png,
# .svg or .pdf.
Output = energy.png

# Range of half-sizes plotted, in units of the inverse diameter, 1/D. RMin
# must be positive if LogScale is true.
RMin = 0.05
RMax = 5
Points = 100
LogScale = false

# Traps and the domain the integrals are carried out in.
# Supported Traps: circle, square
# Supported Domains: psf, otf
Traps = circle, square
Domain = psf

# Size of the image in inches.
Width = 6
Height = 4`
}

func (config *PlotConfig) ReadConfig(fname string, flags []string) error {
	vars := parse.NewConfigVars("plot.config")
	vars.String(&config.output, "Output", "energy.png")
	vars.Float(&config.rMin, "RMin", 0.05)
	vars.Float(&config.rMax, "RMax", 5)
	vars.Int(&config.points, "Points", 100)
	vars.Strings(&config.traps, "Traps", []string{"circle", "square"})
	vars.String(&config.domain, "Domain", "psf")
	vars.Bool(&config.logScale, "LogScale", false)
	vars.Float(&config.width, "Width", 6)
	vars.Float(&config.height, "Height", 4)

	if err := readModeConfig(fname, flags, vars); err != nil { return err }
	return config.validate()
}

func (config *PlotConfig) validate() error {
	switch {
	case config.output == "":
		return fmt.Errorf("The variable 'Output' isn't set.")
	case !(config.rMin >= 0 && config.rMax > config.rMin):
		return fmt.Errorf("The variables 'RMin' and 'RMax' were set to "+
			"%g and %g.", config.rMin, config.rMax)
	case config.logScale && config.rMin == 0:
		return fmt.Errorf("'LogScale' is set, so 'RMin' must be positive.")
	case config.points < 3:
		return fmt.Errorf("The variable 'Points' was set to %d, but at "+
			"least 3 are needed.", config.points)
	case !(config.width > 0 && config.height > 0):
		return fmt.Errorf("The image size was set to %g x %g inches.",
			config.width, config.height)
	case len(config.traps) == 0:
		return fmt.Errorf("The variable 'Traps' is empty.")
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

func (config *PlotConfig) Run(
	tConfig *TelescopeConfig, stdin []string,
) ([]string, error) {
	banner("plot")
	timer := logging.StartTimer("plot")
	defer timer.Stop()

	ap, err := tConfig.Aperture()
	if err != nil { return nil, err }
	resp := tConfig.Response(ap)
	domain, _ := aperture.ParseDomain(config.domain)

	p := config.newPlot(ap)

	// Curves are tabulated at scaled radii, r*D, so that the axis doesn't
	// depend on the size of the telescope.
	scaled := floats.Span(make([]float64, config.points), config.rMin, config.rMax)
	radii := make([]float64, len(scaled))
	floats.ScaleTo(radii, 1/ap.Diameter(), scaled)

	lines := []interface{}{}
	for _, name := range config.traps {
		trap, _ := aperture.ParseTrap(name)
		curve, err := ap.EnergyCurve(resp, radii, trap, domain)
		if err != nil { return nil, err }

		pts := make(plotter.XYs, len(radii))
		for i, ee := range curve.Energies() {
			pts[i] = plotter.XY{X: scaled[i], Y: ee}
		}
		lines = append(lines, fmt.Sprintf("%s (%s)", trap, domain), pts)
	}

	if err := plotutil.AddLines(p, lines...); err != nil { return nil, err }
	err = p.Save(
		vg.Length(config.width)*vg.Inch, vg.Length(config.height)*vg.Inch,
		config.output,
	)
	if err != nil { return nil, err }

	return []string{fmt.Sprintf("# Wrote %s", config.output)}, nil
}

func (config *PlotConfig) newPlot(ap *aperture.Aperture) *plot.Plot {
	p := plot.New()
	p.Title.Text = ap.String()
	p.X.Label.Text = "r D"
	p.Y.Label.Text = "Entrapped energy"
	p.Y.Min, p.Y.Max = 0, 1
	p.Legend.Top = false
	p.Legend.Left = false

	if config.logScale {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{}
	}
	p.Add(plotter.NewGrid())
	return p
}
