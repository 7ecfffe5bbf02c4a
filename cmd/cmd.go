/*package cmd contains code for running telescope in its various command
line modes */
package cmd

import (
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/phil-mansfield/telescope/aperture"
	"github.com/phil-mansfield/telescope/cmd/catalog"
	"github.com/phil-mansfield/telescope/logging"
	"github.com/phil-mansfield/telescope/parse"
	"github.com/phil-mansfield/telescope/version"
)

var ModeNames map[string]Mode = map[string]Mode{
	"describe": &DescribeConfig{},
	"ft":       &FTConfig{},
	"ee":       &EEConfig{},
	"fwhm":     &FWHMConfig{},
	"plot":     &PlotConfig{},
}

// Mode represents the interface used by the main binary when interacting with
// a given command line mode.
type Mode interface {
	// ReadConfig reads a mode-specific config file and stores its contents
	// within the Mode. Command line flags of the form --Name=value override
	// the file. fname may be "", in which case only the flags are read.
	ReadConfig(fname string, flags []string) error
	// ExampleConfig returns the text of an example config file of this mode.
	ExampleConfig() string
	// Run executes the mode. It takes an initialized TelescopeConfig and a
	// slice of lines representing the contents of stdin. It will return a
	// slice of lines that should be written to stdout along with an error if
	// one occurs.
	Run(tConfig *TelescopeConfig, stdin []string) ([]string, error)
}

// TelescopeConfig is the config file used by every mode. It describes the
// telescope whose aperture is being modeled.
type TelescopeConfig struct {
	version string

	diameter, obstructionRatio       float64
	conjugationHeight, focalDistance float64
	fieldOfViewInArcsec              float64
	fieldOfViewInArcmin              float64
	arcsecSet, arcminSet             bool
	resolution                       int64
	pupilFile, response              string
}

var _ Mode = &TelescopeConfig{}

// ReadConfig reads a config file and returns an error, if applicable.
func (config *TelescopeConfig) ReadConfig(fname string, flags []string) error {
	vars := parse.NewConfigVars("telescope")
	vars.String(&config.version, "Version", version.SourceVersion)
	vars.Float(&config.diameter, "Diameter", -1)
	vars.Float(&config.obstructionRatio, "ObstructionRatio", 0)
	vars.Float(&config.conjugationHeight, "ConjugationHeight", 0)
	vars.Float(&config.focalDistance, "FocalDistance", 0)
	vars.Float(&config.fieldOfViewInArcsec, "FieldOfViewInArcsec", 0)
	vars.Float(&config.fieldOfViewInArcmin, "FieldOfViewInArcmin", 0)
	vars.Int(&config.resolution, "Resolution", 0)
	vars.String(&config.pupilFile, "PupilFile", "")
	vars.String(&config.response, "Response", "airy")

	if fname != "" {
		if err := parse.ReadConfig(fname, vars); err != nil { return err }
	}
	if err := parse.ReadFlags(flags, vars); err != nil { return err }

	config.arcsecSet = vars.IsSet("FieldOfViewInArcsec")
	config.arcminSet = vars.IsSet("FieldOfViewInArcmin")

	if !vars.IsSet("Diameter") {
		return fmt.Errorf("The 'Diameter' variable isn't set.")
	}
	if err := version.Check(config.version); err != nil { return err }

	switch config.response {
	case "airy":
	default:
		return fmt.Errorf("The 'Response' variable is set to '%s', "+
			"which I don't recognize.", config.response)
	}

	return nil
}

// Config returns the aperture.Config described by the config file.
func (config *TelescopeConfig) Config() aperture.Config {
	c := aperture.Config{
		ObstructionRatio:  config.obstructionRatio,
		ConjugationHeight: config.conjugationHeight,
		FocalDistance:     config.focalDistance,
		Resolution:        int(config.resolution),
	}
	if config.arcsecSet {
		c.FieldOfViewInArcsec = aperture.Float(config.fieldOfViewInArcsec)
	}
	if config.arcminSet {
		c.FieldOfViewInArcmin = aperture.Float(config.fieldOfViewInArcmin)
	}
	return c
}

// Aperture constructs the telescope's aperture, including any pupil mask
// read from PupilFile.
func (config *TelescopeConfig) Aperture() (*aperture.Aperture, error) {
	ap, err := aperture.New(config.diameter, config.Config())
	if err != nil { return nil, err }

	if config.pupilFile != "" {
		mask, err := readPupil(config.pupilFile)
		if err != nil { return nil, err }
		ap.SetPupil(mask)
	}

	if logging.Mode >= logging.Debug { log.Printf("Aperture: %s", ap) }
	return ap, nil
}

// Response returns the optical response of an aperture built from this config.
func (config *TelescopeConfig) Response(
	ap *aperture.Aperture,
) aperture.OpticalResponse {
	switch config.response {
	case "airy":
		return aperture.NewAiry(ap)
	}
	panic("Impossible")
}

// readPupil reads a pupil mask written as a square grid of whitespace
// separated values.
func readPupil(fname string) (*mat.Dense, error) {
	cols, err := catalog.ReadFile(fname, nil)
	if err != nil {
		return nil, fmt.Errorf("I couldn't read the PupilFile %s: %w",
			fname, err)
	}
	if len(cols) == 0 || len(cols[0]) != len(cols) {
		return nil, fmt.Errorf("The PupilFile %s doesn't contain a square "+
			"grid of values.", fname)
	}

	n := len(cols)
	mask := mat.NewDense(n, n, nil)
	for j := range cols {
		for i := range cols[j] {
			if math.IsNaN(cols[j][i]) || cols[j][i] < 0 {
				return nil, fmt.Errorf("Row %d, column %d of the PupilFile "+
					"%s is %g.", i, j, fname, cols[j][i])
			}
			mask.Set(i, j, cols[j][i])
		}
	}
	return mask, nil
}

// ExampleConfig returns an example configuration file.
func (config *TelescopeConfig) ExampleConfig() string {
	return fmt.Sprintf(`[telescope]
# Target version of telescope. This option merely allows telescope to notice
# when its source and configuration files are not from the same version.
#
# This variable defaults to the source version if not included.
Version = %s

#####################
## Required Fields ##
#####################

# Diameter of the primary mirror in meters.
Diameter = 8.2

#####################
## Optional Fields ##
#####################

# Ratio of the central obstruction's diameter to the primary's. Must be in
# [0, 1). Defaults to 0.
ObstructionRatio = 0.14

# Height in meters at which the pupil is conjugated and the distance to the
# focus. A FocalDistance of 0 is treated as infinitely far away.
ConjugationHeight = 0
FocalDistance = 0

# Angular diameter of the field of view. Set at most one of these.
FieldOfViewInArcsec = 60
# FieldOfViewInArcmin = 1

# Width of the pupil raster in pixels. If 0, no raster is made.
Resolution = 128

# Optional text file containing a square grid of pixel transmissions which
# replaces the computed pupil raster.
# PupilFile = pupil.txt

# The optical response used to compute PSFs and OTFs.
# Supported Responses: airy
Response = airy`, version.SourceVersion)
}

// Run is a dummy method which allows TelescopeConfig to conform to the Mode
// interface for testing purposes.
func (config *TelescopeConfig) Run(
	tConfig *TelescopeConfig, stdin []string,
) ([]string, error) {
	panic("TelescopeConfig.Run() should never be executed.")
}

// readModeConfig is shared by the modes: it reads fname (if any) and then
// flags into vars.
func readModeConfig(fname string, flags []string, vars *parse.ConfigVars) error {
	if fname != "" {
		if err := parse.ReadConfig(fname, vars); err != nil { return err }
	}
	return parse.ReadFlags(flags, vars)
}

// banner logs the name of the mode being run.
func banner(mode string) {
	if logging.Mode == logging.Nil { return }
	line := "################"
	for i := 0; i < len(mode); i++ { line += "#" }
	log.Printf("\n%s\n## telescope %s ##\n%s", line, mode, line)
}
