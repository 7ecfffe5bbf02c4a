/*package telescope models the aperture of a telescope and computes the
diffraction-limited response of its pupil.*/
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/phil-mansfield/telescope/cmd"
	"github.com/phil-mansfield/telescope/logging"
	"github.com/phil-mansfield/telescope/version"
)

var helpStrings = map[string]string{
	"describe": `Prints a summary of the telescope: its geometry, the FWHM of its PSF, the
diameter of its beam at a set of heights and the radii containing given
fractions of its light. Does not read stdin.`,
	"ft": `Reads spatial frequencies from stdin and prints the normalized Fourier
transform of the pupil at each of them. With Sampled = true, stdin is ignored
and an FFT of the pupil raster is printed instead.`,
	"ee": `Reads trap half-sizes from stdin and prints the entrapped energy of each
trap at each of them.`,
	"fwhm": `Prints the full width at half maximum of the PSF. Does not read stdin.`,
	"plot": `Draws entrapped energy curves to an image file. Does not read stdin.`,

	"config":          new(cmd.TelescopeConfig).ExampleConfig(),
	"describe.config": cmd.ModeNames["describe"].ExampleConfig(),
	"ft.config":       cmd.ModeNames["ft"].ExampleConfig(),
	"ee.config":       cmd.ModeNames["ee"].ExampleConfig(),
	"fwhm.config":     cmd.ModeNames["fwhm"].ExampleConfig(),
	"plot.config":     cmd.ModeNames["plot"].ExampleConfig(),
}

var modeDescriptions = `My help modes are:
telescope help
telescope help [ describe | ft | ee | fwhm | plot ]
telescope help [ config | describe.config | ft.config | ee.config |
                 fwhm.config | plot.config ]

My analysis modes are:
telescope describe [flags] ____.config [____.describe.config]
telescope ft       [flags] ____.config [____.ft.config]
telescope ee       [flags] ____.config [____.ee.config]
telescope fwhm     [flags] ____.config [____.fwhm.config]
telescope plot     [flags] ____.config [____.plot.config]

Flags take the form --Name=value and override variables in the mode's config
file. The telescope config file may instead be given by $TELESCOPE_CONFIG.
Setting $TELESCOPE_LOG to performance or debug turns on logging.`

func main() {
	args := os.Args
	if len(args) <= 1 {
		fmt.Fprintf(
			os.Stderr, "I was not supplied with a mode.\nFor help, type "+
				"'./telescope help'.\n",
		)
		os.Exit(1)
	}

	switch args[1] {
	case "help":
		switch len(args) - 2 {
		case 0:
			fmt.Println(modeDescriptions)
		case 1:
			text, ok := helpStrings[args[2]]
			if !ok {
				fmt.Printf("I don't recognize the help target '%s'\n", args[2])
			} else {
				fmt.Println(text)
			}
		default:
			fmt.Println("The help mode can only take a single argument.")
		}
		os.Exit(0)
	case "version":
		fmt.Printf("telescope version %s\n", version.SourceVersion)
		os.Exit(0)
	}

	mode, ok := cmd.ModeNames[args[1]]
	if !ok {
		fmt.Fprintf(
			os.Stderr, "You passed me the mode '%s', which I don't "+
				"recognize.\nFor help, type './telescope help'\n", args[1],
		)
		os.Exit(1)
	}

	flag, err := logging.ParseFlag(os.Getenv("TELESCOPE_LOG"))
	if err != nil { log.Fatalf("Error running mode %s:\n%s\n", args[1], err.Error()) }
	logging.Mode = flag

	var lines []string
	switch args[1] {
	case "ft", "ee":
		lines, err = stdinLines()
		if err != nil { log.Fatalf("Error running mode %s:\n%s\n", args[1], err.Error()) }
	}

	tConfig, err := getTelescopeConfig(args)
	if err != nil { log.Fatalf("Error running mode %s:\n%s\n", args[1], err.Error()) }

	config, _ := getConfig(args)
	if err = mode.ReadConfig(config, getFlags(args)); err != nil {
		log.Fatalf("Error running mode %s:\n%s\n", args[1], err.Error())
	}

	out, err := mode.Run(tConfig, lines)
	if err != nil { log.Fatalf("Error running mode %s:\n%s\n", args[1], err.Error()) }

	for i := range out { fmt.Println(out[i]) }
}

// stdinLines reads stdin and splits it into lines.
func stdinLines() ([]string, error) {
	bs, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("Error reading stdin: %s.", err.Error())
	}
	lines := strings.Split(string(bs), "\n")
	if lines[len(lines)-1] == "" { lines = lines[:len(lines)-1] }
	return lines, nil
}

// getFlags returns the flag tokens from the command line arguments.
func getFlags(args []string) []string {
	return args[2 : len(args)-configNum(args)]
}

// getTelescopeConfig reads the telescope config file named on the command
// line or by $TELESCOPE_CONFIG.
func getTelescopeConfig(args []string) (*cmd.TelescopeConfig, error) {
	name := os.Getenv("TELESCOPE_CONFIG")
	if name != "" {
		if configNum(args) > 1 {
			return nil, fmt.Errorf("$TELESCOPE_CONFIG has been set, so you " +
				"may only pass a single config file as a parameter.")
		}
	} else {
		switch configNum(args) {
		case 0:
			return nil, fmt.Errorf("No config files provided in command " +
				"line arguments.")
		case 1:
			name = args[len(args)-1]
		case 2:
			name = args[len(args)-2]
		default:
			return nil, fmt.Errorf("Passed too many config files as arguments.")
		}
	}

	config := &cmd.TelescopeConfig{}
	if err := config.ReadConfig(name, nil); err != nil { return nil, err }
	return config, nil
}

// getConfig returns the name of the mode-specific config file from the command
// line arguments.
func getConfig(args []string) (string, bool) {
	if os.Getenv("TELESCOPE_CONFIG") != "" && configNum(args) == 1 {
		return args[len(args)-1], true
	} else if os.Getenv("TELESCOPE_CONFIG") == "" && configNum(args) == 2 {
		return args[len(args)-1], true
	}
	return "", false
}

// configNum returns the number of configuration files at the end of the
// argument list.
func configNum(args []string) int {
	num := 0
	for i := len(args) - 1; i >= 2; i-- {
		if !isConfig(args[i]) { break }
		num++
	}
	return num
}

// isConfig returns true if the given string is a config file name.
func isConfig(s string) bool {
	return strings.HasSuffix(s, ".config")
}
