/*package parse reads the config files which describe telescopes and the
modes run on them.

Config files have a single [header] line followed by lines of the form
"Name = value". Names are case-insensitive and '#' starts a comment. List
values are comma-separated.
*/
package parse

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

/////////////////////
// Conversion Code //
/////////////////////

type varType int

const (
	intVar varType = iota
	floatVar
	floatsVar
	stringVar
	stringsVar
	boolVar
)

func (v varType) String() string {
	switch v {
	case intVar: return "int"
	case floatVar: return "float"
	case floatsVar: return "float list"
	case stringVar: return "string"
	case stringsVar: return "string list"
	case boolVar: return "bool"
	}
	panic("Impossible")
}

type conversionFunc func(string) bool

// ConfigVars is a registry of the variables a config file may set. Each
// registered variable is written through its pointer when the file is read.
type ConfigVars struct {
	name            string
	varNames        []string
	varTypes        []varType
	conversionFuncs []conversionFunc
	set             []bool
}

func intConv(ptr *int64) conversionFunc {
	return func(s string) bool {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil { return false }
		*ptr = i
		return true
	}
}

func floatConv(ptr *float64) conversionFunc {
	return func(s string) bool {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil { return false }
		*ptr = f
		return true
	}
}

func stringConv(ptr *string) conversionFunc {
	return func(s string) bool {
		*ptr = strings.Trim(s, " \t\"")
		return true
	}
}

func boolConv(ptr *bool) conversionFunc {
	return func(s string) bool {
		b, err := strconv.ParseBool(s)
		if err != nil { return false }
		*ptr = b
		return true
	}
}

func strToList(a string) []string {
	if strings.TrimSpace(a) == "" { return []string{} }
	strs := strings.Split(a, ",")
	for i := range strs {
		strs[i] = strings.Trim(strs[i], " \t")
	}
	return strs
}

func floatsConv(ptr *[]float64) conversionFunc {
	return func(s string) bool {
		toks := strToList(s)
		out := make([]float64, len(toks))
		for j := range toks {
			f, err := strconv.ParseFloat(toks[j], 64)
			if err != nil { return false }
			out[j] = f
		}
		*ptr = out
		return true
	}
}

func stringsConv(ptr *[]string) conversionFunc {
	return func(s string) bool {
		*ptr = strToList(s)
		return true
	}
}

// NewConfigVars creates a registry for config files with the header [name].
func NewConfigVars(name string) *ConfigVars {
	return &ConfigVars{name: name}
}

func (vars *ConfigVars) add(name string, t varType, conv conversionFunc) {
	name = strings.ToLower(name)
	for i := range vars.varNames {
		if vars.varNames[i] == name {
			panic(fmt.Sprintf("Variable '%s' registered twice.", name))
		}
	}
	vars.varNames = append(vars.varNames, name)
	vars.varTypes = append(vars.varTypes, t)
	vars.conversionFuncs = append(vars.conversionFuncs, conv)
	vars.set = append(vars.set, false)
}

// Int registers an integer variable with a default value.
func (vars *ConfigVars) Int(ptr *int64, name string, value int64) {
	*ptr = value
	vars.add(name, intVar, intConv(ptr))
}

// Float registers a float variable with a default value.
func (vars *ConfigVars) Float(ptr *float64, name string, value float64) {
	*ptr = value
	vars.add(name, floatVar, floatConv(ptr))
}

// String registers a string variable with a default value.
func (vars *ConfigVars) String(ptr *string, name string, value string) {
	*ptr = value
	vars.add(name, stringVar, stringConv(ptr))
}

// Bool registers a boolean variable with a default value.
func (vars *ConfigVars) Bool(ptr *bool, name string, value bool) {
	*ptr = value
	vars.add(name, boolVar, boolConv(ptr))
}

// Floats registers a float list variable with a default value.
func (vars *ConfigVars) Floats(ptr *[]float64, name string, value []float64) {
	*ptr = value
	vars.add(name, floatsVar, floatsConv(ptr))
}

// Strings registers a string list variable with a default value.
func (vars *ConfigVars) Strings(ptr *[]string, name string, value []string) {
	*ptr = value
	vars.add(name, stringsVar, stringsConv(ptr))
}

// IsSet returns true if the most recently read config file assigned a value
// to the named variable. Variables left at their defaults are not set.
func (vars *ConfigVars) IsSet(name string) bool {
	name = strings.ToLower(name)
	for i := range vars.varNames {
		if vars.varNames[i] == name { return vars.set[i] }
	}
	panic(fmt.Sprintf("Variable '%s' was never registered.", name))
}

//////////////////
// Parsing Code //
//////////////////

// ReadConfig reads the config file fname into vars.
func ReadConfig(fname string, vars *ConfigVars) error {
	bs, err := os.ReadFile(fname)
	if err != nil { return err }
	return ParseConfig(string(bs), fname, vars)
}

// ParseConfig parses the text of a config file into vars. fname is only used
// in error messages.
func ParseConfig(text, fname string, vars *ConfigVars) error {
	for i := range vars.set { vars.set[i] = false }

	lines, lineNums := removeComments(strings.Split(text, "\n"))
	for i := range lineNums { lineNums[i]++ }

	if len(lines) == 0 || !strings.EqualFold(lines[0], fmt.Sprintf("[%s]", vars.name)) {
		return fmt.Errorf(
			"I expected the config file %s to have the header "+
				"[%s] at the top, but didn't find it.", fname, vars.name,
		)
	}
	lines, lineNums = lines[1:], lineNums[1:]

	names, vals, errLine := associationList(lines)
	if errLine != -1 {
		return fmt.Errorf(
			"I could not parse line %d of the config file %s because it "+
				"did not take the form of a variable assignment.",
			lineNums[errLine], fname,
		)
	}

	if errLine1, errLine2 := checkDuplicateNames(names); errLine1 != -1 {
		return fmt.Errorf(
			"Lines %d and %d of the config file %s both assign a value to "+
				"the variable '%s'.", lineNums[errLine1], lineNums[errLine2],
			fname, names[errLine1],
		)
	}

	for i := range names {
		j := vars.index(names[i])
		if j == -1 {
			return fmt.Errorf(
				"Line %d of the config file %s assigns a value to the "+
					"variable '%s', but config files of type %s don't have "+
					"that variable.", lineNums[i], fname, names[i], vars.name,
			)
		}

		if !vars.conversionFuncs[j](vals[i]) {
			typeName := vars.varTypes[j].String()
			a := "a"
			if typeName[0] == 'i' { a = "an" }
			return fmt.Errorf(
				"I could not parse line %d of the config file %s because "+
					"'%s' expects values of type %s and '%s' cannot be "+
					"converted to %s %s.", lineNums[i], fname, names[i],
				typeName, vals[i], a, typeName,
			)
		}
		vars.set[j] = true
	}

	return nil
}

// ReadFlags reads command line flags of the form --Name=value into vars.
// Flags are applied after any config file, so they override it.
func ReadFlags(flags []string, vars *ConfigVars) error {
	for _, flag := range flags {
		eq := strings.Index(flag, "=")
		if !strings.HasPrefix(flag, "--") || eq == -1 {
			return fmt.Errorf(
				"I could not parse the flag '%s' because it did not take "+
					"the form --Name=value.", flag,
			)
		}

		name := strings.ToLower(flag[2:eq])
		j := vars.index(name)
		if j == -1 {
			return fmt.Errorf(
				"The flag '%s' sets the variable '%s', but config files of "+
					"type %s don't have that variable.", flag, name, vars.name,
			)
		}
		if !vars.conversionFuncs[j](flag[eq+1:]) {
			return fmt.Errorf(
				"I could not parse the flag '%s' because '%s' expects values "+
					"of type %s.", flag, name, vars.varTypes[j],
			)
		}
		vars.set[j] = true
	}
	return nil
}

func (vars *ConfigVars) index(name string) int {
	for j := range vars.varNames {
		if vars.varNames[j] == name { return j }
	}
	return -1
}

func removeComments(lines []string) ([]string, []int) {
	out, lineNums := []string{}, []int{}
	for i := range lines {
		line := lines[i]
		if comment := strings.Index(line, "#"); comment != -1 {
			line = line[:comment]
		}
		line = strings.Trim(line, " \t\r")
		if len(line) == 0 { continue }
		out = append(out, line)
		lineNums = append(lineNums, i)
	}

	return out, lineNums
}

func associationList(lines []string) ([]string, []string, int) {
	names, vals := []string{}, []string{}
	for i := range lines {
		eq := strings.Index(lines[i], "=")
		if eq == -1 { return nil, nil, i }
		name := strings.ToLower(strings.Trim(lines[i][:eq], " \t"))
		if len(name) == 0 { return nil, nil, i }
		names = append(names, name)
		vals = append(vals, strings.Trim(lines[i][eq+1:], " \t"))
	}
	return names, vals, -1
}

func checkDuplicateNames(names []string) (int, int) {
	for i := range names {
		for j := i + 1; j < len(names); j++ {
			if names[i] == names[j] { return i, j }
		}
	}
	return -1, -1
}
