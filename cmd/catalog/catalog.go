/*package catalog reads and writes the whitespace-separated column text that
the telescope modes pass through stdin and stdout.*/
package catalog

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// CommentString returns a header line naming the columns written by
// FormatCols. order gives the output position of each named column and sizes
// gives the number of output columns each name spans.
func CommentString(names []string, order, sizes []int) string {
	tokens := []string{"# Column contents:"}
	n := 0
	for _, idx := range order {
		if idx >= len(names) { panic("Column ordering out of range.") }

		if sizes[idx] == 1 {
			tokens = append(tokens, fmt.Sprintf("%s(%d)", names[idx], n))
		} else {
			tokens = append(tokens, fmt.Sprintf("%s(%d-%d)",
				names[idx], n, n+sizes[idx]-1))
		}
		n += sizes[idx]
	}

	return strings.Join(tokens, " ")
}

// FormatCols formats columns as right-aligned text lines. order gives the
// output position of each column.
func FormatCols(cols [][]float64, order []int) []string {
	if len(cols) == 0 || len(cols[0]) == 0 { return []string{} }

	height := len(cols[0])
	formatted := make([][]string, len(cols))
	for i := range cols {
		if len(cols[i]) != height { panic("Columns of unequal height.") }
		formatted[i] = formatFloatCol(cols[i])
	}

	ordered := [][]string{}
	for _, idx := range order {
		if idx >= len(cols) { panic("Column ordering out of range.") }
		ordered = append(ordered, formatted[idx])
	}

	lines := make([]string, height)
	tokens := make([]string, len(ordered))
	for i := 0; i < height; i++ {
		for j := range ordered { tokens[j] = ordered[j][i] }
		lines[i] = strings.Join(tokens, " ")
	}

	return lines
}

func formatFloatCol(col []float64) []string {
	width := 0
	for i := range col {
		if n := len(fmt.Sprintf("%.8g", col[i])); n > width { width = n }
	}

	out := make([]string, len(col))
	for i := range col {
		out[i] = fmt.Sprintf("%*.8g", width, col[i])
	}
	return out
}

// ParseCols parses the specified columns out of a slice of text lines.
func ParseCols(lines []string, colIdxs []int) ([][]float64, error) {
	return Parse([]byte(strings.Join(lines, "\n")), colIdxs)
}

// Parse parses the specified columns in a byte block. Lines may have trailing
// comments starting with '#', and blank lines are skipped. If colIdxs is nil,
// every column is returned.
func Parse(data []byte, colIdxs []int) ([][]float64, error) {
	lines, nComm := split(data, '\n', '#')
	lines = uncomment(lines, '#', nComm)
	lines = trim(lines)
	return parse(lines, colIdxs)
}

// ReadFile parses the specified columns of a text file.
func ReadFile(fname string, colIdxs []int) ([][]float64, error) {
	data, err := os.ReadFile(fname)
	if err != nil { return nil, err }
	return Parse(data, colIdxs)
}

// split splits a byte slice at each separator. Slicing is used instead of
// allocation, and comment characters are counted in the same pass.
func split(data []byte, sep, comm byte) (lines [][]byte, nComm int) {
	n := 0
	for _, c := range data {
		if c == sep { n++ }
		if c == comm { nComm++ }
	}

	tokens := make([][]byte, n+1)
	for j := 0; j < n; j++ {
		idx := bytes.IndexByte(data, sep)
		tokens[j] = data[:idx]
		data = data[idx+1:]
	}
	tokens[n] = data

	return tokens, nComm
}

// uncomment removes comments in the form of "data # comment". Optimized for
// the common case where comments are rare and at the start of the file.
func uncomment(lines [][]byte, comm byte, nComm int) [][]byte {
	if nComm == 0 { return lines }

	for i, line := range lines {
		commentStart := bytes.IndexByte(line, comm)
		if commentStart == -1 { continue }

		lines[i] = line[:commentStart]
		nComm -= bytes.Count(line[commentStart:], []byte{comm})
		if nComm == 0 { return lines }
	}

	return lines
}

// trim removes blank lines.
func trim(lines [][]byte) [][]byte {
	j := 0
	for i := range lines {
		if len(bytes.TrimSpace(lines[i])) > 0 {
			lines[j] = lines[i]
			j++
		}
	}
	return lines[:j]
}

func parse(lines [][]byte, colIdxs []int) ([][]float64, error) {
	if len(lines) == 0 { return make([][]float64, len(colIdxs)), nil }

	width := len(bytes.Fields(lines[0]))
	if colIdxs == nil {
		colIdxs = make([]int, width)
		for i := range colIdxs { colIdxs[i] = i }
	}
	for _, idx := range colIdxs {
		if idx >= width {
			return nil, fmt.Errorf(
				"I need column %d, but the data only has %d columns.",
				idx, width,
			)
		}
	}

	cols := make([][]float64, len(colIdxs))
	for i := range cols { cols[i] = make([]float64, len(lines)) }

	var err error
	for i, line := range lines {
		words := bytes.Fields(line)
		if len(words) != width {
			return nil, fmt.Errorf(
				"Data (not file) line %d has %d columns, not %d.",
				i+1, len(words), width,
			)
		}

		for j, idx := range colIdxs {
			cols[j][i], err = strconv.ParseFloat(string(words[idx]), 64)
			if err != nil {
				return nil, fmt.Errorf(
					"Data (not file) line %d, column %d: %w", i+1, idx, err,
				)
			}
		}
	}

	return cols, nil
}
