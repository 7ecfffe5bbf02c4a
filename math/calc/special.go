package calc

import (
	"math"
)

// smallArg is the magnitude below which Sinc and Jinc switch to their Taylor
// series. The first omitted term is O(x^4) < 1e-16 there.
const smallArg = 1e-4

// Sinc returns sin(x)/x, with Sinc(0) = 1.
func Sinc(x float64) float64 {
	if math.Abs(x) < smallArg { return 1 - x*x/6 }
	return math.Sin(x) / x
}

// Jinc returns 2*J1(x)/x, the circular analogue of Sinc. Jinc(0) = 1.
func Jinc(x float64) float64 {
	if math.Abs(x) < smallArg { return 1 - x*x/8 }
	return 2 * math.J1(x) / x
}
