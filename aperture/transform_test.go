package aperture

import (
	"errors"
	"math"
	"testing"

	"github.com/phil-mansfield/telescope/geom"
)

func TestFourierTransformNormalization(t *testing.T) {
	for _, e := range []float64{0, 0.14, 0.3, 0.7} {
		ap := mustNew(t, 8, Config{ObstructionRatio: e})
		if ft := ap.FourierTransform([]float64{0}); ft[0] != 1 {
			t.Errorf("FT(0) = %g for obstruction %g.", ft[0], e)
		}
	}
}

func TestFourierTransformEven(t *testing.T) {
	fs := []float64{1e-6, 0.01, 0.1, 0.33, 1, 4.2}
	neg := make([]float64, len(fs))
	for i := range fs { neg[i] = -fs[i] }

	for _, e := range []float64{0, 0.3} {
		ap := mustNew(t, 8, Config{ObstructionRatio: e})
		pos, mirrored := ap.FourierTransform(fs), ap.FourierTransform(neg)
		for i := range fs {
			if pos[i] != mirrored[i] {
				t.Errorf("FT(%g) = %g but FT(%g) = %g.",
					fs[i], pos[i], neg[i], mirrored[i])
			}
		}
	}
}

func TestFourierTransformAiry(t *testing.T) {
	// J1 at x = 1, 2, 3, 5.
	xs := []float64{1, 2, 3, 5}
	j1s := []float64{
		0.44005058574493355, 0.5767248077568736,
		0.3390589585259365, -0.3275791375914642,
	}

	d := 2.0
	ap := mustNew(t, d, Config{})
	fs := make([]float64, len(xs))
	for i := range xs { fs[i] = xs[i] / (math.Pi * d) }

	ft := ap.FourierTransform(fs)
	for i := range xs {
		exp := 2 * j1s[i] / xs[i]
		if math.Abs(ft[i]-exp) > 1e-9*math.Abs(exp) {
			t.Errorf("FT at x = %g is %.15g, expected %.15g.", xs[i], ft[i], exp)
		}
	}
}

func TestFourierTransformObstructed(t *testing.T) {
	d, e := 8.0, 0.3
	ap := mustNew(t, d, Config{ObstructionRatio: e})
	fs := []float64{0.01, 0.05, 0.2, 1}
	ft := ap.FourierTransform(fs)

	for i, f := range fs {
		x := math.Pi * d * f
		exp := (2*math.J1(x)/x - e*e*2*math.J1(e*x)/(e*x)) / (1 - e*e)
		if math.Abs(ft[i]-exp) > 1e-12 {
			t.Errorf("FT(%g) = %g, expected %g.", f, ft[i], exp)
		}
	}
}

func TestSampledTransform(t *testing.T) {
	d := 8.0
	for _, e := range []float64{0, 0.3} {
		ap := mustNew(t, d, Config{Resolution: 128, ObstructionRatio: e})
		fs, vals, err := ap.SampledTransform(8)
		if err != nil {
			t.Fatalf("SampledTransform returned error: %s", err.Error())
		}
		if vals[0] != 1 || fs[0] != 0 {
			t.Errorf("Sampled transform starts at (%g, %g).", fs[0], vals[0])
		}

		exp := ap.FourierTransform(fs)
		for k := range fs {
			if fs[k] > 2/d { break }
			if math.Abs(vals[k]-exp[k]) > 0.02 {
				t.Errorf("obstruction %g) Sampled FT(%g) = %g, expected %g.",
					e, fs[k], vals[k], exp[k])
			}
		}
	}
}

func TestSampledTransformOverride(t *testing.T) {
	d := 8.0
	ap := mustNew(t, d, Config{ObstructionRatio: 0.5})
	if _, _, err := ap.SampledTransform(4); !errors.Is(err, ErrNoPupil) {
		t.Errorf("Expected ErrNoPupil, got %v.", err)
	}
	if _, _, err := ap.SampledTransform(0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v.", err)
	}

	// A clear override transforms like an unobstructed aperture.
	ap.SetPupil(geom.Disk(128, 128))
	clear := mustNew(t, d, Config{})
	fs, vals, err := ap.SampledTransform(8)
	if err != nil {
		t.Fatalf("SampledTransform returned error: %s", err.Error())
	}
	exp := clear.FourierTransform(fs)
	for k := range fs {
		if fs[k] > 2/d { break }
		if math.Abs(vals[k]-exp[k]) > 0.02 {
			t.Errorf("Sampled FT(%g) = %g, expected %g.", fs[k], vals[k], exp[k])
		}
	}
}
