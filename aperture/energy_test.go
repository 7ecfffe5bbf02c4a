package aperture

import (
	"errors"
	"math"
	"testing"

	"github.com/phil-mansfield/telescope/math/calc"
)

// gaussian is a synthetic response with PSF(f) = exp(-f^2).
type gaussian struct{}

func (gaussian) PSF(f float64) float64 { return math.Exp(-f * f) }
func (gaussian) OTF(r float64) float64 { return math.Pi * math.Exp(-math.Pi*math.Pi*r*r) }
func (gaussian) FullWidthHalfMax() (float64, error) {
	return 2 * math.Sqrt(math.Ln2), nil
}

func rayleighEnergy(d, a float64) float64 {
	v := math.Pi * d * a
	j0, j1 := math.J0(v), math.J1(v)
	return 1 - j0*j0 - j1*j1
}

func TestGaussianEntrappedEnergy(t *testing.T) {
	ap := mustNew(t, 4, Config{})
	var g gaussian

	for _, h := range []float64{0, 0.25, 0.5, 1, 2} {
		circle := math.Pi * (1 - math.Exp(-h*h))
		square := math.Pi * math.Erf(h) * math.Erf(h)

		tests := []struct {
			trap   Trap
			domain Domain
			exp    float64
		}{
			{Circle, PSF, circle},
			{Square, PSF, square},
			{Circle, OTF, circle},
			{Square, OTF, square},
		}

		for _, test := range tests {
			val, err := ap.EntrappedEnergy(g, h, test.trap, test.domain)
			if err != nil {
				t.Errorf("%s %s h = %g) Unexpected error: %s",
					test.domain, test.trap, h, err.Error())
				continue
			}
			if math.Abs(val-test.exp) > 1e-6 {
				t.Errorf("%s %s h = %g) Entrapped energy %.9g, expected %.9g.",
					test.domain, test.trap, h, val, test.exp)
			}
		}
	}
}

func TestEntrappedEnergyMonotonic(t *testing.T) {
	ap := mustNew(t, 4, Config{})
	responses := []OpticalResponse{gaussian{}, NewAiry(ap)}

	for i, resp := range responses {
		prev := 0.0
		for h := 0.0; h <= 3; h += 0.1 {
			val, err := ap.EntrappedEnergy(resp, h, Circle, PSF)
			if err != nil {
				t.Errorf("%d) Unexpected error: %s", i, err.Error())
				break
			}
			if val < prev-1e-9 {
				t.Errorf("%d) Entrapped energy fell from %g to %g at h = %g.",
					i, prev, val, h)
			}
			prev = val
		}
	}
}

func TestAiryEncircledEnergy(t *testing.T) {
	d := 1.0
	airy := NewAiry(mustNew(t, d, Config{}))
	for _, a := range []float64{0.25, 0.61, 1, 2.5, 10} {
		val, err := airy.Aperture().EntrappedEnergy(airy, a, Circle, PSF)
		if err != nil {
			t.Errorf("a = %g) Unexpected error: %s", a, err.Error())
			continue
		}
		if exp := rayleighEnergy(d, a); math.Abs(val-exp) > 1e-6 {
			t.Errorf("a = %g) Encircled energy %.9g, expected %.9g.", a, val, exp)
		}
	}
}

func TestAiryDomainsAgree(t *testing.T) {
	d := 1.0
	for _, e := range []float64{0, 0.4} {
		ap := mustNew(t, d, Config{ObstructionRatio: e})
		airy := NewAiry(ap)

		for _, trap := range []Trap{Circle, Square} {
			for _, h := range []float64{0.5, 1.2} {
				psf, err := ap.EntrappedEnergy(airy, h, trap, PSF)
				if err != nil {
					t.Errorf("Unexpected PSF-domain error: %s", err.Error())
					continue
				}
				otf, err := ap.EntrappedEnergy(airy, h, trap, OTF)
				if err != nil {
					t.Errorf("Unexpected OTF-domain error: %s", err.Error())
					continue
				}
				if math.Abs(psf-otf) > 1e-5 {
					t.Errorf("e = %g, %s h = %g) PSF-domain energy %.9g but "+
						"OTF-domain energy %.9g.", e, trap, h, psf, otf)
				}
				if psf < 0 || psf > 1 {
					t.Errorf("e = %g, %s h = %g) Energy %g outside [0, 1].",
						e, trap, h, psf)
				}
			}
		}
	}
}

func TestSquareContainsCircle(t *testing.T) {
	ap := mustNew(t, 1, Config{ObstructionRatio: 0.2})
	airy := NewAiry(ap)
	h := 0.8
	circle, err1 := ap.EntrappedEnergy(airy, h, Circle, PSF)
	square, err2 := ap.EntrappedEnergy(airy, h, Square, PSF)
	if err1 != nil || err2 != nil {
		t.Fatalf("Unexpected errors: %v, %v", err1, err2)
	}
	outer, err := ap.EntrappedEnergy(airy, h*math.Sqrt2, Circle, PSF)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if !(circle < square && square < outer) {
		t.Errorf("Expected inscribed circle %g < square %g < circumscribed "+
			"circle %g.", circle, square, outer)
	}
}

func TestEntrappedEnergyInvalidArguments(t *testing.T) {
	ap := mustNew(t, 8, Config{})
	airy := NewAiry(ap)

	if _, err := ParseTrap("triangle"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for a triangle trap, got %v.", err)
	}
	if _, err := ParseDomain("mtf"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for an mtf domain, got %v.", err)
	}

	tests := []struct {
		h      float64
		trap   Trap
		domain Domain
	}{
		{1, Trap(7), PSF},
		{1, Trap(-1), OTF},
		{1, Circle, Domain(3)},
		{-1, Circle, PSF},
		{math.NaN(), Square, PSF},
		{math.Inf(1), Square, OTF},
	}
	for i, test := range tests {
		_, err := ap.EntrappedEnergy(airy, test.h, test.trap, test.domain)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%d) Expected ErrInvalidArgument, got %v.", i, err)
		}
	}
}

func TestParseTrapDomain(t *testing.T) {
	traps := map[string]Trap{"circle": Circle, "Square": Square, " circle ": Circle}
	for s, exp := range traps {
		if trap, err := ParseTrap(s); err != nil || trap != exp {
			t.Errorf("ParseTrap('%s') = %s, %v.", s, trap, err)
		}
	}
	domains := map[string]Domain{"psf": PSF, "OTF": OTF}
	for s, exp := range domains {
		if domain, err := ParseDomain(s); err != nil || domain != exp {
			t.Errorf("ParseDomain('%s') = %s, %v.", s, domain, err)
		}
	}
	if Circle.String() != "circle" || OTF.String() != "otf" {
		t.Errorf("Unexpected names %s and %s.", Circle, OTF)
	}
}

func TestEntrappedEnergyNonConvergence(t *testing.T) {
	ap := mustNew(t, 8, Config{ObstructionRatio: 0.3})
	airy := NewAiry(ap)
	_, err := ap.EntrappedEnergy(airy, 5, Circle, PSF,
		calc.MaxPanels(1), calc.Tolerance(0, 1e-15))
	if !errors.Is(err, calc.ErrNonConvergence) {
		t.Errorf("Expected ErrNonConvergence, got %v.", err)
	}

	_, err = ap.EntrappedEnergy(airy, 5, Square, OTF,
		calc.MaxPanels(1), calc.Tolerance(0, 1e-15))
	if !errors.Is(err, calc.ErrNonConvergence) {
		t.Errorf("Expected ErrNonConvergence, got %v.", err)
	}
}

func TestEnergyCurve(t *testing.T) {
	d := 1.0
	ap := mustNew(t, d, Config{})
	airy := NewAiry(ap)

	radii := make([]float64, 60)
	for i := range radii { radii[i] = 0.05 * float64(i+1) }
	curve, err := ap.EnergyCurve(airy, radii, Circle, PSF)
	if err != nil {
		t.Fatalf("EnergyCurve returned error: %s", err.Error())
	}

	for i, r := range curve.Radii() {
		if exp := rayleighEnergy(d, r); math.Abs(curve.Energies()[i]-exp) > 1e-6 {
			t.Errorf("Tabulated energy %g at %g, expected %g.",
				curve.Energies()[i], r, exp)
		}
	}

	if val, err := curve.Energy(0.52); err != nil ||
		math.Abs(val-rayleighEnergy(d, 0.52)) > 1e-3 {
		t.Errorf("Interpolated energy at 0.52 is %g (%v), expected %g.",
			val, err, rayleighEnergy(d, 0.52))
	}

	half := func(a float64) float64 { return rayleighEnergy(d, a) - 0.5 }
	exp, _ := calc.FindRoot(half, 0.1, 1, 1e-12)
	if r, err := curve.RadiusAt(0.5); err != nil || math.Abs(r-exp) > 2e-3 {
		t.Errorf("Half-energy radius %g (%v), expected %g.", r, err, exp)
	}

	if _, err := curve.RadiusAt(1.5); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for unreachable energy, got %v.", err)
	}
	if _, err := curve.Energy(10); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument outside the table, got %v.", err)
	}

	bad := [][]float64{{0.1, 0.2}, {0.1, 0.3, 0.2}, {0.1, 0.1, 0.2}}
	for i, radii := range bad {
		if _, err := ap.EnergyCurve(airy, radii, Circle, PSF); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%d) Expected ErrInvalidArgument, got %v.", i, err)
		}
	}
}

func BenchmarkEncircledEnergyPSF(b *testing.B) {
	ap, _ := New(8, Config{ObstructionRatio: 0.14})
	airy := NewAiry(ap)
	for i := 0; i < b.N; i++ {
		ap.EntrappedEnergy(airy, 2.0/8, Circle, PSF)
	}
}

func BenchmarkEnsquaredEnergyOTF(b *testing.B) {
	ap, _ := New(8, Config{ObstructionRatio: 0.14})
	airy := NewAiry(ap)
	for i := 0; i < b.N; i++ {
		ap.EntrappedEnergy(airy, 2.0/8, Square, OTF)
	}
}
