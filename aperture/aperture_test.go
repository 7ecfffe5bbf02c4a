package aperture

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func mustNew(t *testing.T, diameter float64, config Config) *Aperture {
	ap, err := New(diameter, config)
	if err != nil {
		t.Fatalf("New(%g, %+v) returned error: %s", diameter, config, err.Error())
	}
	return ap
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		diameter float64
		config   Config
		valid    bool
	}{
		{8, Config{}, true},
		{8, Config{ObstructionRatio: 0.14}, true},
		{8, Config{ObstructionRatio: 0.99, Resolution: 64}, true},
		{8, Config{FieldOfViewInArcsec: Float(60)}, true},
		{8, Config{FieldOfViewInArcmin: Float(1)}, true},
		{8, Config{FocalDistance: 90, ConjugationHeight: -10}, true},
		{0, Config{}, false},
		{-1, Config{}, false},
		{math.NaN(), Config{}, false},
		{math.Inf(1), Config{}, false},
		{8, Config{ObstructionRatio: 1.2}, false},
		{8, Config{ObstructionRatio: 1}, false},
		{8, Config{ObstructionRatio: -0.1}, false},
		{8, Config{ObstructionRatio: math.NaN()}, false},
		{8, Config{FieldOfViewInArcsec: Float(60),
			FieldOfViewInArcmin: Float(1)}, false},
		{8, Config{FieldOfViewInArcsec: Float(-1)}, false},
		{8, Config{Resolution: -64}, false},
		{8, Config{FocalDistance: -1}, false},
	}

	for i, test := range tests {
		ap, err := New(test.diameter, test.config)
		if test.valid && err != nil {
			t.Errorf("%d) Expected valid aperture, got error: %s", i, err.Error())
		} else if !test.valid {
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("%d) Expected ErrInvalidParameter, got %v.", i, err)
			}
			if ap != nil {
				t.Errorf("%d) Got a non-nil aperture with an error.", i)
			}
		}
	}
}

func TestNewReportsEveryProblem(t *testing.T) {
	_, err := New(-1, Config{ObstructionRatio: 2, Resolution: -1})
	if err == nil {
		t.Fatalf("Expected an error.")
	}
	for _, word := range []string{"diameter", "obstruction", "resolution"} {
		if !strings.Contains(err.Error(), word) {
			t.Errorf("Error '%s' doesn't mention %s.", err.Error(), word)
		}
	}
}

func TestUnobstructedArea(t *testing.T) {
	for _, d := range []float64{0.1, 1, 8, 39} {
		ap := mustNew(t, d, Config{})
		if exp := math.Pi * (d / 2) * (d / 2); ap.Area() != exp {
			t.Errorf("Area of %gm aperture is %g, expected %g.", d, ap.Area(), exp)
		}
		if ap.Radius() != d/2 {
			t.Errorf("Radius of %gm aperture is %g.", d, ap.Radius())
		}
	}
}

func TestAreaDecreasesWithObstruction(t *testing.T) {
	prev := math.Inf(1)
	for e := 0.0; e < 1; e += 0.05 {
		ap := mustNew(t, 8, Config{ObstructionRatio: e})
		if ap.Area() >= prev {
			t.Errorf("Area %g at obstruction %g isn't below %g.", ap.Area(), e, prev)
		}
		if ap.Area() < 0 {
			t.Errorf("Negative area at obstruction %g.", e)
		}
		prev = ap.Area()
	}
}

func TestFieldOfView(t *testing.T) {
	tests := []struct {
		config Config
		units  Units
		exp    float64
	}{
		{Config{}, DefaultUnits, 0},
		{Config{FieldOfViewInArcsec: Float(1)}, DefaultUnits, math.Pi / 648000},
		{Config{FieldOfViewInArcmin: Float(2)}, DefaultUnits, 2 * math.Pi / 10800},
		{Config{FieldOfViewInArcsec: Float(3)}, Units{2, 5}, 6},
		{Config{FieldOfViewInArcmin: Float(3)}, Units{2, 5}, 15},
	}

	for i, test := range tests {
		ap, err := NewWithUnits(8, test.config, test.units)
		if err != nil {
			t.Errorf("%d) Unexpected error: %s", i, err.Error())
			continue
		}
		if math.Abs(ap.FieldOfView()-test.exp) > 1e-15 {
			t.Errorf("%d) Field of view %g, expected %g.", i, ap.FieldOfView(), test.exp)
		}
	}

	if _, err := NewWithUnits(8, Config{}, Units{}); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Expected zero units to be rejected, got %v.", err)
	}
}

func TestDiameterAt(t *testing.T) {
	for _, fov := range []float64{0, 30, 120, 3600} {
		ap := mustNew(t, 8, Config{FieldOfViewInArcsec: Float(fov)})
		if ap.DiameterAt(0) != 8 {
			t.Errorf("DiameterAt(0) = %g for a %g arcsec field.", ap.DiameterAt(0), fov)
		}

		hs := []float64{0, 1e3, 1e4}
		ds := ap.DiametersAt(hs)
		for j, h := range hs {
			exp := 8 + 2*h*math.Tan(ap.FieldOfView()/2)
			if math.Abs(ds[j]-exp) > 1e-12 {
				t.Errorf("DiametersAt(%g) = %g, expected %g.", h, ds[j], exp)
			}
		}
		if fov > 0 && !(ds[2] > ds[1] && ds[1] > ds[0]) {
			t.Errorf("Footprint doesn't grow with height for a %g arcsec field.", fov)
		}
	}
}

func TestDefaults(t *testing.T) {
	ap := mustNew(t, 8, Config{})
	if !math.IsInf(ap.FocalDistance(), 1) {
		t.Errorf("Default focal distance is %g, expected +Inf.", ap.FocalDistance())
	}
	if ap.ConjugationHeight() != 0 || ap.ObstructionRatio() != 0 ||
		ap.Resolution() != 0 || ap.FieldOfView() != 0 || ap.Diameter() != 8 {
		t.Errorf("Unexpected default geometry: %s", ap)
	}
}

func TestString(t *testing.T) {
	ap := mustNew(t, 8, Config{ObstructionRatio: 0.14})
	s := ap.String()
	if !strings.Contains(s, "8.00m") || !strings.Contains(s, "14.0%") {
		t.Errorf("Unexpected summary '%s'.", s)
	}
	if strings.Contains(s, "arcsec") || strings.Contains(s, "pixel") {
		t.Errorf("Summary '%s' mentions unset options.", s)
	}

	ap = mustNew(t, 8, Config{FieldOfViewInArcmin: Float(1), Resolution: 64})
	s = ap.String()
	if !strings.Contains(s, "60.00 arcsec") || !strings.Contains(s, "64 pixel") {
		t.Errorf("Unexpected summary '%s'.", s)
	}
}
