package aperture

import (
	"math"
	"sync"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/phil-mansfield/telescope/geom"
)

func TestPupilWithoutResolution(t *testing.T) {
	ap := mustNew(t, 8, Config{ObstructionRatio: 0.3})
	if p, ok := ap.Pupil(); ok || p != nil {
		t.Errorf("Expected no pupil without a resolution.")
	}
	if m, ok := ap.PupilLogical(); ok || m != nil {
		t.Errorf("Expected no logical pupil without a resolution.")
	}
}

func TestPupilFillFraction(t *testing.T) {
	tests := []struct {
		res int
		e   float64
	}{
		{100, 0.3},
		{100, 0},
		{128, 0.14},
		{257, 0.5},
	}

	for i, test := range tests {
		ap := mustNew(t, 8, Config{Resolution: test.res, ObstructionRatio: test.e})
		p, ok := ap.Pupil()
		if !ok {
			t.Errorf("%d) No pupil for resolution %d.", i, test.res)
			continue
		}
		if r, c := p.Dims(); r != test.res || c != test.res {
			t.Errorf("%d) Pupil is %d x %d, expected %d x %d.",
				i, r, c, test.res, test.res)
		}

		frac := geom.Sum(p) / float64(test.res*test.res)
		exp := math.Pi / 4 * (1 - test.e*test.e)
		if math.Abs(frac-exp)/exp > 0.02 {
			t.Errorf("%d) Pupil fill fraction %g, expected ~%g.", i, frac, exp)
		}
	}
}

func TestPupilHole(t *testing.T) {
	res, e := 100, 0.3
	ap := mustNew(t, 8, Config{Resolution: res, ObstructionRatio: e})
	p, _ := ap.Pupil()

	hole := int(math.Round(float64(res) * e))
	exp := geom.Disk(res, res)
	exp.Sub(exp, geom.Disk(hole, res))
	if !mat.Equal(p, exp) {
		t.Errorf("Pupil isn't a %d pixel disk minus a %d pixel disk.", res, hole)
	}

	mask, ok := ap.PupilLogical()
	if !ok {
		t.Fatalf("No logical pupil.")
	}
	if mask[res/2][res/2] {
		t.Errorf("Center of obstructed pupil is set.")
	}
	if !mask[res/2][res/2+hole/2+2] {
		t.Errorf("Pupil just outside the obstruction isn't set.")
	}
}

func TestSetPupil(t *testing.T) {
	ap := mustNew(t, 8, Config{Resolution: 32, ObstructionRatio: 0.2})
	if ap.PupilState() != PupilComputed {
		t.Errorf("New aperture is in state %s.", ap.PupilState())
	}

	custom := mat.NewDense(4, 4, []float64{
		0, 0.5, 0.5, 0,
		0.5, 1, 1, 0.5,
		0.5, 1, 1, 0.5,
		0, 0.5, 0.5, 0,
	})
	ap.SetPupil(custom)
	if ap.PupilState() != PupilOverridden {
		t.Errorf("SetPupil left the aperture in state %s.", ap.PupilState())
	}

	p, ok := ap.Pupil()
	if !ok || !mat.Equal(p, custom) {
		t.Errorf("Pupil doesn't return the override.")
	}

	// Neither the caller's matrix nor the returned copy aliases the
	// override.
	custom.Set(0, 0, 7)
	p.Set(1, 1, 7)
	if p2, _ := ap.Pupil(); p2.At(0, 0) != 0 || p2.At(1, 1) != 1 {
		t.Errorf("Override was modified through an alias.")
	}

	mask, _ := ap.PupilLogical()
	if mask[0][0] || !mask[0][1] {
		t.Errorf("Logical override mask is wrong: %v", mask)
	}

	ap.ClearPupil()
	if ap.PupilState() != PupilComputed {
		t.Errorf("ClearPupil left the aperture in state %s.", ap.PupilState())
	}
	if p, _ := ap.Pupil(); p.RawMatrix().Rows != 32 {
		t.Errorf("Cleared pupil isn't recomputed.")
	}

	ap.SetPupil(custom)
	ap.SetPupil(nil)
	if ap.PupilState() != PupilComputed {
		t.Errorf("SetPupil(nil) didn't clear the override.")
	}
}

func TestPupilOverrideWithoutResolution(t *testing.T) {
	ap := mustNew(t, 8, Config{})
	ap.SetPupil(geom.Disk(16, 16))
	if _, ok := ap.Pupil(); !ok {
		t.Errorf("Override isn't returned when there's no resolution.")
	}
}

func TestPupilConcurrentAccess(t *testing.T) {
	ap := mustNew(t, 8, Config{Resolution: 16})
	wg := sync.WaitGroup{}
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			ap.SetPupil(geom.Disk(8, 16))
		}()
		go func() {
			defer wg.Done()
			if _, ok := ap.Pupil(); !ok {
				t.Errorf("Pupil unavailable during concurrent access.")
			}
		}()
	}
	wg.Wait()
}
