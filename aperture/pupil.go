package aperture

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/phil-mansfield/telescope/geom"
)

// PupilState says where Pupil gets its raster from.
type PupilState int

const (
	// PupilComputed pupils are rasterized from the resolution and
	// obstruction ratio every time they are requested.
	PupilComputed PupilState = iota
	// PupilOverridden pupils return the raster passed to SetPupil.
	PupilOverridden
)

func (s PupilState) String() string {
	switch s {
	case PupilComputed: return "computed"
	case PupilOverridden: return "overridden"
	}
	return "unknown"
}

// PupilState returns the current state of the pupil.
func (ap *Aperture) PupilState() PupilState {
	ap.mu.RLock()
	defer ap.mu.RUnlock()
	return ap.state
}

// Pupil returns the raster pupil. An overridden pupil is returned verbatim
// (as a copy). Otherwise a Resolution x Resolution annulus is rasterized, with
// a hole round(Resolution*ObstructionRatio) pixels across. The second return
// value is false if there is neither an override nor a resolution.
func (ap *Aperture) Pupil() (*mat.Dense, bool) {
	ap.mu.RLock()
	defer ap.mu.RUnlock()

	switch ap.state {
	case PupilOverridden:
		return mat.DenseCopyOf(ap.override), true
	case PupilComputed:
		if ap.resolution == 0 { return nil, false }
		hole := int(math.Round(float64(ap.resolution) * ap.obstructionRatio))
		return geom.Annulus(ap.resolution, hole, ap.resolution), true
	}
	panic("Impossible pupil state.")
}

// PupilLogical returns a mask which is true wherever Pupil is positive.
func (ap *Aperture) PupilLogical() ([][]bool, bool) {
	pupil, ok := ap.Pupil()
	if !ok { return nil, false }
	return geom.Logical(pupil), true
}

// SetPupil replaces the computed pupil with a copy of mask until ClearPupil
// is called. Passing nil is the same as calling ClearPupil.
func (ap *Aperture) SetPupil(mask mat.Matrix) {
	if mask == nil {
		ap.ClearPupil()
		return
	}

	m := mat.DenseCopyOf(mask)
	ap.mu.Lock()
	defer ap.mu.Unlock()
	ap.override, ap.state = m, PupilOverridden
}

// ClearPupil discards any override and returns to the computed pupil.
func (ap *Aperture) ClearPupil() {
	ap.mu.Lock()
	defer ap.mu.Unlock()
	ap.override, ap.state = nil, PupilComputed
}
