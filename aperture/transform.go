package aperture

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"

	"github.com/phil-mansfield/telescope/math/calc"
)

// diskTransform is the Fourier transform of a disk of diameter d at spatial
// frequency f, scaled to the area of a disk of diameter scale.
func diskTransform(d, scale, f float64) float64 {
	area := math.Pi * scale * scale / 4
	if f == 0 { return area }
	return area * calc.Jinc(math.Pi*d*f)
}

// annulusTransform is the un-normalized Fourier transform of the pupil. Its
// value at f = 0 is the collecting area.
func (ap *Aperture) annulusTransform(f float64) float64 {
	d, e := ap.diameter, ap.obstructionRatio
	out := diskTransform(d, d, f)
	if e > 0 { out -= e * e * diskTransform(e*d, d, f) }
	return out
}

// FourierTransform returns the Fourier transform of the annular pupil at each
// spatial frequency, normalized so that its value at zero frequency is one.
func (ap *Aperture) FourierTransform(freqs []float64) []float64 {
	out := make([]float64, len(freqs))
	norm := ap.annulusTransform(0)
	for i, f := range freqs { out[i] = ap.annulusTransform(f) / norm }
	return out
}

// SampledTransform computes the normalized Fourier transform of the raster
// pupil along one axis with an FFT, zero padding the pupil by the given
// factor. The raster is assumed to span one diameter. It returns the
// non-negative frequencies and the transform at each of them.
//
// This is a numerical counterpart to FourierTransform which also works for
// overridden pupils.
func (ap *Aperture) SampledTransform(padding int) (freqs, values []float64, err error) {
	if padding < 1 {
		return nil, nil, fmt.Errorf("%w: padding factor %d", ErrInvalidArgument, padding)
	}
	pupil, ok := ap.Pupil()
	if !ok { return nil, nil, ErrNoPupil }

	profile := columnSums(pupil)
	n := len(profile)
	N := n * padding
	seq := make([]float64, N)
	copy(seq, profile)

	fft := fourier.NewFFT(N)
	coeffs := fft.Coefficients(nil, seq)
	if coeffs[0] == 0 {
		return nil, nil, fmt.Errorf("%w: pupil raster is empty", ErrInvalidArgument)
	}

	// Pixel j sits at (j + 1/2 - n/2) pixels from the pupil center; undo
	// the FFT's origin at pixel 0 so the transform is real.
	dx := ap.diameter / float64(n)
	freqs, values = make([]float64, len(coeffs)), make([]float64, len(coeffs))
	for k := range coeffs {
		phase := 2 * math.Pi * float64(k) * (0.5 - float64(n)/2) / float64(N)
		shifted := coeffs[k] * cmplx.Exp(complex(0, -phase))
		freqs[k] = fft.Freq(k) / dx
		values[k] = real(shifted) / real(coeffs[0])
	}

	return freqs, values, nil
}

func columnSums(m mat.Matrix) []float64 {
	r, c := m.Dims()
	out := make([]float64, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ { out[j] += m.At(i, j) }
	}
	return out
}
